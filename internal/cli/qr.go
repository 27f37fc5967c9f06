package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kartlab/cart573/lib/dump"
)

var qrCmd = &cobra.Command{
	Use:   "qr <dump-file>",
	Short: "Render a dump file as its scannable QR payload string",
	Args:  cobra.ExactArgs(1),
	RunE:  runQR,
}

func runQR(cmd *cobra.Command, args []string) error {
	d, _, err := dump.Load(args[0])
	if err != nil {
		return fail("loading %s: %v", args[0], err)
	}

	s, err := d.ToQRString()
	if err != nil {
		return fail("encoding QR string: %v", err)
	}

	fmt.Println(s)
	return nil
}
