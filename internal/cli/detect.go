package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kartlab/cart573/lib/chipio"
)

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Probe the bus and report which chip, if any, is attached",
	RunE:  runDetect,
}

func runDetect(cmd *cobra.Command, args []string) error {
	simChip, err := resolveSimChip(simChipStr)
	if err != nil {
		return fail("%v", err)
	}

	app := NewAppCore(simChip)
	driver := chipio.NewDriver(app.Ctrl)

	fmt.Printf("chip:  %s\n", driver.Kind())
	fmt.Printf("state: %s\n", driver.State())
	return nil
}
