package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kartlab/cart573/internal/format"
	"github.com/kartlab/cart573/internal/tui"
	"github.com/kartlab/cart573/lib/chipio"
	"github.com/kartlab/cart573/lib/core"
	"github.com/kartlab/cart573/lib/dump"
)

var (
	readDataKeyHex string
	readOutPath    string
)

var readCmd = &cobra.Command{
	Use:   "read",
	Short: "Read a cartridge's full dump (identifiers, public and private data)",
	RunE:  runRead,
}

func init() {
	readCmd.Flags().StringVar(&readDataKeyHex, "data-key", "", "16 hex-character data key (default: all-zero factory key)")
	readCmd.Flags().StringVar(&readOutPath, "out", "", "write the resulting dump to this file")
}

func runRead(cmd *cobra.Command, args []string) error {
	simChip, err := resolveSimChip(simChipStr)
	if err != nil {
		return fail("%v", err)
	}
	key, err := parseDataKey(readDataKeyHex)
	if err != nil {
		return fail("%v", err)
	}

	app := NewAppCore(simChip)
	driver := chipio.NewDriver(app.Ctrl)

	steps := []tui.Step{
		{Label: "reading system ID", Run: driver.ReadSystemID},
		{Label: "reading cart ID", Run: driver.ReadCartID},
		{Label: "reading public data", Run: func() error {
			err := driver.ReadPublicData()
			if errors.Is(err, core.ErrUnsupportedOp) {
				return nil
			}
			return err
		}},
		{Label: "reading private data", Run: func() error {
			return driver.ReadPrivateData(key)
		}},
	}

	if err := tui.Run("read", steps); err != nil {
		return fail("read failed: %v", err)
	}

	app.Dump = driver.Dump()

	if readOutPath != "" {
		if err := app.Dump.Save(readOutPath); err != nil {
			return fail("saving dump: %v", err)
		}
		fmt.Printf("wrote %s\n", readOutPath)
	}

	fmt.Print(format.RenderDump(app.Dump, dump.MagicDump))
	return nil
}
