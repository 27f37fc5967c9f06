package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kartlab/cart573/internal/tui"
	"github.com/kartlab/cart573/lib/chipio"
	"github.com/kartlab/cart573/lib/dump"
)

var (
	writeInPath     string
	writeDataKeyHex string
)

var writeCmd = &cobra.Command{
	Use:   "write",
	Short: "Write a dump file's data and config back to a cartridge",
	RunE:  runWrite,
}

func init() {
	writeCmd.Flags().StringVar(&writeInPath, "in", "", "dump file to write (required)")
	writeCmd.Flags().StringVar(&writeDataKeyHex, "data-key", "", "16 hex-character data key the cart currently accepts")
	writeCmd.MarkFlagRequired("in")
}

func runWrite(cmd *cobra.Command, args []string) error {
	simChip, err := resolveSimChip(simChipStr)
	if err != nil {
		return fail("%v", err)
	}
	key, err := parseDataKey(writeDataKeyHex)
	if err != nil {
		return fail("%v", err)
	}

	loaded, _, err := dump.Load(writeInPath)
	if err != nil {
		return fail("loading %s: %v", writeInPath, err)
	}

	app := NewAppCore(simChip)
	driver := chipio.NewDriver(app.Ctrl)
	app.Dump = driver.Dump()
	app.Dump.CopyDataFrom(loaded.Data)
	app.Dump.CopyConfigFrom(loaded.CopyConfigTo())
	app.Dump.CopyKeyFrom(key)

	steps := []tui.Step{
		{Label: "writing data", Run: driver.WriteData},
	}

	if err := tui.Run("write", steps); err != nil {
		return fail("write failed: %v", err)
	}

	fmt.Println("write complete")
	return nil
}
