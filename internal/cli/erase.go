package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kartlab/cart573/internal/tui"
	"github.com/kartlab/cart573/lib/chipio"
)

var eraseDataKeyHex string

var eraseCmd = &cobra.Command{
	Use:   "erase",
	Short: "Erase a cartridge's data and reset its key to factory default",
	RunE:  runErase,
}

func init() {
	eraseCmd.Flags().StringVar(&eraseDataKeyHex, "data-key", "", "16 hex-character data key the cart currently accepts")
}

func runErase(cmd *cobra.Command, args []string) error {
	simChip, err := resolveSimChip(simChipStr)
	if err != nil {
		return fail("%v", err)
	}
	key, err := parseDataKey(eraseDataKeyHex)
	if err != nil {
		return fail("%v", err)
	}

	app := NewAppCore(simChip)
	driver := chipio.NewDriver(app.Ctrl)
	app.Dump = driver.Dump()
	app.Dump.CopyKeyFrom(key)

	steps := []tui.Step{
		{Label: "erasing", Run: driver.Erase},
	}

	if err := tui.Run("erase", steps); err != nil {
		return fail("erase failed: %v", err)
	}

	fmt.Println("erase complete")
	return nil
}
