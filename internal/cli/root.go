// Package cli wires the cart573 subcommand tree: detect, read, write,
// erase, identify, qr and catalog lookup/init. Grounded on the teacher's
// internal/cli/root.go (PersistentPreRun credential setup, package-level
// state) and internal/cli/identify/root.go (flag registration, RunE
// pattern) — but replaces the teacher's package-level *screenscraper.Client
// singleton with an AppCore struct passed to every subcommand, per spec.md
// §9's elimination of file-scope singletons.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kartlab/cart573/lib/bus"
	"github.com/kartlab/cart573/lib/catalog"
	"github.com/kartlab/cart573/lib/core"
	"github.com/kartlab/cart573/lib/dump"
)

// AppCore owns everything a subcommand needs to talk to a cart: the active
// bus controller, the catalog (once loaded) and the in-flight dump. It is
// constructed fresh for each invocation and threaded through by pointer,
// replacing the file-scope singletons spec.md §9 calls out.
type AppCore struct {
	Ctrl    bus.Controller
	Catalog *catalog.Catalog
	Dump    *dump.Dump
}

// NewAppCore builds an AppCore with a simulated bus controller seeded for
// simChip. There is no real arcade-I/O driver in this port (spec.md's
// Non-goals exclude "host-OS driver work"), so bus.Sim is the only
// Controller implementation; every chip-interaction subcommand necessarily
// operates against one.
func NewAppCore(simChip core.ChipKind) *AppCore {
	return &AppCore{Ctrl: bus.NewSim(simChip)}
}

// resolveSimChip maps the --sim-chip flag's string value to a ChipKind.
func resolveSimChip(s string) (core.ChipKind, error) {
	switch s {
	case "x76f041":
		return core.ChipX76F041, nil
	case "x76f100":
		return core.ChipX76F100, nil
	case "zs01":
		return core.ChipZS01, nil
	case "none":
		return core.ChipNone, nil
	default:
		return core.ChipNone, fmt.Errorf("unknown --sim-chip %q (want x76f041, x76f100, zs01 or none)", s)
	}
}

var (
	jsonOutput bool
	simChipStr string
)

var rootCmd = &cobra.Command{
	Use:           "cart573",
	SilenceUsage:  true,
	SilenceErrors: true,
	Short:         "Maintenance and dumping tool for System 573 security cartridges",
	Long: `cart573 reads, writes, erases and identifies the security EEPROM
(X76F041, X76F100 or ZS01) fitted to a Konami System 573 arcade cartridge,
and looks up known cartridges in a catalog file.

There is no real-hardware driver in this build: chip-interaction commands
(detect, read, write, erase) operate against an in-memory bus simulator,
selected with --sim-chip, which stands in for the I²C/1-Wire bus a real
driver would bit-bang.`,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output results as JSON")
	rootCmd.PersistentFlags().StringVar(&simChipStr, "sim-chip", "zs01",
		"simulated chip kind to probe: x76f041, x76f100, zs01, or none")

	rootCmd.AddCommand(detectCmd)
	rootCmd.AddCommand(readCmd)
	rootCmd.AddCommand(writeCmd)
	rootCmd.AddCommand(eraseCmd)
	rootCmd.AddCommand(identifyCmd)
	rootCmd.AddCommand(qrCmd)
	rootCmd.AddCommand(catalogCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// fail prints a user-facing error and returns it unwrapped, the way the
// teacher's internal/cli/identify/root.go reports per-file failures without
// aborting the whole command.
func fail(format string, args ...any) error {
	err := fmt.Errorf(format, args...)
	fmt.Fprintln(os.Stderr, "Error:", err)
	return err
}
