// Command cart573 reads, writes, erases and identifies the security EEPROM
// fitted to a Konami System 573 arcade cartridge.
package main

import (
	"os"

	"github.com/kartlab/cart573/internal/cli"
)

func main() {
	// cli.Execute's subcommands print their own "Error: ..." line on
	// failure (see internal/cli/root.go's fail helper), so main only needs
	// to pick the right exit code.
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
