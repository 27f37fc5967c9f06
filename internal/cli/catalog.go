package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kartlab/cart573/internal/format"
	"github.com/kartlab/cart573/lib/catalog"
	"github.com/kartlab/cart573/lib/dump"
	parse "github.com/kartlab/cart573/lib/format"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Look up known cartridges, or build a fresh dump for one",
}

var (
	lookupCatalogPath string
	lookupCode        string
	lookupRegion      string
)

var catalogLookupCmd = &cobra.Command{
	Use:   "lookup",
	Short: "Look up a (code, region) pair in a catalog file",
	RunE:  runCatalogLookup,
}

var (
	initCatalogPath string
	initCode        string
	initRegion      string
	initOutPath     string
)

var catalogInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Build a fresh, correctly-formatted dump for a known game code",
	RunE:  runCatalogInit,
}

func init() {
	catalogLookupCmd.Flags().StringVar(&lookupCatalogPath, "catalog", "", "catalog file (required)")
	catalogLookupCmd.Flags().StringVar(&lookupCode, "code", "", "game code to look up (required)")
	catalogLookupCmd.Flags().StringVar(&lookupRegion, "region", "", "region to look up (required)")
	catalogLookupCmd.MarkFlagRequired("catalog")
	catalogLookupCmd.MarkFlagRequired("code")
	catalogLookupCmd.MarkFlagRequired("region")

	catalogInitCmd.Flags().StringVar(&initCatalogPath, "catalog", "", "catalog file (required)")
	catalogInitCmd.Flags().StringVar(&initCode, "code", "", "game code to build a dump for (required)")
	catalogInitCmd.Flags().StringVar(&initRegion, "region", "", "region to write into the dump (default: guessed from OS locale)")
	catalogInitCmd.Flags().StringVar(&initOutPath, "out", "", "write the resulting dump to this file (required)")
	catalogInitCmd.MarkFlagRequired("catalog")
	catalogInitCmd.MarkFlagRequired("code")
	catalogInitCmd.MarkFlagRequired("out")

	catalogCmd.AddCommand(catalogLookupCmd)
	catalogCmd.AddCommand(catalogInitCmd)
}

func runCatalogLookup(cmd *cobra.Command, args []string) error {
	c, err := catalog.Load(lookupCatalogPath)
	if err != nil {
		return fail("loading catalog %s: %v", lookupCatalogPath, err)
	}

	entry, ok := c.Lookup(lookupCode, lookupRegion)
	if !ok {
		return fail("no catalog entry for code=%q region=%q", lookupCode, lookupRegion)
	}

	if jsonOutput {
		enc, err := json.Marshal(entry)
		if err != nil {
			return fail("marshaling JSON: %v", err)
		}
		fmt.Println(string(enc))
		return nil
	}

	fmt.Println(format.RenderCatalogEntry(entry))
	return nil
}

func runCatalogInit(cmd *cobra.Command, args []string) error {
	region := format.GuessRegion(initRegion)

	c, err := catalog.Load(initCatalogPath)
	if err != nil {
		return fail("loading catalog %s: %v", initCatalogPath, err)
	}

	entry, ok := c.Lookup(initCode, region)
	if !ok {
		return fail("no catalog entry for code=%q region=%q", initCode, region)
	}

	d := dump.New(entry.ChipKind)
	p := parse.New(entry.Format, entry.Flags, d.Data)
	p.SetCode(entry.Code)
	p.SetRegion(region)
	p.SetYear(entry.Year)
	p.Flush()
	d.CopyKeyFrom(entry.DataKey)

	if err := d.Save(initOutPath); err != nil {
		return fail("saving dump: %v", err)
	}

	fmt.Printf("wrote %s (%s, %s)\n", initOutPath, entry.ChipKind, entry.Code)
	return nil
}
