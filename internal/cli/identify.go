package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kartlab/cart573/internal/format"
	"github.com/kartlab/cart573/lib/catalog"
	"github.com/kartlab/cart573/lib/dump"
	parse "github.com/kartlab/cart573/lib/format"
	"github.com/kartlab/cart573/lib/identify"
)

// identifyResult is the --json shape for the identify command.
type identifyResult struct {
	Format  string         `json:"format"`
	Code    string         `json:"code,omitempty"`
	Region  string         `json:"region,omitempty"`
	Year    uint16         `json:"year,omitempty"`
	Valid   bool           `json:"valid"`
	Catalog *catalog.Entry `json:"catalog,omitempty"`
}

var identifyCatalogPath string

var identifyCmd = &cobra.Command{
	Use:   "identify <dump-file>",
	Short: "Identify a dump's data format and (if a catalog is given) its game",
	Args:  cobra.ExactArgs(1),
	RunE:  runIdentify,
}

func init() {
	identifyCmd.Flags().StringVar(&identifyCatalogPath, "catalog", "", "catalog file to cross-reference the identified (code, region) against")
}

func runIdentify(cmd *cobra.Command, args []string) error {
	d, magic, err := dump.Load(args[0])
	if err != nil {
		return fail("loading %s: %v", args[0], err)
	}

	var p parse.Parser
	var ok bool
	if magic == dump.MagicRomHeaderDump {
		p, ok = identify.IdentifyRomHeader(d.Data, d.SystemID)
	} else {
		p, ok = identify.Identify(d.Data)
	}
	if !ok {
		if !jsonOutput {
			fmt.Print(format.RenderDump(d, magic))
		}
		return fail("no known format matched %s", args[0])
	}

	result := identifyResult{
		Format: p.Format().String(),
		Code:   p.Code(),
		Region: p.Region(),
		Year:   p.Year(),
		Valid:  p.Validate(),
	}

	if identifyCatalogPath != "" {
		c, err := catalog.Load(identifyCatalogPath)
		if err != nil {
			return fail("loading catalog %s: %v", identifyCatalogPath, err)
		}
		if entry, ok := c.Lookup(p.Code(), p.Region()); ok {
			result.Catalog = &entry
		}
	}

	if jsonOutput {
		enc, err := json.Marshal(result)
		if err != nil {
			return fail("marshaling JSON: %v", err)
		}
		fmt.Println(string(enc))
		return nil
	}

	fmt.Print(format.RenderDump(d, magic))
	if result.Catalog != nil {
		fmt.Println()
		fmt.Println(format.HeaderStyle.Render("Catalog match:"))
		fmt.Println(format.RenderCatalogEntry(*result.Catalog))
	} else if identifyCatalogPath != "" {
		fmt.Println("no catalog entry for this cart")
	}
	return nil
}
