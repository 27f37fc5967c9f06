package format

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/kartlab/cart573/lib/catalog"
	"github.com/kartlab/cart573/lib/core"
	"github.com/kartlab/cart573/lib/dump"
	parse "github.com/kartlab/cart573/lib/format"
	"github.com/kartlab/cart573/lib/identify"
)

// KVPair is a single labeled value for RenderKeyValue.
type KVPair struct {
	Key   string
	Value string
}

// RenderTable renders a table with headers and rows.
func RenderTable(headers []string, rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(BorderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return TableHeaderStyle
			}
			if row%2 == 0 {
				return TableEvenRowStyle
			}
			return TableOddRowStyle
		}).
		Headers(headers...).
		Rows(rows...)

	return t.Render()
}

// RenderKeyValue renders a list of key-value pairs, skipping blank values.
func RenderKeyValue(pairs []KVPair) string {
	if len(pairs) == 0 {
		return ""
	}

	var lines []string
	for _, pair := range pairs {
		if pair.Value == "" {
			continue
		}
		key := LabelStyle.Render(pair.Key + ":")
		lines = append(lines, fmt.Sprintf("%s %s", key, ValueStyle.Render(pair.Value)))
	}

	return strings.Join(lines, "\n")
}

// RenderID renders an identifier in a dimmed, hyphenated hex style, or "" if
// id is empty.
func RenderID(id core.Identifier) string {
	if id.IsEmpty() {
		return ""
	}
	return DimStyle.Render(id.String())
}

// RenderDump renders a full human-readable summary of a cartridge dump: chip
// kind, state flags, identifiers, key/config, and — if the data identifies
// against a known format — its parsed fields. magic picks which identify
// path applies: dump.MagicRomHeaderDump means data came off an on-board
// flash/RTC header and is matched against the signature-bearing ROM-header
// dialects (authenticated against d.SystemID); anything else is treated as
// a plain security-EEPROM dump and matched against the ordinary candidate
// list.
func RenderDump(d *dump.Dump, magic uint16) string {
	var parts []string

	parts = append(parts, TitleStyle.Render(fmt.Sprintf("Cartridge dump (%s)", d.ChipKind)))

	var kvPairs []KVPair
	kvPairs = append(kvPairs, KVPair{"Chip", d.ChipKind.String()})
	kvPairs = append(kvPairs, KVPair{"Well-formed", strconv.FormatBool(d.WellFormed())})
	kvPairs = append(kvPairs, KVPair{"Data empty", strconv.FormatBool(d.IsDataEmpty())})
	if s := RenderID(d.SystemID); s != "" {
		kvPairs = append(kvPairs, KVPair{"System ID", s})
	}
	if s := RenderID(d.CartID); s != "" {
		kvPairs = append(kvPairs, KVPair{"Cart ID", s})
	}
	if s := RenderID(d.ZsID); s != "" {
		kvPairs = append(kvPairs, KVPair{"ZS ID", s})
	}
	parts = append(parts, RenderKeyValue(kvPairs))

	var p parse.Parser
	var ok bool
	if magic == dump.MagicRomHeaderDump {
		p, ok = identify.IdentifyRomHeader(d.Data, d.SystemID)
	} else {
		p, ok = identify.Identify(d.Data)
	}
	if ok {
		parts = append(parts, "")
		parts = append(parts, HeaderStyle.Render("Identified format:"))
		parts = append(parts, "  "+RenderParser(p))
	}

	return strings.Join(parts, "\n") + "\n"
}

// RenderParser renders one identified format's fields.
func RenderParser(p parse.Parser) string {
	var kvPairs []KVPair
	kvPairs = append(kvPairs, KVPair{"Format", p.Format().String()})
	if code := p.Code(); code != "" {
		kvPairs = append(kvPairs, KVPair{"Code", code})
	}
	if region := p.Region(); region != "" {
		kvPairs = append(kvPairs, KVPair{"Region", region})
	}
	if year := p.Year(); year != 0 {
		kvPairs = append(kvPairs, KVPair{"Year", strconv.Itoa(int(year))})
	}
	kvPairs = append(kvPairs, KVPair{"Valid", strconv.FormatBool(p.Validate())})
	return RenderKeyValue(kvPairs)
}

// RenderCatalogEntry renders one catalog entry's fields.
func RenderCatalogEntry(e catalog.Entry) string {
	kvPairs := []KVPair{
		{"Code", e.Code},
		{"Region", e.Region},
		{"Name", e.Name},
		{"Chip", e.ChipKind.String()},
		{"Format", e.Format.String()},
	}
	if e.Year != 0 {
		kvPairs = append(kvPairs, KVPair{"Year", strconv.Itoa(int(e.Year))})
	}
	return RenderKeyValue(kvPairs)
}

// RenderCatalogList renders every entry in c as a table.
func RenderCatalogList(c *catalog.Catalog) string {
	entries := c.Entries()
	if len(entries) == 0 {
		return "No catalog entries.\n"
	}

	headers := []string{"Code", "Region", "Chip", "Format", "Name"}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{e.Code, e.Region, e.ChipKind.String(), e.Format.String(), e.Name})
	}

	return RenderTable(headers, rows) + "\n"
}
