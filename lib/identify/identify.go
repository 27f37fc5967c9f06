// Package identify resolves an unknown cartridge dump's data buffer to one
// of the known (CartFormat, FormatFlag) dialects by trying a fixed,
// order-significant candidate list from most complex to simplest and
// keeping the first one whose header validates. Grounded on
// original_source/src/main/cart/cartdata.cpp's newCartParser(dump) and, for
// the "ordered candidates, try each, keep first success" shape, lib/identify
// (package) in the teacher repo.
package identify

import (
	"github.com/kartlab/cart573/lib/core"
	"github.com/kartlab/cart573/lib/format"
)

// candidate names one entry of the fixed candidate list. The name is purely
// diagnostic, matching original_source's KnownFormat.name used in its LOG
// calls.
type candidate struct {
	name   string
	format core.CartFormat
	flags  core.FormatFlag
}

// candidates is original_source's _KNOWN_CART_FORMATS, in the exact order
// newCartParser(dump) tries them: most complex (index len-1) first. Its
// order resolves format ambiguity and must be preserved bit-for-bit.
var candidates = []candidate{
	{
		name:   "region only",
		format: core.FormatSimple,
		flags:  core.FmtHasPublicSection,
	},
	{
		name:   "basic (no IDs)",
		format: core.FormatBasic,
		flags:  core.FmtChecksumInverted,
	},
	{
		name:   "basic + TID",
		format: core.FormatBasic,
		flags:  core.FmtHasTraceID | core.FmtChecksumInverted,
	},
	{
		name:   "basic + SID",
		format: core.FormatBasic,
		flags:  core.FmtHasCartID | core.FmtChecksumInverted,
	},
	{
		name:   "basic + TID, SID",
		format: core.FormatBasic,
		flags:  core.FmtHasTraceID | core.FmtHasCartID | core.FmtChecksumInverted,
	},
	{
		name:   "basic + prefix, TID, SID",
		format: core.FormatBasic,
		flags: core.FmtHasCodePrefix | core.FmtHasTraceID | core.FmtHasCartID |
			core.FmtChecksumInverted,
	},
	{
		// Used by most pre-ZS01 Bemani games.
		name:   "basic + prefix, all IDs",
		format: core.FormatBasic,
		flags: core.FmtHasCodePrefix | core.FmtHasTraceID | core.FmtHasCartID |
			core.FmtHasInstallID | core.FmtHasSystemID | core.FmtChecksumInverted,
	},
	{
		name:   "extended (no IDs)",
		format: core.FormatExtended,
		flags:  core.FmtHasCodePrefix | core.FmtChecksumInverted,
	},
	{
		name:   "extended (no IDs, alt)",
		format: core.FormatExtended,
		flags:  core.FmtHasCodePrefix,
	},
	{
		// Used by GX706.
		name:   "extended (no IDs, GX706)",
		format: core.FormatExtended,
		flags:  core.FmtHasCodePrefix | core.FmtGx706Workaround,
	},
	{
		// Used by GE936/GK936 and all ZS01 Bemani games.
		name:   "extended + all IDs",
		format: core.FormatExtended,
		flags: core.FmtHasCodePrefix | core.FmtHasTraceID | core.FmtHasCartID |
			core.FmtHasInstallID | core.FmtHasSystemID | core.FmtHasPublicSection |
			core.FmtChecksumInverted,
	},
}

// Identify tries every candidate from most-complex-first down to Simple,
// returning the first parser whose Validate() succeeds. Returns nil, false
// if none of them recognize data (the caller may still present the dump as
// raw bytes).
func Identify(data []byte) (format.Parser, bool) {
	for i := len(candidates) - 1; i >= 0; i-- {
		c := candidates[i]
		p := format.New(c.format, c.flags, data)
		if p != nil && p.Validate() {
			return p, true
		}
	}
	return nil, false
}

// romHeaderCandidates is the subset of dialects an on-board flash/RTC
// header can plausibly carry: with and without the signature that
// authenticates it against systemID. Tried most-complex-first, same as
// Identify.
var romHeaderCandidates = []core.FormatFlag{
	core.FmtHasSystemID,
	0,
}

// IdentifyRomHeader is Identify's counterpart for dumps pulled from a
// cart's on-board flash or RTC header rather than its security EEPROM
// (lib/dump.MagicRomHeaderDump). Unlike the EEPROM dialects, a ROM header
// authenticates against a systemID read separately from the header bytes
// themselves (see format.NewRomHeaderParser), so it needs its own entry
// point rather than a slot in Identify's candidate list.
func IdentifyRomHeader(data []byte, systemID core.Identifier) (format.Parser, bool) {
	for _, flags := range romHeaderCandidates {
		p := format.NewRomHeaderParser(flags, systemID, data)
		if p.Validate() {
			return p, true
		}
	}
	return nil, false
}
