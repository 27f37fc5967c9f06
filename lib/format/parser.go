package format

import "github.com/kartlab/cart573/lib/core"

// Parser is the common surface every header dialect implements: read/write
// access to the code and region fields, the identifier blocks a format may
// carry, and the validate/flush pair that checks or recomputes a header's
// checksum in place. Not every method is meaningful for every dialect (the
// Simple dialect has no code, year or identifiers) — those return a zero
// value, mirroring original_source/src/cartdata.hpp's Parser base class
// virtuals, which default to 0/nullptr rather than being absent.
type Parser interface {
	Format() core.CartFormat
	Flags() core.FormatFlag

	Code() string
	SetCode(code string)
	Region() string
	SetRegion(region string)
	Year() uint16
	SetYear(year uint16)

	Identifiers() *IdentifierSet
	PublicIdentifiers() *PublicIdentifierSet

	// Flush recomputes and writes back any checksum/signature the header
	// carries, after Set* calls have mutated it.
	Flush()
	// Validate reports whether the region passes the region grammar and
	// (for dialects that carry one) the checksum matches.
	Validate() bool
}

// validateRegion is the Parser.validate base case shared by every dialect:
// original_source/src/cartdata.cpp's Parser::validate rejects a region
// shorter than REGION_MIN_LENGTH or one that fails the grammar, before any
// dialect-specific checksum check runs.
func validateRegion(region string) bool {
	if len(region) < 2 {
		return false
	}
	return ValidRegion(region)
}

// New builds a fresh parser of the given format/flags over data, the way
// original_source/src/cartdata.cpp's newCartParser(dump, formatType, flags)
// does. data must be at least as long as the dialect's header plus whatever
// identifier sections its flags call for; callers normally pass a dump.Dump's
// Data slice directly.
func New(format core.CartFormat, flags core.FormatFlag, data []byte) Parser {
	switch format {
	case core.FormatSimple:
		return newSimpleParser(flags, data)
	case core.FormatBasic:
		return newBasicParser(flags, data)
	case core.FormatExtended:
		return newExtendedParser(flags, data)
	default:
		return nil
	}
}
