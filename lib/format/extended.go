package format

import "github.com/kartlab/cart573/lib/core"

// ExtendedHeader layout, from original_source/src/main/cart/cartdata.cpp:
//
//	Offset  Size  Field
//	0       5     Code
//	5       5     Region
//	10      2     Year
//	12      2     _pad
//	14      2     Checksum
const (
	extendedHeaderLength  = 16
	extendedCodeOffset    = 0
	extendedCodeLength    = 5
	extendedRegionOffset  = 5
	extendedRegionLength  = 5
	extendedYearOffset    = 10
	extendedChecksumWords = 7 // number of leading u16s the checksum covers
	extendedChecksumIndex = 14
)

// extendedChecksum sums the header's first extendedChecksumWords
// little-endian u16 words (code, region, year and padding — 14 bytes, the
// checksum word itself excluded), inverting if requested. Grounded on
// ExtendedHeader::updateChecksum/validateChecksum.
func extendedChecksum(data []byte, invert bool) uint16 {
	var sum uint16
	for i := 0; i < extendedChecksumWords; i++ {
		sum += uint16(data[2*i]) | uint16(data[2*i+1])<<8
	}
	if invert {
		sum ^= 0xffff
	}
	return sum
}

// ExtendedParser is the most capable dialect: a 5-char code, a 5-char
// region, a year, an optional duplicated public identifier section, and a
// private IdentifierSet. Always carries a code prefix (FmtHasCodePrefix),
// per original_source's ExtendedParser constructor.
type ExtendedParser struct {
	flags core.FormatFlag
	data  []byte
}

func newExtendedParser(flags core.FormatFlag, data []byte) *ExtendedParser {
	return &ExtendedParser{flags: flags | core.FmtHasCodePrefix, data: data}
}

func (p *ExtendedParser) header() []byte { return p.data[0:extendedHeaderLength] }

func (p *ExtendedParser) Format() core.CartFormat { return core.FormatExtended }
func (p *ExtendedParser) Flags() core.FormatFlag  { return p.flags }

// Code returns the 5-character code, with the Gx706 workaround's
// 'E' mutated back to 'X' for display, matching
// ExtendedCartParser::getCode.
func (p *ExtendedParser) Code() string {
	h := p.header()
	code := []byte(trimNulPadding(h[extendedCodeOffset : extendedCodeOffset+extendedCodeLength]))
	if len(code) > 1 && p.flags.Has(core.FmtGx706Workaround) {
		code[1] = 'X'
	}
	return string(code)
}

func (p *ExtendedParser) SetCode(code string) {
	h := p.header()
	writePaddedString(h[extendedCodeOffset:extendedCodeOffset+extendedCodeLength], code)
	if p.flags.Has(core.FmtGx706Workaround) {
		h[extendedCodeOffset+1] = 'E'
	}
}

func (p *ExtendedParser) Region() string {
	h := p.header()
	return trimNulPadding(h[extendedRegionOffset : extendedRegionOffset+extendedRegionLength])
}

func (p *ExtendedParser) SetRegion(region string) {
	h := p.header()
	writePaddedString(h[extendedRegionOffset:extendedRegionOffset+extendedRegionLength], region)
}

func (p *ExtendedParser) Year() uint16 {
	h := p.header()
	return uint16(h[extendedYearOffset]) | uint16(h[extendedYearOffset+1])<<8
}

func (p *ExtendedParser) SetYear(year uint16) {
	h := p.header()
	h[extendedYearOffset] = byte(year)
	h[extendedYearOffset+1] = byte(year >> 8)
}

// Identifiers returns the private IdentifierSet. When FmtHasPublicSection
// is set it sits after both the header and the duplicated
// PublicIdentifierSet; otherwise it directly follows the header.
func (p *ExtendedParser) Identifiers() *IdentifierSet {
	offset := extendedHeaderLength
	if p.flags.Has(core.FmtHasPublicSection) {
		offset += publicIdentifierSetLength
	}
	s := readIdentifierSet(p.data[offset : offset+identifierSetLength])
	return &s
}

// PublicIdentifiers returns the duplicated public install/system ID pair,
// or nil when FmtHasPublicSection is unset.
func (p *ExtendedParser) PublicIdentifiers() *PublicIdentifierSet {
	if !p.flags.Has(core.FmtHasPublicSection) {
		return nil
	}
	s := readPublicIdentifierSet(p.data[extendedHeaderLength : extendedHeaderLength+publicIdentifierSetLength])
	return &s
}

// withGx706Workaround runs fn with code[1] temporarily forced to 'X' (the
// byte the checksum was actually computed over on GX706 carts), restoring
// the original byte afterwards. No-op when the workaround flag is unset.
func (p *ExtendedParser) withGx706Workaround(fn func()) {
	if !p.flags.Has(core.FmtGx706Workaround) {
		fn()
		return
	}
	h := p.header()
	saved := h[extendedCodeOffset+1]
	h[extendedCodeOffset+1] = 'X'
	fn()
	h[extendedCodeOffset+1] = saved
}

// Flush recomputes the checksum, applying the Gx706 workaround first. When
// FmtHasPublicSection is set it also duplicates the private system
// identifier (never the install ID — original_source leaves that copy
// disabled) into the public identifier section before updating the
// checksum, per original_source's ExtendedCartParser::flush.
func (p *ExtendedParser) Flush() {
	if p.flags.Has(core.FmtHasPublicSection) {
		pub := p.data[extendedHeaderLength : extendedHeaderLength+publicIdentifierSetLength]
		public := readPublicIdentifierSet(pub)
		public.System = p.Identifiers().System
		public.write(pub)
	}

	p.withGx706Workaround(func() {
		h := p.header()
		sum := extendedChecksum(h, p.flags.Has(core.FmtChecksumInverted))
		h[extendedChecksumIndex] = byte(sum)
		h[extendedChecksumIndex+1] = byte(sum >> 8)
	})
}

func (p *ExtendedParser) Validate() bool {
	if len(p.data) < extendedHeaderLength {
		return false
	}
	if !validateRegion(p.Region()) {
		return false
	}

	var valid bool
	p.withGx706Workaround(func() {
		h := p.header()
		want := uint16(h[extendedChecksumIndex]) | uint16(h[extendedChecksumIndex+1])<<8
		valid = want == extendedChecksum(h, p.flags.Has(core.FmtChecksumInverted))
	})
	return valid
}

var _ Parser = (*ExtendedParser)(nil)
