package format

import "github.com/kartlab/cart573/lib/core"

// BasicHeader layout, from original_source/src/main/cart/cartdata.cpp:
//
//	Offset  Size  Field
//	0       2     Region
//	2       2     CodePrefix
//	4       2     Year (low byte, high byte)
//	6       1     _pad
//	7       1     Checksum
const (
	basicHeaderLength  = 8
	basicRegionOffset  = 0
	basicCodeOffset    = 2
	basicYearOffset    = 4
	basicChecksumSum   = 4 // number of leading bytes the checksum covers
	basicChecksumIndex = 7
)

// basicChecksum sums the header's first basicChecksumSum bytes (region and
// code prefix — the checksum never covers year or padding), inverting if
// requested. Grounded on BasicHeader::updateChecksum/validateChecksum.
func basicChecksum(data []byte, invert bool) byte {
	var sum byte
	for _, b := range data[0:basicChecksumSum] {
		sum += b
	}
	if invert {
		sum ^= 0xff
	}
	return sum
}

// BasicParser is the mid-complexity dialect: a 2-char region, an optional
// 2-char code prefix, a year and an inverted or plain checksum, optionally
// followed by a private IdentifierSet.
type BasicParser struct {
	flags core.FormatFlag
	data  []byte
}

func newBasicParser(flags core.FormatFlag, data []byte) *BasicParser {
	return &BasicParser{flags: flags, data: data}
}

func (p *BasicParser) header() []byte { return p.data[0:basicHeaderLength] }

func (p *BasicParser) Format() core.CartFormat { return core.FormatBasic }
func (p *BasicParser) Flags() core.FormatFlag  { return p.flags }

// Code returns the 2-character code prefix, or "" when the dialect instance
// doesn't carry one (FmtHasCodePrefix unset).
func (p *BasicParser) Code() string {
	if !p.flags.Has(core.FmtHasCodePrefix) {
		return ""
	}
	return string(p.header()[basicCodeOffset : basicCodeOffset+2])
}

func (p *BasicParser) SetCode(code string) {
	if !p.flags.Has(core.FmtHasCodePrefix) {
		return
	}
	h := p.header()
	h[basicCodeOffset] = code[0]
	h[basicCodeOffset+1] = code[1]
}

func (p *BasicParser) Region() string {
	return string(p.header()[basicRegionOffset : basicRegionOffset+2])
}

func (p *BasicParser) SetRegion(region string) {
	h := p.header()
	h[basicRegionOffset] = region[0]
	h[basicRegionOffset+1] = region[1]
}

func (p *BasicParser) Year() uint16 {
	h := p.header()
	return uint16(h[basicYearOffset]) | uint16(h[basicYearOffset+1])<<8
}

func (p *BasicParser) SetYear(year uint16) {
	h := p.header()
	h[basicYearOffset] = byte(year)
	h[basicYearOffset+1] = byte(year >> 8)
}

// Identifiers returns the private IdentifierSet immediately following the
// header, per BasicCartParser::getIdentifiers.
func (p *BasicParser) Identifiers() *IdentifierSet {
	s := readIdentifierSet(p.data[basicHeaderLength : basicHeaderLength+identifierSetLength])
	return &s
}

// PublicIdentifiers: the Basic dialect never carries a public duplicate.
func (p *BasicParser) PublicIdentifiers() *PublicIdentifierSet { return nil }

func (p *BasicParser) Flush() {
	h := p.header()
	h[basicChecksumIndex] = basicChecksum(h, p.flags.Has(core.FmtChecksumInverted))
}

func (p *BasicParser) Validate() bool {
	if len(p.data) < basicHeaderLength {
		return false
	}
	if !validateRegion(p.Region()) {
		return false
	}
	h := p.header()
	return h[basicChecksumIndex] == basicChecksum(h, p.flags.Has(core.FmtChecksumInverted))
}

var _ Parser = (*BasicParser)(nil)
