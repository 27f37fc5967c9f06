package format

import "github.com/kartlab/cart573/lib/core"

// simpleHeaderLength is sizeof(SimpleHeader): a two-byte region code and
// nothing else. Grounded on original_source/src/cartdata.cpp's
// SimpleParser::getRegion/setRegion, which touch exactly header->region[2].
const simpleHeaderLength = 2

// SimpleParser is the bare-minimum dialect: a region code living inside the
// public data section and nothing else. Used by GCB48 and similar titles
// that carry no code, year or identifiers at all.
type SimpleParser struct {
	flags core.FormatFlag
	data  []byte
}

func newSimpleParser(flags core.FormatFlag, data []byte) *SimpleParser {
	return &SimpleParser{flags: flags | core.FmtHasPublicSection, data: data}
}

func (p *SimpleParser) Format() core.CartFormat { return core.FormatSimple }
func (p *SimpleParser) Flags() core.FormatFlag  { return p.flags }

func (p *SimpleParser) Code() string   { return "" }
func (p *SimpleParser) SetCode(string) {}
func (p *SimpleParser) Year() uint16   { return 0 }
func (p *SimpleParser) SetYear(uint16) {}

func (p *SimpleParser) Region() string {
	return trimNulPadding(p.data[0:simpleHeaderLength])
}

func (p *SimpleParser) SetRegion(region string) {
	writePaddedString(p.data[0:simpleHeaderLength], region)
}

func (p *SimpleParser) Identifiers() *IdentifierSet             { return nil }
func (p *SimpleParser) PublicIdentifiers() *PublicIdentifierSet { return nil }

// Flush is a no-op: the Simple dialect carries no checksum to recompute.
func (p *SimpleParser) Flush() {}

func (p *SimpleParser) Validate() bool {
	return validateRegion(p.Region())
}

var _ Parser = (*SimpleParser)(nil)
