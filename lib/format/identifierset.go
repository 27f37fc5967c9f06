package format

import "github.com/kartlab/cart573/lib/core"

// identifierSetLength and publicIdentifierSetLength are the packed byte
// sizes of IdentifierSet and PublicIdentifierSet, used to compute offsets
// into a Dump's data buffer the way original_source/src/cartdata.cpp does
// with sizeof().
const (
	identifierSetLength       = 8 * 4
	publicIdentifierSetLength = 8 * 2
)

// IdentifierSet is the private four-identifier block that follows a Basic
// or Extended header: a trace ID, the cart's own DS2401 ID, an install ID
// and a system ID. Grounded on original_source/src/main/cart/cart.hpp's
// IdentifierSet usage in cartdata.cpp.
type IdentifierSet struct {
	Trace   core.Identifier
	Cart    core.Identifier
	Install core.Identifier
	System  core.Identifier
}

func readIdentifierSet(data []byte) IdentifierSet {
	var s IdentifierSet
	copy(s.Trace[:], data[0:8])
	copy(s.Cart[:], data[8:16])
	copy(s.Install[:], data[16:24])
	copy(s.System[:], data[24:32])
	return s
}

// PublicIdentifierSet is the reduced two-identifier block duplicated into a
// cartridge's public data section on formats with FmtHasPublicSection: an
// install ID and a system ID, in that order.
type PublicIdentifierSet struct {
	Install core.Identifier
	System  core.Identifier
}

func readPublicIdentifierSet(data []byte) PublicIdentifierSet {
	var s PublicIdentifierSet
	copy(s.Install[:], data[0:8])
	copy(s.System[:], data[8:16])
	return s
}

func (s PublicIdentifierSet) write(data []byte) {
	copy(data[0:8], s.Install[:])
	copy(data[8:16], s.System[:])
}
