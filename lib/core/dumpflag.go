package core

// DumpFlag bits record which identifier/data sections of a Dump were
// physically present on the cart and which were read successfully. Bit
// layout matches original_source/src/cartio.hpp's DumpFlag enum exactly,
// since dump files on disk carry this byte verbatim.
type DumpFlag uint8

const (
	FlagHasSystemID DumpFlag = 1 << iota
	FlagHasCartID
	FlagConfigOK
	FlagSystemIDOk
	FlagCartIDOk
	FlagZsIDOk
	FlagPublicDataOk
	FlagPrivateDataOk
)

// allowedFlags is the subset of DumpFlag bits each ChipKind may legally set.
// A Dump is well-formed only when its flag bitset is a subset of this mask
// (spec.md §3: "ZS_ID_OK only on ZS01").
var allowedFlags = map[ChipKind]DumpFlag{
	ChipNone: 0,
	ChipX76F041: FlagHasSystemID | FlagHasCartID | FlagConfigOK |
		FlagSystemIDOk | FlagCartIDOk | FlagPublicDataOk | FlagPrivateDataOk,
	ChipX76F100: FlagHasSystemID | FlagHasCartID | FlagSystemIDOk | FlagCartIDOk,
	ChipZS01: FlagHasSystemID | FlagHasCartID | FlagConfigOK |
		FlagSystemIDOk | FlagCartIDOk | FlagZsIDOk | FlagPublicDataOk | FlagPrivateDataOk,
}

// AllowedFlags returns the mask of flags a given chip kind may set.
func (k ChipKind) AllowedFlags() DumpFlag {
	return allowedFlags[k]
}

// Has reports whether all bits in want are set in f.
func (f DumpFlag) Has(want DumpFlag) bool {
	return f&want == want
}
