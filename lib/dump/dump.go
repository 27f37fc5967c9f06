// Package dump holds the Dump value, the central in-memory container for
// everything read off (or destined to be written to) a cartridge: its chip
// kind, identifiers, data key, config register and payload. Grounded on
// original_source/src/cartio.hpp's Dump struct and its cart.hpp successor.
package dump

import "github.com/kartlab/cart573/lib/core"

// Dump is the union of everything a cart can expose. Its Data slice is
// always exactly core.ChipKind.DataLength() bytes long for a non-None chip
// kind, and empty for ChipNone — there is no fixed maximum buffer the way
// the reference's packed struct needed one, since Go slices size themselves.
type Dump struct {
	ChipKind core.ChipKind
	Flags    core.DumpFlag

	SystemID core.Identifier
	CartID   core.Identifier
	ZsID     core.Identifier

	DataKey [8]byte
	Config  [8]byte

	Data []byte
}

// New returns an empty, well-formed Dump for kind with its Data buffer
// pre-sized and zeroed.
func New(kind core.ChipKind) *Dump {
	return &Dump{
		ChipKind: kind,
		Data:     make([]byte, kind.DataLength()),
	}
}

// Clear resets d to an empty Dump of the same chip kind: flags, identifiers,
// key and config all zeroed, data zero-filled.
func (d *Dump) Clear() {
	d.Flags = 0
	d.SystemID = core.Identifier{}
	d.CartID = core.Identifier{}
	d.ZsID = core.Identifier{}
	d.DataKey = [8]byte{}
	d.Config = [8]byte{}
	d.ClearData()
}

// ClearData zeros only the data buffer, leaving identifiers, key, config and
// flags untouched.
func (d *Dump) ClearData() {
	clear(d.Data)
}

// CopyDataFrom overwrites d's data buffer with src, truncating or
// zero-padding to the buffer's fixed length.
func (d *Dump) CopyDataFrom(src []byte) {
	clear(d.Data)
	copy(d.Data, src)
}

// CopyDataTo copies d's data buffer into dst, truncating if dst is shorter.
func (d *Dump) CopyDataTo(dst []byte) int {
	return copy(dst, d.Data)
}

// CopyKeyFrom overwrites d's data key.
func (d *Dump) CopyKeyFrom(key [8]byte) { d.DataKey = key }

// CopyKeyTo copies d's data key out.
func (d *Dump) CopyKeyTo() [8]byte { return d.DataKey }

// CopyConfigFrom overwrites d's config register.
func (d *Dump) CopyConfigFrom(config [8]byte) { d.Config = config }

// CopyConfigTo copies d's config register out.
func (d *Dump) CopyConfigTo() [8]byte { return d.Config }

// InitConfig seeds a fresh config register: byte 0 holds the maximum number
// of wrong-key attempts the chip should tolerate before locking (0 disables
// the limit on chips that support it), byte 1 is a has-public-section flag
// for parsers that read it back out of the config area rather than out of
// FormatFlag. The remaining bytes are left zeroed.
func (d *Dump) InitConfig(maxAttempts byte, hasPublicSection bool) {
	d.Config = [8]byte{}
	d.Config[0] = maxAttempts
	if hasPublicSection {
		d.Config[1] = 1
	}
}

// IsDataEmpty reports whether the used portion of the data buffer is
// entirely 0x00 or entirely 0xff — the two patterns a freshly erased or
// never-written chip reads back as.
func (d *Dump) IsDataEmpty() bool {
	if len(d.Data) == 0 {
		return true
	}
	allZero, allFF := true, true
	for _, b := range d.Data {
		if b != 0x00 {
			allZero = false
		}
		if b != 0xff {
			allFF = false
		}
		if !allZero && !allFF {
			return false
		}
	}
	return allZero || allFF
}

// WellFormed reports whether d's chip kind is not None and its flag bitset
// is a subset of the flags that chip kind is allowed to set.
func (d *Dump) WellFormed() bool {
	if d.ChipKind == core.ChipNone {
		return false
	}
	return d.Flags&^d.ChipKind.AllowedFlags() == 0
}
