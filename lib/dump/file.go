package dump

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/ulikunitz/xz"

	"github.com/kartlab/cart573/lib/core"
)

// On-disk dump magic (u16, little-endian). Plain dumps start with
// MagicDump; dumps captured from an on-board ROM header (see lib/format's
// ROM-header parser) start with MagicRomHeaderDump instead, so a loader can
// tell the two apart before it even looks at chip_kind.
const (
	MagicDump          uint16 = 0x573d
	MagicRomHeaderDump uint16 = 0x573e
)

// marshalBinary lays out d exactly as original_source/src/cart.hpp's packed
// Dump struct: magic (u16 LE), chip_kind (u8), flags (u8), three 8-byte
// Identifiers (system, cart, zs), an 8-byte data key, an 8-byte config, then
// chip_kind.DataLength() bytes of data.
func (d *Dump) marshalBinary(magic uint16) ([]byte, error) {
	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, magic); err != nil {
		return nil, err
	}
	buf.WriteByte(byte(d.ChipKind))
	buf.WriteByte(byte(d.Flags))
	buf.Write(d.SystemID[:])
	buf.Write(d.CartID[:])
	buf.Write(d.ZsID[:])
	buf.Write(d.DataKey[:])
	buf.Write(d.Config[:])
	buf.Write(d.Data)
	return buf.Bytes(), nil
}

// unmarshalBinary parses raw (as produced by marshalBinary) into d,
// validating magic and that raw's length matches exactly what the declared
// chip_kind demands.
func (d *Dump) unmarshalBinary(raw []byte, wantMagic uint16) error {
	const headerLength = 2 + 1 + 1 + 8*3 + 8 + 8
	if len(raw) < headerLength {
		return fmt.Errorf("dump: file too short (%d bytes)", len(raw))
	}

	magic := binary.LittleEndian.Uint16(raw[0:2])
	if magic != wantMagic {
		return fmt.Errorf("dump: bad magic %#04x, want %#04x", magic, wantMagic)
	}

	kind := core.ChipKind(raw[2])
	if !kind.Valid() {
		return fmt.Errorf("dump: unknown chip kind %d", raw[2])
	}

	want := headerLength + kind.DataLength()
	if len(raw) != want {
		return fmt.Errorf("dump: file length %d, want %d for chip kind %v", len(raw), want, kind)
	}

	d.ChipKind = kind
	d.Flags = core.DumpFlag(raw[3])
	copy(d.SystemID[:], raw[4:12])
	copy(d.CartID[:], raw[12:20])
	copy(d.ZsID[:], raw[20:28])
	copy(d.DataKey[:], raw[28:36])
	copy(d.Config[:], raw[36:44])
	d.Data = make([]byte, kind.DataLength())
	copy(d.Data, raw[44:])
	return nil
}

// Save writes d to path as a plain dump file (MagicDump header). The file
// is never compressed on write; Load accepts xz-compressed files
// transparently for reading ones a user compressed by hand.
func (d *Dump) Save(path string) error {
	raw, err := d.marshalBinary(MagicDump)
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o644)
}

// xzMagic is the 6-byte stream header every .xz file starts with.
var xzMagic = [6]byte{0xfd, '7', 'z', 'X', 'Z', 0x00}

// Load reads a dump file from path, transparently decompressing it first if
// it looks like an xz stream. Returns the parsed Dump and the magic that was
// present (MagicDump or MagicRomHeaderDump), so a caller can tell whether
// this came off a cart's security EEPROM or a ROM header.
func Load(path string) (*Dump, uint16, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, err
	}

	if len(raw) >= len(xzMagic) && bytes.Equal(raw[:len(xzMagic)], xzMagic[:]) {
		r, err := xz.NewReader(bytes.NewReader(raw))
		if err != nil {
			return nil, 0, fmt.Errorf("dump: xz: %w", err)
		}
		raw, err = io.ReadAll(r)
		if err != nil {
			return nil, 0, fmt.Errorf("dump: xz: %w", err)
		}
	}

	if len(raw) < 2 {
		return nil, 0, fmt.Errorf("dump: file too short to contain a magic")
	}
	magic := binary.LittleEndian.Uint16(raw[0:2])
	if magic != MagicDump && magic != MagicRomHeaderDump {
		return nil, 0, fmt.Errorf("dump: bad magic %#04x, want %#04x or %#04x", magic, MagicDump, MagicRomHeaderDump)
	}

	d := &Dump{}
	if err := d.unmarshalBinary(raw, magic); err != nil {
		return nil, 0, err
	}
	return d, magic, nil
}
