// Package catalog implements the sorted, immutable catalog of known
// cartridges: a flat array of fixed-size records keyed by (code, region)
// with prefix semantics on region. Grounded on
// original_source/src/main/cart/cart.hpp's CartDBEntry/DB<T> and
// cartdata.cpp's DB<T>::lookup binary search.
package catalog

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/ulikunitz/xz"

	"github.com/kartlab/cart573/lib/core"
)

// TraceIDKind selects how a cartridge's trace ID is derived from its cart
// ID, per original_source/src/main/cart/cartdata.cpp's TraceIDType: TID_81
// is an arbitrary fixed pattern, TID_82_* fold the cart ID's serial bytes
// into a rolling XOR checksum (big or little endian word order).
type TraceIDKind uint8

const (
	TraceIDNone TraceIDKind = iota
	TraceID81
	TraceID82BigEndian
	TraceID82LittleEndian
)

// entryLength is sizeof(CartDBEntry) (packed, little-endian):
//
//	Offset  Size  Field
//	0       1     ChipKind
//	1       1     Format
//	2       1     TraceIDKind
//	3       1     Flags
//	4       1     TraceIDParam
//	5       1     InstallIDPrefix
//	6       2     Year
//	8       8     DataKey
//	16      8     Code
//	24      8     Region
//	32      64    Name
const entryLength = 1 + 1 + 1 + 1 + 1 + 1 + 2 + 8 + 8 + 8 + 64

const (
	codeFieldLength   = 8
	regionFieldLength = 8
	nameFieldLength   = 64

	// codeCompareLength is CODE_LENGTH+1 from cartdata.hpp: the code field
	// compare always covers one byte past the nominal 5-character code, to
	// also catch a mismatched NUL terminator.
	codeCompareLength = 6
)

// Entry is one catalog record: everything needed to identify a cartridge
// and rebuild the exact parser it expects once the game code and region
// have been read off its data.
type Entry struct {
	ChipKind        core.ChipKind
	Format          core.CartFormat
	TraceIDKind     TraceIDKind
	Flags           core.FormatFlag
	TraceIDParam    uint8
	InstallIDPrefix uint8
	Year            uint16
	DataKey         [8]byte
	Code            string
	Region          string
	Name            string
}

// String renders e the way cart.hpp's DBEntry::getDisplayName does:
// "<code> <region>\t<name>".
func (e Entry) String() string {
	return fmt.Sprintf("%s %s\t%s", e.Code, e.Region, e.Name)
}

// compare implements DBEntry::compare exactly: a fixed-length strncmp on
// code, then (only if that matches) a strncmp on region bounded by the
// *entry's* region length — so a short stored region (e.g. "JA") matches
// any query region that starts with it ("JAA", "JAZ00", ...), never the
// reverse.
func (e Entry) compare(code, region string) int {
	if diff := strncmp(e.Code, code, codeCompareLength); diff != 0 {
		return diff
	}
	return strncmp(e.Region, region, len(e.Region))
}

// strncmp compares a and b up to n bytes (or a's/b's length, whichever is
// shorter, if shorter than n — mirroring C strncmp's NUL-stops-the-compare
// behavior via Go's natural string truncation), returning <0, 0 or >0.
func strncmp(a, b string, n int) int {
	if len(a) > n {
		a = a[:n]
	}
	if len(b) > n {
		b = b[:n]
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Catalog is a sorted, immutable slice of Entry loaded from a blob. Lookup
// performs the binary search described in cart.hpp's DB<T>::lookup.
type Catalog struct {
	entries []Entry
}

// lookupKey is the (code, region) pair Lookup searches for; a dedicated
// type lets slices.BinarySearchFunc's comparator stay a plain function
// instead of a closure.
type lookupKey struct {
	code, region string
}

func compareEntryToKey(e Entry, k lookupKey) int {
	return e.compare(k.code, k.region)
}

// Lookup finds an entry whose (code, region) matches per Entry.compare's
// prefix-on-region rule. Returns the entry and true, or the zero Entry and
// false if nothing in c matches.
func (c *Catalog) Lookup(code, region string) (Entry, bool) {
	i, found := slices.BinarySearchFunc(c.entries, lookupKey{code, region}, compareEntryToKey)
	if !found {
		return Entry{}, false
	}
	return c.entries[i], true
}

// Len returns the number of entries in c.
func (c *Catalog) Len() int { return len(c.entries) }

// Entries returns the catalog's entries in on-disk order (already sorted by
// (code, region)).
func (c *Catalog) Entries() []Entry { return c.entries }

func decodeEntry(raw []byte) Entry {
	codeOffset := 16
	regionOffset := codeOffset + codeFieldLength
	nameOffset := regionOffset + regionFieldLength

	return Entry{
		ChipKind:        core.ChipKind(raw[0]),
		Format:          core.CartFormat(raw[1]),
		TraceIDKind:     TraceIDKind(raw[2]),
		Flags:           core.FormatFlag(raw[3]),
		TraceIDParam:    raw[4],
		InstallIDPrefix: raw[5],
		Year:            binary.LittleEndian.Uint16(raw[6:8]),
		DataKey:         [8]byte(raw[8:16]),
		Code:            trimNulString(raw[codeOffset : codeOffset+codeFieldLength]),
		Region:          trimNulString(raw[regionOffset : regionOffset+regionFieldLength]),
		Name:            trimNulString(raw[nameOffset : nameOffset+nameFieldLength]),
	}
}

func trimNulString(raw []byte) string {
	if i := bytes.IndexByte(raw, 0); i >= 0 {
		return string(raw[:i])
	}
	return string(raw)
}

// Load reads a catalog blob from path. A file cannot be told apart from
// plain text by its name alone, so Load sniffs for the xz stream header the
// same way lib/dump's Load does, and decompresses transparently when found.
func Load(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if len(raw) >= 6 && bytes.Equal(raw[:6], []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}) {
		r, err := xz.NewReader(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("catalog: xz: %w", err)
		}
		raw, err = io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("catalog: xz: %w", err)
		}
	}

	if len(raw)%entryLength != 0 {
		return nil, fmt.Errorf("catalog: blob length %d is not a multiple of entry size %d", len(raw), entryLength)
	}

	n := len(raw) / entryLength
	entries := make([]Entry, n)
	for i := range entries {
		entries[i] = decodeEntry(raw[i*entryLength : (i+1)*entryLength])
	}
	return &Catalog{entries: entries}, nil
}
