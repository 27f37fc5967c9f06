// Package chipio implements the three security-cartridge chip drivers
// (X76F041, X76F100, ZS01) as a single polymorphic Driver interface, plus the
// factory that probes a cart and picks the right one. Grounded on
// original_source/src/cartio.hpp/.cpp (the DummyDriver/X76Driver/
// X76F041Driver/X76F100Driver/ZS01Driver hierarchy) and lib/bus's Controller
// abstraction, the way the teacher's lib/identify package is built against
// util.FileContainer instead of a concrete zip/folder type.
package chipio

import (
	"github.com/google/uuid"

	"github.com/kartlab/cart573/lib/core"
	"github.com/kartlab/cart573/lib/dump"
)

// State is a driver's position in the per-cart progress machine described by
// spec.md §4.3. Operations only ever move a driver forward; a failed
// transition leaves State unchanged.
type State int

const (
	StateAbsent State = iota
	StateDetected
	StateIDRead
	StatePublicRead
	StateUnlocked
	StateWritten
	StateErased
)

func (s State) String() string {
	switch s {
	case StateAbsent:
		return "absent"
	case StateDetected:
		return "detected"
	case StateIDRead:
		return "id-read"
	case StatePublicRead:
		return "public-read"
	case StateUnlocked:
		return "unlocked"
	case StateWritten:
		return "written"
	case StateErased:
		return "erased"
	default:
		return "unknown"
	}
}

// Driver is the capability set every concrete chip driver implements.
// Capabilities a chip kind doesn't provide return core.ErrUnsupportedOp
// (spec.md §4.3) rather than being absent from the interface, so callers can
// treat every chip kind uniformly.
type Driver interface {
	// Kind reports which chip this driver talks to.
	Kind() core.ChipKind
	// State reports the driver's current position in the per-cart state
	// machine.
	State() State
	// Dump returns the driver's backing Dump, updated in place as each
	// operation succeeds.
	Dump() *dump.Dump

	ReadSystemID() error
	ReadCartID() error
	ReadPublicData() error
	ReadPrivateData(key [8]byte) error
	WriteData() error
	Erase() error
	SetDataKey(key [8]byte) error
}

// base is embedded by every concrete driver; it owns the Dump, the state
// machine, and a per-driver trace UUID assigned at construction. No error
// or log line in this module carries the trace UUID.
type base struct {
	kind  core.ChipKind
	state State
	d     *dump.Dump
	trace uuid.UUID
}

func newBase(kind core.ChipKind) base {
	return base{kind: kind, state: StateDetected, d: dump.New(kind), trace: uuid.New()}
}

func (b *base) Kind() core.ChipKind { return b.kind }
func (b *base) State() State        { return b.state }
func (b *base) Dump() *dump.Dump    { return b.d }

// advance moves the driver to next, but only forward; calling it with a
// state less than or equal to the current one is a no-op. Erased is
// reachable from any state per spec.md's "Any → Erased" transition.
func (b *base) advance(next State) {
	if next == StateErased || next > b.state {
		b.state = next
	}
}

// NullDriver is the StateAbsent driver returned when no cart is inserted or
// no known chip responds to either probe; every capability reports
// core.ErrUnsupportedOp except Kind/State/Dump, mirroring
// original_source/src/cartio.hpp's bare CartDriver base class returned as a
// fallback.
type NullDriver struct {
	base
}

func newNullDriver() *NullDriver {
	d := &NullDriver{base: newBase(core.ChipNone)}
	d.state = StateAbsent
	return d
}

func (d *NullDriver) ReadSystemID() error {
	return core.ErrUnsupportedOp
}
func (d *NullDriver) ReadCartID() error {
	return core.ErrUnsupportedOp
}
func (d *NullDriver) ReadPublicData() error {
	return core.ErrUnsupportedOp
}
func (d *NullDriver) ReadPrivateData(key [8]byte) error {
	return core.ErrUnsupportedOp
}
func (d *NullDriver) WriteData() error {
	return core.ErrUnsupportedOp
}
func (d *NullDriver) Erase() error {
	return core.ErrUnsupportedOp
}
func (d *NullDriver) SetDataKey(key [8]byte) error {
	return core.ErrUnsupportedOp
}

var _ Driver = (*NullDriver)(nil)
