package chipio

import (
	"github.com/kartlab/cart573/lib/bus"
	"github.com/kartlab/cart573/lib/core"
)

// X76F100 command bytes, from original_source/src/cartio.cpp's
// X76F100Command enum. None of them are wired up: no X76F100 cart was ever
// shipped, and the reference implementation stubs every data operation with
// UNSUPPORTED_OP. Kept here (unused) as a record of what a future
// implementation would need, the same way the reference keeps the enum
// around despite never acting on it.
const (
	x76f100Read        byte = 0x81
	x76f100Write       byte = 0x80
	x76f100SetReadKey  byte = 0xfe
	x76f100SetWriteKey byte = 0xfc
	x76f100AckPoll     byte = 0x55
)

// X76F100Driver is a documented stub: only the ID reads (shared 1-Wire
// reads, same as every other chip kind) work. Every data-bearing capability
// returns core.ErrUnsupportedOp, matching
// original_source/src/cartio.cpp's X76F100Driver exactly.
type X76F100Driver struct {
	base
	ctrl bus.Controller
}

func newX76F100Driver(ctrl bus.Controller) *X76F100Driver {
	return &X76F100Driver{base: newBase(core.ChipX76F100), ctrl: ctrl}
}

func (d *X76F100Driver) ReadSystemID() error {
	if err := readSystemID(d.ctrl, &d.d.SystemID); err != nil {
		return err
	}
	d.d.Flags |= core.FlagHasSystemID | core.FlagSystemIDOk
	d.maybeAdvanceToIDRead()
	return nil
}

func (d *X76F100Driver) ReadCartID() error {
	if err := readCartID(d.ctrl, &d.d.CartID); err != nil {
		return err
	}
	d.d.Flags |= core.FlagHasCartID | core.FlagCartIDOk
	d.maybeAdvanceToIDRead()
	return nil
}

func (d *X76F100Driver) maybeAdvanceToIDRead() {
	if d.d.Flags.Has(core.FlagSystemIDOk) && d.d.Flags.Has(core.FlagCartIDOk) {
		d.advance(StateIDRead)
	}
}

func (d *X76F100Driver) ReadPublicData() error             { return core.ErrUnsupportedOp }
func (d *X76F100Driver) ReadPrivateData(key [8]byte) error  { return core.ErrUnsupportedOp }
func (d *X76F100Driver) WriteData() error                  { return core.ErrUnsupportedOp }
func (d *X76F100Driver) Erase() error                       { return core.ErrUnsupportedOp }
func (d *X76F100Driver) SetDataKey(key [8]byte) error       { return core.ErrUnsupportedOp }

var _ Driver = (*X76F100Driver)(nil)
