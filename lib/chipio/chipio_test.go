package chipio

import (
	"bytes"
	"errors"
	"testing"

	"github.com/kartlab/cart573/lib/bus"
	"github.com/kartlab/cart573/lib/core"
)

func TestNewDriverNoCart(t *testing.T) {
	sim := bus.NewSim(core.ChipNone)
	sim.CartDetected = false

	d := NewDriver(sim)
	if d.Kind() != core.ChipNone {
		t.Fatalf("Kind() = %v, want ChipNone", d.Kind())
	}
	if d.State() != StateAbsent {
		t.Fatalf("State() = %v, want StateAbsent", d.State())
	}
	if err := d.ReadSystemID(); !errors.Is(err, core.ErrUnsupportedOp) {
		t.Fatalf("ReadSystemID() = %v, want ErrUnsupportedOp", err)
	}
}

func TestNewDriverSelectsZS01(t *testing.T) {
	sim := bus.NewSim(core.ChipZS01)
	d := NewDriver(sim)
	if d.Kind() != core.ChipZS01 {
		t.Fatalf("Kind() = %v, want ChipZS01", d.Kind())
	}
	if _, ok := d.(*ZS01Driver); !ok {
		t.Fatalf("driver type = %T, want *ZS01Driver", d)
	}
}

func TestNewDriverSelectsX76F041(t *testing.T) {
	sim := bus.NewSim(core.ChipX76F041)
	d := NewDriver(sim)
	if _, ok := d.(*X76F041Driver); !ok {
		t.Fatalf("driver type = %T, want *X76F041Driver", d)
	}
}

func TestNewDriverSelectsX76F100(t *testing.T) {
	sim := bus.NewSim(core.ChipX76F100)
	d := NewDriver(sim)
	if _, ok := d.(*X76F100Driver); !ok {
		t.Fatalf("driver type = %T, want *X76F100Driver", d)
	}
}

func TestX76F041FullCycle(t *testing.T) {
	sim := bus.NewSim(core.ChipX76F041)
	d := NewDriver(sim)

	if err := d.ReadSystemID(); err != nil {
		t.Fatalf("ReadSystemID: %v", err)
	}
	if err := d.ReadCartID(); err != nil {
		t.Fatalf("ReadCartID: %v", err)
	}
	if d.State() != StateIDRead {
		t.Fatalf("State() = %v, want StateIDRead", d.State())
	}

	if err := d.ReadPublicData(); !errors.Is(err, core.ErrUnsupportedOp) {
		t.Fatalf("ReadPublicData() = %v, want ErrUnsupportedOp", err)
	}

	var key [8]byte // factory-default all-zero key
	if err := d.ReadPrivateData(key); err != nil {
		t.Fatalf("ReadPrivateData: %v", err)
	}
	if d.State() != StateUnlocked {
		t.Fatalf("State() = %v, want StateUnlocked", d.State())
	}

	for i := range d.Dump().Data {
		d.Dump().Data[i] = byte(i)
	}
	if err := d.WriteData(); err != nil {
		t.Fatalf("WriteData: %v", err)
	}
	if d.State() != StateWritten {
		t.Fatalf("State() = %v, want StateWritten", d.State())
	}

	d2 := NewDriver(sim)
	if err := d2.ReadPrivateData(key); err != nil {
		t.Fatalf("ReadPrivateData (verify): %v", err)
	}
	for i, b := range d2.Dump().Data {
		if b != byte(i) {
			t.Fatalf("data[%d] = %#x, want %#x", i, b, byte(i))
		}
	}

	if err := d2.Erase(); err != nil {
		t.Fatalf("Erase: %v", err)
	}
	if !d2.Dump().IsDataEmpty() {
		t.Fatal("data not empty after erase")
	}
}

func TestX76F041WrongKeyIsPollFail(t *testing.T) {
	sim := bus.NewSim(core.ChipX76F041)
	d := NewDriver(sim)

	wrongKey := [8]byte{1, 2, 3, 4, 5, 6, 7, 8}
	err := d.ReadPrivateData(wrongKey)
	if !errors.Is(err, core.ErrX76PollFail) {
		t.Fatalf("ReadPrivateData(wrongKey) = %v, want ErrX76PollFail", err)
	}
	if d.State() == StateUnlocked {
		t.Fatal("driver advanced to Unlocked on a wrong key")
	}
}

func TestZS01FullCycle(t *testing.T) {
	sim := bus.NewSim(core.ChipZS01)
	d := NewDriver(sim)

	if err := d.ReadSystemID(); err != nil {
		t.Fatalf("ReadSystemID: %v", err)
	}
	if err := d.ReadCartID(); err != nil {
		t.Fatalf("ReadCartID: %v", err)
	}
	if d.State() != StateIDRead {
		t.Fatalf("State() = %v, want StateIDRead", d.State())
	}

	if err := d.ReadPublicData(); err != nil {
		t.Fatalf("ReadPublicData: %v", err)
	}
	if d.State() != StatePublicRead {
		t.Fatalf("State() = %v, want StatePublicRead", d.State())
	}

	var key [8]byte
	if err := d.ReadPrivateData(key); err != nil {
		t.Fatalf("ReadPrivateData: %v", err)
	}
	if d.State() != StateUnlocked {
		t.Fatalf("State() = %v, want StateUnlocked", d.State())
	}

	for i := range d.Dump().Data {
		d.Dump().Data[i] = byte(i + 1)
	}
	if err := d.WriteData(); err != nil {
		t.Fatalf("WriteData: %v", err)
	}
	if d.State() != StateWritten {
		t.Fatalf("State() = %v, want StateWritten", d.State())
	}

	d2 := NewDriver(sim)
	if err := d2.ReadPublicData(); err != nil {
		t.Fatalf("ReadPublicData (verify): %v", err)
	}
	if err := d2.ReadPrivateData(key); err != nil {
		t.Fatalf("ReadPrivateData (verify): %v", err)
	}
	for i, b := range d2.Dump().Data {
		if want := byte(i + 1); b != want {
			t.Fatalf("data[%d] = %#x, want %#x", i, b, want)
		}
	}

	newKey := [8]byte{0xaa, 0xbb, 0xcc, 0xdd, 0xee, 0xff, 0x11, 0x22}
	if err := d2.SetDataKey(newKey); err != nil {
		t.Fatalf("SetDataKey: %v", err)
	}

	d3 := NewDriver(sim)
	var wrongKey [8]byte
	err := d3.ReadPrivateData(wrongKey)
	var zsErr *core.Zs01ErrorWithCode
	if !errors.As(err, &zsErr) {
		t.Fatalf("ReadPrivateData(oldKey after rekey) = %v, want *Zs01ErrorWithCode", err)
	}
	if zsErr.Code != core.Zs01SecurityError1 {
		t.Fatalf("Zs01ErrorWithCode.Code = %#x, want SecurityError1", zsErr.Code)
	}

	d4 := NewDriver(sim)
	if err := d4.ReadPrivateData(newKey); err != nil {
		t.Fatalf("ReadPrivateData(newKey): %v", err)
	}

	if err := d4.Erase(); err != nil {
		t.Fatalf("Erase: %v", err)
	}
	if d4.Dump().DataKey != ([8]byte{}) {
		t.Fatal("data key not cleared after erase")
	}
}

func TestX76F100OnlySupportsIDReads(t *testing.T) {
	sim := bus.NewSim(core.ChipX76F100)
	d := NewDriver(sim)

	if err := d.ReadSystemID(); err != nil {
		t.Fatalf("ReadSystemID: %v", err)
	}
	if err := d.ReadCartID(); err != nil {
		t.Fatalf("ReadCartID: %v", err)
	}
	if d.State() != StateIDRead {
		t.Fatalf("State() = %v, want StateIDRead", d.State())
	}

	var key [8]byte
	for _, err := range []error{
		d.ReadPublicData(),
		d.ReadPrivateData(key),
		d.WriteData(),
		d.Erase(),
		d.SetDataKey(key),
	} {
		if !errors.Is(err, core.ErrUnsupportedOp) {
			t.Fatalf("expected ErrUnsupportedOp, got %v", err)
		}
	}
}

func TestNullDriverClaimsNothing(t *testing.T) {
	var empty [8]byte
	d := newNullDriver()
	if !bytes.Equal(d.Dump().Data, nil) {
		t.Fatalf("null driver dump should have no data buffer, got %v", d.Dump().Data)
	}
	if err := d.SetDataKey(empty); !errors.Is(err, core.ErrUnsupportedOp) {
		t.Fatalf("SetDataKey() = %v, want ErrUnsupportedOp", err)
	}
}
