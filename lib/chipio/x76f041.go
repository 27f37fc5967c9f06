package chipio

import (
	"github.com/kartlab/cart573/lib/bus"
	"github.com/kartlab/cart573/lib/core"
)

// X76F041Driver drives the 512-byte X76F041 EEPROM: 128-byte read bursts,
// 8-byte write bursts, and an 8-byte config register. Grounded on
// original_source/src/cartio.cpp's X76F041Driver.
type X76F041Driver struct {
	base
	ctrl bus.Controller
}

func newX76F041Driver(ctrl bus.Controller) *X76F041Driver {
	return &X76F041Driver{base: newBase(core.ChipX76F041), ctrl: ctrl}
}

func (d *X76F041Driver) ReadSystemID() error {
	if err := readSystemID(d.ctrl, &d.d.SystemID); err != nil {
		return err
	}
	d.d.Flags |= core.FlagHasSystemID | core.FlagSystemIDOk
	d.maybeAdvanceToIDRead()
	return nil
}

func (d *X76F041Driver) ReadCartID() error {
	if err := readCartID(d.ctrl, &d.d.CartID); err != nil {
		return err
	}
	d.d.Flags |= core.FlagHasCartID | core.FlagCartIDOk
	d.maybeAdvanceToIDRead()
	return nil
}

func (d *X76F041Driver) maybeAdvanceToIDRead() {
	if d.d.Flags.Has(core.FlagSystemIDOk) && d.d.Flags.Has(core.FlagCartIDOk) {
		d.advance(StateIDRead)
	}
}

// ReadPublicData is unsupported: the X76F041 requires the data key to read
// any sector, so there is no sub-key-free "public" read the way ZS01 has
// one (original_source never overrides X76Driver::readPublicData for this
// chip).
func (d *X76F041Driver) ReadPublicData() error { return core.ErrUnsupportedOp }

// readBurst reads one 128-byte-aligned block starting at addr, following the
// "secure setup byte, restart, resend address low byte, stream" dance every
// X76F041 read requires.
func (d *X76F041Driver) readBurst(addr int, out []byte) error {
	cmd := x76CmdRead | byte(addr>>8)
	if err := x76Command(d.ctrl, cmd, byte(addr&0xff), d.d.DataKey); err != nil {
		return err
	}

	d.ctrl.I2CReadByte() // discard the secure-setup byte
	d.ctrl.I2CStart()

	if !d.ctrl.I2CWriteByte(byte(addr & 0xff)) {
		d.ctrl.I2CStopWithCS(0)
		return core.ErrX76Nack
	}

	d.ctrl.I2CReadBytes(out)
	d.ctrl.I2CStopWithCS(0)
	return nil
}

func (d *X76F041Driver) ReadPrivateData(key [8]byte) error {
	d.d.DataKey = key

	for addr := 0; addr < 512; addr += 128 {
		if err := d.readBurst(addr, d.d.Data[addr:addr+128]); err != nil {
			return err
		}
	}

	if err := x76Command(d.ctrl, x76CmdConfig, x76CfgReadConfig, d.d.DataKey); err != nil {
		return err
	}
	d.ctrl.I2CReadByte()
	d.ctrl.I2CStart()
	if !d.ctrl.I2CWriteByte(0) {
		d.ctrl.I2CStopWithCS(0)
		return core.ErrX76Nack
	}
	d.ctrl.I2CReadBytes(d.d.Config[:])
	d.ctrl.I2CStopWithCS(0)

	d.d.Flags |= core.FlagConfigOK | core.FlagPrivateDataOk
	d.advance(StateUnlocked)
	return nil
}

func (d *X76F041Driver) WriteData() error {
	for addr := 0; addr < 512; addr += 8 {
		cmd := x76CmdWrite | byte(addr>>8)
		if err := x76Command(d.ctrl, cmd, byte(addr&0xff), d.d.DataKey); err != nil {
			return err
		}
		if !d.ctrl.I2CWriteBytes(d.d.Data[addr : addr+8]) {
			d.ctrl.I2CStopWithCS(bus.X76WriteDelay)
			return core.ErrX76Nack
		}
		d.ctrl.I2CStopWithCS(bus.X76WriteDelay)
	}

	if err := x76Command(d.ctrl, x76CmdConfig, x76CfgWriteConfig, d.d.DataKey); err != nil {
		return err
	}
	if !d.ctrl.I2CWriteBytes(d.d.Config[:]) {
		d.ctrl.I2CStopWithCS(bus.X76WriteDelay)
		return core.ErrX76Nack
	}
	d.ctrl.I2CStopWithCS(bus.X76WriteDelay)

	d.advance(StateWritten)
	return nil
}

func (d *X76F041Driver) Erase() error {
	if err := x76Command(d.ctrl, x76CmdConfig, x76CfgMassProgram, d.d.DataKey); err != nil {
		return err
	}
	d.ctrl.I2CStopWithCS(bus.X76WriteDelay)

	d.d.DataKey = [8]byte{}
	d.d.ClearData()
	d.advance(StateErased)
	return nil
}

func (d *X76F041Driver) SetDataKey(key [8]byte) error {
	if err := x76Command(d.ctrl, x76CmdConfig, x76CfgSetDataKey, d.d.DataKey); err != nil {
		return err
	}

	// The chip requires the new key sent twice in a row to accept it.
	for i := 0; i < 2; i++ {
		if !d.ctrl.I2CWriteBytes(key[:]) {
			d.ctrl.I2CStopWithCS(bus.X76WriteDelay)
			return core.ErrX76Nack
		}
	}
	d.ctrl.I2CStopWithCS(bus.X76WriteDelay)

	d.d.DataKey = key
	return nil
}

var _ Driver = (*X76F041Driver)(nil)
