package chipio

import (
	"github.com/kartlab/cart573/lib/bus"
	"github.com/kartlab/cart573/lib/core"
)

// readSystemID performs the 1-Wire ROM read shared by every chip kind: reset
// the system-side line, issue a Read ROM command, and read back 8 bytes.
// Grounded on original_source/src/cartio.cpp's CartDriver::readSystemID,
// which every concrete driver inherits unmodified.
func readSystemID(ctrl bus.Controller, id *core.Identifier) error {
	const readROM = 0x33

	if !ctrl.OneWireReset(bus.LineSystem) {
		return core.ErrDs2401NoResp
	}

	ctrl.OneWireWriteByte(bus.LineSystem, readROM)
	for i := range id {
		id[i] = ctrl.OneWireReadByte(bus.LineSystem)
	}

	if !id.ValidateDSCRC() {
		return core.ErrDs2401IDError
	}
	return nil
}

// readCartID performs the same 1-Wire dance as readSystemID but against the
// cart-side line, shared by the X76 family (ZS01 reads its cart ID through
// the packet protocol instead; see zsReadCartID).
func readCartID(ctrl bus.Controller, id *core.Identifier) error {
	const readROM = 0x33

	if !ctrl.OneWireReset(bus.LineCart) {
		return core.ErrDs2401NoResp
	}

	ctrl.OneWireWriteByte(bus.LineCart, readROM)
	for i := range id {
		id[i] = ctrl.OneWireReadByte(bus.LineCart)
	}

	if !id.ValidateDSCRC() {
		return core.ErrDs2401IDError
	}
	return nil
}
