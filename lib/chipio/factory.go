package chipio

import "github.com/kartlab/cart573/lib/bus"

// NewDriver probes ctrl for an attached cart and returns the Driver for
// whichever chip kind answers, following spec.md §4.3's selection order
// exactly: DSR presence, then ZS01, then X76 (X76F041 or X76F100), else a
// null driver. Grounded on original_source/src/cartio.cpp's newCartDriver.
//
// Departure from the reference: newCartDriver's X76F100 branch is commented
// out there ("case _ID_X76F100: //return new X76F100Driver(dump)"), leaving
// a detected X76F100 cart silently falling through to the null driver. This
// port instantiates X76F100Driver on that probe match instead, since the
// stub driver is otherwise unreachable dead code and the spec calls for
// X76F100 to be a real (if mostly unsupported) chip kind.
func NewDriver(ctrl bus.Controller) Driver {
	if !ctrl.CartPresent() {
		return newNullDriver()
	}

	if ctrl.I2CResetZS01() == bus.ProbeZS01 {
		return newZS01Driver(ctrl)
	}

	switch ctrl.I2CResetX76() {
	case bus.ProbeX76F041:
		return newX76F041Driver(ctrl)
	case bus.ProbeX76F100:
		return newX76F100Driver(ctrl)
	default:
		return newNullDriver()
	}
}
