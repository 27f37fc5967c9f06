package chipio

import (
	"time"

	"github.com/kartlab/cart573/lib/bus"
	"github.com/kartlab/cart573/lib/core"
)

// X76F041 command/config-op bytes, from original_source/src/cartio.cpp's
// X76F041Command/X76F041ConfigOp enums.
const (
	x76CmdRead   byte = 0x60
	x76CmdWrite  byte = 0x40
	x76CmdConfig byte = 0x80
	x76AckPoll   byte = 0xc0

	x76CfgSetDataKey  byte = 0x20
	x76CfgReadConfig  byte = 0x60
	x76CfgWriteConfig byte = 0x50
	x76CfgMassProgram byte = 0x70
)

// x76Command runs the handshake every X76F041 operation opens with:
// START_WITH_CS, cmd, param, the 8-byte data key, then up to
// bus.X76MaxAckPolls polling attempts spaced bus.X76WriteDelay apart.
// Grounded on X76Driver::_x76Command; the caller is responsible for issuing
// the stop condition once the transaction's data phase is done.
func x76Command(ctrl bus.Controller, cmd, param byte, key [8]byte) error {
	time.Sleep(bus.X76PacketDelay)
	ctrl.I2CStartWithCS()

	if !ctrl.I2CWriteByte(cmd) {
		ctrl.I2CStopWithCS(0)
		return core.ErrX76Nack
	}
	if !ctrl.I2CWriteByte(param) {
		ctrl.I2CStopWithCS(0)
		return core.ErrX76Nack
	}
	if !ctrl.I2CWriteBytes(key[:]) {
		ctrl.I2CStopWithCS(0)
		return core.ErrX76Nack
	}

	for i := 0; i < bus.X76MaxAckPolls; i++ {
		time.Sleep(bus.X76WriteDelay)
		ctrl.I2CStart()
		if ctrl.I2CWriteByte(x76AckPoll) {
			return nil
		}
	}

	ctrl.I2CStopWithCS(0)
	return core.ErrX76PollFail
}
