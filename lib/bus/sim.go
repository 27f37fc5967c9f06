package bus

import (
	"time"

	"github.com/kartlab/cart573/lib/core"
	"github.com/kartlab/cart573/lib/zscipher"
)

// Sim is an in-memory stand-in for Controller, modeling a virtual X76F041,
// X76F100 or ZS01 chip so lib/chipio's drivers can be exercised without real
// hardware. It is not a bit-accurate electrical simulator: it tracks the same
// command/param/key handshakes and address bursts the real chips expect, at
// the byte granularity Controller already operates at, and it uses the
// ZS01's own cipher algebra (lib/zscipher) to tell a correct data key apart
// from a wrong one exactly the way the real chip would have to.
type Sim struct {
	Kind         core.ChipKind
	CartDetected bool

	SystemROM core.Identifier
	CartROM   core.Identifier // DS2401 on the cart board; X76 family only

	X76Data   [512]byte
	X76Config [8]byte
	X76Key    [8]byte

	ZSPublic  [32]byte
	ZSPrivate [80]byte
	ZSConfig  [8]byte
	ZSKey     [8]byte
	ZSInterID core.Identifier
	ZSDS2401  core.Identifier
	zsState   byte
	zsTxCount byte
	zsResp    [zscipher.PacketLength]byte

	oneWireCursor [2]int
	oneWireArmed  [2]bool

	x76 x76Transaction
}

type x76Step int

const (
	x76StepCmd x76Step = iota
	x76StepParam
	x76StepKey
	x76StepPolling
	x76StepResolved
)

type x76Mode int

const (
	x76ModeNone x76Mode = iota
	x76ModeRead
	x76ModeWrite
	x76ModeConfigRead
	x76ModeConfigWrite
	x76ModeSetKey
	x76ModeErase
)

type x76Transaction struct {
	step      x76Step
	cmd       byte
	param     byte
	key       [8]byte
	unlocked  bool
	mode      x76Mode
	addr      uint16
	readPhase int // 0 = awaiting discard byte, 1 = awaiting resent address, 2 = streaming
}

// NewSim builds a Sim pre-populated with plausible, CRC-valid identifiers for
// kind, with every data key still at its factory default of all zeros.
func NewSim(kind core.ChipKind) *Sim {
	s := &Sim{Kind: kind, CartDetected: true, zsState: 0xff}
	s.SystemROM = core.Identifier{0x01, 0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0}
	s.SystemROM.UpdateDSCRC()
	s.CartROM = core.Identifier{0x01, 0xaa, 0xbb, 0xcc, 0xdd, 0xee, 0xff, 0}
	s.CartROM.UpdateDSCRC()
	s.ZSDS2401 = s.CartROM
	s.ZSInterID = core.Identifier{0x02, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0}
	s.ZSInterID.UpdateDSCRC()
	return s
}

func (s *Sim) CartPresent() bool { return s.CartDetected }

func (s *Sim) romFor(line OneWireLine) core.Identifier {
	if line == LineCart {
		return s.CartROM
	}
	return s.SystemROM
}

func (s *Sim) OneWireReset(line OneWireLine) bool {
	if !s.CartDetected {
		return false
	}
	if line == LineCart && s.Kind != core.ChipX76F041 && s.Kind != core.ChipX76F100 {
		// Only the X76 family wires a separate on-board DS2401 for the cart
		// ID; ZS01 proxies it through the I2C-like packet protocol instead.
		return false
	}
	s.oneWireCursor[line] = 0
	s.oneWireArmed[line] = false
	return true
}

func (s *Sim) OneWireWriteByte(line OneWireLine, v byte) {
	const readROM = 0x33
	if v == readROM {
		s.oneWireArmed[line] = true
		s.oneWireCursor[line] = 0
	}
}

func (s *Sim) OneWireReadByte(line OneWireLine) byte {
	if !s.oneWireArmed[line] {
		return 0xff
	}
	rom := s.romFor(line)
	i := s.oneWireCursor[line]
	if i >= len(rom) {
		return 0xff
	}
	s.oneWireCursor[line]++
	return rom[i]
}

// I2CStartWithCS begins a new X76-style command transaction.
func (s *Sim) I2CStartWithCS() {
	s.x76 = x76Transaction{}
}

// I2CStart changes no simulator state: the X76 poll and read-resend phases
// are tracked by the bytes that follow it, and a ZS01 packet arrives whole
// through I2CWriteBytes.
func (s *Sim) I2CStart() {
	if s.x76.step == x76StepCmd {
		// A ZS01 transaction also opens with a bare Start; nothing to do
		// here, the whole 12-byte packet arrives through I2CWriteBytes.
		return
	}
}

func (s *Sim) I2CStop(delay time.Duration) {}

func (s *Sim) I2CStopWithCS(delay time.Duration) {
	if s.x76.step == x76StepResolved && s.x76.mode == x76ModeErase {
		s.X76Data = [512]byte{}
		s.X76Key = [8]byte{}
	}
}

func (s *Sim) I2CWriteByte(v byte) bool {
	switch s.x76.step {
	case x76StepCmd:
		s.x76.cmd = v
		s.x76.step = x76StepParam
		return true
	case x76StepParam:
		s.x76.param = v
		s.x76.step = x76StepKey
		return true
	case x76StepPolling:
		s.x76.unlocked = s.x76KeyMatches()
		if s.x76.unlocked {
			s.x76.step = x76StepResolved
			s.x76.mode, s.x76.addr = s.x76Resolve()
		}
		return s.x76.unlocked
	case x76StepResolved:
		if s.x76UsesReadResend() && s.x76.readPhase == 1 {
			s.x76.readPhase = 2
		}
		return true
	default:
		return true
	}
}

func (s *Sim) x76UsesReadResend() bool {
	return s.x76.mode == x76ModeRead || s.x76.mode == x76ModeConfigRead
}

func (s *Sim) I2CReadByte() byte {
	if s.x76.step == x76StepResolved && s.x76UsesReadResend() && s.x76.readPhase == 0 {
		s.x76.readPhase = 1
		return 0
	}
	return 0
}

func (s *Sim) I2CWriteBytes(data []byte) bool {
	if s.x76.step == x76StepKey {
		copy(s.x76.key[:], data)
		s.x76.step = x76StepPolling
		return true
	}
	if s.x76.step == x76StepResolved {
		switch s.x76.mode {
		case x76ModeWrite:
			copy(s.X76Data[s.x76.addr:], data)
		case x76ModeConfigWrite:
			copy(s.X76Config[:], data)
		case x76ModeSetKey:
			copy(s.X76Key[:], data)
		}
		return true
	}
	// A ZS01 packet: exactly PacketLength bytes, sent in one shot.
	if len(data) == zscipher.PacketLength {
		var wire [zscipher.PacketLength]byte
		copy(wire[:], data)
		s.zsHandleRequest(wire)
		return true
	}
	return true
}

func (s *Sim) I2CReadBytes(data []byte) {
	if s.x76.step == x76StepResolved {
		switch s.x76.mode {
		case x76ModeRead:
			copy(data, s.X76Data[s.x76.addr:])
		case x76ModeConfigRead:
			copy(data, s.X76Config[:])
		}
		return
	}
	if len(data) == zscipher.PacketLength {
		copy(data, s.zsResp[:])
		return
	}
}

// zsHandleRequest decodes one ZS01 request packet, mutates chip state as
// appropriate, and leaves the matching response packet ready in s.zsResp for
// the following I2CReadBytes call.
func (s *Sim) zsHandleRequest(wire [zscipher.PacketLength]byte) {
	zscipher.CommandKey.UnscramblePacket(wire[:], 0xff)

	var req zscipher.Packet
	req.Unmarshal(wire)

	privileged := req.Command&zscipher.ReqPrivileged != 0
	plainData := req.Data

	if privileged {
		dataKey := zscipher.UnpackKey(s.ZSKey)
		decoded := dataKey.UnscramblePayload(req.Data[:], s.zsState)
		copy(plainData[:], decoded)

		check := zscipher.Packet{Command: req.Command, Address: req.Address, Data: plainData}
		check.UpdateCRC()
		if check.CRC != req.CRC {
			s.zsRespond(core.Zs01SecurityError1, nil)
			return
		}
	} else {
		check := zscipher.Packet{Command: req.Command, Address: req.Address, Data: plainData}
		check.UpdateCRC()
		if check.CRC != req.CRC {
			s.zsRespond(core.Zs01SecurityError1, nil)
			return
		}
	}

	isWrite := req.Command&zscipher.ReqRead == 0
	addr := req.Address

	var out [8]byte
	switch {
	case addr >= zscipher.AddrPublicStart && addr < zscipher.AddrPublicEnd:
		sector := int(addr-zscipher.AddrPublicStart) * 8
		if isWrite {
			copy(s.ZSPublic[sector:], plainData[:])
		} else {
			copy(out[:], s.ZSPublic[sector:])
		}
	case addr >= zscipher.AddrPrivateStart && addr < zscipher.AddrPrivateEnd:
		sector := int(addr-zscipher.AddrPrivateStart) * 8
		if isWrite {
			copy(s.ZSPrivate[sector:], plainData[:])
		} else {
			copy(out[:], s.ZSPrivate[sector:])
		}
	case addr == zscipher.AddrZS01ID:
		out = s.ZSInterID
	case addr == zscipher.AddrDS2401ID: // aliases AddrErase on write
		if isWrite {
			s.ZSPrivate = [80]byte{}
			s.ZSPublic = [32]byte{}
			s.ZSKey = [8]byte{}
		} else {
			out = s.ZSDS2401
		}
	case addr == zscipher.AddrConfig:
		if isWrite {
			copy(s.ZSConfig[:], plainData[:])
		} else {
			copy(out[:], s.ZSConfig[:])
		}
	case addr == zscipher.AddrDataKey:
		// Privileged write-only: plainData holds the new key outright (it is
		// never scrambled as a "key" value itself, only as a payload).
		s.ZSKey = plainData
	}

	s.zsRespond(core.Zs01NoError, out[:])
}

func (s *Sim) zsRespond(code core.Zs01ResponseCode, data []byte) {
	s.zsTxCount++
	s.zsState = s.zsTxCount

	resp := zscipher.Packet{Command: byte(code), Address: s.zsState}
	if data != nil {
		copy(resp.Data[:], data)
	}
	resp.UpdateCRC()

	wire := resp.Marshal()
	zscipher.ResponseKey.ScramblePacket(wire[:], 0xff)
	s.zsResp = wire
}

func (s *Sim) x76KeyMatches() bool {
	return s.x76.key == s.X76Key
}

// x76Resolve maps the captured (cmd, param) into an operating mode and, for
// data read/write, the target byte address — (cmd&1)<<8 | param, since the
// X76F041 squeezes the 9th address bit into the command byte.
func (s *Sim) x76Resolve() (x76Mode, uint16) {
	const (
		cmdRead     = 0x60
		cmdWrite    = 0x40
		cmdConfig   = 0x80
		cfgSetKey   = 0x20
		cfgReadCfg  = 0x60
		cfgWriteCfg = 0x50
		cfgMassProg = 0x70
	)
	switch {
	case s.x76.cmd&0xfe == cmdRead:
		return x76ModeRead, uint16(s.x76.cmd&1)<<8 | uint16(s.x76.param)
	case s.x76.cmd&0xfe == cmdWrite:
		return x76ModeWrite, uint16(s.x76.cmd&1)<<8 | uint16(s.x76.param)
	case s.x76.cmd == cmdConfig:
		switch s.x76.param {
		case cfgReadCfg:
			return x76ModeConfigRead, 0
		case cfgWriteCfg:
			return x76ModeConfigWrite, 0
		case cfgSetKey:
			return x76ModeSetKey, 0
		case cfgMassProg:
			return x76ModeErase, 0
		}
	}
	return x76ModeNone, 0
}

func (s *Sim) I2CResetX76() uint32 {
	switch s.Kind {
	case core.ChipX76F041:
		return ProbeX76F041
	case core.ChipX76F100:
		return ProbeX76F100
	default:
		return 0
	}
}

func (s *Sim) I2CResetZS01() uint32 {
	if s.Kind == core.ChipZS01 {
		return ProbeZS01
	}
	return 0
}
