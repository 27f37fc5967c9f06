package chipio

import (
	"time"

	"github.com/kartlab/cart573/lib/bus"
	"github.com/kartlab/cart573/lib/core"
	"github.com/kartlab/cart573/lib/zscipher"
)

// ZS01Driver drives the packet-based ZS01 chip. It carries one extra piece
// of state beyond base: the scrambler_state byte threaded from one
// transaction's response into the next one's request, per spec.md §4.2.
// Grounded on original_source/src/cartio.cpp's ZS01Driver and
// src/common/cart/zs01.cpp's packet algebra (lib/zscipher).
type ZS01Driver struct {
	base
	ctrl          bus.Controller
	scramblerState byte
}

func newZS01Driver(ctrl bus.Controller) *ZS01Driver {
	return &ZS01Driver{base: newBase(core.ChipZS01), ctrl: ctrl, scramblerState: 0xff}
}

// transact sends req and decodes the response, advancing scramblerState on
// success. Mirrors ZS01Driver::_transact.
func (d *ZS01Driver) transact(req *zscipher.Packet) (zscipher.Packet, error) {
	time.Sleep(bus.Zs01PacketDelay)
	d.ctrl.I2CStart()

	wire := req.Marshal()
	if !d.ctrl.I2CWriteBytes(wire[:]) {
		d.ctrl.I2CStop(0)
		return zscipher.Packet{}, core.ErrZs01Nack
	}

	var respWire [zscipher.PacketLength]byte
	d.ctrl.I2CReadBytes(respWire[:])
	d.ctrl.I2CStop(0)

	var resp zscipher.Packet
	resp.Unmarshal(respWire)
	if !resp.DecodeResponse() {
		return zscipher.Packet{}, core.ErrZs01CrcMismatch
	}

	d.scramblerState = resp.Address

	if core.Zs01ResponseCode(resp.Command) != core.Zs01NoError {
		return resp, &core.Zs01ErrorWithCode{Code: core.Zs01ResponseCode(resp.Command)}
	}
	return resp, nil
}

func (d *ZS01Driver) ReadSystemID() error {
	if err := readSystemID(d.ctrl, &d.d.SystemID); err != nil {
		return err
	}
	d.d.Flags |= core.FlagHasSystemID | core.FlagSystemIDOk
	d.maybeAdvanceToIDRead()
	return nil
}

// ReadCartID reads both of the ZS01's identifiers over the packet protocol:
// its own internal ID at AddrZS01ID, and the DS2401 wired to the cart board
// (proxied through the chip) at AddrDS2401ID.
func (d *ZS01Driver) ReadCartID() error {
	var req zscipher.Packet
	req.SetRead(zscipher.AddrZS01ID)
	req.EncodeRequest(nil, d.scramblerState)
	resp, err := d.transact(&req)
	if err != nil {
		return err
	}
	d.d.ZsID = core.Identifier(resp.Data)
	if !d.d.ZsID.ValidateDSCRC() {
		return core.ErrDs2401IDError
	}
	d.d.Flags |= core.FlagZsIDOk

	req = zscipher.Packet{}
	req.SetRead(zscipher.AddrDS2401ID)
	req.EncodeRequest(nil, d.scramblerState)
	resp, err = d.transact(&req)
	if err != nil {
		return err
	}
	d.d.CartID = core.Identifier(resp.Data)
	if !d.d.CartID.ValidateDSCRC() {
		return core.ErrDs2401IDError
	}
	d.d.Flags |= core.FlagHasCartID | core.FlagCartIDOk
	d.maybeAdvanceToIDRead()
	return nil
}

func (d *ZS01Driver) maybeAdvanceToIDRead() {
	if d.d.Flags.Has(core.FlagSystemIDOk) && d.d.Flags.Has(core.FlagCartIDOk) {
		d.advance(StateIDRead)
	}
}

// ReadPublicData reads the four unprivileged 8-byte sectors at
// AddrPublicStart..AddrPublicEnd; no data key is required or used.
func (d *ZS01Driver) ReadPublicData() error {
	for addr := zscipher.AddrPublicStart; addr < zscipher.AddrPublicEnd; addr++ {
		var req zscipher.Packet
		req.SetRead(addr)
		req.EncodeRequest(nil, d.scramblerState)
		resp, err := d.transact(&req)
		if err != nil {
			return err
		}
		sector := int(addr) * 8
		copy(d.d.Data[sector:sector+8], resp.Data[:])
	}
	d.d.Flags |= core.FlagPublicDataOk
	d.advance(StatePublicRead)
	return nil
}

func (d *ZS01Driver) ReadPrivateData(key [8]byte) error {
	d.d.DataKey = key
	dataKey := zscipher.UnpackKey(key)

	for addr := zscipher.AddrPrivateStart; addr < zscipher.AddrPrivateEnd; addr++ {
		var req zscipher.Packet
		req.SetRead(addr)
		req.EncodeRequest(&dataKey, d.scramblerState)
		resp, err := d.transact(&req)
		if err != nil {
			return err
		}
		sector := int(addr) * 8
		copy(d.d.Data[sector:sector+8], resp.Data[:])
	}
	d.d.Flags |= core.FlagPrivateDataOk

	var req zscipher.Packet
	req.SetRead(zscipher.AddrConfig)
	req.EncodeRequest(&dataKey, d.scramblerState)
	resp, err := d.transact(&req)
	if err != nil {
		return err
	}
	d.d.Config = resp.Data
	d.d.Flags |= core.FlagConfigOK

	d.advance(StateUnlocked)
	return nil
}

func (d *ZS01Driver) WriteData() error {
	dataKey := zscipher.UnpackKey(d.d.DataKey)

	for addr := zscipher.AddrPublicStart; addr < zscipher.AddrPrivateEnd; addr++ {
		var payload [8]byte
		sector := int(addr) * 8
		copy(payload[:], d.d.Data[sector:sector+8])

		var req zscipher.Packet
		req.SetWrite(addr, payload)
		req.EncodeRequest(&dataKey, d.scramblerState)
		if _, err := d.transact(&req); err != nil {
			return err
		}
	}

	var req zscipher.Packet
	req.SetWrite(zscipher.AddrConfig, d.d.Config)
	req.EncodeRequest(&dataKey, d.scramblerState)
	if _, err := d.transact(&req); err != nil {
		return err
	}

	d.advance(StateWritten)
	return nil
}

func (d *ZS01Driver) Erase() error {
	dataKey := zscipher.UnpackKey(d.d.DataKey)

	var req zscipher.Packet
	req.SetWrite(zscipher.AddrErase, [8]byte{})
	req.EncodeRequest(&dataKey, d.scramblerState)
	if _, err := d.transact(&req); err != nil {
		return err
	}

	d.d.DataKey = [8]byte{}
	d.d.ClearData()
	d.advance(StateErased)
	return nil
}

func (d *ZS01Driver) SetDataKey(key [8]byte) error {
	// Authenticated with the OLD key: the chip must already trust the
	// session before it will accept a replacement.
	oldKey := zscipher.UnpackKey(d.d.DataKey)

	var req zscipher.Packet
	req.SetWrite(zscipher.AddrDataKey, key)
	req.EncodeRequest(&oldKey, d.scramblerState)
	if _, err := d.transact(&req); err != nil {
		return err
	}

	d.d.DataKey = key
	return nil
}

var _ Driver = (*ZS01Driver)(nil)
