package zscipher

// PacketLength is the wire size of a ZS01 packet: one command byte, one
// address byte, eight data bytes and a big-endian CRC-16.
const PacketLength = 12

// Command bits, from original_source/src/zs01.hpp's RequestFlag enum.
const (
	ReqWrite      byte = 0
	ReqRead       byte = 1 << 0
	ReqBankSwitch byte = 1 << 1 // unused; would select bit 8 of the address
	ReqPrivileged byte = 1 << 2 // data field carries a data-key-scrambled payload
)

// Fixed packet addresses, from the same header's Address enum. AddrErase and
// AddrDS2401ID alias the same byte: which one applies depends on whether the
// packet is a write (erase) or a read (ID lookup).
const (
	AddrPublicStart  byte = 0x00
	AddrPublicEnd    byte = 0x04
	AddrPrivateStart byte = 0x04
	AddrPrivateEnd   byte = 0x0e
	AddrZS01ID       byte = 0xfc
	AddrDS2401ID     byte = 0xfd
	AddrErase        byte = 0xfd
	AddrConfig       byte = 0xfe
	AddrDataKey      byte = 0xff
)

// scramblerPrimer is the fixed state every packet-level (de)scramble starts
// from, regardless of the transaction's running scrambler state. Only
// payload-level scrambling uses the transaction state.
const scramblerPrimer byte = 0xff

// Packet is one ZS01 request or response. Data holds either a plain 8-byte
// sector, a scrambled data-key payload, or a packed Key, depending on which
// address and request flags it carries.
type Packet struct {
	Command byte
	Address byte
	Data    [8]byte
	CRC     uint16
}

// Marshal encodes p into its 12-byte wire form.
func (p Packet) Marshal() [PacketLength]byte {
	var out [PacketLength]byte
	out[0] = p.Command
	out[1] = p.Address
	copy(out[2:10], p.Data[:])
	out[10] = byte(p.CRC >> 8)
	out[11] = byte(p.CRC & 0xff)
	return out
}

// Unmarshal decodes a 12-byte wire packet into p.
func (p *Packet) Unmarshal(wire [PacketLength]byte) {
	p.Command = wire[0]
	p.Address = wire[1]
	copy(p.Data[:], wire[2:10])
	p.CRC = uint16(wire[10])<<8 | uint16(wire[11])
}

// UpdateCRC recomputes p.CRC over the command, address and data fields.
func (p *Packet) UpdateCRC() {
	wire := p.Marshal()
	p.CRC = CRC16(wire[:10])
}

// ValidateCRC reports whether p.CRC matches the CRC-16 of its other fields.
func (p Packet) ValidateCRC() bool {
	wire := p.Marshal()
	return CRC16(wire[:10]) == p.CRC
}

// SetRead turns p into a plain (unprivileged) read request for address.
func (p *Packet) SetRead(address byte) {
	*p = Packet{Command: ReqRead, Address: address}
	p.Data = ResponseKey.Pack()
}

// SetWrite turns p into a plain (unprivileged) write request storing data at
// address.
func (p *Packet) SetWrite(address byte, data [8]byte) {
	*p = Packet{Command: ReqWrite, Address: address, Data: data}
}

// EncodeRequest finishes preparing p for transmission: it sets or clears the
// privileged bit depending on whether key is non-nil, computes the CRC over
// the plaintext fields, optionally scrambles the 8-byte payload with key
// (keyed to the transaction's running scrambler state), and finally
// scrambles the whole packet with CommandKey. Call exactly once per
// transaction, after SetRead/SetWrite.
func (p *Packet) EncodeRequest(key *Key, state byte) {
	if key != nil {
		p.Command |= ReqPrivileged
	} else {
		p.Command &^= ReqPrivileged
	}
	p.UpdateCRC()

	if key != nil {
		key.ScramblePayload(p.Data[:], state)
	}

	wire := p.Marshal()
	CommandKey.ScramblePacket(wire[:], scramblerPrimer)
	p.Unmarshal(wire)
}

// DecodeResponse unscrambles p (which must hold the raw bytes the chip
// returned) using ResponseKey at the packet level, and reports whether the
// decoded CRC checks out.
func (p *Packet) DecodeResponse() bool {
	wire := p.Marshal()
	ResponseKey.UnscramblePacket(wire[:], scramblerPrimer)
	p.Unmarshal(wire)
	return p.ValidateCRC()
}
