package zscipher

// KeyLength is the width of a ZS01 data key and of the add/shift arrays it
// unpacks into.
const KeyLength = 8

// Key is the unpacked form of an 8-byte ZS01 data key: an additive term and a
// rotate-left amount for each of the eight cipher rounds. Round 0 never
// rotates (its shift is always forced to zero on unpack).
type Key struct {
	Add   [KeyLength]byte
	Shift [KeyLength]byte
}

// CommandKey is fixed across every ZS01 cartridge and scrambles all 12 bytes
// (command, address, data and CRC) of every request packet.
var CommandKey = Key{
	Add:   [KeyLength]byte{237, 8, 16, 11, 6, 4, 8, 30},
	Shift: [KeyLength]byte{0, 3, 2, 2, 6, 2, 2, 1},
}

// ResponseKey is the all-zero key the 573 hands the ZS01 to scramble its
// responses. Add and shift are both zero in every round, so scrambling with
// it reduces to the state-chained XOR of each byte with its neighbour.
var ResponseKey = Key{}

// UnpackKey derives a Key from a raw 8-byte data key. raw[0] becomes Add[0]
// directly (Shift[0] is always 0); each subsequent byte splits into a 5-bit
// additive term (low bits) and a 3-bit rotation amount (high bits).
func UnpackKey(raw [8]byte) Key {
	var k Key
	k.Add[0] = raw[0]
	for i := 1; i < KeyLength; i++ {
		k.Add[i] = raw[i] & 0x1f
		k.Shift[i] = raw[i] >> 5
	}
	return k
}

// Pack re-encodes k into its raw 8-byte wire form, the inverse of UnpackKey.
func (k Key) Pack() [8]byte {
	var raw [8]byte
	raw[0] = k.Add[0]
	for i := 1; i < KeyLength; i++ {
		raw[i] = (k.Add[i] & 0x1f) | (k.Shift[i] << 5)
	}
	return raw
}
