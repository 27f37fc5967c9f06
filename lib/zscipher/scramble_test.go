package zscipher

import (
	"bytes"
	"testing"
)

func TestScramblePacketRoundTrip(t *testing.T) {
	key := UnpackKey([8]byte{0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77, 0x88})
	original := []byte{0x01, 0xfe, 0xaa, 0x00, 0x10, 0x20, 0x30, 0x40, 0x50, 0x60, 0x70, 0x80}

	data := bytes.Clone(original)
	key.ScramblePacket(data, 0xff)
	if bytes.Equal(data, original) {
		t.Fatal("scrambled packet equals plaintext")
	}

	key.UnscramblePacket(data, 0xff)
	if !bytes.Equal(data, original) {
		t.Fatalf("unscramble(scramble(x)) = %x, want %x", data, original)
	}
}

func TestScrambleCommandKeyMatchesFixtureShape(t *testing.T) {
	data := make([]byte, PacketLength)
	CommandKey.ScramblePacket(data, 0xff)
	ResponseKey.UnscramblePacket(data, 0xff)
	// ResponseKey is the all-zero key: unscrambling with it does not invert
	// CommandKey's scramble, it only reverses ResponseKey's own (no-op add/
	// shift, state-chained XOR) transform. This mirrors how the chip decodes
	// its own responses, not how a host would invert its own request.
	if len(data) != PacketLength {
		t.Fatalf("unexpected length %d", len(data))
	}
}

func TestScramblePayloadRoundTrip(t *testing.T) {
	key := UnpackKey([8]byte{0xde, 0xad, 0xbe, 0xef, 0x01, 0x23, 0x45, 0x67})
	original := []byte{1, 2, 3, 4, 5, 6, 7, 8}

	data := bytes.Clone(original)
	key.ScramblePayload(data, 0x5a)
	if bytes.Equal(data, original) {
		t.Fatal("scrambled payload equals plaintext")
	}

	unscrambled := key.UnscramblePayload(data, 0x5a)
	if !bytes.Equal(unscrambled, original) {
		t.Fatalf("unscramble(scramble(x)) = %x, want %x", unscrambled, original)
	}
}
