package zscipher

import "testing"

func TestKeyPackUnpackRoundTrip(t *testing.T) {
	raw := [8]byte{0x42, 0x1f, 0xff, 0x00, 0x9a, 0x7c, 0x13, 0xe0}

	k := UnpackKey(raw)
	if k.Shift[0] != 0 {
		t.Fatalf("Shift[0] must always be 0, got %d", k.Shift[0])
	}

	back := k.Pack()
	if back != raw {
		t.Fatalf("pack(unpack(raw)) = %x, want %x", back, raw)
	}
}

func TestCommandKeyIsFixed(t *testing.T) {
	want := Key{
		Add:   [8]byte{237, 8, 16, 11, 6, 4, 8, 30},
		Shift: [8]byte{0, 3, 2, 2, 6, 2, 2, 1},
	}
	if CommandKey != want {
		t.Fatalf("CommandKey = %+v, want %+v", CommandKey, want)
	}
}

func TestResponseKeyIsZero(t *testing.T) {
	if ResponseKey != (Key{}) {
		t.Fatalf("ResponseKey must be the all-zero key, got %+v", ResponseKey)
	}
}
