package core

import "testing"

func TestIdentifierDSCRCRoundTrip(t *testing.T) {
	id := Identifier{0x01, 0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0}
	id.UpdateDSCRC()
	if !id.ValidateDSCRC() {
		t.Fatal("ValidateDSCRC should accept a freshly updated CRC")
	}

	id[2] ^= 0xff
	if id.ValidateDSCRC() {
		t.Fatal("ValidateDSCRC should reject a corrupted identifier")
	}
}

func TestIdentifierSimpleChecksumRoundTrip(t *testing.T) {
	id := Identifier{1, 2, 3, 4, 5, 6, 7, 0}
	id.UpdateSimpleChecksum()
	if !id.ValidateSimpleChecksum() {
		t.Fatal("ValidateSimpleChecksum should accept a freshly updated checksum")
	}

	id[0]++
	if id.ValidateSimpleChecksum() {
		t.Fatal("ValidateSimpleChecksum should reject a corrupted identifier")
	}
}

func TestIdentifierIsEmpty(t *testing.T) {
	var zero Identifier
	if !zero.IsEmpty() {
		t.Fatal("zero-valued Identifier should be empty")
	}

	nonZero := Identifier{0, 0, 0, 1, 0, 0, 0, 0}
	if nonZero.IsEmpty() {
		t.Fatal("Identifier with a non-zero byte should not be empty")
	}
}

func TestIdentifierString(t *testing.T) {
	id := Identifier{0x01, 0x23, 0x45, 0x67, 0x89, 0xab, 0xcd, 0xef}
	want := "01-23-45-67-89-AB-CD-EF"
	if got := id.String(); got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}
