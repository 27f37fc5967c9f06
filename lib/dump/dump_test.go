package dump

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kartlab/cart573/lib/core"
)

func sampleDump() *Dump {
	d := New(core.ChipZS01)
	d.Flags = core.FlagHasSystemID | core.FlagSystemIDOk
	d.SystemID = core.Identifier{1, 2, 3, 4, 5, 6, 7, 8}
	d.DataKey = [8]byte{0xaa, 0xbb, 0xcc, 0xdd, 0xee, 0xff, 0x11, 0x22}
	for i := range d.Data {
		d.Data[i] = byte(i)
	}
	return d
}

func TestDumpClearAndClearData(t *testing.T) {
	d := sampleDump()
	d.ClearData()
	if !d.IsDataEmpty() {
		t.Fatal("ClearData left nonzero bytes")
	}
	if d.Flags == 0 {
		t.Fatal("ClearData should not touch flags")
	}

	d2 := sampleDump()
	d2.Clear()
	if d2.Flags != 0 || d2.SystemID != (core.Identifier{}) || d2.DataKey != ([8]byte{}) {
		t.Fatal("Clear left identifiers/key/flags set")
	}
	if !d2.IsDataEmpty() {
		t.Fatal("Clear left data nonzero")
	}
}

func TestDumpIsDataEmpty(t *testing.T) {
	d := New(core.ChipX76F041)
	if !d.IsDataEmpty() {
		t.Fatal("freshly allocated dump should read as empty")
	}
	for i := range d.Data {
		d.Data[i] = 0xff
	}
	if !d.IsDataEmpty() {
		t.Fatal("all-0xff dump should also read as empty (erased state)")
	}
	d.Data[10] = 0x01
	if d.IsDataEmpty() {
		t.Fatal("dump with one differing byte should not read as empty")
	}
}

func TestDumpWellFormed(t *testing.T) {
	d := New(core.ChipX76F100)
	d.Flags = core.FlagHasSystemID | core.FlagSystemIDOk
	if !d.WellFormed() {
		t.Fatal("allowed flags should be well formed")
	}
	d.Flags |= core.FlagPrivateDataOk // not allowed on X76F100
	if d.WellFormed() {
		t.Fatal("disallowed flag should make dump malformed")
	}
}

func TestToQRStringFraming(t *testing.T) {
	d := sampleDump()
	s, err := d.ToQRString()
	if err != nil {
		t.Fatalf("ToQRString: %v", err)
	}
	if len(s) < len(qrPrefix)+len(qrSuffix) {
		t.Fatalf("qr string too short: %q", s)
	}
	if s[:len(qrPrefix)] != qrPrefix {
		t.Fatalf("qr string missing prefix: %q", s)
	}
	if s[len(s)-len(qrSuffix):] != qrSuffix {
		t.Fatalf("qr string missing suffix: %q", s)
	}
	if len(s) > MaxQRStringLength {
		t.Fatalf("qr string length %d exceeds max %d", len(s), MaxQRStringLength)
	}
}

func TestBase41EncodeOddTrailingByte(t *testing.T) {
	out := base41Encode([]byte{0x01, 0x02, 0x03})
	if len(out) != 6 { // one pair (3 chars) + a final triplet for the trailing byte
		t.Fatalf("base41Encode([3]byte) length = %d, want 6", len(out))
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	d := sampleDump()
	path := filepath.Join(t.TempDir(), "dump.bin")
	if err := d.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, magic, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if magic != MagicDump {
		t.Fatalf("magic = %#04x, want %#04x", magic, MagicDump)
	}
	if loaded.ChipKind != d.ChipKind || loaded.Flags != d.Flags {
		t.Fatalf("loaded header mismatch: %+v vs %+v", loaded, d)
	}
	if loaded.SystemID != d.SystemID || loaded.DataKey != d.DataKey {
		t.Fatal("loaded identifiers/key mismatch")
	}
	for i, b := range loaded.Data {
		if b != d.Data[i] {
			t.Fatalf("data[%d] = %#x, want %#x", i, b, d.Data[i])
		}
	}
}

func TestLoadRejectsWrongLength(t *testing.T) {
	d := New(core.ChipX76F041)
	raw, err := d.marshalBinary(MagicDump)
	if err != nil {
		t.Fatalf("marshalBinary: %v", err)
	}
	path := filepath.Join(t.TempDir(), "truncated.bin")
	if err := os.WriteFile(path, raw[:len(raw)-10], 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, _, err := Load(path); err == nil {
		t.Fatal("Load should reject a truncated dump file")
	}
}

func TestLoadAcceptsRomHeaderMagic(t *testing.T) {
	d := New(core.ChipX76F041)
	raw, err := d.marshalBinary(MagicRomHeaderDump)
	if err != nil {
		t.Fatalf("marshalBinary: %v", err)
	}
	path := filepath.Join(t.TempDir(), "romheader.bin")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, magic, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if magic != MagicRomHeaderDump {
		t.Fatalf("magic = %#04x, want %#04x", magic, MagicRomHeaderDump)
	}
}

func TestLoadRejectsBadMagic(t *testing.T) {
	d := New(core.ChipX76F041)
	raw, err := d.marshalBinary(0x1234)
	if err != nil {
		t.Fatalf("marshalBinary: %v", err)
	}
	path := filepath.Join(t.TempDir(), "badmagic.bin")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, _, err := Load(path); err == nil {
		t.Fatal("Load should reject an unknown magic")
	}
}
