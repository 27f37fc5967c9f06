package core

import "testing"

func TestChipKindValid(t *testing.T) {
	for _, k := range []ChipKind{ChipNone, ChipX76F041, ChipX76F100, ChipZS01} {
		if !k.Valid() {
			t.Fatalf("ChipKind %v should be valid", k)
		}
	}
	if ChipKind(99).Valid() {
		t.Fatal("an unknown ChipKind value should not be valid")
	}
}

func TestChipKindDataLength(t *testing.T) {
	if ChipX76F041.DataLength() != 512 {
		t.Fatalf("X76F041 DataLength() = %d, want 512", ChipX76F041.DataLength())
	}
	if ChipZS01.DataLength() != 112 {
		t.Fatalf("ZS01 DataLength() = %d, want 112", ChipZS01.DataLength())
	}
	if ChipNone.DataLength() != 0 {
		t.Fatalf("ChipNone DataLength() = %d, want 0", ChipNone.DataLength())
	}
}

func TestAllowedFlagsExcludesZsIDOkOnX76(t *testing.T) {
	if ChipX76F041.AllowedFlags().Has(FlagZsIDOk) {
		t.Fatal("X76F041 should never be allowed FlagZsIDOk")
	}
	if !ChipZS01.AllowedFlags().Has(FlagZsIDOk) {
		t.Fatal("ZS01 should be allowed FlagZsIDOk")
	}
}

func TestFormatFlagHas(t *testing.T) {
	f := FmtHasCodePrefix | FmtHasSystemID
	if !f.Has(FmtHasCodePrefix) {
		t.Fatal("Has should report a set bit")
	}
	if f.Has(FmtHasTraceID) {
		t.Fatal("Has should not report an unset bit")
	}
	if !f.Has(FmtHasCodePrefix | FmtHasSystemID) {
		t.Fatal("Has should report a set of bits that are all present")
	}
}
