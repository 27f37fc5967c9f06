package format

import (
	"testing"

	"github.com/kartlab/cart573/lib/core"
)

func TestValidRegion(t *testing.T) {
	valid := []string{"US", "JA", "EA", "USA", "JAZ00", "jaz42", "ea"}
	for _, r := range valid {
		want := r == "US" || r == "JA" || r == "EA" || r == "USA" || r == "JAZ00"
		got := ValidRegion(r)
		if got != want {
			t.Errorf("ValidRegion(%q) = %v, want %v", r, got, want)
		}
	}
	if !ValidUpgradeRegion("jaz42") {
		t.Error("ValidUpgradeRegion(jaz42) should be true")
	}
	invalid := []string{"", "X", "XXA", "USE", "JAZ0", "JAZAB"}
	for _, r := range invalid {
		if ValidRegion(r) {
			t.Errorf("ValidRegion(%q) should be false", r)
		}
	}
}

func TestSimpleParserRoundTrip(t *testing.T) {
	data := make([]byte, 32)
	p := New(core.FormatSimple, 0, data)
	p.SetRegion("US")
	if got := p.Region(); got != "US" {
		t.Fatalf("Region() = %q, want US", got)
	}
	if !p.Validate() {
		t.Fatal("valid region should validate")
	}
	p.SetRegion("ZZ")
	if p.Validate() {
		t.Fatal("invalid region should not validate")
	}
}

func TestBasicParserChecksum(t *testing.T) {
	data := make([]byte, basicHeaderLength+identifierSetLength)
	p := New(core.FormatBasic, core.FmtChecksumInverted|core.FmtHasCodePrefix, data)
	p.SetRegion("JA")
	p.SetCode("GX")
	p.SetYear(2002)
	p.Flush()

	if !p.Validate() {
		t.Fatal("freshly flushed header should validate")
	}
	if got := p.Code(); got != "GX" {
		t.Fatalf("Code() = %q, want GX", got)
	}
	if got := p.Year(); got != 2002 {
		t.Fatalf("Year() = %d, want 2002", got)
	}

	data[0] ^= 0xff // corrupt region byte
	if p.Validate() {
		t.Fatal("corrupted header should not validate")
	}
}

func TestBasicParserIdentifiers(t *testing.T) {
	data := make([]byte, basicHeaderLength+identifierSetLength)
	p := New(core.FormatBasic, 0, data)
	p.SetRegion("US")
	ids := p.Identifiers()
	if ids == nil {
		t.Fatal("Identifiers() should not be nil for Basic")
	}
}

func TestExtendedParserChecksumRoundTrip(t *testing.T) {
	data := make([]byte, extendedHeaderLength+identifierSetLength)
	p := New(core.FormatExtended, core.FmtChecksumInverted, data)
	p.SetCode("GE936")
	p.SetRegion("JA")
	p.SetYear(2000)
	p.Flush()

	if !p.Validate() {
		t.Fatal("freshly flushed extended header should validate")
	}
	if got := p.Code(); got != "GE936" {
		t.Fatalf("Code() = %q, want GE936", got)
	}

	data[extendedChecksumIndex] ^= 0xff
	if p.Validate() {
		t.Fatal("corrupted checksum should not validate")
	}
}

func TestExtendedParserGx706Workaround(t *testing.T) {
	data := make([]byte, extendedHeaderLength+identifierSetLength)
	p := New(core.FormatExtended, core.FmtGx706Workaround, data)
	p.SetCode("GX706")
	p.SetRegion("JA")
	p.Flush()

	if got := p.Code(); got != "GX706" {
		t.Fatalf("Code() = %q, want GX706 (X restored on read)", got)
	}
	// On-disk code[1] should actually be 'E', not 'X'.
	if data[extendedCodeOffset+1] != 'E' {
		t.Fatalf("on-disk code[1] = %q, want 'E'", data[extendedCodeOffset+1])
	}
	if !p.Validate() {
		t.Fatal("gx706-workaround header should validate against its own checksum")
	}

	// A parser without the workaround flag, reading the same bytes, must
	// see a different checksum outcome since it never coerces code[1].
	plain := New(core.FormatExtended, 0, data)
	if plain.Validate() {
		t.Fatal("non-workaround parser should not validate GX706's checksum")
	}
}

func TestExtendedParserPublicSectionDuplication(t *testing.T) {
	flags := core.FmtHasPublicSection | core.FmtChecksumInverted
	data := make([]byte, extendedHeaderLength+publicIdentifierSetLength+identifierSetLength)
	p := New(core.FormatExtended, flags, data)
	p.SetCode("GE936")
	p.SetRegion("JA")

	priOffset := extendedHeaderLength + publicIdentifierSetLength
	copy(data[priOffset+24:priOffset+32], []byte{1, 2, 3, 4, 5, 6, 7, 8}) // system ID

	p.Flush()

	pub := p.PublicIdentifiers()
	if pub == nil {
		t.Fatal("PublicIdentifiers() should not be nil")
	}
	want := core.Identifier{1, 2, 3, 4, 5, 6, 7, 8}
	if pub.System != want {
		t.Fatalf("public System = %+v, want %+v (duplicated from private)", pub.System, want)
	}
	if pub.Install != (core.Identifier{}) {
		t.Fatal("install ID should never be duplicated into the public section")
	}
	if !p.Validate() {
		t.Fatal("header should still validate after flush")
	}
}
