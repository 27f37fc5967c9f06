package format

import (
	"math/rand"
	"testing"

	"github.com/kartlab/cart573/lib/core"
)

func TestRomHeaderParserSignatureRoundTrip(t *testing.T) {
	systemID := core.Identifier{1, 2, 3, 4, 5, 6, 7, 8}
	data := make([]byte, extendedHeaderLength+signatureLength)
	p := NewRomHeaderParser(core.FmtHasSystemID, systemID, data)
	p.SetCode("GX706")
	p.SetRegion("JA")
	p.SetYear(2002)
	p.Flush()

	if !p.Validate() {
		t.Fatal("freshly flushed rom header should validate")
	}

	data[extendedChecksumIndex] ^= 0xff
	if p.Validate() {
		t.Fatal("corrupted checksum should not validate")
	}
}

func TestRomHeaderParserNoSignatureWithoutFlag(t *testing.T) {
	data := make([]byte, extendedHeaderLength)
	p := NewRomHeaderParser(0, core.Identifier{}, data)
	p.SetRegion("US")
	p.Flush()

	if !p.Validate() {
		t.Fatal("rom header without HasSystemID should validate like a plain extended header")
	}
}

// TestRomHeaderParserSignatureMutation is the S6 property: flipping any
// single bit in H (the extended header, checksum word included) must
// change at least one byte of the computed signature, tested across 100
// random mutations.
func TestRomHeaderParserSignatureMutation(t *testing.T) {
	systemID := core.Identifier{1, 2, 3, 4, 5, 6, 7, 8}
	data := make([]byte, extendedHeaderLength+signatureLength)
	p := NewRomHeaderParser(core.FmtHasSystemID, systemID, data)
	p.SetCode("GX706")
	p.SetRegion("JA")
	p.SetYear(2002)
	p.Flush()

	original := p.calculateSignature()
	header := p.header()

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 100; i++ {
		saved := append([]byte(nil), header...)
		bit := rng.Intn(len(header) * 8)
		header[bit/8] ^= 1 << uint(bit%8)

		if p.calculateSignature() == original {
			t.Fatalf("mutation %d (bit %d) left signature unchanged", i, bit)
		}
		copy(header, saved)
	}
}
