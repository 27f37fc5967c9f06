package catalog

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/kartlab/cart573/lib/core"
)

func encodeEntry(e Entry) [entryLength]byte {
	var raw [entryLength]byte
	raw[0] = byte(e.ChipKind)
	raw[1] = byte(e.Format)
	raw[2] = byte(e.TraceIDKind)
	raw[3] = byte(e.Flags)
	raw[4] = e.TraceIDParam
	raw[5] = e.InstallIDPrefix
	binary.LittleEndian.PutUint16(raw[6:8], e.Year)
	copy(raw[8:16], e.DataKey[:])
	copy(raw[16:24], e.Code)
	copy(raw[24:32], e.Region)
	copy(raw[32:96], e.Name)
	return raw
}

func writeCatalog(t *testing.T, entries []Entry) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.bin")
	var raw []byte
	for _, e := range entries {
		rec := encodeEntry(e)
		raw = append(raw, rec[:]...)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

// sampleEntries is already sorted by (code, region), as Lookup's binary
// search requires.
var sampleEntries = []Entry{
	{ChipKind: core.ChipX76F041, Format: core.FormatBasic, Code: "GCB48", Region: "JA", Name: "some game"},
	{ChipKind: core.ChipZS01, Format: core.FormatExtended, Code: "GX706", Region: "JA", Name: "GX706"},
	{ChipKind: core.ChipZS01, Format: core.FormatExtended, Code: "GX706", Region: "UA", Name: "GX706 (US)"},
}

func TestCatalogLookupExactAndPrefix(t *testing.T) {
	path := writeCatalog(t, sampleEntries)
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Len() != len(sampleEntries) {
		t.Fatalf("Len() = %d, want %d", c.Len(), len(sampleEntries))
	}

	for _, region := range []string{"JA", "JAA", "JAZ00"} {
		e, ok := c.Lookup("GX706", region)
		if !ok {
			t.Fatalf("Lookup(GX706, %q) should match the JA entry", region)
		}
		if e.Region != "JA" {
			t.Fatalf("Lookup(GX706, %q) returned region %q, want JA", region, e.Region)
		}
	}

	if _, ok := c.Lookup("GX706", "J"); ok {
		t.Fatal(`Lookup(GX706, "J") should not match (query shorter than stored region)`)
	}
	if _, ok := c.Lookup("GX706", "KO"); ok {
		t.Fatal("Lookup with a non-matching region should fail")
	}
	if _, ok := c.Lookup("ZZZZZ", "JA"); ok {
		t.Fatal("Lookup with an unknown code should fail")
	}
}

func TestCatalogLookupDistinctRegions(t *testing.T) {
	path := writeCatalog(t, sampleEntries)
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	e, ok := c.Lookup("GX706", "UA")
	if !ok || e.Name != "GX706 (US)" {
		t.Fatalf("Lookup(GX706, UA) = %+v, %v; want the US entry", e, ok)
	}
}

func TestCatalogRejectsMisalignedBlob(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.bin")
	if err := os.WriteFile(path, []byte{1, 2, 3}, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("Load should reject a blob whose length isn't a multiple of the entry size")
	}
}
