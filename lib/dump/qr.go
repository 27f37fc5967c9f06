package dump

import (
	"bytes"
	"fmt"

	"github.com/klauspost/compress/flate"
)

// base41Alphabet is the QR alphanumeric-mode character set used to pack
// deflated dump bytes three characters per two bytes: three base41
// characters cover 41^3 = 68921 values, enough for the 65536 values of two
// source bytes, where hex would need four characters.
// Grounded on original_source/src/cart.hpp's toQRString/BASE41_CHARS.
const base41Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ+-./:"

// MaxQRStringLength is the hard ceiling on an encoded QR payload, matching
// original_source/src/cart.hpp's MAX_QR_STRING_LENGTH. A dump that would
// deflate-and-encode past this is rejected rather than silently truncated.
const MaxQRStringLength = 1536

const (
	qrPrefix = "573::"
	qrSuffix = "::\x00"
)

// base41Encode packs raw two bytes at a time into three base41 characters
// each, per original_source/src/cart.hpp: value = in[0]<<8 | in[1], then
// out0 = chars[value%41], out1 = chars[value/41%41], out2 = chars[value/1681].
// A trailing odd byte is encoded alone as a final triplet, with value set to
// that byte.
func base41Encode(raw []byte) string {
	var out bytes.Buffer
	out.Grow((len(raw)/2)*3 + 3)

	i := 0
	for ; i+1 < len(raw); i += 2 {
		value := int(raw[i])<<8 | int(raw[i+1])
		out.WriteByte(base41Alphabet[value%41])
		out.WriteByte(base41Alphabet[value/41%41])
		out.WriteByte(base41Alphabet[value/1681])
	}
	if i < len(raw) {
		value := int(raw[i])
		out.WriteByte(base41Alphabet[value%41])
		out.WriteByte(base41Alphabet[value/41%41])
		out.WriteByte(base41Alphabet[value/1681])
	}
	return out.String()
}

// ToQRString renders d as the scannable QR payload a reader app reconstructs
// a Dump from: "573::" + base41(deflate(raw dump bytes)) + "::\0". Returns an
// error if the result would exceed MaxQRStringLength.
func (d *Dump) ToQRString() (string, error) {
	raw, err := d.marshalBinary(0x573d)
	if err != nil {
		return "", err
	}

	var compressed bytes.Buffer
	w, err := flate.NewWriter(&compressed, flate.BestCompression)
	if err != nil {
		return "", fmt.Errorf("dump: qr deflate init: %w", err)
	}
	if _, err := w.Write(raw); err != nil {
		return "", fmt.Errorf("dump: qr deflate write: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("dump: qr deflate close: %w", err)
	}

	s := qrPrefix + base41Encode(compressed.Bytes()) + qrSuffix
	if len(s) > MaxQRStringLength {
		return "", fmt.Errorf("dump: qr string length %d exceeds max %d", len(s), MaxQRStringLength)
	}
	return s, nil
}
