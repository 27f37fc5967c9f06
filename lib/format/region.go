// Package format implements the cartridge data parsers: Simple, Basic and
// Extended header dialects (plus the ROM-header variant of Extended), each
// validating and rewriting a region/code/identifier layout embedded in a
// dump.Dump's data buffer. Grounded on original_source/src/cartdata.cpp's
// Parser hierarchy and lib/identify's newCartParser dispatch.
package format

import "regexp"

// regionPattern implements original_source/src/cartdata.cpp's isValidRegion:
// character 0 is a region code (Asia/Europe/Japan/Korea/Singapore?/US),
// character 1 a major revision (regular or e-Amusement), and an optional
// 1 or 3 character minor revision.
var regionPattern = regexp.MustCompile(`^[AEJKSU][ABCDEFRSTUVWXYZ]([ABCD]|Z[0-9]{2})?$`)

// upgradeRegionPattern is regionPattern's lowercase twin, used for upgrade
// disc regions.
var upgradeRegionPattern = regexp.MustCompile(`^[aejksu][abcdefrstuvwxyz]([abcd]|z[0-9]{2})?$`)

// ValidRegion reports whether region matches the standard region grammar.
func ValidRegion(region string) bool {
	return regionPattern.MatchString(region)
}

// ValidUpgradeRegion reports whether region matches the lowercase upgrade
// region grammar.
func ValidUpgradeRegion(region string) bool {
	return upgradeRegionPattern.MatchString(region)
}
