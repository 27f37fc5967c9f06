package format

import (
	"github.com/Xuanwo/go-locale"
)

// regionByLanguage maps an OS locale's base language to the region letter
// used as the first character of the cartridge region grammar (spec.md §4.5:
// Asia/Europe/Japan/Korea/Singapore/US). This is a CLI convenience guess
// only — catalog init's --region flag can always override it — the actual
// region grammar and catalog lookup are locale-independent.
var regionByLanguage = map[string]byte{
	"ja": 'J',
	"ko": 'K',
	"zh": 'A',
	"th": 'A',
	"de": 'E',
	"fr": 'E',
	"it": 'E',
	"es": 'E',
	"en": 'U',
}

// GuessRegion returns a best-effort 2-character region code (a region
// letter plus the regular revision letter 'A') based on override, or the OS
// locale if override is empty, or "UA" if detection fails.
func GuessRegion(override string) string {
	if override != "" {
		return override
	}

	tag, err := locale.Detect()
	if err != nil {
		return "UA"
	}

	base, _ := tag.Base()
	letter, ok := regionByLanguage[base.String()]
	if !ok {
		letter = 'U'
	}
	return string(letter) + "A"
}
