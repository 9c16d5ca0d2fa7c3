package trend

import "strings"

// pictographRanges covers the Unicode blocks stripped from trend names:
// emoticons, pictographs, transport symbols, regional indicator flags,
// dingbats, and the enclosed alphanumeric supplement.
var pictographRanges = [...][2]rune{
	{0x1F600, 0x1F64F},
	{0x1F300, 0x1F5FF},
	{0x1F680, 0x1F6FF},
	{0x1F1E0, 0x1F1FF},
	{0x2702, 0x27B0},
	{0x24C2, 0x1F251},
}

// Normalize canonicalizes a raw trend name: pictographic symbols are removed,
// the rest is lowercased, surrounding whitespace is trimmed, and internal
// whitespace runs collapse to a single space. Total and idempotent; empty
// input yields empty output.
func Normalize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if isPictograph(r) {
			continue
		}
		b.WriteRune(r)
	}
	return strings.Join(strings.Fields(strings.ToLower(b.String())), " ")
}

func isPictograph(r rune) bool {
	for _, rng := range pictographRanges {
		if r >= rng[0] && r <= rng[1] {
			return true
		}
	}
	return false
}
