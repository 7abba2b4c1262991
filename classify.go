package sarf

import "golang.org/x/text/unicode/norm"

// Classify reports whether text is English, Arabic, or empty.
// Any ASCII Latin letter makes the input English; everything else that is
// non-empty is treated as Arabic.
func Classify(text string) InputKind {
	if text == "" {
		return KindEmpty
	}
	for i := 0; i < len(text); i++ {
		if isLatinLetter(text[i]) {
			return KindEnglish
		}
	}
	return KindArabic
}

func isLatinLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// Normalize returns the NFC form of s. Arabic input typed on different
// keyboards may carry decomposed hamza or madda forms that would otherwise
// miss exact table lookups.
func Normalize(s string) string {
	return norm.NFC.String(s)
}
