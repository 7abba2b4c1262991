package sarf

import "strings"

// RTLLanguages contains language codes that use right-to-left text direction.
var RTLLanguages = map[string]bool{
	"ar": true, // Arabic
	"he": true, // Hebrew
	"fa": true, // Persian/Farsi
	"ur": true, // Urdu
}

// LanguageOf returns the language code used to display input of the given kind.
func LanguageOf(kind InputKind) string {
	switch kind {
	case KindEnglish:
		return "en"
	case KindArabic:
		return "ar"
	default:
		return ""
	}
}

// GetDirection returns "rtl" for right-to-left languages, "ltr" otherwise.
func GetDirection(langCode string) string {
	base := strings.Split(strings.ReplaceAll(langCode, "-", "_"), "_")[0]
	base = strings.ToLower(base)

	if RTLLanguages[base] {
		return "rtl"
	}
	return "ltr"
}

// IsRTL returns true if the language uses right-to-left text direction.
func IsRTL(langCode string) bool {
	return GetDirection(langCode) == "rtl"
}

// DirectionOf returns the text direction for a string, based on Classify.
// Empty strings are "ltr".
func DirectionOf(text string) string {
	if Classify(text) == KindArabic {
		return "rtl"
	}
	return "ltr"
}
