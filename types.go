package sarf

// InputKind is the classification of raw user input.
type InputKind string

const (
	// KindEmpty is returned for empty input.
	KindEmpty InputKind = "empty"
	// KindEnglish is returned when the input contains at least one Latin letter.
	KindEnglish InputKind = "english"
	// KindArabic is returned for any other non-empty input.
	KindArabic InputKind = "arabic"
)

// Placeholder values used in place of missing analysis fields.
const (
	Placeholder = "—"
	UnknownType = "unknown"

	// NoTranslation is shown when an English word is not in the dictionary.
	NoTranslation = "No demo translation available"
)

// Grammatical labels used as patterns and glossary terms.
const (
	PatternPast       = "فعل ماضٍ"
	PatternPresent    = "فعل مضارع"
	PatternImperative = "فعل أمر"
)

// Morphology is the structural analysis of a word.
type Morphology struct {
	Pattern string `json:"pattern"`
	Root    string `json:"root"`
	Type    string `json:"type"`
}

// MorphEntry is a morphology table row keyed by exact Arabic surface form.
type MorphEntry struct {
	Pattern    string `json:"pattern"`
	Root       string `json:"root"`
	Type       string `json:"type"`
	Paraphrase string `json:"paraphrase"`
}

// AnalysisResult is the outcome of analysing one Arabic token.
// It is built fresh per call and returned by value.
type AnalysisResult struct {
	Input       string     `json:"input"`
	Translation string     `json:"translation"`
	Morphology  Morphology `json:"morphology"`
	GrammarType string     `json:"grammarType"`
}

// Analysis is the result of the full analyse flow for one input.
type Analysis struct {
	Kind   InputKind      `json:"kind"`
	Arabic string         `json:"arabic,omitempty"` // Arabic form that was analysed
	Result AnalysisResult `json:"result"`
	Cached bool           `json:"cached"`
}

// placeholderResult is returned for empty or invalid tokens.
func placeholderResult() AnalysisResult {
	return AnalysisResult{
		Input:       "",
		Translation: Placeholder,
		Morphology: Morphology{
			Pattern: Placeholder,
			Root:    Placeholder,
			Type:    UnknownType,
		},
		GrammarType: Placeholder,
	}
}

// noTranslationResult is returned when an English word has no dictionary entry.
func noTranslationResult(input string) AnalysisResult {
	return AnalysisResult{
		Input:       input,
		Translation: NoTranslation,
		Morphology: Morphology{
			Pattern: Placeholder,
			Root:    Placeholder,
			Type:    Placeholder,
		},
		GrammarType: Placeholder,
	}
}
