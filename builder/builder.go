// Package builder implements the guided phrase builder: a small editable
// state, a fixed set of validation rules, and a composed preview string.
package builder

import (
	"fmt"
	"strings"

	"github.com/ZaguanLabs/sarf"
)

// Pattern identifies a derivational form.
type Pattern string

const (
	PatternI   Pattern = "I"
	PatternII  Pattern = "II"
	PatternIII Pattern = "III"
)

// Tense identifies the verb tense or mood.
type Tense string

const (
	TensePast       Tense = "past"
	TensePresent    Tense = "present"
	TenseImperative Tense = "imperative"
)

// Pronoun is one of the eight fixed subject pronouns.
type Pronoun string

const (
	PronounHuwa  Pronoun = "هو"
	PronounHiya  Pronoun = "هي"
	PronounAna   Pronoun = "أنا"
	PronounNahnu Pronoun = "نحن"
	PronounAnta  Pronoun = "أنتَ"
	PronounAnti  Pronoun = "أنتِ"
	PronounAntum Pronoun = "أنتم"
	PronounHum   Pronoun = "هم"
)

// Option is a selector entry shown in the builder panel.
type Option struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

var pronouns = []Pronoun{
	PronounHuwa, PronounHiya, PronounAna, PronounNahnu,
	PronounAnta, PronounAnti, PronounAntum, PronounHum,
}

var tenses = []Option{
	{ID: string(TensePast), Label: "ماضٍ"},
	{ID: string(TensePresent), Label: "مضارع"},
	{ID: string(TenseImperative), Label: "أمر"},
}

var patterns = []Option{
	{ID: string(PatternI), Label: "Form I"},
	{ID: string(PatternII), Label: "Form II"},
	{ID: string(PatternIII), Label: "Form III"},
}

var tenseLabels = map[Tense]string{
	TensePast:       sarf.PatternPast,
	TensePresent:    sarf.PatternPresent,
	TenseImperative: sarf.PatternImperative,
}

// Pronouns returns the pronoun selector options.
func Pronouns() []Option {
	out := make([]Option, len(pronouns))
	for i, p := range pronouns {
		out[i] = Option{ID: string(p), Label: string(p)}
	}
	return out
}

// Tenses returns the tense selector options.
func Tenses() []Option {
	return append([]Option(nil), tenses...)
}

// Patterns returns the pattern selector options.
func Patterns() []Option {
	return append([]Option(nil), patterns...)
}

// State is the editable builder state. Modifiers is reserved and unused.
type State struct {
	Root      string   `json:"root"`
	Pattern   Pattern  `json:"pattern"`
	Pronoun   Pronoun  `json:"pronoun"`
	Tense     Tense    `json:"tense"`
	Modifiers []string `json:"modifiers"`
}

// DefaultState returns the state the builder starts in and resets to.
func DefaultState() State {
	return State{
		Root:      "",
		Pattern:   PatternI,
		Pronoun:   PronounHuwa,
		Tense:     TensePast,
		Modifiers: []string{},
	}
}

// IssueCode identifies a validation rule.
type IssueCode string

const (
	IssueMissingRoot           IssueCode = "missing_root"
	IssueImperativeFirstPerson IssueCode = "imperative_first_person"
)

// Issue is a validation finding with its localized message.
type Issue struct {
	Code    IssueCode `json:"code"`
	Message string    `json:"message"`
}

// Validate evaluates every rule against st and returns the codes of those
// that fail, in rule order: root first, then pronoun and tense.
func Validate(st State) []IssueCode {
	var issues []IssueCode
	if st.Root == "" {
		issues = append(issues, IssueMissingRoot)
	}
	if st.Tense == TenseImperative && (st.Pronoun == PronounAna || st.Pronoun == PronounNahnu) {
		issues = append(issues, IssueImperativeFirstPerson)
	}
	return issues
}

// Compose renders the preview string for st. It is deterministic.
func Compose(st State) string {
	base := st.Root
	if base == "" {
		base = sarf.Placeholder
	}
	return fmt.Sprintf("%s — (%s) — %s — %s", st.Pronoun, TenseLabel(st.Tense), base, PatternLabel(st.Pattern))
}

// TenseLabel returns the grammatical label for a tense, or "—" if unknown.
func TenseLabel(t Tense) string {
	if label, ok := tenseLabels[t]; ok {
		return label
	}
	return sarf.Placeholder
}

// PatternLabel returns the display label for a pattern id. Unknown ids are
// returned verbatim.
func PatternLabel(p Pattern) string {
	for _, o := range patterns {
		if o.ID == string(p) {
			return o.Label
		}
	}
	return string(p)
}

// Preview is the derived view of the current state.
type Preview struct {
	Text   string  `json:"preview"`
	Issues []Issue `json:"issues"`
	Valid  bool    `json:"valid"`
	Status string  `json:"status"` // "no issues" line or empty
}

// Builder owns a State and recomputes its Preview after every change.
// A Builder is not safe for concurrent use.
type Builder struct {
	state   State
	preview Preview
	msgs    *Messages
	locale  string
}

// New creates a builder in the default state. A nil msgs uses the embedded
// catalogs with Arabic as the default.
func New(msgs *Messages, locale string) *Builder {
	if msgs == nil {
		msgs = NewMessages("ar")
	}
	b := &Builder{state: DefaultState(), msgs: msgs, locale: locale}
	b.update()
	return b
}

// FromState creates a builder holding st.
func FromState(st State, msgs *Messages, locale string) *Builder {
	b := New(msgs, locale)
	b.state = st
	b.state.Root = strings.TrimSpace(st.Root)
	if b.state.Modifiers == nil {
		b.state.Modifiers = []string{}
	}
	b.update()
	return b
}

// SetRoot sets the trimmed root.
func (b *Builder) SetRoot(root string) Preview {
	b.state.Root = strings.TrimSpace(root)
	return b.update()
}

// SetPattern sets the pattern id.
func (b *Builder) SetPattern(p Pattern) Preview {
	b.state.Pattern = p
	return b.update()
}

// SetTense sets the tense.
func (b *Builder) SetTense(t Tense) Preview {
	b.state.Tense = t
	return b.update()
}

// SetPronoun sets the pronoun.
func (b *Builder) SetPronoun(p Pronoun) Preview {
	b.state.Pronoun = p
	return b.update()
}

// Reset restores the default state.
func (b *Builder) Reset() Preview {
	b.state = DefaultState()
	return b.update()
}

// State returns a copy of the current state.
func (b *Builder) State() State {
	st := b.state
	st.Modifiers = append([]string{}, b.state.Modifiers...)
	return st
}

// Preview returns the preview computed after the last change.
func (b *Builder) Preview() Preview {
	return b.preview
}

// Verdict returns the message shown by the validate action: the pass
// message, or the fail heading followed by one "- issue" line per issue.
func (b *Builder) Verdict() string {
	if b.preview.Valid {
		return b.msgs.T(b.locale, msgValidationPassed)
	}
	lines := []string{b.msgs.T(b.locale, msgValidationFailed)}
	for _, is := range b.preview.Issues {
		lines = append(lines, "- "+is.Message)
	}
	return strings.Join(lines, "\n")
}

func (b *Builder) update() Preview {
	codes := Validate(b.state)
	issues := make([]Issue, len(codes))
	for i, c := range codes {
		issues[i] = Issue{Code: c, Message: b.msgs.T(b.locale, string(c))}
	}

	p := Preview{
		Text:   Compose(b.state),
		Issues: issues,
		Valid:  len(issues) == 0,
	}
	if p.Valid {
		p.Status = b.msgs.T(b.locale, msgNoIssues)
	}
	b.preview = p
	return p
}
