package builder

import (
	"embed"
	"log/slog"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
)

//go:embed active.*.toml
var localeFS embed.FS

// Message IDs besides the issue codes.
const (
	msgNoIssues         = "no_issues"
	msgValidationPassed = "validation_passed"
	msgValidationFailed = "validation_failed"
)

// Messages renders builder messages from the embedded catalogs.
type Messages struct {
	bundle          *i18n.Bundle
	defaultLanguage language.Tag
}

// NewMessages loads the embedded catalogs. defaultLocale is used when a
// request names no locale or an unknown one; an unparsable value means Arabic.
func NewMessages(defaultLocale string) *Messages {
	tag, err := language.Parse(defaultLocale)
	if err != nil {
		tag = language.Arabic
	}
	bundle := i18n.NewBundle(tag)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	for _, file := range []string{"active.ar.toml", "active.en.toml"} {
		if _, err := bundle.LoadMessageFileFS(localeFS, file); err != nil {
			slog.Warn("builder: failed to load message file", slog.String("file", file), slog.Any("error", err))
		}
	}

	return &Messages{
		bundle:          bundle,
		defaultLanguage: tag,
	}
}

// T renders the message id for locale, falling back to the default locale
// and finally to the id itself.
func (m *Messages) T(locale, id string) string {
	if id == "" {
		return ""
	}

	languages := []string{}
	if locale != "" {
		languages = append(languages, locale)
	}
	languages = append(languages, m.defaultLanguage.String())

	localizer := i18n.NewLocalizer(m.bundle, languages...)
	msg, err := localizer.Localize(&i18n.LocalizeConfig{MessageID: id})
	if err != nil {
		slog.Debug("builder: localize failed", slog.String("id", id), slog.Any("locales", languages), slog.Any("error", err))
		return id
	}
	return msg
}

// Languages lists the locales with a catalog.
func (m *Messages) Languages() []string {
	tags := m.bundle.LanguageTags()
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = t.String()
	}
	return out
}
