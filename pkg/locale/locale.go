// Package locale negotiates the session language from BCP 47 input.
package locale

import (
	"github.com/nagarniyantran/civicnav/pkg/domain"
	"golang.org/x/text/language"
)

// Matcher picks the best supported domain.Language for a client preference.
type Matcher struct {
	matcher   language.Matcher
	supported []domain.Language
	fallback  domain.Language
}

// NewMatcher creates a Matcher over every supported language.
// Preferences that match none of them resolve to fallback, or English when
// fallback is not a supported language.
func NewMatcher(fallback domain.Language) *Matcher {
	if !fallback.Valid() {
		fallback = domain.LanguageEnglish
	}

	supported := domain.Languages()
	tags := make([]language.Tag, 0, len(supported))
	for _, l := range supported {
		tags = append(tags, language.MustParse(string(l)))
	}

	return &Matcher{
		matcher:   language.NewMatcher(tags),
		supported: supported,
		fallback:  fallback,
	}
}

// Match resolves an Accept-Language header value or a single language tag.
func (m *Matcher) Match(pref string) domain.Language {
	if pref == "" {
		return m.fallback
	}

	tags, _, err := language.ParseAcceptLanguage(pref)
	if err != nil || len(tags) == 0 {
		tag, err := language.Parse(pref)
		if err != nil {
			return m.fallback
		}
		tags = []language.Tag{tag}
	}

	_, idx, confidence := m.matcher.Match(tags...)
	if confidence == language.No || idx < 0 || idx >= len(m.supported) {
		return m.fallback
	}
	return m.supported[idx]
}

var defaultMatcher = NewMatcher(domain.LanguageEnglish)

// Match resolves pref with English as the fallback.
func Match(pref string) domain.Language {
	return defaultMatcher.Match(pref)
}
