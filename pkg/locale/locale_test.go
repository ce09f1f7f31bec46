package locale_test

import (
	"testing"

	"github.com/nagarniyantran/civicnav/pkg/domain"
	"github.com/nagarniyantran/civicnav/pkg/locale"
	"github.com/stretchr/testify/assert"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		pref string
		want domain.Language
	}{
		{"", domain.LanguageEnglish},
		{"en", domain.LanguageEnglish},
		{"hi", domain.LanguageHindi},
		{"hi-IN", domain.LanguageHindi},
		{"mr-IN,mr;q=0.9,en;q=0.5", domain.LanguageMarathi},
		{"fr-FR,hi;q=0.8", domain.LanguageHindi},
		{"en-GB", domain.LanguageEnglish},
		{"ja", domain.LanguageEnglish},
		{"!!not a tag", domain.LanguageEnglish},
	}

	for _, tt := range tests {
		t.Run(tt.pref, func(t *testing.T) {
			assert.Equal(t, tt.want, locale.Match(tt.pref))
		})
	}
}

func TestMatcher_Fallback(t *testing.T) {
	m := locale.NewMatcher(domain.LanguageMarathi)
	assert.Equal(t, domain.LanguageMarathi, m.Match("ja"))
	assert.Equal(t, domain.LanguageMarathi, m.Match(""))
	assert.Equal(t, domain.LanguageHindi, m.Match("hi"))

	invalid := locale.NewMatcher(domain.Language("de"))
	assert.Equal(t, domain.LanguageEnglish, invalid.Match("ja"))
}
