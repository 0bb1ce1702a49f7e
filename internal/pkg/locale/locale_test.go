package locale_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"swasthya-admin/internal/domain"
	"swasthya-admin/internal/pkg/locale"
)

func TestResolve(t *testing.T) {
	texts := domain.LocalizedText{"en": "Cough", "hi": "खांसी"}

	t.Run("Requested Language Present", func(t *testing.T) {
		got := locale.Resolve(texts, "hi")
		assert.Equal(t, domain.LocalizedText{"hi": "खांसी"}, got)
	})

	t.Run("Requested Language Missing Falls Back To English", func(t *testing.T) {
		got := locale.Resolve(texts, "gu")
		assert.Equal(t, domain.LocalizedText{"en": "Cough"}, got)
	})

	t.Run("Empty Language Means English", func(t *testing.T) {
		got := locale.Resolve(texts, "")
		assert.Equal(t, domain.LocalizedText{"en": "Cough"}, got)
	})

	t.Run("Empty Translation Falls Back", func(t *testing.T) {
		got := locale.Resolve(domain.LocalizedText{"en": "Cough", "hi": ""}, "hi")
		assert.Equal(t, domain.LocalizedText{"en": "Cough"}, got)
	})

	t.Run("Missing English Yields Empty String Not Error", func(t *testing.T) {
		got := locale.Resolve(domain.LocalizedText{"hi": "खांसी"}, "gu")
		assert.Equal(t, domain.LocalizedText{"en": ""}, got)
	})

	t.Run("Nil Map Yields Nil", func(t *testing.T) {
		assert.Nil(t, locale.Resolve(nil, "hi"))
	})

	t.Run("Always Exactly One Key", func(t *testing.T) {
		for _, lang := range []string{"", "en", "hi", "ta", "xx"} {
			got := locale.Resolve(texts, lang)
			assert.Len(t, got, 1, "lang %q", lang)
		}
	})
}
