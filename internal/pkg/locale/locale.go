// Package locale picks the best available translation out of a node's
// multi-language text map, falling back to English.
package locale

import (
	"swasthya-admin/internal/domain"
)

// Resolve returns a single-entry map keyed by lang when texts carries a
// non-empty translation for it, and a single-entry English map otherwise.
// An empty lang is treated as English. A nil texts map yields nil, so a
// node without a description produces no description key at all.
//
// Resolve never fails: a map missing its English entry resolves to an
// empty English string rather than an error.
func Resolve(texts domain.LocalizedText, lang string) domain.LocalizedText {
	if texts == nil {
		return nil
	}

	if lang == "" {
		lang = domain.FallbackLang
	}

	if text, ok := texts[lang]; ok && text != "" {
		return domain.LocalizedText{lang: text}
	}

	return domain.LocalizedText{domain.FallbackLang: texts[domain.FallbackLang]}
}
