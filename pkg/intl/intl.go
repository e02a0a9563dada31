package intl

import (
	"golang.org/x/text/language"
)

// Fallback is the locale every bundle is complete for.
var Fallback = language.English

// ParseLanguages turns the configured language codes into tags. Unknown codes are skipped; an
// empty result falls back to English.
func ParseLanguages(codes []string) []language.Tag {
	tags := make([]language.Tag, 0, len(codes))
	for _, code := range codes {
		tag, err := language.Parse(code)
		if err != nil {
			continue
		}
		tags = append(tags, tag)
	}
	if len(tags) == 0 {
		return []language.Tag{Fallback}
	}
	return tags
}

// Negotiate picks the supported locale closest to an Accept-Language header.
func Negotiate(acceptLanguage string, supported []language.Tag) language.Tag {
	if len(supported) == 0 {
		return Fallback
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		tags = []language.Tag{Fallback}
	}
	_, idx, _ := language.NewMatcher(supported).Match(tags...)
	return supported[idx]
}
