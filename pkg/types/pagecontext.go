package types

import (
	"net/url"

	"github.com/iota-uz/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

// PageContext is what a rendered page knows about its request.
type PageContext struct {
	Locale    language.Tag
	URL       *url.URL
	Localizer *i18n.Localizer
}

// Path is the request path used to highlight navigation, empty when unknown.
func (p *PageContext) Path() string {
	if p == nil || p.URL == nil {
		return ""
	}
	return p.URL.Path
}
