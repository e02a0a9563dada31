package intl

import (
	"context"
	"errors"

	"github.com/iota-uz/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

type localizerKey struct{}
type localeKey struct{}

var (
	ErrNoLocalizer = errors.New("localizer not found")
)

func WithLocalizer(ctx context.Context, l *i18n.Localizer) context.Context {
	return context.WithValue(ctx, localizerKey{}, l)
}

func UseLocalizer(ctx context.Context) (*i18n.Localizer, bool) {
	l, ok := ctx.Value(localizerKey{}).(*i18n.Localizer)
	return l, ok
}

func WithLocale(ctx context.Context, tag language.Tag) context.Context {
	return context.WithValue(ctx, localeKey{}, tag)
}

// UseLocale returns the request locale, English when none was negotiated.
func UseLocale(ctx context.Context) language.Tag {
	if tag, ok := ctx.Value(localeKey{}).(language.Tag); ok {
		return tag
	}
	return Fallback
}

// MustT translates msgID with the request localizer and panics when there is none.
func MustT(ctx context.Context, msgID string) string {
	l, ok := UseLocalizer(ctx)
	if !ok {
		panic(ErrNoLocalizer)
	}
	return l.MustLocalize(&i18n.LocalizeConfig{MessageID: msgID})
}

// T is MustT that falls back to the message id instead of panicking.
func T(ctx context.Context, msgID string) string {
	l, ok := UseLocalizer(ctx)
	if !ok {
		return msgID
	}
	s, err := l.Localize(&i18n.LocalizeConfig{MessageID: msgID})
	if err != nil {
		return msgID
	}
	return s
}
