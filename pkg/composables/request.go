package composables

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/comfortcurators/portal/pkg/constants"
	"github.com/comfortcurators/portal/pkg/shared"
	"github.com/comfortcurators/portal/pkg/types"
)

// Params describe the caller of the current request.
type Params struct {
	IP            string
	UserAgent     string
	Authenticated bool
	Request       *http.Request
	Writer        http.ResponseWriter
}

func UseParams(ctx context.Context) (*Params, bool) {
	params, ok := ctx.Value(constants.ParamsKey).(*Params)
	return params, ok
}

func WithParams(ctx context.Context, params *Params) context.Context {
	return context.WithValue(ctx, constants.ParamsKey, params)
}

// UseClient returns the caller address and user agent recorded for sessions. Outside a request
// both are placeholders.
func UseClient(ctx context.Context) (ip, userAgent string) {
	ip, userAgent = "0.0.0.0", "Unknown"
	params, ok := UseParams(ctx)
	if !ok {
		return ip, userAgent
	}
	if params.IP != "" {
		ip = params.IP
	}
	if params.UserAgent != "" {
		userAgent = params.UserAgent
	}
	return ip, userAgent
}

// UseAuthenticated reports whether the Session Resolver found a signed-in user.
func UseAuthenticated(ctx context.Context) bool {
	params, ok := UseParams(ctx)
	return ok && params.Authenticated
}

// UseLogger returns the request logger, or an entry of the standard logger outside of a request
// (workers, event handlers, CLI).
func UseLogger(ctx context.Context) *logrus.Entry {
	if logger, ok := ctx.Value(constants.LoggerKey).(*logrus.Entry); ok {
		return logger
	}
	return logrus.NewEntry(logrus.StandardLogger())
}

func WithLogger(ctx context.Context, logger *logrus.Entry) context.Context {
	return context.WithValue(ctx, constants.LoggerKey, logger)
}

func UsePageCtx(ctx context.Context) (*types.PageContext, bool) {
	pageCtx, ok := ctx.Value(constants.PageContext).(*types.PageContext)
	return pageCtx, ok
}

func WithPageCtx(ctx context.Context, pageCtx *types.PageContext) context.Context {
	return context.WithValue(ctx, constants.PageContext, pageCtx)
}

// UseForm decodes the posted form into v.
func UseForm[T comparable](v T, r *http.Request) (T, error) {
	if err := r.ParseForm(); err != nil {
		return v, err
	}
	return v, shared.Decoder.Decode(v, r.PostForm)
}

// UseCSRFToken returns the CSRF token of the request, empty when protection is off.
func UseCSRFToken(ctx context.Context) string {
	token, _ := ctx.Value(constants.CSRFFieldKey).(string)
	return token
}

// UseNavItems returns the translated navigation of the request.
func UseNavItems(ctx context.Context) []types.NavigationItem {
	items, _ := ctx.Value(constants.AllNavItems).([]types.NavigationItem)
	return items
}
