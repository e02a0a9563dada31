package itf

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

// Response wraps a recorded response with assertions that fail the test immediately.
type Response struct {
	tb  testing.TB
	rec *httptest.ResponseRecorder
	res *http.Response
}

func (r *Response) Status(code int) *Response {
	r.tb.Helper()
	require.Equal(r.tb, code, r.rec.Code, "unexpected status, body: %s", r.rec.Body.String())
	return r
}

func (r *Response) RedirectTo(location string) *Response {
	r.tb.Helper()
	require.Equal(r.tb, location, r.rec.Header().Get("Location"))
	return r
}

func (r *Response) Contains(text string) *Response {
	r.tb.Helper()
	require.Contains(r.tb, r.rec.Body.String(), text)
	return r
}

func (r *Response) NotContains(text string) *Response {
	r.tb.Helper()
	require.NotContains(r.tb, r.rec.Body.String(), text)
	return r
}

func (r *Response) Body() string {
	return r.rec.Body.String()
}

func (r *Response) Header(name string) string {
	return r.rec.Header().Get(name)
}

// Cookie returns the cookie set by the response, or nil.
func (r *Response) Cookie(name string) *http.Cookie {
	for _, c := range r.res.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// JSON decodes the body into v.
func (r *Response) JSON(v any) *Response {
	r.tb.Helper()
	require.NoError(r.tb, json.Unmarshal(r.rec.Body.Bytes(), v), "body: %s", r.rec.Body.String())
	return r
}
