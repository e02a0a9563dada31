package itf

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"github.com/comfortcurators/portal/modules/core/presentation/controllers"
	"github.com/comfortcurators/portal/modules/core/services"
	"github.com/comfortcurators/portal/pkg/application"
	"github.com/comfortcurators/portal/pkg/constants"
	"github.com/comfortcurators/portal/pkg/middleware"
	"github.com/comfortcurators/portal/pkg/server"
)

// Suite drives an in-memory application over HTTP. Cookies set by responses are kept and sent
// with later requests, like a browser would.
type Suite struct {
	tb         testing.TB
	env        *TestEnvironment
	middleware []mux.MiddlewareFunc
	cookies    map[string]*http.Cookie
	handler    http.Handler
}

// HTTP builds a seeded in-memory application. Without modules every built-in module is loaded.
func HTTP(tb testing.TB, modules ...application.Module) *Suite {
	tb.Helper()
	env := NewTestContext().WithModules(modules...).Build(tb)
	return &Suite{
		tb:      tb,
		env:     env,
		cookies: map[string]*http.Cookie{},
	}
}

func (s *Suite) Env() *TestEnvironment {
	return s.env
}

// Register adds controllers to the application. Call it before the first request.
func (s *Suite) Register(controllers ...application.Controller) *Suite {
	s.env.App.RegisterControllers(controllers...)
	s.handler = nil
	return s
}

// WithMiddleware runs mw after the request parameters are provided.
func (s *Suite) WithMiddleware(mw ...mux.MiddlewareFunc) *Suite {
	s.middleware = append(s.middleware, mw...)
	s.handler = nil
	return s
}

// AsUser signs in with the given credentials and keeps the session cookie.
func (s *Suite) AsUser(email, password string) *Suite {
	s.tb.Helper()
	auth := s.env.App.Service(services.AuthService{}).(*services.AuthService)
	cookie, err := auth.CookieAuthenticate(s.env.Ctx, email, password)
	require.NoError(s.tb, err)
	s.cookies[cookie.Name] = cookie
	return s
}

// AsDemo signs in as the seeded account with organizations.
func (s *Suite) AsDemo() *Suite {
	return s.AsUser(DemoEmail, DemoPassword)
}

// AsAnonymous drops every cookie.
func (s *Suite) AsAnonymous() *Suite {
	s.cookies = map[string]*http.Cookie{}
	return s
}

// Cookie returns the kept cookie with that name, or nil.
func (s *Suite) Cookie(name string) *http.Cookie {
	return s.cookies[name]
}

func (s *Suite) Handler() http.Handler {
	if s.handler == nil {
		s.handler = s.Router()
	}
	return s.handler
}

// Router assembles the request pipeline without CSRF protection, which tests cannot satisfy.
func (s *Suite) Router() *mux.Router {
	app := s.env.App
	middlewares := []mux.MiddlewareFunc{
		middleware.WithLogger(s.env.Logger, middleware.DefaultLoggerOptions()),
		middleware.Provide(constants.AppKey, app),
		middleware.RequestParams(""),
	}
	middlewares = append(middlewares, s.middleware...)
	middlewares = append(middlewares, app.Middleware()...)
	srv := &server.HTTPServer{
		Controllers:             app.Controllers(),
		Middlewares:             middlewares,
		NotFoundHandler:         controllers.NotFound(app),
		MethodNotAllowedHandler: controllers.MethodNotAllowed(app),
	}
	return srv.Router()
}

func (s *Suite) GET(path string) *Request {
	return s.newRequest(http.MethodGet, path)
}

func (s *Suite) POST(path string) *Request {
	return s.newRequest(http.MethodPost, path)
}

func (s *Suite) DELETE(path string) *Request {
	return s.newRequest(http.MethodDelete, path)
}

// Method starts a request with any verb.
func (s *Suite) Method(method, path string) *Request {
	return s.newRequest(method, path)
}

func (s *Suite) newRequest(method, path string) *Request {
	return &Request{
		suite:   s,
		method:  method,
		path:    path,
		headers: http.Header{},
	}
}

// Request is a request under construction.
type Request struct {
	suite   *Suite
	method  string
	path    string
	headers http.Header
	body    io.Reader
}

func (r *Request) Header(key, value string) *Request {
	r.headers.Set(key, value)
	return r
}

func (r *Request) Form(values url.Values) *Request {
	r.body = strings.NewReader(values.Encode())
	r.headers.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

func (r *Request) JSON(v any) *Request {
	data, err := json.Marshal(v)
	require.NoError(r.suite.tb, err)
	r.body = bytes.NewReader(data)
	r.headers.Set("Content-Type", "application/json")
	return r
}

// Raw sends body as is.
func (r *Request) Raw(contentType, body string) *Request {
	r.body = strings.NewReader(body)
	r.headers.Set("Content-Type", contentType)
	return r
}

// HTMX marks the request as issued by htmx.
func (r *Request) HTMX() *Request {
	r.headers.Set("Hx-Request", "true")
	return r
}

// Expect sends the request and records the response.
func (r *Request) Expect(tb testing.TB) *Response {
	tb.Helper()
	req := httptest.NewRequest(r.method, r.path, r.body)
	for k, v := range r.headers {
		req.Header[k] = v
	}
	for _, c := range r.suite.cookies {
		req.AddCookie(&http.Cookie{Name: c.Name, Value: c.Value})
	}
	rec := httptest.NewRecorder()
	r.suite.Handler().ServeHTTP(rec, req)

	res := rec.Result()
	for _, c := range res.Cookies() {
		if c.MaxAge < 0 || c.Value == "" {
			delete(r.suite.cookies, c.Name)
			continue
		}
		r.suite.cookies[c.Name] = c
	}
	return &Response{tb: tb, rec: rec, res: res}
}
