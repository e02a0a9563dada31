package controllers

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/go-faster/errors"
	"github.com/gorilla/mux"

	"github.com/comfortcurators/portal/modules/core/presentation/controllers/dtos"
	"github.com/comfortcurators/portal/modules/core/presentation/templates/layouts"
	"github.com/comfortcurators/portal/modules/core/presentation/templates/pages/login"
	"github.com/comfortcurators/portal/modules/core/services"
	"github.com/comfortcurators/portal/pkg/application"
	"github.com/comfortcurators/portal/pkg/composables"
	"github.com/comfortcurators/portal/pkg/intl"
	"github.com/comfortcurators/portal/pkg/middleware"
	"github.com/comfortcurators/portal/pkg/shared"
)

const defaultLandingPath = "/app"

// SafeNext returns next when it is a path on this site, otherwise the default landing page.
func SafeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return defaultLandingPath
	}
	u, err := url.Parse(next)
	if err != nil || u.IsAbs() || u.Host != "" {
		return defaultLandingPath
	}
	return next
}

func NewLoginController(app application.Application, authLimit mux.MiddlewareFunc) application.Controller {
	return &LoginController{
		app:         app,
		authService: app.Service(services.AuthService{}).(*services.AuthService),
		authLimit:   authLimit,
	}
}

type LoginController struct {
	app         application.Application
	authService *services.AuthService
	authLimit   mux.MiddlewareFunc
}

func (c *LoginController) Key() string {
	return "/login"
}

func (c *LoginController) Register(r *mux.Router) {
	getRouter := r.PathPrefix("/login").Subrouter()
	getRouter.Use(middleware.PublicPage(c.app)...)
	getRouter.Use(middleware.RedirectAuthenticated(defaultLandingPath))
	getRouter.HandleFunc("", c.Get).Methods(http.MethodGet)

	setRouter := r.PathPrefix("/login").Subrouter()
	setRouter.Use(middleware.PublicPage(c.app)...)
	setRouter.Use(c.authLimit)
	setRouter.HandleFunc("", c.Post).Methods(http.MethodPost)
}

func (c *LoginController) redirectBack(w http.ResponseWriter, r *http.Request, email, next string) {
	q := url.Values{}
	if email != "" {
		q.Set("email", email)
	}
	if next != "" {
		q.Set("next", next)
	}
	target := "/login"
	if len(q) > 0 {
		target += "?" + q.Encode()
	}
	http.Redirect(w, r, target, http.StatusFound)
}

func (c *LoginController) Get(w http.ResponseWriter, r *http.Request) {
	errorsMap, err := shared.PopFlashMap[string, string](w, r, "errorsMap")
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	errorMessage, err := shared.PopFlash(w, r, "error")
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	successMessage, err := shared.PopFlash(w, r, "success")
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	props := &login.Props{
		Email:  r.URL.Query().Get("email"),
		Next:   r.URL.Query().Get("next"),
		Errors: errorsMap,
	}
	switch {
	case len(errorMessage) > 0:
		props.Flash = &layouts.Flash{Kind: "error", Message: string(errorMessage)}
	case len(successMessage) > 0:
		props.Flash = &layouts.Flash{Kind: "success", Message: string(successMessage)}
	}
	if err := login.Index(props).Render(r.Context(), w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (c *LoginController) Post(w http.ResponseWriter, r *http.Request) {
	logger := composables.UseLogger(r.Context())
	dto, err := composables.UseForm(&dtos.LoginDTO{}, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if dto.Next == "" {
		dto.Next = r.URL.Query().Get("next")
	}
	if errorsMap, ok := dto.Ok(r.Context()); !ok {
		shared.SetFlashMap(w, "errorsMap", errorsMap)
		c.redirectBack(w, r, dto.Email, dto.Next)
		return
	}

	cookie, err := c.authService.CookieAuthenticate(r.Context(), dto.Email, dto.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			shared.SetFlash(w, "error", []byte(intl.MustT(r.Context(), "Login.Errors.InvalidCredentials")))
		} else {
			logger.WithError(err).Error("failed to authenticate user")
			shared.SetFlash(w, "error", []byte(intl.MustT(r.Context(), "Errors.Internal")))
		}
		c.redirectBack(w, r, dto.Email, dto.Next)
		return
	}

	http.SetCookie(w, cookie)
	http.Redirect(w, r, SafeNext(dto.Next), http.StatusFound)
}
