package controllers

import (
	"net/http"

	"github.com/go-faster/errors"
	"github.com/gorilla/mux"

	"github.com/comfortcurators/portal/modules/core/domain/entities/identity"
	"github.com/comfortcurators/portal/modules/core/presentation/controllers/dtos"
	"github.com/comfortcurators/portal/modules/core/presentation/templates/layouts"
	"github.com/comfortcurators/portal/modules/core/presentation/templates/pages/signup"
	"github.com/comfortcurators/portal/modules/core/services"
	"github.com/comfortcurators/portal/pkg/application"
	"github.com/comfortcurators/portal/pkg/composables"
	"github.com/comfortcurators/portal/pkg/intl"
	"github.com/comfortcurators/portal/pkg/middleware"
	"github.com/comfortcurators/portal/pkg/shared"
)

func NewSignUpController(app application.Application, authLimit mux.MiddlewareFunc) application.Controller {
	return &SignUpController{
		app:         app,
		authService: app.Service(services.AuthService{}).(*services.AuthService),
		authLimit:   authLimit,
	}
}

type SignUpController struct {
	app         application.Application
	authService *services.AuthService
	authLimit   mux.MiddlewareFunc
}

func (c *SignUpController) Key() string {
	return "/signup"
}

func (c *SignUpController) Register(r *mux.Router) {
	getRouter := r.PathPrefix("/signup").Subrouter()
	getRouter.Use(middleware.PublicPage(c.app)...)
	getRouter.Use(middleware.RedirectAuthenticated(defaultLandingPath))
	getRouter.HandleFunc("", c.Get).Methods(http.MethodGet)

	setRouter := r.PathPrefix("/signup").Subrouter()
	setRouter.Use(middleware.PublicPage(c.app)...)
	setRouter.Use(c.authLimit)
	setRouter.HandleFunc("", c.Post).Methods(http.MethodPost)
}

func (c *SignUpController) render(w http.ResponseWriter, r *http.Request, status int, props *signup.Props) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := signup.Index(props).Render(r.Context(), w); err != nil {
		composables.UseLogger(r.Context()).WithError(err).Error("failed to render sign-up page")
	}
}

func (c *SignUpController) Get(w http.ResponseWriter, r *http.Request) {
	c.render(w, r, http.StatusOK, &signup.Props{})
}

// Post creates the account and sends the user to sign in. Failures re-render the form with
// the submitted values and a transient notification.
func (c *SignUpController) Post(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	dto, err := composables.UseForm(&dtos.SignUpDTO{}, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	props := &signup.Props{FullName: dto.FullName, Email: dto.Email}
	if errorsMap, ok := dto.Ok(ctx); !ok {
		props.FullName, props.Email = dto.FullName, dto.Email
		props.Errors = errorsMap
		props.Flash = &layouts.Flash{Kind: "error", Message: intl.MustT(ctx, "SignUp.Errors.Invalid")}
		c.render(w, r, http.StatusUnprocessableEntity, props)
		return
	}

	if _, err := c.authService.SignUp(ctx, dto.ToParams()); err != nil {
		if errors.Is(err, identity.ErrEmailTaken) {
			props.Errors = map[string]string{"Email": intl.MustT(ctx, "SignUp.Errors.EmailTaken")}
			props.Flash = &layouts.Flash{Kind: "error", Message: intl.MustT(ctx, "SignUp.Errors.EmailTaken")}
			c.render(w, r, http.StatusConflict, props)
			return
		}
		composables.UseLogger(ctx).WithError(err).Error("failed to sign up")
		props.Flash = &layouts.Flash{Kind: "error", Message: intl.MustT(ctx, "Errors.Internal")}
		c.render(w, r, http.StatusInternalServerError, props)
		return
	}

	shared.SetFlash(w, "success", []byte(intl.MustT(ctx, "SignUp.Success")))
	http.Redirect(w, r, "/login", http.StatusFound)
}
