package middleware

import (
	"github.com/gorilla/mux"

	"github.com/comfortcurators/portal/modules/core/services"
	"github.com/comfortcurators/portal/pkg/application"
	"github.com/comfortcurators/portal/pkg/routing"
)

// ProtectedPage is the chain of every signed-in HTML page: session, organization context,
// navigation and a freshly mounted shell.
func ProtectedPage(app application.Application) []mux.MiddlewareFunc {
	authService := app.Service(services.AuthService{}).(*services.AuthService)
	return []mux.MiddlewareFunc{
		Authorize(authService, authService.CookieName()),
		RedirectNotAuthenticated(routing.DefaultClassifier()),
		NoStore(),
		ProvideLocalizer(app),
		ProvideOrgContext(app.Service(services.OrgContextService{}).(*services.OrgContextService)),
		NavItems(),
		WithPageContext(),
		ProvideShell(app.Service(services.ShellService{}).(*services.ShellService)),
	}
}

// ProtectedAPI is the chain of signed-in endpoints answering JSON or HTML fragments.
func ProtectedAPI(app application.Application) []mux.MiddlewareFunc {
	authService := app.Service(services.AuthService{}).(*services.AuthService)
	return []mux.MiddlewareFunc{
		Authorize(authService, authService.CookieName()),
		RedirectNotAuthenticated(routing.DefaultClassifier()),
		NoStore(),
		ProvideLocalizer(app),
		WithPageContext(),
	}
}

// PublicPage is the chain of pages reachable without a session.
func PublicPage(app application.Application) []mux.MiddlewareFunc {
	authService := app.Service(services.AuthService{}).(*services.AuthService)
	return []mux.MiddlewareFunc{
		Authorize(authService, authService.CookieName()),
		ProvideLocalizer(app),
		WithPageContext(),
	}
}
