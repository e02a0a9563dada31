package controllers_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/comfortcurators/portal/modules/core/presentation/controllers"
	"github.com/comfortcurators/portal/pkg/itf"
)

func TestSafeNext(t *testing.T) {
	cases := map[string]string{
		"":                   "/app",
		"/app/tickets":       "/app/tickets",
		"/app/map?org=abc":   "/app/map?org=abc",
		"//evil.example":     "/app",
		"/\\evil.example":    "/app",
		"https://evil.test/": "/app",
		"relative/path":      "/app",
	}
	for in, want := range cases {
		require.Equal(t, want, controllers.SafeNext(in), "next=%q", in)
	}
}

func TestLoginController_Get(t *testing.T) {
	suite := itf.HTTP(t)

	resp := suite.GET("/login?next=%2Fapp%2Ftickets").Expect(t).Status(http.StatusOK)
	resp.Contains("Welcome back")
	require.Equal(t, "/app/tickets", resp.HTML().Element(`//input[@name="Next"]`).Attr("value"))
}

func TestLoginController_RedirectsSignedInUsers(t *testing.T) {
	suite := itf.HTTP(t).AsDemo()

	suite.GET("/login").Expect(t).Status(http.StatusFound).RedirectTo("/app")
	suite.GET("/signup").Expect(t).Status(http.StatusFound).RedirectTo("/app")
}

func TestLoginController_Post(t *testing.T) {
	suite := itf.HTTP(t)

	suite.POST("/login").
		Form(url.Values{
			"Email":    {itf.DemoEmail},
			"Password": {itf.DemoPassword},
			"Next":     {"/app/tickets"},
		}).
		Expect(t).
		Status(http.StatusFound).
		RedirectTo("/app/tickets")
	require.NotNil(t, suite.Cookie(itf.SessionCookie))

	suite.GET("/app/tickets").Expect(t).Status(http.StatusOK).Contains("No tickets yet")
}

func TestLoginController_Post_IgnoresOffsiteNext(t *testing.T) {
	suite := itf.HTTP(t)

	suite.POST("/login").
		Form(url.Values{
			"Email":    {itf.DemoEmail},
			"Password": {itf.DemoPassword},
			"Next":     {"//evil.example/phish"},
		}).
		Expect(t).
		Status(http.StatusFound).
		RedirectTo("/app")
}

func TestLoginController_Post_InvalidCredentials(t *testing.T) {
	suite := itf.HTTP(t)

	resp := suite.POST("/login").
		Form(url.Values{
			"Email":    {itf.DemoEmail},
			"Password": {"wrong-password"},
		}).
		Expect(t).
		Status(http.StatusFound)
	require.Equal(t, "/login?email=demo%40comfortcurators.in", resp.Header("Location"))
	require.Nil(t, suite.Cookie(itf.SessionCookie))

	page := suite.GET(resp.Header("Location")).Expect(t).Status(http.StatusOK)
	page.Contains("Invalid email or password")
	require.Equal(t, "error", page.HTML().Element(`//*[@data-flash]`).Attr("data-flash"))

	// The flash is shown once.
	suite.GET("/login").Expect(t).Status(http.StatusOK).NotContains("Invalid email or password")
}

func TestLoginController_Post_ValidationErrors(t *testing.T) {
	suite := itf.HTTP(t)

	suite.POST("/login").
		Form(url.Values{"Email": {"not-an-email"}}).
		Expect(t).
		Status(http.StatusFound).
		RedirectTo("/login?email=not-an-email")
	require.Nil(t, suite.Cookie(itf.SessionCookie))
}

func TestSignUpController_Post(t *testing.T) {
	suite := itf.HTTP(t)

	suite.POST("/signup").
		Form(url.Values{
			"FullName": {"Ravi Kumar"},
			"Email":    {"ravi@example.in"},
			"Password": {"secret1"},
		}).
		Expect(t).
		Status(http.StatusFound).
		RedirectTo("/login")
	require.Nil(t, suite.Cookie(itf.SessionCookie), "sign-up must not start a session")

	suite.GET("/login").Expect(t).Status(http.StatusOK).Contains("Account created! You can now sign in.")

	suite.POST("/login").
		Form(url.Values{"Email": {"ravi@example.in"}, "Password": {"secret1"}}).
		Expect(t).
		Status(http.StatusFound).
		RedirectTo("/app")
}

func TestSignUpController_Post_EmailTaken(t *testing.T) {
	suite := itf.HTTP(t)

	resp := suite.POST("/signup").
		Form(url.Values{
			"FullName": {"Someone Else"},
			"Email":    {itf.DemoEmail},
			"Password": {"secret1"},
		}).
		Expect(t).
		Status(http.StatusConflict)
	resp.Contains("An account with this email already exists")
	require.Equal(t, itf.DemoEmail, resp.HTML().Element(`//input[@name="Email"]`).Attr("value"))
}

func TestSignUpController_Post_Invalid(t *testing.T) {
	suite := itf.HTTP(t)

	resp := suite.POST("/signup").
		Form(url.Values{
			"FullName": {"Short Password"},
			"Email":    {"short@example.in"},
			"Password": {"123"},
		}).
		Expect(t).
		Status(http.StatusUnprocessableEntity)
	resp.Contains("Please correct the highlighted fields")
	require.Equal(t, "Short Password", resp.HTML().Element(`//input[@name="FullName"]`).Attr("value"))
}

func TestLogoutController(t *testing.T) {
	suite := itf.HTTP(t).AsDemo()
	suite.GET("/app/map").Expect(t).Status(http.StatusOK)

	resp := suite.POST("/logout").Expect(t).Status(http.StatusFound).RedirectTo("/login")
	require.Equal(t, `"cache"`, resp.Header("Clear-Site-Data"))
	require.Equal(t, "no-store", resp.Header("Cache-Control"))
	require.Nil(t, suite.Cookie(itf.SessionCookie))

	suite.GET("/app/map").Expect(t).Status(http.StatusFound).RedirectTo("/login?next=%2Fapp%2Fmap")
}

func TestLogoutController_RevokesSession(t *testing.T) {
	suite := itf.HTTP(t).AsDemo()
	stolen := suite.Cookie(itf.SessionCookie)
	require.NotNil(t, stolen)

	suite.POST("/logout").Expect(t).Status(http.StatusFound)

	// Replaying the old token does not restore access.
	suite.AsAnonymous()
	suite.GET("/app/map").
		Header("Cookie", stolen.Name+"="+stolen.Value).
		Expect(t).
		Status(http.StatusFound).
		RedirectTo("/login?next=%2Fapp%2Fmap")
}
