package controllers_test

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/comfortcurators/portal/pkg/itf"
)

type paletteResponse struct {
	Open     bool   `json:"open"`
	Navigate string `json:"navigate"`
}

type errorResponse struct {
	Code string            `json:"code"`
	Meta map[string]string `json:"meta"`
}

// mountTab renders a page and returns the id of the tab it mounted.
func mountTab(t *testing.T, suite *itf.Suite, path string) string {
	t.Helper()
	resp := suite.GET(path).Expect(t).Status(http.StatusOK)
	tab := resp.HTML().Element(`//*[@data-palette]`).Attr("data-tab")
	require.NotEmpty(t, tab)
	return tab
}

func TestProtectedPages_RedirectToLogin(t *testing.T) {
	suite := itf.HTTP(t)

	for _, path := range []string{"/app/map", "/app/tickets", "/app/bundles", "/app/packages", "/app/settings"} {
		suite.GET(path).
			Expect(t).
			Status(http.StatusFound).
			RedirectTo("/login?" + url.Values{"next": {path}}.Encode())
	}
	suite.GET("/app/tickets?org=123").
		Expect(t).
		Status(http.StatusFound).
		RedirectTo("/login?next=%2Fapp%2Ftickets%3Forg%3D123")
}

func TestProtectedAPI_Unauthenticated(t *testing.T) {
	suite := itf.HTTP(t)

	var body errorResponse
	suite.POST("/app/shell/anything/palette/toggle").
		Expect(t).
		Status(http.StatusUnauthorized).
		JSON(&body)
	require.Equal(t, "UNAUTHENTICATED", body.Code)
}

func TestAppController_Root(t *testing.T) {
	suite := itf.HTTP(t).AsDemo()

	suite.GET("/app").Expect(t).Status(http.StatusFound).RedirectTo("/app/map")
	suite.GET("/app/?org=abc").Expect(t).Status(http.StatusFound).RedirectTo("/app/map?org=abc")
}

func TestShell_NavigationMarksActiveItem(t *testing.T) {
	suite := itf.HTTP(t).AsDemo()

	resp := suite.GET("/app/bundles").Expect(t).Status(http.StatusOK)
	html := resp.HTML()
	require.Len(t, html.Elements(`//a[@data-nav-item]`), 5)
	require.Len(t, html.Elements(`//a[@data-nav-item and @aria-current="page"]`), 1)
	require.Equal(t, "Bundles", html.Element(`//a[@data-nav-item and @aria-current="page"]/span`).Text())
}

func TestShell_OrganizationSwitcher(t *testing.T) {
	suite := itf.HTTP(t).AsDemo()

	resp := suite.GET("/app/tickets").Expect(t).Status(http.StatusOK)
	html := resp.HTML()
	html.Element(`//*[@data-org-switcher]`).Exists()
	options := html.Elements(`//*[@data-org-option]`)
	require.Len(t, options, 2, "invited memberships are not listed")
	require.Equal(t, "Goa Coastal Stays", html.Element(`//*[@data-org-current]`).Text())
	require.Equal(t, "Asha Rao", html.Element(`//*[@data-header-label]`).Text())
	require.Equal(t, "AR", html.Element(`//*[@data-initials]`).Text())

	// Choosing another organization keeps it selected across navigation.
	mumbai := html.Element(`//*[@data-org-option][text()="Mumbai City Lofts"]`).Attr("data-org-option")
	resp = suite.GET("/app/tickets?org=" + mumbai).Expect(t).Status(http.StatusOK)
	html = resp.HTML()
	require.Equal(t, "Mumbai City Lofts", html.Element(`//*[@data-org-current]`).Text())
	for _, href := range []string{
		html.Element(`//a[@data-nav-item][span="Map"]`).Attr("href"),
		html.Element(`//a[@data-nav-item][span="Packages"]`).Attr("href"),
	} {
		require.True(t, strings.HasSuffix(href, "?org="+mumbai), href)
	}
}

func TestShell_NoOrganizations(t *testing.T) {
	suite := itf.HTTP(t).AsUser(itf.NewHostEmail, itf.DemoPassword)

	resp := suite.GET("/app/tickets").Expect(t).Status(http.StatusOK)
	html := resp.HTML()
	html.Element(`//*[@data-org-switcher]`).NotExists()
	require.Equal(t, itf.NewHostEmail, html.Element(`//*[@data-header-label]`).Text())
	require.Equal(t, "Account", html.Element(`//*[@data-menu-label]`).Text())
	resp.Contains("No tickets yet")
}

func TestShellController_Palette(t *testing.T) {
	suite := itf.HTTP(t).AsDemo()
	tab := mountTab(t, suite, "/app/map")
	base := "/app/shell/" + tab

	var res paletteResponse
	suite.POST(base + "/palette/toggle").Expect(t).Status(http.StatusOK).JSON(&res)
	require.True(t, res.Open)
	suite.POST(base + "/palette/toggle").Expect(t).Status(http.StatusOK).JSON(&res)
	require.False(t, res.Open)

	suite.POST(base + "/palette/toggle").Expect(t).Status(http.StatusOK)
	suite.POST(base + "/palette/close").Expect(t).Status(http.StatusOK).JSON(&res)
	require.False(t, res.Open)
}

func TestShellController_Shortcut(t *testing.T) {
	suite := itf.HTTP(t).AsDemo()
	tab := mountTab(t, suite, "/app/map")
	path := "/app/shell/" + tab + "/shortcut"

	var res struct {
		Consumed bool `json:"consumed"`
		Open     bool `json:"open"`
	}
	suite.POST(path).Form(url.Values{"key": {"k"}, "meta": {"true"}}).Expect(t).Status(http.StatusOK).JSON(&res)
	require.True(t, res.Consumed)
	require.True(t, res.Open)

	suite.POST(path).Form(url.Values{"key": {"K"}, "ctrl": {"true"}}).Expect(t).Status(http.StatusOK).JSON(&res)
	require.True(t, res.Consumed)
	require.False(t, res.Open)

	suite.POST(path).Form(url.Values{"key": {"k"}}).Expect(t).Status(http.StatusOK).JSON(&res)
	require.False(t, res.Consumed)
	require.False(t, res.Open)
}

func TestShellController_Select(t *testing.T) {
	suite := itf.HTTP(t).AsDemo()
	tab := mountTab(t, suite, "/app/map")
	base := "/app/shell/" + tab

	suite.POST(base + "/palette/toggle").Expect(t).Status(http.StatusOK)

	var res paletteResponse
	suite.POST(base + "/palette/select").
		Form(url.Values{"href": {"/app/tickets"}}).
		Expect(t).
		Status(http.StatusOK).
		JSON(&res)
	require.False(t, res.Open)
	require.True(t, strings.HasPrefix(res.Navigate, "/app/tickets?org="), res.Navigate)

	var bad errorResponse
	suite.POST(base + "/palette/select").
		Form(url.Values{"href": {"/elsewhere"}}).
		Expect(t).
		Status(http.StatusBadRequest).
		JSON(&bad)
	require.Equal(t, "UNKNOWN_COMMAND", bad.Code)
}

func TestShellController_Select_WithoutOrganization(t *testing.T) {
	suite := itf.HTTP(t).AsUser(itf.NewHostEmail, itf.DemoPassword)
	tab := mountTab(t, suite, "/app/tickets")

	var res paletteResponse
	suite.POST("/app/shell/" + tab + "/palette/select").
		Form(url.Values{"href": {"/app/property/new"}}).
		Expect(t).
		Status(http.StatusOK).
		JSON(&res)
	require.Equal(t, "/app/property/new", res.Navigate)
}

func TestShellController_UnknownTab(t *testing.T) {
	suite := itf.HTTP(t).AsDemo()

	var res errorResponse
	suite.POST("/app/shell/missing/palette/toggle").
		Expect(t).
		Status(http.StatusNotFound).
		JSON(&res)
	require.Equal(t, "TAB_NOT_FOUND", res.Code)
	require.Equal(t, "missing", res.Meta["tab"])
}

func TestShellController_Release(t *testing.T) {
	suite := itf.HTTP(t).AsDemo()
	tab := mountTab(t, suite, "/app/map")

	suite.POST("/app/shell/" + tab + "/release").Expect(t).Status(http.StatusNoContent)
	suite.POST("/app/shell/" + tab + "/palette/toggle").Expect(t).Status(http.StatusNotFound)
	// Releasing twice is harmless.
	suite.POST("/app/shell/" + tab + "/release").Expect(t).Status(http.StatusNoContent)
}

func TestShellController_TabOfAnotherUser(t *testing.T) {
	suite := itf.HTTP(t).AsDemo()
	tab := mountTab(t, suite, "/app/map")
	base := "/app/shell/" + tab

	suite.AsUser(itf.NewHostEmail, itf.DemoPassword)
	var res errorResponse
	suite.POST(base + "/palette/toggle").Expect(t).Status(http.StatusNotFound).JSON(&res)
	require.Equal(t, "TAB_NOT_FOUND", res.Code)
	suite.POST(base + "/release").Expect(t).Status(http.StatusNoContent)

	suite.AsDemo()
	var palette paletteResponse
	suite.POST(base + "/palette/toggle").Expect(t).Status(http.StatusOK).JSON(&palette)
	require.True(t, palette.Open)
}

func TestSpotlightController_Search(t *testing.T) {
	suite := itf.HTTP(t).AsDemo()

	resp := suite.GET("/app/spotlight/search?q=tick").Expect(t).Status(http.StatusOK)
	commands := resp.HTML().Elements(`//*[@data-palette-command]`)
	hrefs := make([]string, 0, len(commands))
	for _, c := range commands {
		for _, a := range c.Attr {
			if a.Key == "data-href" {
				hrefs = append(hrefs, a.Val)
			}
		}
	}
	require.ElementsMatch(t, []string{"/app/tickets", "/app/tickets/new"}, hrefs)

	suite.GET("/app/spotlight/search?q=zzzzqq").Expect(t).Status(http.StatusOK).Contains("No results found.")
}

func TestSpotlightController_EmptyQueryListsEverything(t *testing.T) {
	suite := itf.HTTP(t).AsDemo()

	resp := suite.GET("/app/spotlight/search").Expect(t).Status(http.StatusOK)
	require.Equal(t, 2, resp.Select("[data-palette-group]").Length())
	resp.Contains("Navigation").Contains("Quick Actions")
	resp.Contains("Add Property").Contains("Create Ticket")
}

func TestComingSoonPages(t *testing.T) {
	suite := itf.HTTP(t).AsDemo()

	suite.GET("/app/property/new").Expect(t).Status(http.StatusOK).Contains("Add Property").Contains("Coming soon")
	suite.GET("/app/tickets/new").Expect(t).Status(http.StatusOK).Contains("Create Ticket").Contains("Coming soon")
}

func TestHealthController(t *testing.T) {
	suite := itf.HTTP(t)

	suite.GET("/health").Expect(t).Status(http.StatusOK).Contains(`"status":"ok"`)
}

func TestErrorPages(t *testing.T) {
	suite := itf.HTTP(t)

	suite.GET("/does-not-exist").Expect(t).Status(http.StatusNotFound)
}
