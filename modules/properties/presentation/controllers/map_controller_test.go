package controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/comfortcurators/portal/modules/properties/services"
	"github.com/comfortcurators/portal/pkg/itf"
)

type addModeResponse struct {
	Adding bool   `json:"adding"`
	Label  string `json:"label"`
}

type clickResponse struct {
	Captured bool   `json:"captured"`
	Adding   bool   `json:"adding"`
	Label    string `json:"label"`
}

type locateResponse struct {
	Moved  bool `json:"moved"`
	Camera struct {
		Lng  float64 `json:"lng"`
		Lat  float64 `json:"lat"`
		Zoom float64 `json:"zoom"`
	} `json:"camera"`
}

type errorResponse struct {
	Code string            `json:"code"`
	Meta map[string]string `json:"meta"`
}

func openMap(t *testing.T, suite *itf.Suite) string {
	t.Helper()
	resp := suite.GET("/app/map").Expect(t).Status(http.StatusOK)
	view := resp.HTML().Element(`//*[@data-map]`).Attr("data-view")
	require.NotEmpty(t, view)
	return view
}

func TestMapController_Page(t *testing.T) {
	suite := itf.HTTP(t).AsDemo()

	resp := suite.GET("/app/map").Expect(t).Status(http.StatusOK)
	html := resp.HTML()
	m := html.Element(`//*[@data-map]`)
	require.Equal(t, "https://tiles.test/{z}/{x}/{y}.png", m.Attr("data-tiles"))
	require.Equal(t, "78.9629", m.Attr("data-lng"))
	require.Equal(t, "20.5937", m.Attr("data-lat"))
	require.Equal(t, "5", m.Attr("data-zoom"))
	require.Equal(t, "false", m.Attr("data-adding"))
	require.Equal(t, "Add Property", html.Element(`//*[@data-map-add-label]`).Text())
	require.Equal(t, "No properties yet", html.Element(`//*[@data-map-empty]//h3`).Text())
	require.Equal(t, "Add your first property", html.Element(`//*[@data-map-enable-add]`).Text())
	require.Contains(t, html.Element(`//*[@data-map-selection]`).Attr("class"), "hidden")
	require.Equal(t, "Map", html.Element(`//a[@data-nav-item and @aria-current="page"]/span`).Text())
}

func TestMapController_OpensOneViewPerRender(t *testing.T) {
	suite := itf.HTTP(t).AsDemo()
	svc := itf.GetService[services.MapViewService](suite.Env())

	first := openMap(t, suite)
	second := openMap(t, suite)
	require.NotEqual(t, first, second)
	require.Equal(t, 2, svc.Views().Len())

	v, ok := svc.Views().Get(first)
	require.True(t, ok)
	require.NotEqual(t, "00000000-0000-0000-0000-000000000000", v.OrgID().String())
}

func TestMapController_AddMode(t *testing.T) {
	suite := itf.HTTP(t).AsDemo()
	view := openMap(t, suite)
	base := "/app/map/views/" + view

	var res addModeResponse
	suite.POST(base + "/add-mode").Expect(t).Status(http.StatusOK).JSON(&res)
	require.Equal(t, addModeResponse{Adding: true, Label: "Click map to add"}, res)

	suite.POST(base + "/add-mode").Expect(t).Status(http.StatusOK).JSON(&res)
	require.Equal(t, addModeResponse{Adding: false, Label: "Add Property"}, res)

	suite.POST(base + "/add-mode/enable").Expect(t).Status(http.StatusOK).JSON(&res)
	require.True(t, res.Adding)
	suite.POST(base + "/add-mode/enable").Expect(t).Status(http.StatusOK).JSON(&res)
	require.True(t, res.Adding, "enabling twice keeps add mode on")
}

func TestMapController_ViewOfAnotherUser(t *testing.T) {
	suite := itf.HTTP(t).AsDemo()
	base := "/app/map/views/" + openMap(t, suite)

	suite.AsUser(itf.NewHostEmail, itf.DemoPassword)
	suite.POST(base + "/add-mode").Expect(t).Status(http.StatusNotFound)
	suite.POST(base + "/release").Expect(t).Status(http.StatusNoContent)

	suite.AsDemo()
	var res addModeResponse
	suite.POST(base + "/add-mode").Expect(t).Status(http.StatusOK).JSON(&res)
	require.True(t, res.Adding)
}

func TestMapController_Clicks(t *testing.T) {
	suite := itf.HTTP(t).AsDemo()
	view := openMap(t, suite)
	base := "/app/map/views/" + view

	var res clickResponse
	suite.POST(base + "/clicks").
		JSON(map[string]float64{"lng": 73.8278, "lat": 15.4909}).
		Expect(t).
		Status(http.StatusOK).
		JSON(&res)
	require.Equal(t, clickResponse{Captured: false, Adding: false, Label: "Add Property"}, res)

	suite.POST(base + "/add-mode").Expect(t).Status(http.StatusOK)
	suite.POST(base + "/clicks").
		JSON(map[string]float64{"lng": 73.8278, "lat": 15.4909}).
		Expect(t).
		Status(http.StatusOK).
		JSON(&res)
	require.Equal(t, clickResponse{Captured: true, Adding: false, Label: "Add Property"}, res)
}

func TestMapController_InvalidClicks(t *testing.T) {
	suite := itf.HTTP(t).AsDemo()
	view := openMap(t, suite)
	base := "/app/map/views/" + view
	suite.POST(base + "/add-mode").Expect(t).Status(http.StatusOK)

	var res errorResponse
	suite.POST(base + "/clicks").
		JSON(map[string]float64{"lng": 200, "lat": 15}).
		Expect(t).
		Status(http.StatusBadRequest).
		JSON(&res)
	require.Equal(t, "INVALID_COORDINATE", res.Code)

	suite.POST(base + "/clicks").
		JSON(map[string]float64{"lng": 73.8}).
		Expect(t).
		Status(http.StatusBadRequest).
		JSON(&res)
	require.Equal(t, "INVALID_COORDINATE", res.Code)

	suite.POST(base+"/clicks").
		Raw("application/json", "{not json").
		Expect(t).
		Status(http.StatusBadRequest).
		JSON(&res)
	require.Equal(t, "INVALID_REQUEST", res.Code)

	// Add mode survives rejected clicks.
	var mode addModeResponse
	suite.POST(base + "/add-mode/enable").Expect(t).Status(http.StatusOK).JSON(&mode)
	require.True(t, mode.Adding)
}

func TestMapController_Locate(t *testing.T) {
	suite := itf.HTTP(t).AsDemo()
	view := openMap(t, suite)
	base := "/app/map/views/" + view

	var res locateResponse
	suite.POST(base + "/locate").
		JSON(map[string]float64{"lng": 72.8777, "lat": 19.076}).
		Expect(t).
		Status(http.StatusOK).
		JSON(&res)
	require.True(t, res.Moved)
	require.InDelta(t, 72.8777, res.Camera.Lng, 1e-9)
	require.InDelta(t, 19.076, res.Camera.Lat, 1e-9)
	require.InDelta(t, 14, res.Camera.Zoom, 1e-9)

	suite.POST(base + "/locate").
		JSON(map[string]string{"error": "User denied Geolocation"}).
		Expect(t).
		Status(http.StatusOK).
		JSON(&res)
	require.False(t, res.Moved)
	require.InDelta(t, 72.8777, res.Camera.Lng, 1e-9, "a failed lookup keeps the camera")
}

func TestMapController_CloseSelection(t *testing.T) {
	suite := itf.HTTP(t).AsDemo()
	view := openMap(t, suite)

	suite.POST("/app/map/views/" + view + "/selection/close").
		Expect(t).
		Status(http.StatusOK).
		Contains(`"open":false`)
}

func TestMapController_Release(t *testing.T) {
	suite := itf.HTTP(t).AsDemo()
	view := openMap(t, suite)
	base := "/app/map/views/" + view

	suite.POST(base + "/release").Expect(t).Status(http.StatusNoContent)
	suite.POST(base + "/release").Expect(t).Status(http.StatusNoContent)

	var res errorResponse
	suite.POST(base + "/add-mode").Expect(t).Status(http.StatusNotFound).JSON(&res)
	require.Equal(t, "VIEW_NOT_FOUND", res.Code)
	require.Equal(t, view, res.Meta["view"])
}

func TestMapController_Unauthenticated(t *testing.T) {
	suite := itf.HTTP(t)

	suite.GET("/app/map").Expect(t).Status(http.StatusFound).RedirectTo("/login?next=%2Fapp%2Fmap")

	var res errorResponse
	suite.POST("/app/map/views/whatever/add-mode").Expect(t).Status(http.StatusUnauthorized).JSON(&res)
	require.Equal(t, "UNAUTHENTICATED", res.Code)
}
