package controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/comfortcurators/portal/pkg/itf"
)

func TestSectionsController(t *testing.T) {
	cases := []struct {
		path, key, title, subtitle, empty, hint string
	}{
		{
			path:     "/app/tickets",
			key:      "Tickets",
			title:    "Tickets",
			subtitle: "Manage and track work across your properties",
			empty:    "No tickets yet",
			hint:     "Tickets will be generated automatically from packages or created manually",
		},
		{
			path:     "/app/bundles",
			key:      "Bundles",
			title:    "Bundles",
			subtitle: "Create reusable item bundles for your properties",
			empty:    "No bundles yet",
			hint:     "Create bundles to group items for quick assignment to tickets",
		},
		{
			path:     "/app/packages",
			key:      "Packages",
			title:    "Packages",
			subtitle: "Create scheduled packages that auto-generate tickets",
			empty:    "No packages yet",
			hint:     "Packages automate ticket creation based on bookings or schedules",
		},
	}

	suite := itf.HTTP(t).AsDemo()
	for _, tc := range cases {
		t.Run(tc.key, func(t *testing.T) {
			resp := suite.GET(tc.path).Expect(t).Status(http.StatusOK)
			resp.Contains(tc.subtitle).Contains(tc.empty).Contains(tc.hint)

			html := resp.HTML()
			html.Element(`//*[@data-section="` + tc.key + `"]`).Exists()
			require.Equal(t, tc.title, html.Element(`//h1`).Text())
			require.Equal(t, tc.title, html.Element(`//a[@data-nav-item and @aria-current="page"]/span`).Text())
			require.Equal(t, "no-store", resp.Header("Cache-Control"))
		})
	}
}

func TestSectionsController_Unauthenticated(t *testing.T) {
	suite := itf.HTTP(t)

	suite.GET("/app/packages").Expect(t).Status(http.StatusFound).RedirectTo("/login?next=%2Fapp%2Fpackages")
}
