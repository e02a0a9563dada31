package routinggates

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/comfortcurators/portal/pkg/configuration"
	"github.com/comfortcurators/portal/pkg/itf"
	"github.com/comfortcurators/portal/pkg/middleware"
	"github.com/comfortcurators/portal/pkg/routing"
)

type apiError struct {
	Message string            `json:"message"`
	Code    string            `json:"code"`
	Meta    map[string]string `json:"meta"`
}

func TestErrorContracts_InternalAPI404IsJSON(t *testing.T) {
	suite := itf.HTTP(t)

	var payload apiError
	resp := suite.GET("/app/shell/tab/__nonexistent__").Expect(t).Status(http.StatusNotFound).JSON(&payload)
	require.Equal(t, "application/json", resp.Header("Content-Type"))
	require.Equal(t, "NOT_FOUND", payload.Code)
	require.Equal(t, "/app/shell/tab/__nonexistent__", payload.Meta["path"])
}

func TestErrorContracts_InternalAPI405IsJSON(t *testing.T) {
	suite := itf.HTTP(t).AsDemo()

	cases := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/app/map/views/abc/clicks"},
		{http.MethodGet, "/app/shell/abc/palette/toggle"},
		{http.MethodDelete, "/app/spotlight/search"},
	}
	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			var payload apiError
			resp := suite.Method(tc.method, tc.path).Expect(t).Status(http.StatusMethodNotAllowed).JSON(&payload)
			require.Equal(t, "application/json", resp.Header("Content-Type"))
			require.Equal(t, "METHOD_NOT_ALLOWED", payload.Code)
			require.Equal(t, tc.method, payload.Meta["method"])
			require.Equal(t, tc.path, payload.Meta["path"])
		})
	}
}

func TestErrorContracts_PageRoutesKeep405(t *testing.T) {
	suite := itf.HTTP(t).AsDemo()

	suite.GET("/logout").Expect(t).Status(http.StatusMethodNotAllowed)
	suite.Method(http.MethodPut, "/login").Expect(t).Status(http.StatusMethodNotAllowed)
}

func TestErrorContracts_UI404IsAPage(t *testing.T) {
	suite := itf.HTTP(t)

	resp := suite.GET("/__nonexistent_ui__").Expect(t).Status(http.StatusNotFound)
	require.NotEqual(t, "application/json", resp.Header("Content-Type"))
	resp.HTML().Element("//html").Exists()
}

func TestErrorContracts_PanicRecoveryIsJSON(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	h := middleware.WithLogger(logger, middleware.DefaultLoggerOptions())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "http://example.com/app/shell/tab/palette/toggle", nil)
	h.ServeHTTP(rr, req)

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	require.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var payload apiError
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&payload))
	require.Equal(t, "INTERNAL_SERVER_ERROR", payload.Code)
	require.Equal(t, "/app/shell/tab/palette/toggle", payload.Meta["path"])
	require.NotEmpty(t, payload.Meta["request_id"])
}

func TestOpsGuard_Production(t *testing.T) {
	conf := &configuration.Configuration{
		GoAppEnvironment: configuration.Production,
		RealIPHeader:     "X-Real-IP",
		OpsGuard: configuration.OpsGuardOptions{
			Enabled: true,
			Token:   "s3cret",
		},
	}
	_, classifier := serverClassifier(t)

	r := mux.NewRouter()
	r.Use(middleware.OpsGuard(conf, classifier))
	ok := func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }
	r.HandleFunc("/health", ok).Methods(http.MethodGet)
	r.HandleFunc("/debug/prometheus", ok).Methods(http.MethodGet)

	serve := func(path string, header http.Header) int {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "http://example.com"+path, nil)
		for k, v := range header {
			req.Header[k] = v
		}
		r.ServeHTTP(rr, req)
		return rr.Code
	}

	require.Equal(t, http.StatusOK, serve("/health", nil))
	require.Equal(t, http.StatusNotFound, serve("/debug/prometheus", nil))
	require.Equal(t, http.StatusOK, serve("/debug/prometheus", http.Header{"X-Ops-Token": {"s3cret"}}))
	require.Equal(t, http.StatusOK, serve("/debug/prometheus", http.Header{"Authorization": {"Bearer s3cret"}}))
	require.Equal(t, http.StatusNotFound, serve("/debug/prometheus", http.Header{"X-Ops-Token": {"wrong"}}))
	require.Equal(t, routing.RouteClassOps, classifier.ClassifyPath("/debug/prometheus"))
}
