package metrics

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/comfortcurators/portal/pkg/application"
)

const DefaultPath = "/debug/prometheus"

// PrometheusController exposes Registry. The path is an ops route, so the ops guard decides who
// may scrape it in production.
type PrometheusController struct {
	path    string
	handler http.Handler
}

func NewPrometheusController(path string, logger *logrus.Logger) application.Controller {
	if path == "" {
		path = DefaultPath
	}
	return &PrometheusController{
		path: path,
		handler: promhttp.HandlerFor(Registry, promhttp.HandlerOpts{
			ErrorLog:          logger.WithField("component", "metrics"),
			ErrorHandling:     promhttp.ContinueOnError,
			EnableOpenMetrics: true,
		}),
	}
}

func (c *PrometheusController) Key() string {
	return c.path
}

func (c *PrometheusController) Register(r *mux.Router) {
	r.Handle(c.path, c.handler).Methods(http.MethodGet)
}
