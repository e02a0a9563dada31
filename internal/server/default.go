package server

import (
	"net/url"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/comfortcurators/portal/modules/core/presentation/controllers"
	"github.com/comfortcurators/portal/pkg/application"
	"github.com/comfortcurators/portal/pkg/configuration"
	"github.com/comfortcurators/portal/pkg/constants"
	"github.com/comfortcurators/portal/pkg/metrics"
	"github.com/comfortcurators/portal/pkg/middleware"
	"github.com/comfortcurators/portal/pkg/routing"
	"github.com/comfortcurators/portal/pkg/server"
)

type DefaultOptions struct {
	Logger        *logrus.Logger
	Configuration *configuration.Configuration
	Application   application.Application
	Pool          *pgxpool.Pool
}

// Default assembles the global middleware stack and the controllers every deployment has:
// static assets, metrics and the error pages.
func Default(options *DefaultOptions) (*server.HTTPServer, error) {
	app := options.Application
	conf := options.Configuration
	classifier := routing.DefaultClassifier()

	loggerOpts := middleware.DefaultLoggerOptions()
	loggerOpts.RequestIDHeader = conf.RequestIDHeader
	loggerOpts.RealIPHeader = conf.RealIPHeader
	loggerOpts.Classifier = classifier

	// Core middleware stack with tracing capabilities
	middlewares := []mux.MiddlewareFunc{
		middleware.WithLogger(options.Logger, loggerOpts),

		middleware.TracedMiddleware("database"),
		middleware.Provide(constants.AppKey, app),
		middleware.Provide(constants.PoolKey, options.Pool),

		middleware.TracedMiddleware("cors"),
		middleware.Cors(conf.Origin),

		middleware.TracedMiddleware("opsGuard"),
		middleware.OpsGuard(conf, classifier),
	}

	if conf.RateLimit.Enabled {
		store, err := middleware.NewStore(conf.RateLimit)
		if err != nil {
			options.Logger.WithError(err).Warn("Failed to create Redis store for rate limiting, falling back to memory")
			store = middleware.NewMemoryStore()
		}
		middlewares = append(middlewares,
			middleware.TracedMiddleware("rateLimit"),
			middleware.RateLimit(middleware.RateLimitConfig{
				RequestsPerPeriod: conf.RateLimit.GlobalRPS,
				Store:             store,
				RealIPHeader:      conf.RealIPHeader,
				Prefix:            "global",
			}),
		)
	}

	middlewares = append(middlewares,
		middleware.TracedMiddleware("requestParams"),
		middleware.RequestParams(conf.RealIPHeader),
		middleware.TracedMiddleware("csrf"),
		middleware.CSRF(conf.CSRFAuthKey, conf.Scheme() == "https", originHost(conf.Origin)),
	)

	app.RegisterMiddleware(middlewares...)

	app.RegisterControllers(controllers.NewStaticFilesController(app.HashFsAssets()))
	if conf.Prometheus.Enabled {
		app.RegisterControllers(metrics.NewPrometheusController(conf.Prometheus.Path, options.Logger))
	}

	return server.NewHTTPServer(
		app,
		controllers.NotFound(app),
		controllers.MethodNotAllowed(app),
	), nil
}

func originHost(origin string) string {
	u, err := url.Parse(origin)
	if err != nil || u.Host == "" {
		return origin
	}
	return u.Host
}
