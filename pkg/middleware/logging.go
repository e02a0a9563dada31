package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"runtime/debug"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/comfortcurators/portal/pkg/composables"
	"github.com/comfortcurators/portal/pkg/httpapi"
	"github.com/comfortcurators/portal/pkg/routing"
)

type LoggerOptions struct {
	// LogRequestBody logs JSON and form bodies of mutating requests, with secrets redacted.
	LogRequestBody bool
	MaxBodyLength  int

	RequestIDHeader string
	RealIPHeader    string
	// Classifier decides whether a recovered panic is answered with JSON or plain text.
	Classifier *routing.Classifier
}

func DefaultLoggerOptions() LoggerOptions {
	return LoggerOptions{
		LogRequestBody:  true,
		MaxBodyLength:   512,
		RequestIDHeader: "X-Request-ID",
		RealIPHeader:    "X-Real-IP",
	}
}

var redactedFields = map[string]struct{}{
	"Password":           {},
	"password":           {},
	"csrf_token":         {},
	"gorilla.csrf.Token": {},
}

var tracer = otel.Tracer("comfort-curators-middleware")

var propagator = propagation.TraceContext{}

// statusRecorder remembers the status written by the handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (w *statusRecorder) WriteHeader(code int) {
	if w.status == 0 {
		w.status = code
		w.ResponseWriter.WriteHeader(code)
	}
}

func (w *statusRecorder) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	return w.ResponseWriter.Write(b)
}

func (w *statusRecorder) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (w *statusRecorder) Status() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}

// TracedMiddleware opens a span named after a stage of the middleware chain.
func TracedMiddleware(name string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := tracer.Start(r.Context(), "middleware."+name,
				trace.WithAttributes(attribute.String("middleware.name", name)),
			)
			defer span.End()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithLogger gives every request an id, a span and a logger carrying both, logs its start and
// completion, and turns panics into 500 answers.
func WithLogger(logger *logrus.Logger, opts LoggerOptions) mux.MiddlewareFunc {
	classifier := opts.Classifier
	if classifier == nil {
		classifier = routing.NewClassifier(routing.DefaultRules())
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			requestID := r.Header.Get(opts.RequestIDHeader)
			if opts.RequestIDHeader == "" || requestID == "" {
				requestID = uuid.NewString()
			}
			ip, _ := realIP(r, opts.RealIPHeader)

			entry := logger.WithFields(logrus.Fields{
				"request-id": requestID,
				"path":       r.RequestURI,
				"method":     r.Method,
			})

			ctx := propagator.Extract(r.Context(), propagation.HeaderCarrier(r.Header))
			ctx, span := tracer.Start(ctx, "http.request", trace.WithAttributes(
				attribute.String("http.method", r.Method),
				attribute.String("http.route", r.URL.Path),
				attribute.String("http.request_id", requestID),
				attribute.String("net.peer.ip", ip),
			))
			defer span.End()

			if sc := span.SpanContext(); sc.HasTraceID() {
				propagator.Inject(ctx, propagation.HeaderCarrier(w.Header()))
				w.Header().Set("X-Trace-Id", sc.TraceID().String())
				w.Header().Set("X-Span-Id", sc.SpanID().String())
				entry = entry.WithFields(logrus.Fields{
					"trace-id": sc.TraceID().String(),
					"span-id":  sc.SpanID().String(),
				})
			}
			w.Header().Set("X-Request-Id", requestID)

			entry.WithFields(logrus.Fields{
				"ip":         ip,
				"user-agent": r.UserAgent(),
			}).Info("request started")
			if opts.LogRequestBody {
				logRequestBody(entry, r, opts.MaxBodyLength)
			}

			rec := &statusRecorder{ResponseWriter: w}
			defer func() {
				recovered := recover()
				if recovered == nil {
					return
				}
				entry.WithFields(logrus.Fields{
					"panic":    recovered,
					"stack":    string(debug.Stack()),
					"duration": time.Since(start),
				}).Error("panic recovered in request handler")
				span.SetAttributes(attribute.Int("http.status_code", http.StatusInternalServerError))
				if rec.status != 0 {
					return
				}
				if classifier.WantsJSON(r.URL.Path) {
					_ = httpapi.WriteError(rec, http.StatusInternalServerError, httpapi.CodeInternalServerError,
						"internal server error", map[string]string{"request_id": requestID, "path": r.URL.Path})
					return
				}
				http.Error(rec, "Internal Server Error", http.StatusInternalServerError)
			}()

			next.ServeHTTP(rec, r.WithContext(composables.WithLogger(ctx, entry)))

			duration := time.Since(start)
			status := rec.Status()
			entry.WithFields(logrus.Fields{
				"duration":     duration,
				"status-code":  status,
				"status-class": status / 100,
			}).Info("request completed")
			span.SetAttributes(
				attribute.Int64("http.request_duration_ms", duration.Milliseconds()),
				attribute.Int("http.status_code", status),
			)
		})
	}
}

// logRequestBody logs the body of a mutating request and puts it back for the handler. At most
// httpapi.MaxBodyBytes+1 bytes are read here; handlers own body validation and limits.
func logRequestBody(entry *logrus.Entry, r *http.Request, limit int) {
	if r.Body == nil || r.Method == http.MethodGet || r.Method == http.MethodHead {
		return
	}
	contentType := strings.ToLower(r.Header.Get("Content-Type"))
	isJSON := strings.Contains(contentType, "application/json")
	isForm := strings.Contains(contentType, "application/x-www-form-urlencoded")
	if !isJSON && !isForm {
		return
	}

	raw, err := io.ReadAll(io.LimitReader(r.Body, httpapi.MaxBodyBytes+1))
	if err != nil {
		entry.WithError(err).Warn("failed to read request-body")
	}
	r.Body = replayBody{Reader: io.MultiReader(bytes.NewReader(raw), r.Body), Closer: r.Body}

	switch {
	case len(raw) > httpapi.MaxBodyBytes:
		entry.WithField("request-body-bytes", len(raw)).Warn("request-body over limit, not logged")
	case isJSON && !json.Valid(raw):
		entry.WithField("request-body", truncate(string(raw), limit)).Warn("malformed JSON request-body")
	case isJSON:
		entry.WithField("request-body", truncate(string(raw), limit)).Info("JSON request-body")
	default:
		values, err := url.ParseQuery(string(raw))
		if err != nil {
			entry.WithError(err).Warn("malformed form request-body")
			return
		}
		entry.WithField("request-body", redactForm(values)).Info("form request-body")
	}
}

// replayBody serves the bytes already read before the rest of the original body.
type replayBody struct {
	io.Reader
	io.Closer
}

func redactForm(values url.Values) map[string]string {
	out := make(map[string]string, len(values))
	for key, v := range values {
		if _, secret := redactedFields[key]; secret {
			out[key] = "[redacted]"
			continue
		}
		out[key] = strings.Join(v, ",")
	}
	return out
}

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
