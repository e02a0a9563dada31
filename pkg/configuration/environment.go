package configuration

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/iota-uz/utils/fs"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/comfortcurators/portal/pkg/logging"
)

const Production = "production"

const (
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

var singleton = sync.OnceValue(func() *Configuration {
	c := &Configuration{}
	if err := c.load([]string{".env", ".env.local"}); err != nil {
		c.Unload()
		panic(err)
	}
	return c
})

// LoadEnv loads the given env files from the working directory, falling back to the module
// root (the nearest parent containing go.mod) for files missing in the working directory.
func LoadEnv(envFiles []string) (int, error) {
	root, hasRoot := "", false
	if wd, err := os.Getwd(); err == nil {
		root, hasRoot = findGoModRoot(wd)
	}

	existingFiles := make([]string, 0, len(envFiles))
	for _, file := range envFiles {
		if fs.FileExists(file) {
			existingFiles = append(existingFiles, file)
			continue
		}
		if hasRoot && !filepath.IsAbs(file) {
			candidate := filepath.Join(root, file)
			if fs.FileExists(candidate) {
				existingFiles = append(existingFiles, candidate)
			}
		}
	}

	if len(existingFiles) == 0 {
		return 0, nil
	}

	return len(existingFiles), godotenv.Load(existingFiles...)
}

func findGoModRoot(start string) (string, bool) {
	dir := start
	for {
		if fs.FileExists(filepath.Join(dir, "go.mod")) {
			return dir, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

type DatabaseOptions struct {
	Opts     string `env:"-"`
	Name     string `env:"DB_NAME" envDefault:"comfort_curators"`
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     string `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER" envDefault:"postgres"`
	Password string `env:"DB_PASSWORD" envDefault:"postgres"`
}

func (d *DatabaseOptions) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s dbname=%s password=%s sslmode=disable",
		d.Host, d.Port, d.User, d.Name, d.Password,
	)
}

// MapOptions configures the tile source and the initial camera of the map view.
type MapOptions struct {
	TileURLTemplate string  `env:"MAP_TILE_URL_TEMPLATE" envDefault:"https://tile.openstreetmap.org/{z}/{x}/{y}.png"`
	Attribution     string  `env:"MAP_ATTRIBUTION" envDefault:"© OpenStreetMap contributors"`
	TileSize        int     `env:"MAP_TILE_SIZE" envDefault:"256"`
	DefaultLng      float64 `env:"MAP_DEFAULT_LNG" envDefault:"78.9629"`
	DefaultLat      float64 `env:"MAP_DEFAULT_LAT" envDefault:"20.5937"`
	DefaultZoom     float64 `env:"MAP_DEFAULT_ZOOM" envDefault:"5"`
	LocateZoom      float64 `env:"MAP_LOCATE_ZOOM" envDefault:"14"`
	MinZoom         float64 `env:"MAP_MIN_ZOOM" envDefault:"0"`
	MaxZoom         float64 `env:"MAP_MAX_ZOOM" envDefault:"22"`
}

func (m *MapOptions) Validate() error {
	if strings.TrimSpace(m.TileURLTemplate) == "" {
		return fmt.Errorf("MAP_TILE_URL_TEMPLATE must not be empty")
	}
	if m.DefaultLng < -180 || m.DefaultLng > 180 {
		return fmt.Errorf("MAP_DEFAULT_LNG out of range: %v", m.DefaultLng)
	}
	if m.DefaultLat < -90 || m.DefaultLat > 90 {
		return fmt.Errorf("MAP_DEFAULT_LAT out of range: %v", m.DefaultLat)
	}
	if m.MinZoom > m.MaxZoom {
		return fmt.Errorf("MAP_MIN_ZOOM (%v) is greater than MAP_MAX_ZOOM (%v)", m.MinZoom, m.MaxZoom)
	}
	if m.DefaultZoom < m.MinZoom || m.DefaultZoom > m.MaxZoom {
		return fmt.Errorf("MAP_DEFAULT_ZOOM out of range: %v", m.DefaultZoom)
	}
	if m.LocateZoom < m.MinZoom || m.LocateZoom > m.MaxZoom {
		return fmt.Errorf("MAP_LOCATE_ZOOM out of range: %v", m.LocateZoom)
	}
	return nil
}

type LogOptions struct {
	AppName string `env:"LOG_APP_NAME" envDefault:"comfort-curators"`
	LogPath string `env:"LOG_PATH" envDefault:"./logs/app.log"`
}

type OpenTelemetryOptions struct {
	Enabled     bool   `env:"OTEL_ENABLED" envDefault:"false"`
	TempoURL    string `env:"OTEL_TEMPO_URL" envDefault:"localhost:4318"`
	ServiceName string `env:"OTEL_SERVICE_NAME" envDefault:"comfort-curators"`
}

type PrometheusOptions struct {
	Enabled bool   `env:"PROMETHEUS_METRICS_ENABLED" envDefault:"false"`
	Path    string `env:"PROMETHEUS_METRICS_PATH" envDefault:"/debug/prometheus"`
}

type RateLimitOptions struct {
	Enabled   bool   `env:"RATE_LIMIT_ENABLED" envDefault:"true"`
	GlobalRPS int    `env:"RATE_LIMIT_GLOBAL_RPS" envDefault:"1000"`
	AuthPerIP int    `env:"RATE_LIMIT_AUTH_PER_MINUTE" envDefault:"10"`
	Storage   string `env:"RATE_LIMIT_STORAGE" envDefault:"memory"` // memory or redis
	RedisURL  string `env:"RATE_LIMIT_REDIS_URL"`
}

// Validate checks the rate limit configuration for errors
func (r *RateLimitOptions) Validate() error {
	if r.GlobalRPS < 0 {
		return fmt.Errorf("rate limit GlobalRPS must be non-negative, got %d", r.GlobalRPS)
	}
	if r.GlobalRPS > 1000000 {
		return fmt.Errorf("rate limit GlobalRPS too high, maximum is 1,000,000, got %d", r.GlobalRPS)
	}
	if r.AuthPerIP < 0 {
		return fmt.Errorf("rate limit AuthPerIP must be non-negative, got %d", r.AuthPerIP)
	}
	if r.Storage != "memory" && r.Storage != "redis" {
		return fmt.Errorf("rate limit Storage must be 'memory' or 'redis', got '%s'", r.Storage)
	}
	if r.Storage == "redis" && r.RedisURL == "" {
		return fmt.Errorf("rate limit RedisURL is required when Storage is 'redis'")
	}
	return nil
}

// OpsGuardOptions restricts ops routes (metrics) in production to trusted networks or a token.
type OpsGuardOptions struct {
	Enabled bool   `env:"OPS_GUARD_ENABLED" envDefault:"true"`
	CIDRs   string `env:"OPS_GUARD_CIDRS"`
	Token   string `env:"OPS_GUARD_TOKEN"`
}

type Configuration struct {
	Database      DatabaseOptions
	Map           MapOptions
	Log           LogOptions
	OpenTelemetry OpenTelemetryOptions
	Prometheus    PrometheusOptions
	RateLimit     RateLimitOptions
	OpsGuard      OpsGuardOptions

	// postgres or memory; memory keeps everything in process and seeds demo data at boot.
	DataBackend      string        `env:"DATA_BACKEND" envDefault:"postgres"`
	ServerPort       int           `env:"PORT" envDefault:"3200"`
	SessionDuration  time.Duration `env:"SESSION_DURATION" envDefault:"720h"`
	UIStateTTL       time.Duration `env:"UI_STATE_TTL" envDefault:"30m"`
	GoAppEnvironment string        `env:"GO_APP_ENV" envDefault:"development"`
	SocketAddress    string        `env:"-"`
	Domain           string        `env:"DOMAIN" envDefault:"localhost"`
	Origin           string        `env:"ORIGIN" envDefault:"http://localhost:3200"`
	LogLevel         string        `env:"LOG_LEVEL" envDefault:"error"`
	// 32 byte key; CSRF protection for form posts is enabled only when set.
	CSRFAuthKey string `env:"CSRF_AUTH_KEY"`
	// Looked up on every request, a random uuidv4 is generated when absent.
	RequestIDHeader string `env:"REQUEST_ID_HEADER" envDefault:"X-Request-ID"`
	// Falls back to request.RemoteAddr when absent.
	RealIPHeader string `env:"REAL_IP_HEADER" envDefault:"X-Real-IP"`
	// Session ID cookie key
	SidCookieKey string `env:"SID_COOKIE_KEY" envDefault:"sid"`

	logFile *os.File
	logger  *logrus.Logger
}

func (c *Configuration) Logger() *logrus.Logger {
	return c.logger
}

func (c *Configuration) LogrusLogLevel() logrus.Level {
	switch c.LogLevel {
	case "silent":
		return logrus.PanicLevel
	case "error":
		return logrus.ErrorLevel
	case "warn":
		return logrus.WarnLevel
	case "info":
		return logrus.InfoLevel
	case "debug":
		return logrus.DebugLevel
	default:
		return logrus.ErrorLevel
	}
}

func (c *Configuration) Scheme() string {
	if c.GoAppEnvironment == Production { // assume 'https' on production mode
		return "https"
	}
	return "http"
}

func (c *Configuration) InMemory() bool {
	return c.DataBackend == BackendMemory
}

func Use() *Configuration {
	return singleton()
}

func (c *Configuration) load(envFiles []string) error {
	n, err := LoadEnv(envFiles)
	if err != nil {
		return err
	}
	if n == 0 {
		wd, _ := os.Getwd()
		log.Println("No .env files found. Tried:")
		for _, file := range envFiles {
			log.Println(filepath.Join(wd, file))
		}
	}
	if err := env.Parse(c); err != nil {
		return err
	}
	if err := c.validate(); err != nil {
		return err
	}

	f, logger, err := logging.FileLogger(c.LogrusLogLevel(), c.Log.LogPath)
	if err != nil {
		return err
	}
	c.logFile = f
	c.logger = logger

	c.Database.Opts = c.Database.ConnectionString()
	if c.GoAppEnvironment == Production {
		c.SocketAddress = fmt.Sprintf(":%d", c.ServerPort)
	} else {
		c.SocketAddress = fmt.Sprintf("localhost:%d", c.ServerPort)
	}

	// Keep Origin in sync with PORT unless it was set explicitly.
	if os.Getenv("ORIGIN") == "" {
		if c.GoAppEnvironment == "development" {
			c.Origin = fmt.Sprintf("%s://%s:%d", c.Scheme(), c.Domain, c.ServerPort)
		} else {
			c.Origin = fmt.Sprintf("%s://%s", c.Scheme(), c.Domain)
		}
	}

	return nil
}

func (c *Configuration) validate() error {
	if err := c.RateLimit.Validate(); err != nil {
		return fmt.Errorf("rate limit configuration error: %w", err)
	}
	if err := c.Map.Validate(); err != nil {
		return fmt.Errorf("map configuration error: %w", err)
	}

	backend := strings.ToLower(strings.TrimSpace(c.DataBackend))
	switch backend {
	case BackendPostgres, BackendMemory:
	default:
		return fmt.Errorf("invalid DATA_BACKEND=%q (expected postgres|memory)", c.DataBackend)
	}
	c.DataBackend = backend

	if c.UIStateTTL <= 0 {
		return fmt.Errorf("UI_STATE_TTL must be positive, got %s", c.UIStateTTL)
	}
	if c.SessionDuration <= 0 {
		return fmt.Errorf("SESSION_DURATION must be positive, got %s", c.SessionDuration)
	}
	if c.CSRFAuthKey != "" && len(c.CSRFAuthKey) != 32 {
		return fmt.Errorf("CSRF_AUTH_KEY must be 32 bytes, got %d", len(c.CSRFAuthKey))
	}
	return nil
}

// Unload handles a graceful shutdown.
func (c *Configuration) Unload() {
	if c.logFile != nil {
		if err := c.logFile.Close(); err != nil {
			log.Printf("Failed to close log file: %v", err)
		}
	}
}
