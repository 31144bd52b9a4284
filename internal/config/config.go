package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config represents the application configuration structure.
// It contains settings for the environment, HTTP server, database connection,
// the discovery pipeline, and graceful shutdown behavior.
type Config struct {
	// Environment specifies the current running environment (development, production, etc.)
	Environment string `env:"ENVIRONMENT" env-default:"development" yaml:"environment"`

	// HTTP contains all HTTP server related configurations
	HTTP struct {
		// Addr is the address and port the HTTP server will listen on
		Addr string `env:"HTTP_ADDR" env-default:":8080" yaml:"addr"`
		// ReadTimeout is the maximum duration for reading the entire request, including the body
		ReadTimeout time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"1m" yaml:"readTimeout"`
		// ReadHeaderTimeout is the amount of time allowed to read request headers
		ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" env-default:"10s" yaml:"readHeaderTimeout"`
		// WriteTimeout is the maximum duration before timing out writes of the response
		WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"2m" yaml:"writeTimeout"`
		// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled
		IdleTimeout time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"2m" yaml:"idleTimeout"`
		// RequestTimeout is the maximum time allowed for processing a single request
		RequestTimeout time.Duration `env:"HTTP_REQUEST_TIMEOUT" env-default:"30s" yaml:"requestTimeout"`
		// MaxHeaderBytes controls the maximum number of bytes the server will read parsing the request header
		MaxHeaderBytes int `env:"HTTP_MAX_HEADER_BYTES" env-default:"0" yaml:"maxHeaderBytes"`
		// MetricsPath defines the URL path where metrics are exposed
		MetricsPath string `env:"HTTP_METRICS_PATH" env-default:"/metrics" yaml:"metricsPath"`
	} `yaml:"http"`

	// Database contains all database connection related configurations
	Database struct {
		// Username for database authentication
		Username string `env:"DATABASE_USERNAME" env-default:"myuser" yaml:"username"`
		// Password for database authentication
		Password string `env:"DATABASE_PASSWORD" env-default:"mypassword" yaml:"password"`
		// Host is the database server hostname or IP address
		Host string `env:"DATABASE_HOST" env-default:"localhost" yaml:"host"`
		// Port is the database server port number
		Port int `env:"DATABASE_PORT" env-default:"5432" yaml:"port"`
		// SslMode defines the SSL mode for the database connection
		SslMode string `env:"DATABASE_SSL_MODE" env-default:"disable" yaml:"sslMode"`
		// DatabaseName is the name of the database to connect to
		DatabaseName string `env:"DATABASE_NAME" env-default:"lunchradar" yaml:"name"`
		// MaxOpenConnections limits the number of open connections to the database
		MaxOpenConnections int `env:"DATABASE_MAX_OPEN_CONNECTIONS" env-default:"10" yaml:"maxOpenConnections"`
		// MaxIdleConnections limits the number of connections in the idle connection pool
		MaxIdleConnections int `env:"DATABASE_MAX_IDLE_CONNECTIONS" env-default:"8" yaml:"maxIdleConnections"`
		// ConnMaxLifetime is the maximum amount of time a connection may be reused
		ConnMaxLifetime time.Duration `env:"DATABASE_CONNECTION_MAX_LIFETIME" env-default:"3m" yaml:"connMaxLifetime"`
		// ConnMaxIdleTime is the maximum amount of time a connection may be idle
		ConnMaxIdleTime time.Duration `env:"DATABASE_CONNECTION_MAX_IDLE_TIME" env-default:"3m" yaml:"connMaxIdleTime"`
	} `yaml:"database"`

	// Pipeline contains tuning knobs for the discovery pipeline stages
	Pipeline struct {
		// DebounceInterval is the quiet period a query stream must observe before an intent is emitted
		DebounceInterval time.Duration `env:"PIPELINE_DEBOUNCE_INTERVAL" env-default:"500ms" yaml:"debounceInterval"`
		// ThrottleInterval is the minimum spacing between forwarded location updates
		ThrottleInterval time.Duration `env:"PIPELINE_THROTTLE_INTERVAL" env-default:"2s" yaml:"throttleInterval"`
		// DistanceThresholdMeters is the minimum movement required for a location update to be forwarded
		DistanceThresholdMeters float64 `env:"PIPELINE_DISTANCE_THRESHOLD_METERS" env-default:"10" yaml:"distanceThresholdMeters"` //nolint: lll
		// NetworkRetries is how many times a failed network fetch is retried within a single run
		NetworkRetries uint64 `env:"PIPELINE_NETWORK_RETRIES" env-default:"2" yaml:"networkRetries"`
		// RetryBackoff is the constant delay between network retries
		RetryBackoff time.Duration `env:"PIPELINE_RETRY_BACKOFF" env-default:"250ms" yaml:"retryBackoff"`
		// RunTimeout bounds a single merge run end to end
		RunTimeout time.Duration `env:"PIPELINE_RUN_TIMEOUT" env-default:"10s" yaml:"runTimeout"`
		// DefaultRadiusMeters is the search radius used when a request does not specify one
		DefaultRadiusMeters int `env:"PIPELINE_DEFAULT_RADIUS_METERS" env-default:"500" yaml:"defaultRadiusMeters"`
		// ErrorLogSize caps the number of recovered source failures kept in the observable error log
		ErrorLogSize int `env:"PIPELINE_ERROR_LOG_SIZE" env-default:"32" yaml:"errorLogSize"`
		// CacheTTL is how long a cached result cell stays fresh before the background
		// refresher is allowed to enqueue another refresh for it
		CacheTTL time.Duration `env:"PIPELINE_CACHE_TTL" env-default:"15m" yaml:"cacheTTL"`
	} `yaml:"pipeline"`

	// Places contains settings for the upstream place search provider
	Places struct {
		// APIKey authenticates requests against the provider
		APIKey string `env:"PLACES_API_KEY" env-default:"" yaml:"apiKey"`
		// BaseURL overrides the provider endpoint, mainly for tests
		BaseURL string `env:"PLACES_BASE_URL" env-default:"" yaml:"baseURL"`
		// Timeout bounds a single provider request
		Timeout time.Duration `env:"PLACES_TIMEOUT" env-default:"5s" yaml:"timeout"`
	} `yaml:"places"`

	// JWT contains the RS256 key pair used to sign and verify API tokens
	JWT struct {
		// PrivateKey is the PEM encoded RSA private key used for signing
		PrivateKey string `env:"JWT_PRIVATE_KEY" env-default:"" yaml:"privateKey"`
		// PublicKey is the PEM encoded RSA public key used for verification
		PublicKey string `env:"JWT_PUBLIC_KEY" env-default:"" yaml:"publicKey"`
	} `yaml:"jwt"`

	// GracefulShutdownTimeout is the maximum duration to wait for ongoing requests to complete during shutdown
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_TIMEOUT" env-default:"10s" yaml:"gracefulShutdownTimeout"` //nolint: lll
}

// Load receives the path for yaml config file and returns a filled Config struct.
func Load(configPath string) (*Config, error) {
	var cfg Config
	err := cleanenv.ReadConfig(configPath, &cfg)
	if err != nil {
		return nil, fmt.Errorf("could not read config: %w", err)
	}

	return &cfg, nil
}
