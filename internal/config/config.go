package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config represents the application configuration structure.
// It contains settings for the environment, HTTP server, database connection,
// site publication, and graceful shutdown behavior.
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
		RequestTimeout time.Duration `env:"HTTP_REQUEST_TIMEOUT" env-default:"10s" yaml:"requestTimeout"`
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
		DatabaseName string `env:"DATABASE_NAME" env-default:"pagesmith" yaml:"name"`
		// MaxOpenConnections limits the number of open connections to the database
		MaxOpenConnections int `env:"DATABASE_MAX_OPEN_CONNECTIONS" env-default:"10" yaml:"maxOpenConnections"`
		// MaxIdleConnections limits the number of connections in the idle connection pool
		MaxIdleConnections int `env:"DATABASE_MAX_IDLE_CONNECTIONS" env-default:"8" yaml:"maxIdleConnections"`
		// ConnMaxLifetime is the maximum amount of time a connection may be reused
		ConnMaxLifetime time.Duration `env:"DATABASE_CONNECTION_MAX_LIFETIME" env-default:"3m" yaml:"connMaxLifetime"`
		// ConnMaxIdleTime is the maximum amount of time a connection may be idle
		ConnMaxIdleTime time.Duration `env:"DATABASE_CONNECTION_MAX_IDLE_TIME" env-default:"3m" yaml:"connMaxIdleTime"`
	} `yaml:"database"`

	// GitHub contains settings for the API client that publishes generated sites
	GitHub struct {
		// Token is the personal access token used to authenticate API requests
		Token string `env:"GITHUB_TOKEN" yaml:"token"`
		// Owner overrides the account repositories are created under; when empty
		// the authenticated user is resolved via the API
		Owner string `env:"GITHUB_OWNER" yaml:"owner"`
		// APIBase is the base URL of the GitHub REST API
		APIBase string `env:"GITHUB_API_BASE" env-default:"https://api.github.com" yaml:"apiBase"`
		// RequestTimeout bounds a single API request
		RequestTimeout time.Duration `env:"GITHUB_REQUEST_TIMEOUT" env-default:"30s" yaml:"requestTimeout"`
		// PagesPollInterval is the delay between liveness probes of a freshly published page
		PagesPollInterval time.Duration `env:"GITHUB_PAGES_POLL_INTERVAL" env-default:"12s" yaml:"pagesPollInterval"`
		// PagesPollAttempts is the number of liveness probes before the publication is considered failed
		PagesPollAttempts int `env:"GITHUB_PAGES_POLL_ATTEMPTS" env-default:"10" yaml:"pagesPollAttempts"`
	} `yaml:"github"`

	// Generator contains settings for producing the site files of a task
	Generator struct {
		// Mode selects the site generator implementation ("template" or "gemini")
		Mode string `env:"GENERATOR_MODE" env-default:"template" yaml:"mode"`
		// Model is the Gemini model used when Mode is "gemini"
		Model string `env:"GENERATOR_MODEL" env-default:"gemini-2.5-flash" yaml:"model"`
		// APIKey authenticates against the Gemini API when Mode is "gemini"
		APIKey string `env:"GENERATOR_API_KEY" yaml:"apiKey"`
		// Title overrides the page title used by the template generator
		Title string `env:"GENERATOR_TITLE" yaml:"title"`
		// LicenseHolder is the copyright holder named in generated LICENSE files
		LicenseHolder string `env:"GENERATOR_LICENSE_HOLDER" env-default:"Pagesmith Authors" yaml:"licenseHolder"`
		// Minify enables HTML minification of generated pages
		Minify bool `env:"GENERATOR_MINIFY" env-default:"false" yaml:"minify"`
	} `yaml:"generator"`

	// Hook contains settings for the inbound task webhook
	Hook struct {
		// Secret is the shared secret that authorizes webhook submissions
		Secret string `env:"HOOK_SECRET" yaml:"secret"`
	} `yaml:"hook"`

	// Evaluator contains settings for delivering completion receipts
	Evaluator struct {
		// RequestTimeout bounds a single receipt delivery request
		RequestTimeout time.Duration `env:"EVALUATOR_REQUEST_TIMEOUT" env-default:"30s" yaml:"requestTimeout"`
		// RetryBase is the base delay of the exponential backoff between delivery attempts
		RetryBase time.Duration `env:"EVALUATOR_RETRY_BASE" env-default:"1s" yaml:"retryBase"`
		// MaxRetries is the number of redelivery attempts after the initial one
		MaxRetries int `env:"EVALUATOR_MAX_RETRIES" env-default:"6" yaml:"maxRetries"`
	} `yaml:"evaluator"`

	// Builder contains settings for the build pipeline
	Builder struct {
		// MaxAttempts is the maximum number of times the background worker tries
		// to publish a build before marking it failed
		MaxAttempts int `env:"BUILDER_MAX_ATTEMPTS" env-default:"3" yaml:"maxAttempts"`
		// RebuildTTL is the duration during which a completed build for the same
		// task and round is reused instead of publishing again
		RebuildTTL time.Duration `env:"BUILDER_REBUILD_TTL" env-default:"1h" yaml:"rebuildTTL"`
	} `yaml:"builder"`

	// Verifier contains settings for checking published pages
	Verifier struct {
		// Mode selects the live page checker ("html", "chrome" or "off")
		Mode string `env:"VERIFIER_MODE" env-default:"html" yaml:"mode"`
		// RequestTimeout bounds one verification pass against the live page
		RequestTimeout time.Duration `env:"VERIFIER_REQUEST_TIMEOUT" env-default:"30s" yaml:"requestTimeout"`
		// ChromePath overrides the browser binary used in chrome mode
		ChromePath string `env:"VERIFIER_CHROME_PATH" yaml:"chromePath"`
	} `yaml:"verifier"`

	// Worker contains settings for the background job runner
	Worker struct {
		// MaxWorkers caps the number of publish jobs running concurrently
		MaxWorkers int `env:"WORKER_MAX_WORKERS" env-default:"100" yaml:"maxWorkers"`
	} `yaml:"worker"`

	// JWT contains the RS256 key pair used to authenticate admin API requests
	JWT struct {
		// PublicKey is the PEM encoded RSA public key used to verify tokens
		PublicKey string `env:"JWT_PUBLIC_KEY" yaml:"publicKey"`
		// PrivateKey is the PEM encoded RSA private key used by the jwt command to sign tokens
		PrivateKey string `env:"JWT_PRIVATE_KEY" yaml:"privateKey"`
	} `yaml:"jwt"`

	// GracefulShutdownTimeout is the maximum duration to wait for ongoing requests to complete during shutdown
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_TIMEOUT" env-default:"10s" yaml:"gracefulShutdownTimeout"` //nolint: lll
}

// Load receives the path for yaml config file and returns a filled Config struct.
// A local .env file, when present, is loaded into the environment first. When
// the yaml file does not exist, configuration is read from the environment and
// the struct defaults alone.
func Load(configPath string) (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	err := cleanenv.ReadConfig(configPath, &cfg)
	if errors.Is(err, os.ErrNotExist) {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("could not read config: %w", err)
	}

	return &cfg, nil
}
