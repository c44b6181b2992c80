// Package config loads the account service configuration from a YAML file,
// with environment variables taking precedence over file values.
package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config represents the application configuration structure.
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
		// CORSOrigins lists the browser origins allowed to call the API; "*" allows any
		CORSOrigins []string `env:"HTTP_CORS_ORIGINS" env-default:"*" env-separator:"," yaml:"corsOrigins"`
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
		DatabaseName string `env:"DATABASE_NAME" env-default:"accounts" yaml:"name"`
		// MaxOpenConnections limits the number of open connections to the database
		MaxOpenConnections int `env:"DATABASE_MAX_OPEN_CONNECTIONS" env-default:"10" yaml:"maxOpenConnections"`
		// MaxIdleConnections limits the number of connections in the idle connection pool
		MaxIdleConnections int `env:"DATABASE_MAX_IDLE_CONNECTIONS" env-default:"8" yaml:"maxIdleConnections"`
		// ConnMaxLifetime is the maximum amount of time a connection may be reused
		ConnMaxLifetime time.Duration `env:"DATABASE_CONNECTION_MAX_LIFETIME" env-default:"3m" yaml:"connMaxLifetime"`
		// ConnMaxIdleTime is the maximum amount of time a connection may be idle
		ConnMaxIdleTime time.Duration `env:"DATABASE_CONNECTION_MAX_IDLE_TIME" env-default:"3m" yaml:"connMaxIdleTime"`
	} `yaml:"database"`

	// JWT configures the RS256 session tokens.
	JWT struct {
		// PrivateKey is the PEM encoded RSA key used to sign tokens.
		PrivateKey string `env:"JWT_PRIVATE_KEY" yaml:"privateKey"`
		// PublicKey is the PEM encoded RSA key used to verify tokens.
		PublicKey string `env:"JWT_PUBLIC_KEY" yaml:"publicKey"`
		// Issuer is written to and required in the iss claim.
		Issuer string `env:"JWT_ISSUER" env-default:"accounts" yaml:"issuer"`
		// TTL is the lifetime of tokens issued on login.
		TTL time.Duration `env:"JWT_TTL" env-default:"24h" yaml:"ttl"`
	} `yaml:"jwt"`

	// Password holds the Argon2id parameters used for new hashes. Existing
	// hashes are verified with the parameters encoded in them.
	Password struct {
		// Memory is the memory cost in KiB.
		Memory uint32 `env:"PASSWORD_MEMORY" env-default:"65536" yaml:"memory"`
		// Iterations is the time cost.
		Iterations uint32 `env:"PASSWORD_ITERATIONS" env-default:"3" yaml:"iterations"`
		// Parallelism is the number of lanes.
		Parallelism uint8 `env:"PASSWORD_PARALLELISM" env-default:"2" yaml:"parallelism"`
		// SaltLength is the length of the random salt in bytes.
		SaltLength uint32 `env:"PASSWORD_SALT_LENGTH" env-default:"16" yaml:"saltLength"`
		// KeyLength is the length of the derived key in bytes.
		KeyLength uint32 `env:"PASSWORD_KEY_LENGTH" env-default:"32" yaml:"keyLength"`
	} `yaml:"password"`

	// Verification configures email verification.
	Verification struct {
		// TTLSeconds is how long a verification token stays valid.
		TTLSeconds int `env:"VERIFICATION_TTL_SECONDS" env-default:"86400" yaml:"ttlSeconds"`
		// MaxAttempts bounds the delivery attempts of a verification email.
		MaxAttempts int `env:"VERIFICATION_MAX_ATTEMPTS" env-default:"5" yaml:"maxAttempts"`
		// VerifyURL is the link prefix the token is appended to in emails.
		VerifyURL string `env:"VERIFICATION_URL" env-default:"http://localhost:8080/verify?token=" yaml:"verifyURL"` //nolint: lll
	} `yaml:"verification"`

	// Mailer selects how verification emails are delivered.
	Mailer struct {
		// Driver is "log" to write messages to the logger, "http" to post
		// them to a provider or "ses" to send them through Amazon SES.
		Driver string `env:"MAILER_DRIVER" env-default:"log" yaml:"driver"`
		// Endpoint is the provider URL messages are posted to.
		Endpoint string `env:"MAILER_ENDPOINT" yaml:"endpoint"`
		// APIKey authenticates against the provider.
		APIKey string `env:"MAILER_API_KEY" yaml:"apiKey"`
		// Region, AccessKey and SecretKey configure the ses driver. Empty keys
		// fall back to the default AWS credential chain.
		Region    string `env:"MAILER_SES_REGION" env-default:"us-east-1" yaml:"region"`
		AccessKey string `env:"MAILER_SES_ACCESS_KEY" yaml:"accessKey"`
		SecretKey string `env:"MAILER_SES_SECRET_KEY" yaml:"secretKey"`
		// From is the bare sender address. Display names are not accepted.
		From string `env:"MAILER_FROM" env-default:"no-reply@localhost" yaml:"from"`
		// Timeout bounds a single provider request.
		Timeout time.Duration `env:"MAILER_TIMEOUT" env-default:"10s" yaml:"timeout"`
	} `yaml:"mailer"`

	// Worker configures the background job runner.
	Worker struct {
		// MaxWorkers is the number of jobs processed concurrently.
		MaxWorkers int `env:"WORKER_MAX_WORKERS" env-default:"10" yaml:"maxWorkers"`
	} `yaml:"worker"`

	// GracefulShutdownTimeout is the maximum duration to wait for ongoing requests to complete during shutdown
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_TIMEOUT" env-default:"10s" yaml:"gracefulShutdownTimeout"` //nolint: lll
}

// Mailer drivers.
const (
	MailerLog  = "log"
	MailerHTTP = "http"
	MailerSES  = "ses"
)

// Load reads the YAML file at configPath, applies environment overrides and
// defaults, and validates the result.
func Load(configPath string) (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("could not read config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate reports settings that would make the service misbehave.
func (c *Config) Validate() error {
	switch {
	case c.Verification.TTLSeconds <= 0:
		return fmt.Errorf("verification ttl must be positive, got %d", c.Verification.TTLSeconds)
	case c.Verification.MaxAttempts <= 0:
		return fmt.Errorf("verification max attempts must be positive, got %d", c.Verification.MaxAttempts)
	case c.JWT.TTL <= 0:
		return fmt.Errorf("jwt ttl must be positive, got %s", c.JWT.TTL)
	case c.Password.Memory == 0 || c.Password.Iterations == 0 || c.Password.Parallelism == 0:
		return fmt.Errorf("password memory, iterations and parallelism must be positive")
	case c.Mailer.Driver != MailerLog && c.Mailer.Driver != MailerHTTP && c.Mailer.Driver != MailerSES:
		return fmt.Errorf("unknown mailer driver %q", c.Mailer.Driver)
	case c.Mailer.Driver == MailerHTTP && c.Mailer.Endpoint == "":
		return fmt.Errorf("mailer endpoint is required for the %s driver", MailerHTTP)
	}

	return nil
}
