package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig       `mapstructure:"app"`
	HTTP      HTTPConfig      `mapstructure:"http"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Kafka     KafkaConfig     `mapstructure:"kafka"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Storage   StorageConfig   `mapstructure:"storage"`
	KeepAlive KeepAliveConfig `mapstructure:"keepalive"`
	PDF       PDFConfig       `mapstructure:"pdf"`
}

type AppConfig struct {
	Name     string `mapstructure:"name"`
	Env      string `mapstructure:"env"`
	LogLevel string `mapstructure:"log_level"`
}

type HTTPConfig struct {
	Port           string        `mapstructure:"port"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	IdleTimeout    time.Duration `mapstructure:"idle_timeout"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
	AutoMigrate    bool          `mapstructure:"auto_migrate"`
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	MaxRetries      int           `mapstructure:"max_retries"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type KafkaConfig struct {
	Brokers      []string      `mapstructure:"brokers"`
	GroupID      string        `mapstructure:"group_id"`
	PollInterval time.Duration `mapstructure:"poll_interval"`
}

// AuthConfig pins the identity provider. Only RS256 tokens from Issuer for
// Audience are accepted.
type AuthConfig struct {
	JWKSURL         string        `mapstructure:"jwks_url"`
	Issuer          string        `mapstructure:"issuer"`
	Audience        string        `mapstructure:"audience"`
	Algorithm       string        `mapstructure:"algorithm"`
	JWKSRefreshRate time.Duration `mapstructure:"jwks_refresh_rate"`
}

type StorageConfig struct {
	AccountURL       string `mapstructure:"account_url"`
	ConnectionString string `mapstructure:"connection_string"`
	ImagesContainer  string `mapstructure:"images_container"`
	DocsContainer    string `mapstructure:"documents_container"`
	QuotePDFs        string `mapstructure:"quote_pdfs_container"`
}

type KeepAliveConfig struct {
	URL      string `mapstructure:"url"`
	Schedule string `mapstructure:"schedule"`
}

type PDFConfig struct {
	LogoURL      string        `mapstructure:"logo_url"`
	FetchTimeout time.Duration `mapstructure:"fetch_timeout"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "go-cpq")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.log_level", "info")

	v.SetDefault("http.port", "3000")
	v.SetDefault("http.read_timeout", 15*time.Second)
	v.SetDefault("http.write_timeout", 60*time.Second)
	v.SetDefault("http.idle_timeout", 60*time.Second)
	v.SetDefault("http.allowed_origins", []string{"*"})
	v.SetDefault("http.auto_migrate", false)

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "cpq")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.conn_max_lifetime", time.Hour)
	v.SetDefault("database.max_retries", 5)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("kafka.brokers", []string{})
	v.SetDefault("kafka.group_id", "go-cpq-documents")
	v.SetDefault("kafka.poll_interval", 3*time.Second)

	v.SetDefault("auth.jwks_url", "")
	v.SetDefault("auth.issuer", "")
	v.SetDefault("auth.audience", "")
	v.SetDefault("auth.algorithm", "RS256")
	v.SetDefault("auth.jwks_refresh_rate", time.Minute)

	v.SetDefault("storage.account_url", "")
	v.SetDefault("storage.connection_string", "")
	v.SetDefault("storage.images_container", "images")
	v.SetDefault("storage.documents_container", "documents")
	v.SetDefault("storage.quote_pdfs_container", "quote-pdfs")

	v.SetDefault("keepalive.url", "")
	v.SetDefault("keepalive.schedule", "@every 1m")

	v.SetDefault("pdf.logo_url", "")
	v.SetDefault("pdf.fetch_timeout", 5*time.Second)
}

// Load reads configuration from the environment (DATABASE_HOST, AUTH_ISSUER, ...)
// and, when path is non-empty, from a config file underneath it.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Kafka.Brokers = splitList(cfg.Kafka.Brokers)
	cfg.HTTP.AllowedOrigins = splitList(cfg.HTTP.AllowedOrigins)

	return &cfg, nil
}

// ValidateAPI checks what the HTTP server cannot run without.
func (c *Config) ValidateAPI() error {
	var errs []error
	if c.Auth.JWKSURL == "" {
		errs = append(errs, errors.New("AUTH_JWKS_URL is required"))
	}
	if c.Auth.Issuer == "" {
		errs = append(errs, errors.New("AUTH_ISSUER is required"))
	}
	if c.Auth.Audience == "" {
		errs = append(errs, errors.New("AUTH_AUDIENCE is required"))
	}
	if c.Auth.Algorithm != "RS256" {
		errs = append(errs, fmt.Errorf("unsupported AUTH_ALGORITHM %q", c.Auth.Algorithm))
	}
	if c.Storage.AccountURL == "" && c.Storage.ConnectionString == "" {
		errs = append(errs, errors.New("STORAGE_ACCOUNT_URL or STORAGE_CONNECTION_STRING is required"))
	}
	return errors.Join(errs...)
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.App.Env, "production")
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode,
	)
}

// splitList accepts both ["a","b"] and a single comma separated env value.
func splitList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
