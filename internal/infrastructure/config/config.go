package config

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App       AppConfig
	Log       LogConfig
	HTTP      HTTPConfig
	Backend   BackendConfig
	Client    ClientConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Cache     CacheConfig
	Assistant AssistantConfig
	Export    ExportConfig
	Telemetry TelemetryConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name    string
	Env     string
	Port    string
	Version string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// HTTPConfig holds BFF server settings
type HTTPConfig struct {
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	IdleTimeout      time.Duration
	ShutdownTimeout  time.Duration
	MaxBodySize      int64
	CORSAllowOrigins []string
	TrustedProxies   []string
}

// Backend sources the store can mirror.
const (
	SourceREST = "rest"
	SourceSQL  = "sql"
	SourceDemo = "demo"
)

// BackendConfig selects where the entity store loads from
type BackendConfig struct {
	Source      string // rest, sql or demo
	LoadOnStart bool
	DemoSeed    int64
	DemoSales   int
}

// ClientConfig holds the sales backend REST client settings
type ClientConfig struct {
	BaseURL    string
	Token      string
	Timeout    time.Duration
	MaxRetries int // GET requests only
	RetryDelay time.Duration
	RateLimit  float64 // requests per second, 0 disables
	RateBurst  int
}

// DatabaseConfig holds the sales database connection settings
type DatabaseConfig struct {
	Driver          string // postgres or sqlite
	DSN             string // overrides the discrete fields when set
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	CompanyID       int64 // scopes every query, 0 means all companies
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

// CacheConfig holds analytics cache settings
type CacheConfig struct {
	TTL    time.Duration
	Prefix string
}

// AssistantConfig holds the local model fallback settings
type AssistantConfig struct {
	OpenAIAPIKey string
	Model        string
	BaseURL      string
}

// Export sinks and formats.
const (
	SinkStdout = "stdout"
	SinkFile   = "file"
	SinkS3     = "s3"
)

// ExportConfig holds report export settings
type ExportConfig struct {
	Format string // json, yaml or csv
	Sink   string // stdout, file or s3
	Path   string // directory for the file sink
	S3     S3Config
}

// S3Config holds S3-compatible object storage settings
type S3Config struct {
	Bucket          string
	Prefix          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	UsePathStyle    bool
}

// TelemetryConfig holds OpenTelemetry and profiling configuration
type TelemetryConfig struct {
	Enabled           bool // traces
	MetricsEnabled    bool
	LogsEnabled       bool
	CollectorEndpoint string
	SamplingRatio     float64
	ServiceName       string
	Insecure          bool
	MetricsInterval   time.Duration
	Profiling         ProfilingConfig
}

// ProfilingConfig holds Pyroscope settings
type ProfilingConfig struct {
	Enabled       bool
	ServerAddress string
	ProfileTypes  []string
	SpanProfiles  bool
}

// EnvPrefix prefixes every environment override, e.g. PORTAL_CLIENT_TOKEN.
const EnvPrefix = "PORTAL"

// Load reads config.toml from ".", "./config" or "/etc/sales-portal".
// Priority (highest to lowest):
// 1. Environment variables with PORTAL_ prefix (e.g., PORTAL_CLIENT_BASE_URL)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/sales-portal")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}
	return build(v)
}

// LoadFile reads an explicit config file; environment overrides still apply.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}
	return build(v)
}

func build(v *viper.Viper) (*Config, error) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name:    v.GetString("app.name"),
			Env:     v.GetString("app.env"),
			Port:    v.GetString("app.port"),
			Version: v.GetString("app.version"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:      v.GetDuration("http.read_timeout"),
			WriteTimeout:     v.GetDuration("http.write_timeout"),
			IdleTimeout:      v.GetDuration("http.idle_timeout"),
			ShutdownTimeout:  v.GetDuration("http.shutdown_timeout"),
			MaxBodySize:      v.GetInt64("http.max_body_size"),
			CORSAllowOrigins: v.GetStringSlice("http.cors_allow_origins"),
			TrustedProxies:   v.GetStringSlice("http.trusted_proxies"),
		},
		Backend: BackendConfig{
			Source:      strings.ToLower(v.GetString("backend.source")),
			LoadOnStart: v.GetBool("backend.load_on_start"),
			DemoSeed:    v.GetInt64("backend.demo_seed"),
			DemoSales:   v.GetInt("backend.demo_sales"),
		},
		Client: ClientConfig{
			BaseURL:    v.GetString("client.base_url"),
			Token:      v.GetString("client.token"),
			Timeout:    v.GetDuration("client.timeout"),
			MaxRetries: v.GetInt("client.max_retries"),
			RetryDelay: v.GetDuration("client.retry_delay"),
			RateLimit:  v.GetFloat64("client.rate_limit"),
			RateBurst:  v.GetInt("client.rate_burst"),
		},
		Database: DatabaseConfig{
			Driver:          strings.ToLower(v.GetString("database.driver")),
			DSN:             v.GetString("database.dsn"),
			Host:            v.GetString("database.host"),
			Port:            v.GetInt("database.port"),
			User:            v.GetString("database.user"),
			Password:        v.GetString("database.password"),
			DBName:          v.GetString("database.dbname"),
			SSLMode:         v.GetString("database.sslmode"),
			CompanyID:       v.GetInt64("database.company_id"),
			MaxOpenConns:    v.GetInt("database.max_open_conns"),
			MaxIdleConns:    v.GetInt("database.max_idle_conns"),
			ConnMaxLifetime: v.GetDuration("database.conn_max_lifetime"),
		},
		Redis: RedisConfig{
			Enabled:  v.GetBool("redis.enabled"),
			Host:     v.GetString("redis.host"),
			Port:     v.GetInt("redis.port"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Cache: CacheConfig{
			TTL:    v.GetDuration("cache.ttl"),
			Prefix: v.GetString("cache.prefix"),
		},
		Assistant: AssistantConfig{
			OpenAIAPIKey: v.GetString("assistant.openai_api_key"),
			Model:        v.GetString("assistant.model"),
			BaseURL:      v.GetString("assistant.base_url"),
		},
		Export: ExportConfig{
			Format: strings.ToLower(v.GetString("export.format")),
			Sink:   strings.ToLower(v.GetString("export.sink")),
			Path:   v.GetString("export.path"),
			S3: S3Config{
				Bucket:          v.GetString("export.s3.bucket"),
				Prefix:          v.GetString("export.s3.prefix"),
				Region:          v.GetString("export.s3.region"),
				Endpoint:        v.GetString("export.s3.endpoint"),
				AccessKeyID:     v.GetString("export.s3.access_key_id"),
				SecretAccessKey: v.GetString("export.s3.secret_access_key"),
				UsePathStyle:    v.GetBool("export.s3.use_path_style"),
			},
		},
		Telemetry: TelemetryConfig{
			Enabled:           v.GetBool("telemetry.enabled"),
			MetricsEnabled:    v.GetBool("telemetry.metrics_enabled"),
			LogsEnabled:       v.GetBool("telemetry.logs_enabled"),
			CollectorEndpoint: v.GetString("telemetry.collector_endpoint"),
			SamplingRatio:     v.GetFloat64("telemetry.sampling_ratio"),
			ServiceName:       v.GetString("telemetry.service_name"),
			Insecure:          v.GetBool("telemetry.insecure"),
			MetricsInterval:   v.GetDuration("telemetry.metrics_interval"),
			Profiling: ProfilingConfig{
				Enabled:       v.GetBool("telemetry.profiling.enabled"),
				ServerAddress: v.GetString("telemetry.profiling.server_address"),
				ProfileTypes:  v.GetStringSlice("telemetry.profiling.profile_types"),
				SpanProfiles:  v.GetBool("telemetry.profiling.span_profiles"),
			},
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "sales-portal"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "8090"
	}
	if cfg.App.Version == "" {
		cfg.App.Version = "dev"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = 15 * time.Second
	}
	if cfg.HTTP.WriteTimeout == 0 {
		cfg.HTTP.WriteTimeout = 30 * time.Second
	}
	if cfg.HTTP.IdleTimeout == 0 {
		cfg.HTTP.IdleTimeout = 60 * time.Second
	}
	if cfg.HTTP.ShutdownTimeout == 0 {
		cfg.HTTP.ShutdownTimeout = 10 * time.Second
	}
	if cfg.HTTP.MaxBodySize == 0 {
		cfg.HTTP.MaxBodySize = 1 << 20 // 1MB
	}
	if cfg.Backend.Source == "" {
		cfg.Backend.Source = SourceREST
	}
	if cfg.Backend.DemoSeed == 0 {
		cfg.Backend.DemoSeed = 42
	}
	if cfg.Backend.DemoSales == 0 {
		cfg.Backend.DemoSales = 200
	}
	if cfg.Client.BaseURL == "" {
		cfg.Client.BaseURL = "http://localhost:8000"
	}
	if cfg.Client.Timeout == 0 {
		cfg.Client.Timeout = 30 * time.Second
	}
	if cfg.Client.RetryDelay == 0 {
		cfg.Client.RetryDelay = 200 * time.Millisecond
	}
	if cfg.Client.RateLimit > 0 && cfg.Client.RateBurst == 0 {
		cfg.Client.RateBurst = 1
	}
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "postgres"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "postgres"
	}
	if cfg.Database.DBName == "" {
		cfg.Database.DBName = "sales_db"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 10
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 2
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = time.Hour
	}
	if cfg.Redis.Host == "" {
		cfg.Redis.Host = "localhost"
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.Cache.TTL == 0 {
		cfg.Cache.TTL = 5 * time.Minute
	}
	if cfg.Cache.Prefix == "" {
		cfg.Cache.Prefix = "portal:analytics:"
	}
	if cfg.Assistant.Model == "" {
		cfg.Assistant.Model = "gpt-4o-mini"
	}
	if cfg.Export.Format == "" {
		cfg.Export.Format = "json"
	}
	if cfg.Export.Sink == "" {
		cfg.Export.Sink = SinkStdout
	}
	if cfg.Export.Path == "" {
		cfg.Export.Path = "./reports"
	}
	if cfg.Export.S3.Prefix == "" {
		cfg.Export.S3.Prefix = "reports"
	}
	if cfg.Export.S3.Region == "" {
		cfg.Export.S3.Region = "us-east-1"
	}
	if cfg.Telemetry.CollectorEndpoint == "" {
		cfg.Telemetry.CollectorEndpoint = "localhost:4317"
	}
	if cfg.Telemetry.SamplingRatio == 0 {
		cfg.Telemetry.SamplingRatio = 1.0
	}
	if cfg.Telemetry.ServiceName == "" {
		cfg.Telemetry.ServiceName = cfg.App.Name
	}
	if cfg.Telemetry.MetricsInterval == 0 {
		cfg.Telemetry.MetricsInterval = time.Minute
	}
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	switch c.Backend.Source {
	case SourceREST:
		u, err := url.Parse(c.Client.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("client.base_url must be an absolute URL, got %q", c.Client.BaseURL)
		}
	case SourceSQL:
		if c.Database.Driver != "postgres" && c.Database.Driver != "sqlite" {
			return fmt.Errorf("database.driver must be postgres or sqlite, got %q", c.Database.Driver)
		}
		if c.Database.Driver == "sqlite" && c.Database.DSN == "" {
			return fmt.Errorf("database.dsn is required for the sqlite driver")
		}
	case SourceDemo:
	default:
		return fmt.Errorf("backend.source must be one of rest, sql, demo, got %q", c.Backend.Source)
	}

	if c.Client.MaxRetries < 0 {
		return fmt.Errorf("client.max_retries cannot be negative")
	}
	if c.Client.RateLimit < 0 {
		return fmt.Errorf("client.rate_limit cannot be negative")
	}
	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		return fmt.Errorf("database.max_idle_conns (%d) cannot exceed database.max_open_conns (%d)",
			c.Database.MaxIdleConns, c.Database.MaxOpenConns)
	}

	if !slices.Contains([]string{"json", "yaml", "csv"}, c.Export.Format) {
		return fmt.Errorf("export.format must be json, yaml or csv, got %q", c.Export.Format)
	}
	switch c.Export.Sink {
	case SinkStdout, SinkFile:
	case SinkS3:
		if c.Export.S3.Bucket == "" {
			return fmt.Errorf("export.s3.bucket is required for the s3 sink")
		}
	default:
		return fmt.Errorf("export.sink must be stdout, file or s3, got %q", c.Export.Sink)
	}

	if c.Telemetry.SamplingRatio < 0.0 || c.Telemetry.SamplingRatio > 1.0 {
		return fmt.Errorf("telemetry.sampling_ratio must be between 0.0 and 1.0, got %f", c.Telemetry.SamplingRatio)
	}
	if c.Telemetry.Profiling.Enabled && c.Telemetry.Profiling.ServerAddress == "" {
		return fmt.Errorf("telemetry.profiling.server_address is required when profiling is enabled")
	}

	if c.IsProduction() {
		if c.Backend.Source == SourceREST && c.Client.Token == "" {
			return fmt.Errorf("client.token is required in production")
		}
		if c.Backend.Source == SourceDemo {
			return fmt.Errorf("backend.source=demo is not allowed in production")
		}
		for _, origin := range c.HTTP.CORSAllowOrigins {
			if origin == "*" {
				return fmt.Errorf("cors_allow_origins cannot be '*' in production (use specific origins)")
			}
		}
	}
	return nil
}

// IsProduction reports whether app.env is production
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// Addr returns the Redis address
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// ConnectionString returns the DSN, building a postgres URL from the discrete
// fields when none is configured.
func (d DatabaseConfig) ConnectionString() string {
	if d.DSN != "" {
		return d.DSN
	}
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.DBName,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}
