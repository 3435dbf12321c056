package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"readTimeout"`
		WriteTimeout    time.Duration `yaml:"writeTimeout"`
		ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
		CORSOrigins     []string      `yaml:"corsOrigins"`
		RateLimit       int           `yaml:"rateLimit"` // requests per minute per IP, 0 disables
	} `yaml:"server"`

	Database struct {
		Driver   string `yaml:"driver"` // postgres | mysql
		URL      string `yaml:"url"`    // overrides the discrete fields when set
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Name     string `yaml:"name"`
		SSLMode  string `yaml:"sslMode"`
		Migrate  bool   `yaml:"migrate"`
	} `yaml:"database"`

	AI struct {
		Provider    string  `yaml:"provider"` // gemini | openai
		Model       string  `yaml:"model"`
		APIKey      string  `yaml:"apiKey"`
		BaseURL     string  `yaml:"baseURL"`
		Temperature float32 `yaml:"temperature"`
		MaxTokens   int     `yaml:"maxTokens"`
		RPM         int     `yaml:"rpm"` // model calls per minute, 0 disables throttling
		Burst       int     `yaml:"burst"`
	} `yaml:"ai"`

	Fetch struct {
		ProxyBase string        `yaml:"proxyBase"`
		UserAgent string        `yaml:"userAgent"`
		Timeout   time.Duration `yaml:"timeout"`
	} `yaml:"fetch"`

	Redis struct {
		Addr        string        `yaml:"addr"`
		Password    string        `yaml:"password"`
		DB          int           `yaml:"db"`
		StrategyTTL time.Duration `yaml:"strategyTTL"`
	} `yaml:"redis"`

	Minio struct {
		Endpoint      string        `yaml:"endpoint"`
		AccessKey     string        `yaml:"accessKey"`
		SecretKey     string        `yaml:"secretKey"`
		BucketName    string        `yaml:"bucketName"`
		Region        string        `yaml:"region"`
		UseSSL        bool          `yaml:"useSSL"`
		PresignExpiry time.Duration `yaml:"presignExpiry"`
	} `yaml:"minio"`

	Email struct {
		Enabled    bool   `yaml:"enabled"`
		Endpoint   string `yaml:"endpoint"`
		ServiceID  string `yaml:"serviceID"`
		TemplateID string `yaml:"templateID"`
		PublicKey  string `yaml:"publicKey"`
	} `yaml:"email"`

	Auth struct {
		APIKeys map[string]string `yaml:"apiKeys"` // client name -> key, empty disables auth
	} `yaml:"auth"`

	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"` // text | json
	} `yaml:"log"`
}

// Load baca .env (kalau ada), file config.yaml, lalu override dari env
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse %s: %w", path, err)
			}
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

// Default returns the settings used when the file leaves a field unset.
func Default() *Config {
	var c Config
	c.Server.Port = 8080
	c.Server.ReadTimeout = 15 * time.Second
	c.Server.WriteTimeout = 120 * time.Second
	c.Server.ShutdownTimeout = 15 * time.Second
	c.Server.RateLimit = 60
	c.Database.Driver = "postgres"
	c.Database.Port = 5432
	c.Database.SSLMode = "disable"
	c.Database.Migrate = true
	c.AI.Provider = "gemini"
	c.AI.Temperature = 0.7
	c.AI.MaxTokens = 4096
	c.AI.RPM = 30
	c.AI.Burst = 2
	c.Fetch.ProxyBase = "https://api.codetabs.com/v1/proxy"
	c.Fetch.Timeout = 30 * time.Second
	c.Redis.StrategyTTL = 7 * 24 * time.Hour
	c.Minio.BucketName = "reports"
	c.Minio.PresignExpiry = 7 * 24 * time.Hour
	c.Log.Level = "info"
	c.Log.Format = "text"
	return &c
}

func (c *Config) applyEnv() {
	setString := func(dst *string, key string) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			*dst = v
		}
	}
	switch c.AI.Provider {
	case "openai":
		setString(&c.AI.APIKey, "OPENAI_API_KEY")
	default:
		setString(&c.AI.APIKey, "GEMINI_API_KEY")
	}
	setString(&c.Database.URL, "DATABASE_URL")
	setString(&c.Email.ServiceID, "EMAILJS_SERVICE_ID")
	setString(&c.Email.TemplateID, "EMAILJS_TEMPLATE_ID")
	setString(&c.Email.PublicKey, "EMAILJS_PUBLIC_KEY")
	setString(&c.Minio.AccessKey, "MINIO_ACCESS_KEY")
	setString(&c.Minio.SecretKey, "MINIO_SECRET_KEY")
	setString(&c.Redis.Addr, "REDIS_ADDR")
	setString(&c.Log.Level, "LOG_LEVEL")
	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Server.Port = p
		}
	}
}

// Validate fails fast on settings the service cannot start without.
func (c *Config) Validate() error {
	var errs []error
	switch c.AI.Provider {
	case "gemini", "openai":
		if c.AI.APIKey == "" {
			errs = append(errs, fmt.Errorf("ai.apiKey is required for provider %q (set %s)", c.AI.Provider, c.apiKeyEnv()))
		}
	default:
		errs = append(errs, fmt.Errorf("ai.provider must be gemini or openai, got %q", c.AI.Provider))
	}

	switch c.Database.Driver {
	case "postgres", "mysql":
		if c.Database.URL == "" && (c.Database.Host == "" || c.Database.Name == "") {
			errs = append(errs, errors.New("database.host and database.name are required (or set DATABASE_URL)"))
		}
	default:
		errs = append(errs, fmt.Errorf("database.driver must be postgres or mysql, got %q", c.Database.Driver))
	}

	if c.Email.Enabled {
		if c.Email.ServiceID == "" || c.Email.TemplateID == "" || c.Email.PublicKey == "" {
			errs = append(errs, errors.New("email is enabled but EMAILJS_SERVICE_ID, EMAILJS_TEMPLATE_ID and EMAILJS_PUBLIC_KEY are not all set"))
		}
	}
	if c.Minio.Endpoint != "" && (c.Minio.AccessKey == "" || c.Minio.SecretKey == "") {
		errs = append(errs, errors.New("minio.endpoint is set but MINIO_ACCESS_KEY or MINIO_SECRET_KEY is missing"))
	}
	if _, err := url.ParseRequestURI(c.Fetch.ProxyBase); err != nil {
		errs = append(errs, fmt.Errorf("fetch.proxyBase: %w", err))
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port out of range: %d", c.Server.Port))
	}
	return errors.Join(errs...)
}

func (c *Config) apiKeyEnv() string {
	if c.AI.Provider == "openai" {
		return "OPENAI_API_KEY"
	}
	return "GEMINI_API_KEY"
}

// DSN returns the connection string for the configured driver.
func (c *Config) DSN() string {
	if c.Database.URL != "" {
		return c.Database.URL
	}
	if c.Database.Driver == "mysql" {
		return c.MySQLDSN()
	}
	return c.PostgresDSN()
}

// Helper untuk build DSN MySQL
func (c *Config) MySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4&loc=UTC",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
	)
}

// Helper untuk build DSN Postgres
func (c *Config) PostgresDSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.Database.User, c.Database.Password),
		Host:     fmt.Sprintf("%s:%d", c.Database.Host, c.Database.Port),
		Path:     "/" + c.Database.Name,
		RawQuery: "sslmode=" + url.QueryEscape(c.Database.SSLMode),
	}
	return u.String()
}
