package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Config is the root configuration of the service
type Config struct {
	Server       ServerConfig       `yaml:"server"`
	Logger       LoggerConfig       `yaml:"logger"`
	Database     DatabaseConfig     `yaml:"database"`
	Redis        RedisConfig        `yaml:"redis"`
	JWT          JWTConfig          `yaml:"jwt"`
	AuthAPI      AuthAPIConfig      `yaml:"auth_api"`
	S3           S3Config           `yaml:"s3"`
	Notification NotificationConfig `yaml:"notification"`
	App          AppConfig          `yaml:"app"`
	Jobs         JobsConfig         `yaml:"jobs"`
}

type ServerConfig struct {
	Port            string        `yaml:"port"`
	Mode            string        `yaml:"mode"`
	BasePath        string        `yaml:"base_path"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	AllowedOrigins  []string      `yaml:"allowed_origins"`
}

type LoggerConfig struct {
	Level string `yaml:"level"`
}

type DatabaseConfig struct {
	Driver          string        `yaml:"driver"` // postgres | sqlite
	DSN             string        `yaml:"dsn"`
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	DBName          string        `yaml:"dbname"`
	SSLMode         string        `yaml:"sslmode"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

// GetDSN returns the explicit DSN or builds a postgres DSN from the parts
func (d DatabaseConfig) GetDSN() string {
	if d.DSN != "" {
		return d.DSN
	}
	if d.Driver == "sqlite" {
		return "nexus.db"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type RedisConfig struct {
	URL            string        `yaml:"url"`
	Addr           string        `yaml:"addr"`
	Password       string        `yaml:"password"`
	DB             int           `yaml:"db"`
	UnreadCountTTL time.Duration `yaml:"unread_count_ttl"`
}

// Enabled reports whether any Redis endpoint is configured
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Addr != ""
}

type JWTConfig struct {
	Secret string `yaml:"secret"`
}

type AuthAPIConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

type S3Config struct {
	Bucket       string        `yaml:"bucket"`
	Region       string        `yaml:"region"`
	Endpoint     string        `yaml:"endpoint"`
	AccessKey    string        `yaml:"access_key"`
	SecretKey    string        `yaml:"secret_key"`
	UploadExpiry time.Duration `yaml:"upload_expiry"`
}

// Enabled reports whether attachment storage is configured
func (s S3Config) Enabled() bool {
	return s.Bucket != "" && s.Region != ""
}

type NotificationConfig struct {
	WebhookURL string        `yaml:"webhook_url"`
	APIKey     string        `yaml:"api_key"`
	Timeout    time.Duration `yaml:"timeout"`
}

type AppConfig struct {
	SystemActorID             string        `yaml:"system_actor_id"`
	PublicBaseURL             string        `yaml:"public_base_url"`
	NotificationsPageSize     int           `yaml:"notifications_page_size"`
	AttachmentTTL             time.Duration `yaml:"attachment_ttl"`
	NotificationRetentionDays int           `yaml:"notification_retention_days"`
}

// SystemActor returns the configured bot identity, or uuid.Nil when unset
func (a AppConfig) SystemActor() uuid.UUID {
	id, err := uuid.Parse(a.SystemActorID)
	if err != nil {
		return uuid.Nil
	}
	return id
}

type JobsConfig struct {
	AttachmentCleanupSchedule   string `yaml:"attachment_cleanup_schedule"`
	NotificationCleanupSchedule string `yaml:"notification_cleanup_schedule"`
}

// Default returns the configuration used when no file is present
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "8000",
			Mode:            "debug",
			BasePath:        "/api",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			AllowedOrigins:  []string{"http://localhost:5173", "http://localhost:3000"},
		},
		Logger: LoggerConfig{Level: "info"},
		Database: DatabaseConfig{
			Driver:          "postgres",
			Host:            "localhost",
			Port:            5432,
			User:            "nexus",
			DBName:          "nexus",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 5 * time.Minute,
		},
		Redis: RedisConfig{
			UnreadCountTTL: 5 * time.Minute,
		},
		AuthAPI: AuthAPIConfig{Timeout: 5 * time.Second},
		S3:      S3Config{UploadExpiry: 5 * time.Minute},
		Notification: NotificationConfig{
			Timeout: 3 * time.Second,
		},
		App: AppConfig{
			PublicBaseURL:             "http://localhost:8000",
			NotificationsPageSize:     20,
			AttachmentTTL:             time.Hour,
			NotificationRetentionDays: 30,
		},
		Jobs: JobsConfig{
			AttachmentCleanupSchedule:   "@every 1h",
			NotificationCleanupSchedule: "@daily",
		},
	}
}

// Load reads the yaml file (if present) on top of defaults, then applies env overrides
func Load(path string) (*Config, error) {
	cfg := Default()

	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("SERVER_PORT"); v != "" {
		cfg.Server.Port = v
	}
	if v := os.Getenv("GIN_MODE"); v != "" {
		cfg.Server.Mode = v
	}
	if v := os.Getenv("BASE_PATH"); v != "" {
		cfg.Server.BasePath = v
	}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		cfg.Server.AllowedOrigins = strings.Split(v, ",")
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logger.Level = v
	}
	if v := os.Getenv("DATABASE_DRIVER"); v != "" {
		cfg.Database.Driver = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("DATABASE_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("DATABASE_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Database.Port = p
		}
	}
	if v := os.Getenv("DATABASE_USER"); v != "" {
		cfg.Database.User = v
	}
	if v := os.Getenv("DATABASE_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("DATABASE_NAME"); v != "" {
		cfg.Database.DBName = v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		cfg.Redis.URL = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWT.Secret = v
	}
	if v := os.Getenv("AUTH_SERVICE_URL"); v != "" {
		cfg.AuthAPI.BaseURL = v
	}
	if v := os.Getenv("S3_BUCKET"); v != "" {
		cfg.S3.Bucket = v
	}
	if v := os.Getenv("S3_REGION"); v != "" {
		cfg.S3.Region = v
	}
	if v := os.Getenv("S3_ENDPOINT"); v != "" {
		cfg.S3.Endpoint = v
	}
	if v := os.Getenv("S3_ACCESS_KEY"); v != "" {
		cfg.S3.AccessKey = v
	}
	if v := os.Getenv("S3_SECRET_KEY"); v != "" {
		cfg.S3.SecretKey = v
	}
	if v := os.Getenv("NOTIFICATION_WEBHOOK_URL"); v != "" {
		cfg.Notification.WebhookURL = v
	}
	if v := os.Getenv("INTERNAL_API_KEY"); v != "" {
		cfg.Notification.APIKey = v
	}
	if v := os.Getenv("SYSTEM_ACTOR_ID"); v != "" {
		cfg.App.SystemActorID = v
	}
	if v := os.Getenv("PUBLIC_BASE_URL"); v != "" {
		cfg.App.PublicBaseURL = v
	}
}

// Validate checks settings that would otherwise fail late at runtime
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.JWT.Secret == "" && c.AuthAPI.BaseURL == "" {
		return fmt.Errorf("either jwt.secret or auth_api.base_url must be set")
	}
	if c.App.SystemActorID != "" {
		if _, err := uuid.Parse(c.App.SystemActorID); err != nil {
			return fmt.Errorf("invalid app.system_actor_id: %w", err)
		}
	}
	if c.App.NotificationsPageSize <= 0 {
		c.App.NotificationsPageSize = 20
	}
	return nil
}
