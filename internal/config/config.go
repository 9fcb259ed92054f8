// Package config handles application configuration loading and validation using Viper.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config represents the application configuration.
type Config struct {
	Platform  PlatformConfig  `mapstructure:"platform"`
	Game      GameConfig      `mapstructure:"game"`
	Catalog   CatalogConfig   `mapstructure:"catalog"`
	Snapshot  SnapshotConfig  `mapstructure:"snapshot"`
	Archive   ArchiveConfig   `mapstructure:"archive"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Dashboard DashboardConfig `mapstructure:"dashboard"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	Notify    NotifyConfig    `mapstructure:"notify"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// PlatformConfig contains chat platform API connection and authentication settings.
type PlatformConfig struct {
	APIURL       string `mapstructure:"api_url"`
	Token        string `mapstructure:"token"`
	GuildID      string `mapstructure:"guild_id"`
	AdminID      string `mapstructure:"admin_id"`
	MessageLimit int    `mapstructure:"message_limit"`
}

// GameConfig contains scoring rules that are environment-specific rather than
// part of the quest/bounty catalogs.
type GameConfig struct {
	StartDate         string   `mapstructure:"start_date"` // YYYY-MM-DD, messages before this are not scored
	GeneralChannels   []string `mapstructure:"general_channels"`
	GovernanceChannel string   `mapstructure:"governance_channel"`
	QuestMarker       string   `mapstructure:"quest_marker"`
	CheckInQuestTitle string   `mapstructure:"check_in_quest_title"`
}

// CatalogConfig contains paths to the quest and bounty definition files.
type CatalogConfig struct {
	QuestsPath   string `mapstructure:"quests_path"`
	BountiesPath string `mapstructure:"bounties_path"`
}

// SnapshotConfig contains the scoreboard snapshot output settings.
type SnapshotConfig struct {
	Path string `mapstructure:"path"`
}

// ArchiveConfig contains settings for the optional relational archive of
// aggregated scores.
type ArchiveConfig struct {
	Enabled  bool           `mapstructure:"enabled"`
	Driver   string         `mapstructure:"driver"` // "postgres" or "sqlite"
	Postgres PostgresConfig `mapstructure:"postgres"`
	SQLite   SQLiteConfig   `mapstructure:"sqlite"`
}

// PostgresConfig contains PostgreSQL connection and pool settings.
type PostgresConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Database        string `mapstructure:"database"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	SSLMode         string `mapstructure:"ssl_mode"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

// SQLiteConfig contains SQLite file settings.
type SQLiteConfig struct {
	Path string `mapstructure:"path"`
}

// CacheConfig contains Redis settings for the channel-history cache.
type CacheConfig struct {
	Enabled    bool        `mapstructure:"enabled"`
	TTLMinutes int         `mapstructure:"ttl_minutes"`
	Redis      RedisConfig `mapstructure:"redis"`
}

// RedisConfig contains Redis connection and pool settings.
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// SchedulerConfig contains periodic scoring run settings.
type SchedulerConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Time     string `mapstructure:"time"` // HH:MM, daily
	Timezone string `mapstructure:"timezone"`
}

// DashboardConfig contains the read-only HTTP API settings.
type DashboardConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Port    int  `mapstructure:"port"`
}

// MetricsConfig contains Prometheus exporter settings.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// NotifyConfig contains webhook notification settings for run summaries.
type NotifyConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	WebhookURL string `mapstructure:"webhook_url"`
	Channel    string `mapstructure:"channel"`
	Username   string `mapstructure:"username"`
}

// LoggingConfig contains application logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// Load reads configuration from file and environment variables.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/scorekeeper/")
	}

	// Explicit environment bindings for 12-factor deployments
	_ = v.BindEnv("platform.api_url", "PLATFORM_API_URL")
	_ = v.BindEnv("platform.token", "PLATFORM_TOKEN", "BOT_TOKEN")
	_ = v.BindEnv("platform.guild_id", "PLATFORM_GUILD_ID")
	_ = v.BindEnv("platform.admin_id", "PLATFORM_ADMIN_ID")
	_ = v.BindEnv("platform.message_limit", "PLATFORM_MESSAGE_LIMIT")

	_ = v.BindEnv("catalog.quests_path", "CATALOG_QUESTS_PATH")
	_ = v.BindEnv("catalog.bounties_path", "CATALOG_BOUNTIES_PATH")
	_ = v.BindEnv("snapshot.path", "SNAPSHOT_PATH")

	_ = v.BindEnv("archive.enabled", "ARCHIVE_ENABLED")
	_ = v.BindEnv("archive.driver", "ARCHIVE_DRIVER")
	_ = v.BindEnv("archive.postgres.host", "POSTGRES_HOST")
	_ = v.BindEnv("archive.postgres.port", "POSTGRES_PORT")
	_ = v.BindEnv("archive.postgres.database", "POSTGRES_DB")
	_ = v.BindEnv("archive.postgres.user", "POSTGRES_USER")
	_ = v.BindEnv("archive.postgres.password", "POSTGRES_PASSWORD")
	_ = v.BindEnv("archive.postgres.ssl_mode", "POSTGRES_SSL_MODE")
	_ = v.BindEnv("archive.sqlite.path", "SQLITE_PATH")

	_ = v.BindEnv("cache.enabled", "CACHE_ENABLED")
	_ = v.BindEnv("cache.redis.host", "REDIS_HOST")
	_ = v.BindEnv("cache.redis.port", "REDIS_PORT")
	_ = v.BindEnv("cache.redis.password", "REDIS_PASSWORD")
	_ = v.BindEnv("cache.redis.db", "REDIS_DB")
	_ = v.BindEnv("cache.redis.pool_size", "REDIS_POOL_SIZE")

	_ = v.BindEnv("scheduler.enabled", "SCHEDULER_ENABLED")
	_ = v.BindEnv("scheduler.time", "SCHEDULER_TIME")
	_ = v.BindEnv("scheduler.timezone", "SCHEDULER_TIMEZONE")

	_ = v.BindEnv("dashboard.enabled", "DASHBOARD_ENABLED")
	_ = v.BindEnv("dashboard.port", "DASHBOARD_PORT")

	_ = v.BindEnv("notify.enabled", "NOTIFY_ENABLED")
	_ = v.BindEnv("notify.webhook_url", "NOTIFY_WEBHOOK_URL")
	_ = v.BindEnv("notify.channel", "NOTIFY_CHANNEL")
	_ = v.BindEnv("notify.username", "NOTIFY_USERNAME")

	_ = v.BindEnv("logging.level", "LOG_LEVEL")
	_ = v.BindEnv("logging.format", "LOG_FORMAT")
	_ = v.BindEnv("logging.output", "LOG_OUTPUT")

	v.SetDefault("platform.message_limit", 100)
	v.SetDefault("game.quest_marker", "@stgquest")
	v.SetDefault("game.check_in_quest_title", "Daily Quest - Check-In")
	v.SetDefault("cache.ttl_minutes", 30)
	v.SetDefault("dashboard.port", 8080)
	v.SetDefault("metrics.path", "/metrics")
	v.SetDefault("notify.username", "scorekeeper")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Platform.APIURL == "" {
		return fmt.Errorf("platform.api_url is required")
	}
	if c.Platform.Token == "" {
		return fmt.Errorf("platform.token is required")
	}
	if c.Platform.GuildID == "" {
		return fmt.Errorf("platform.guild_id is required")
	}
	if c.Catalog.QuestsPath == "" {
		return fmt.Errorf("catalog.quests_path is required")
	}
	if c.Catalog.BountiesPath == "" {
		return fmt.Errorf("catalog.bounties_path is required")
	}
	if c.Snapshot.Path == "" {
		return fmt.Errorf("snapshot.path is required")
	}
	if len(c.Game.GeneralChannels) == 0 {
		return fmt.Errorf("at least one general channel must be configured")
	}
	if c.Game.StartDate != "" {
		if _, err := time.Parse("2006-01-02", c.Game.StartDate); err != nil {
			return fmt.Errorf("game.start_date must be YYYY-MM-DD: %w", err)
		}
	}
	if c.Archive.Enabled {
		switch c.Archive.Driver {
		case "postgres":
			if c.Archive.Postgres.Host == "" {
				return fmt.Errorf("archive.postgres.host is required")
			}
			if c.Archive.Postgres.Database == "" {
				return fmt.Errorf("archive.postgres.database is required")
			}
			if c.Archive.Postgres.User == "" {
				return fmt.Errorf("archive.postgres.user is required")
			}
		case "sqlite":
			if c.Archive.SQLite.Path == "" {
				return fmt.Errorf("archive.sqlite.path is required")
			}
		default:
			return fmt.Errorf("archive.driver must be postgres or sqlite, got %q", c.Archive.Driver)
		}
	}
	if c.Cache.Enabled && c.Cache.Redis.Host == "" {
		return fmt.Errorf("cache.redis.host is required")
	}
	if c.Notify.Enabled && c.Notify.WebhookURL == "" {
		return fmt.Errorf("notify.webhook_url is required")
	}
	return nil
}

// StartDateTime returns the configured game start date, or the zero time when unset.
func (c *GameConfig) StartDateTime() (time.Time, error) {
	if c.StartDate == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", c.StartDate)
}

// GetLocation returns the scheduler timezone location.
func (c *SchedulerConfig) GetLocation() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}
