package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	// WebServer Configuration
	WebServerPort int    `mapstructure:"WEBSERVER_PORT"`
	SessionSecret string `mapstructure:"SESSION_SECRET"`

	// Database Configuration
	DatabaseDSN     string `mapstructure:"DATABASE_DSN" validate:"required"`
	DatabaseRetries int    `mapstructure:"DATABASE_RETRIES"`

	// Feed Configuration
	FeedAdSlots              string        `mapstructure:"FEED_AD_SLOTS"`
	FeedPageSize             int           `mapstructure:"FEED_PAGE_SIZE" validate:"min=1,max=50"`
	FeedSessionTTL           time.Duration `mapstructure:"FEED_SESSION_TTL"`
	FeedThumbnailPlaceholder string        `mapstructure:"FEED_THUMBNAIL_PLACEHOLDER"`
	FeedCountLocale          string        `mapstructure:"FEED_COUNT_LOCALE" validate:"required,bcp47_language_tag"`

	// Thumbnail cache
	MemcachedServers      string `mapstructure:"MEMCACHED_SERVERS"`
	ThumbnailAllowedHosts string `mapstructure:"THUMBNAIL_ALLOWED_HOSTS"`

	// Event publishing
	NatsURL string `mapstructure:"NATS_URL"`
}

// use reflect to bind environment variables based on mapstructure tags
func bindEnv(c Config) {
	val := reflect.ValueOf(c)
	typ := val.Type()

	for i := 0; i < val.NumField(); i++ {
		field := typ.Field(i)
		fieldVal := val.Field(i)
		tag := field.Tag.Get("mapstructure")

		if tag != "" {
			viper.BindEnv(tag)
		}

		// Handle nested structs
		if field.Type.Kind() == reflect.Struct && tag == "" {
			nestedTyp := fieldVal.Type()
			for j := 0; j < fieldVal.NumField(); j++ {
				nestedField := nestedTyp.Field(j)
				nestedTag := nestedField.Tag.Get("mapstructure")
				if nestedTag != "" {
					viper.BindEnv(nestedTag)
				}
			}
		}
	}
	slog.Info("Environment variables bound")
}

// loadDotEnv reads .env into the process environment without overriding
// variables that are already set.
func loadDotEnv(path string) {
	if err := godotenv.Load(path); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			slog.Warn("failed to read env file", "path", path, "error", err)
		}
	}
}

func LoadConfig(ctx context.Context) (*Config, error) {
	loadDotEnv(".env")

	bindEnv(Config{})
	viper.AutomaticEnv()

	// Defaults
	viper.SetDefault("WEBSERVER_PORT", 8080)
	viper.SetDefault("DATABASE_RETRIES", 10)
	viper.SetDefault("FEED_AD_SLOTS", "0,6")
	viper.SetDefault("FEED_PAGE_SIZE", 20)
	viper.SetDefault("FEED_SESSION_TTL", "30m")
	viper.SetDefault("FEED_THUMBNAIL_PLACEHOLDER", "/static/video-placeholder.svg")
	viper.SetDefault("FEED_COUNT_LOCALE", "en")
	viper.SetDefault("THUMBNAIL_ALLOWED_HOSTS", "i.ytimg.com,img.youtube.com")

	cfg := Config{}
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	slog.Info("Loaded configuration",
		"port", cfg.WebServerPort,
		"ad_slots", cfg.FeedAdSlots,
		"page_size", cfg.FeedPageSize,
		"session_ttl", cfg.FeedSessionTTL,
		"memcached", cfg.MemcachedServers != "",
		"nats", cfg.NatsURL != "",
	)

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// SplitList splits a comma separated config value, dropping blanks.
func SplitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if v := strings.TrimSpace(part); v != "" {
			out = append(out, v)
		}
	}
	return out
}
