// Package codequest wires the topic manifest store, its event log and the
// HTTP API into a runnable service.
package codequest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/garunski/codequest/pkg/codequest/asset"
	apperrors "github.com/garunski/codequest/pkg/codequest/errors"
	"github.com/garunski/codequest/pkg/codequest/server"
	"github.com/garunski/codequest/pkg/codequest/store"
)

// Config holds all service configuration
type Config struct {
	// Application metadata
	AppName    string `yaml:"appName"`
	AppVersion string `yaml:"appVersion"`

	// Topic configuration
	ManifestDir    string `yaml:"manifestDir"`
	ImageDir       string `yaml:"imageDir"`
	TopicCount     int    `yaml:"topicCount"`
	WatchManifests bool   `yaml:"watchManifests"`

	// Storage configuration
	DataPath string `yaml:"dataPath"`

	// Server configuration
	Port string `yaml:"port"`

	// Event log configuration
	LogRetentionDays   int           `yaml:"logRetentionDays"`
	LogCleanupInterval time.Duration `yaml:"logCleanupInterval"`
}

// DefaultConfig returns a Config with default values
func DefaultConfig() Config {
	return Config{
		AppName:            "codequest",
		AppVersion:         getEnvOrDefault("VERSION", "dev"),
		ManifestDir:        getEnvOrDefault("CODEQUEST_MANIFEST_DIR", "texts"),
		ImageDir:           getEnvOrDefault("CODEQUEST_IMAGE_DIR", "images"),
		TopicCount:         parseIntOrDefault("CODEQUEST_TOPIC_COUNT", store.DefaultTopicCount),
		WatchManifests:     parseBoolOrDefault("CODEQUEST_WATCH_MANIFESTS", true),
		DataPath:           getEnvOrDefault("BADGER_DATA_PATH", "data/badger"),
		Port:               getEnvOrDefault("PORT", "8081"),
		LogRetentionDays:   parseIntOrDefault("LOG_RETENTION_DAYS", 7),
		LogCleanupInterval: parseDurationOrDefault("LOG_CLEANUP_INTERVAL", 1*time.Hour),
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.AppName == "" {
		return fmt.Errorf("%w: AppName cannot be empty", apperrors.ErrInvalid)
	}
	if c.ManifestDir == "" {
		return fmt.Errorf("%w: ManifestDir cannot be empty", apperrors.ErrInvalid)
	}
	if c.ImageDir == "" {
		return fmt.Errorf("%w: ImageDir cannot be empty", apperrors.ErrInvalid)
	}
	if c.TopicCount <= 0 {
		return fmt.Errorf("%w: TopicCount must be positive", apperrors.ErrInvalid)
	}
	if c.DataPath == "" {
		return fmt.Errorf("%w: DataPath cannot be empty", apperrors.ErrInvalid)
	}
	if c.Port == "" {
		return fmt.Errorf("%w: Port cannot be empty", apperrors.ErrInvalid)
	}
	if c.LogRetentionDays < 0 {
		return fmt.Errorf("%w: LogRetentionDays cannot be negative", apperrors.ErrInvalid)
	}
	if c.LogCleanupInterval <= 0 {
		return fmt.Errorf("%w: LogCleanupInterval must be positive", apperrors.ErrInvalid)
	}
	return nil
}

// LoadConfigFile overlays the YAML file at path onto base. Keys absent from
// the file keep their base value.
func LoadConfigFile(path string, base Config) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return base, apperrors.WrapNotFound(err, "config file "+path)
		}
		return base, apperrors.WrapStorage(err, "read config file "+path)
	}

	cfg := base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return base, apperrors.WrapInvalid(err, "parse config file "+path)
	}
	return cfg, nil
}

// NewLogger builds the development zap logger used by the service and CLI.
func NewLogger() (logr.Logger, error) {
	zapLog, err := zap.NewDevelopment()
	if err != nil {
		return logr.Discard(), fmt.Errorf("failed to create logger: %w", err)
	}
	return zapr.NewLogger(zapLog), nil
}

// OpenStore builds a manifest store over the configured directories without
// the event log or HTTP server. The projection is empty until LoadAll.
func OpenStore(cfg Config, logger logr.Logger) (*store.ManifestStore, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	library := asset.NewLibrary(cfg.ImageDir)
	return store.NewManifestStore(store.Options{
		ManifestDir: cfg.ManifestDir,
		TopicCount:  cfg.TopicCount,
		Library:     library,
		Resolver:    asset.NewImageResolver(library),
		Logger:      logger,
	})
}

// ServerConfig converts cfg to the server package configuration.
func (c Config) ServerConfig() *server.Config {
	return &server.Config{
		AppName:            c.AppName,
		AppVersion:         c.AppVersion,
		DataPath:           c.DataPath,
		Port:               c.Port,
		LogRetentionDays:   c.LogRetentionDays,
		LogCleanupInterval: c.LogCleanupInterval,
		ManifestDir:        c.ManifestDir,
		ImageDir:           c.ImageDir,
		TopicCount:         c.TopicCount,
		WatchManifests:     c.WatchManifests,
	}
}

// Run starts the service with the given configuration and blocks until ctx is
// cancelled or the process receives SIGINT or SIGTERM.
func Run(ctx context.Context, cfg Config) error {
	logger, err := NewLogger()
	if err != nil {
		return err
	}
	return RunWithLogger(ctx, cfg, logger)
}

func RunWithLogger(ctx context.Context, cfg Config, logger logr.Logger) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger.Info("Starting CodeQuest", "appName", cfg.AppName, "version", cfg.AppVersion,
		"manifests", cfg.ManifestDir, "images", cfg.ImageDir, "topics", cfg.TopicCount)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv, err := server.NewServer(cfg.ServerConfig(), logger)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	defer func() {
		if err := srv.Close(); err != nil {
			logger.Error(err, "failed to close server")
		}
	}()

	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Helper functions for environment variable parsing

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

// parseIntOrDefault accepts a plain integer or a day count such as "7d".
func parseIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(strings.TrimSuffix(value, "d")); err == nil {
			return i
		}
	}
	return defaultValue
}

func parseBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
