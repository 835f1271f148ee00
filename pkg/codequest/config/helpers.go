package config

import (
	"fmt"
	"time"

	"github.com/garunski/codequest/pkg/codequest"
)

// Builder provides a fluent interface for building service configuration.
type Builder struct {
	config codequest.Config
}

// NewBuilder creates a new configuration builder with default values.
func NewBuilder() *Builder {
	return &Builder{
		config: codequest.DefaultConfig(),
	}
}

// FromConfig starts a builder from an existing configuration.
func FromConfig(cfg codequest.Config) *Builder {
	return &Builder{config: cfg}
}

// WithAppName sets the application name.
func (b *Builder) WithAppName(name string) *Builder {
	b.config.AppName = name
	return b
}

// WithAppVersion sets the application version.
func (b *Builder) WithAppVersion(version string) *Builder {
	b.config.AppVersion = version
	return b
}

// WithManifestDir sets the directory holding the topic manifests.
func (b *Builder) WithManifestDir(dir string) *Builder {
	b.config.ManifestDir = dir
	return b
}

// WithImageDir sets the directory image names resolve against.
func (b *Builder) WithImageDir(dir string) *Builder {
	b.config.ImageDir = dir
	return b
}

// WithTopicCount sets the number of topic slots.
func (b *Builder) WithTopicCount(n int) *Builder {
	b.config.TopicCount = n
	return b
}

// WithWatchManifests toggles reloading topics when manifests change on disk.
func (b *Builder) WithWatchManifests(watch bool) *Builder {
	b.config.WatchManifests = watch
	return b
}

// WithDataPath sets the event database path.
func (b *Builder) WithDataPath(path string) *Builder {
	b.config.DataPath = path
	return b
}

// WithPort sets the HTTP server port.
func (b *Builder) WithPort(port string) *Builder {
	b.config.Port = port
	return b
}

// WithLogRetentionDays sets the event retention period in days.
func (b *Builder) WithLogRetentionDays(days int) *Builder {
	b.config.LogRetentionDays = days
	return b
}

// WithLogCleanupInterval sets how often old events are pruned.
func (b *Builder) WithLogCleanupInterval(interval time.Duration) *Builder {
	b.config.LogCleanupInterval = interval
	return b
}

// Build returns the configured Config and validates it.
func (b *Builder) Build() (codequest.Config, error) {
	if err := b.config.Validate(); err != nil {
		return codequest.Config{}, err
	}
	return b.config, nil
}

// MustBuild returns the configured Config and panics if validation fails.
func (b *Builder) MustBuild() codequest.Config {
	cfg, err := b.Build()
	if err != nil {
		panic(fmt.Sprintf("invalid configuration: %v", err))
	}
	return cfg
}
