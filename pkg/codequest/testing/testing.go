// Package testing holds fixtures shared by the package tests.
package testing

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap/zaptest"

	"github.com/garunski/codequest/pkg/codequest/asset"
	"github.com/garunski/codequest/pkg/codequest/database"
	"github.com/garunski/codequest/pkg/codequest/events"
	"github.com/garunski/codequest/pkg/codequest/manifest"
	"github.com/garunski/codequest/pkg/codequest/store"
)

// NewTestLogger creates a logger that writes through t.Log
func NewTestLogger(t *testing.T) logr.Logger {
	return zapr.NewLogger(zaptest.NewLogger(t))
}

// NewTestDB creates an in-memory test database
func NewTestDB(t *testing.T) *database.DB {
	t.Helper()
	db, err := database.NewTestDB(t)
	if err != nil {
		t.Fatalf("failed to create test DB: %v", err)
	}
	return db
}

// NewTestEventStore creates a test event store
func NewTestEventStore(t *testing.T) *events.Storage {
	t.Helper()
	return events.NewStorage(NewTestDB(t), logr.Discard())
}

// WriteImage writes a small PNG named name under dir.
func WriteImage(t *testing.T, dir, name string) {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewGray(image.Rect(0, 0, 3, 2))); err != nil {
		t.Fatalf("failed to encode png: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create dir for %s: %v", name, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatalf("failed to write image %s: %v", name, err)
	}
}

// WriteManifest replaces the manifest of topic under dir with content verbatim.
func WriteManifest(t *testing.T, dir string, topic int, content string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("failed to create manifest dir: %v", err)
	}
	if err := os.WriteFile(manifest.Path(dir, topic), []byte(content), 0644); err != nil {
		t.Fatalf("failed to write manifest %d: %v", topic, err)
	}
}

// ReadManifest returns the raw content of a topic manifest.
func ReadManifest(t *testing.T, dir string, topic int) string {
	t.Helper()
	data, err := os.ReadFile(manifest.Path(dir, topic))
	if err != nil {
		t.Fatalf("failed to read manifest %d: %v", topic, err)
	}
	return string(data)
}

// Dirs is a throwaway manifest and image directory pair.
type Dirs struct {
	Manifests string
	Images    string
}

// NewDirs creates an image directory holding images and names a manifest
// directory next to it without creating it.
func NewDirs(t *testing.T, images ...string) Dirs {
	t.Helper()
	root := t.TempDir()
	d := Dirs{
		Manifests: filepath.Join(root, "texts"),
		Images:    filepath.Join(root, "images"),
	}
	if err := os.MkdirAll(d.Images, 0755); err != nil {
		t.Fatalf("failed to create image dir: %v", err)
	}
	for _, name := range images {
		WriteImage(t, d.Images, name)
	}
	return d
}

// NewTestManifestStore creates a store over fresh directories with its own
// event log. The projection is loaded before returning.
func NewTestManifestStore(t *testing.T, dirs Dirs, topicCount int) (*store.ManifestStore, *events.Storage) {
	t.Helper()
	eventStore := NewTestEventStore(t)
	library := asset.NewLibrary(dirs.Images)
	s, err := store.NewManifestStore(store.Options{
		ManifestDir: dirs.Manifests,
		TopicCount:  topicCount,
		Library:     library,
		EventStore:  eventStore,
		Logger:      logr.Discard(),
	})
	if err != nil {
		t.Fatalf("NewManifestStore() error = %v", err)
	}
	s.LoadAll()
	return s, eventStore
}
