package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-logr/logr"

	"github.com/garunski/codequest/pkg/codequest/asset"
	"github.com/garunski/codequest/pkg/codequest/events"
	"github.com/garunski/codequest/pkg/codequest/store"
	cqtesting "github.com/garunski/codequest/pkg/codequest/testing"
)

type testHandlerConfig struct {
	images     []string
	nilEvents  bool
	topicCount int
}

type testHandlerOption func(*testHandlerConfig)

func WithImages(names ...string) testHandlerOption {
	return func(cfg *testHandlerConfig) {
		cfg.images = append(cfg.images, names...)
	}
}

func WithNilEventStore() testHandlerOption {
	return func(cfg *testHandlerConfig) {
		cfg.nilEvents = true
	}
}

func WithTopicCount(n int) testHandlerOption {
	return func(cfg *testHandlerConfig) {
		cfg.topicCount = n
	}
}

type testHandlerEnv struct {
	handler    *Handler
	router     http.Handler
	store      *store.ManifestStore
	eventStore *events.Storage
	manifests  string
	images     string
}

func newTestHandler(t *testing.T, opts ...testHandlerOption) *testHandlerEnv {
	t.Helper()

	var cfg testHandlerConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	dirs := cqtesting.NewDirs(t, cfg.images...)
	env := &testHandlerEnv{manifests: dirs.Manifests, images: dirs.Images}
	library := asset.NewLibrary(dirs.Images)

	var eventStore events.EventStorage
	if cfg.nilEvents {
		s, err := store.NewManifestStore(store.Options{
			ManifestDir: dirs.Manifests,
			TopicCount:  cfg.topicCount,
			Library:     library,
			Logger:      logr.Discard(),
		})
		if err != nil {
			t.Fatalf("NewManifestStore() error = %v", err)
		}
		s.LoadAll()
		env.store = s
	} else {
		env.store, env.eventStore = cqtesting.NewTestManifestStore(t, dirs, cfg.topicCount)
		eventStore = env.eventStore
	}

	h, err := NewHandler(env.store, library, eventStore, logr.Discard(), "test-app", "test-version")
	if err != nil {
		t.Fatalf("NewHandler() error = %v", err)
	}
	env.handler = h
	env.router = h.SetupRoutes()
	return env
}

func (e *testHandlerEnv) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testHandlerEnv) manifest(t *testing.T, topic int) string {
	t.Helper()
	return cqtesting.ReadManifest(t, e.manifests, topic)
}

func (e *testHandlerEnv) writeManifest(t *testing.T, topic int, content string) {
	t.Helper()
	cqtesting.WriteManifest(t, e.manifests, topic, content)
}
