package server

import (
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-logr/logr"

	"github.com/garunski/codequest/pkg/codequest/api"
	"github.com/garunski/codequest/pkg/codequest/database"
	"github.com/garunski/codequest/pkg/codequest/events"
	"github.com/garunski/codequest/pkg/codequest/store"
	"github.com/garunski/codequest/pkg/codequest/watcher"
)

// Config holds server configuration
type Config struct {
	AppName            string
	AppVersion         string
	DataPath           string
	Port               string
	LogRetentionDays   int
	LogCleanupInterval time.Duration
	ManifestDir        string
	ImageDir           string
	TopicCount         int
	WatchManifests     bool
	WatchDebounce      time.Duration
}

type Server struct {
	config     *Config
	logger     logr.Logger
	db         *database.DB
	eventStore events.EventStorage
	store      *store.ManifestStore
	handler    *api.Handler
	httpServer *http.Server
	watcher    *watcher.Watcher

	mu    sync.Mutex
	addr  net.Addr
	ready chan struct{}
}

// NewServer builds the storage stack, loads every topic and prepares the HTTP
// server. Nothing listens until Run is called.
func NewServer(cfg *Config, logger logr.Logger) (*Server, error) {
	storage, err := NewStorageComponents(cfg, logger)
	if err != nil {
		return nil, err
	}

	projection := storage.ManifestStore.LoadAll()
	logger.Info("Topic projection ready", "topics", len(projection))

	handler, err := api.NewHandler(
		storage.ManifestStore,
		storage.Library,
		storage.EventStore,
		logger.WithName("api"),
		cfg.AppName,
		cfg.AppVersion,
	)
	if err != nil {
		storage.DB.Close()
		return nil, fmt.Errorf("failed to create handler: %w", err)
	}

	var w *watcher.Watcher
	if cfg.WatchManifests {
		w, err = watcher.New(cfg.ManifestDir, storage.ManifestStore, logger)
		if err != nil {
			storage.DB.Close()
			return nil, fmt.Errorf("failed to create manifest watcher: %w", err)
		}
		if cfg.WatchDebounce > 0 {
			w.SetDebounce(cfg.WatchDebounce)
		}
	}

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           handler.SetupRoutes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &Server{
		config:     cfg,
		logger:     logger,
		db:         storage.DB,
		eventStore: storage.EventStore,
		store:      storage.ManifestStore,
		handler:    handler,
		httpServer: httpServer,
		watcher:    w,
		ready:      make(chan struct{}),
	}, nil
}

// Store returns the manifest store backing the server.
func (s *Server) Store() *store.ManifestStore {
	return s.store
}

// Ready is closed once the HTTP listener is bound.
func (s *Server) Ready() <-chan struct{} {
	return s.ready
}

// Addr returns the bound listen address, or nil before Run binds it.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}

func (s *Server) Close() error {
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
		s.db = nil
	}
	return nil
}
