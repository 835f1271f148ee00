package server

import (
	"fmt"

	"github.com/go-logr/logr"

	"github.com/garunski/codequest/pkg/codequest/asset"
	"github.com/garunski/codequest/pkg/codequest/database"
	"github.com/garunski/codequest/pkg/codequest/events"
	"github.com/garunski/codequest/pkg/codequest/index"
	"github.com/garunski/codequest/pkg/codequest/store"
)

// StorageComponents holds all storage-related components
type StorageComponents struct {
	DB            *database.DB
	Index         *index.TopicIndex
	EventStore    events.EventStorage
	Library       *asset.Library
	ManifestStore *store.ManifestStore
}

// NewStorageComponents opens the event database and builds the manifest store
// on top of it. The projection is empty until LoadAll runs.
func NewStorageComponents(cfg *Config, logger logr.Logger) (*StorageComponents, error) {
	logger.Info("Opening BadgerDB", "path", cfg.DataPath)
	db, err := database.NewDB(cfg.DataPath, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open BadgerDB: %w", err)
	}

	eventStore := events.NewStorage(db, logger)
	logger.Info("Event storage initialized")

	library := asset.NewLibrary(cfg.ImageDir)
	idx := index.NewIndex()

	manifestStore, err := store.NewManifestStore(store.Options{
		ManifestDir: cfg.ManifestDir,
		TopicCount:  cfg.TopicCount,
		Library:     library,
		Resolver:    asset.NewImageResolver(library),
		Index:       idx,
		EventStore:  eventStore,
		Logger:      logger.WithName("store"),
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create manifest store: %w", err)
	}

	return &StorageComponents{
		DB:            db,
		Index:         idx,
		EventStore:    eventStore,
		Library:       library,
		ManifestStore: manifestStore,
	}, nil
}
