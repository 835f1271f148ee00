package store

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-logr/logr"

	"github.com/garunski/codequest/pkg/codequest/asset"
	apperrors "github.com/garunski/codequest/pkg/codequest/errors"
	"github.com/garunski/codequest/pkg/codequest/events"
	"github.com/garunski/codequest/pkg/codequest/index"
	"github.com/garunski/codequest/pkg/codequest/manifest"
)

// DefaultTopicCount is the number of lesson topics shown in the sidebar.
const DefaultTopicCount = 12

// ManifestStore owns the topic manifests on disk and their resolved
// projection in memory. Mutations on one topic are serialized; a mutation
// returns only after the topic projection has been rebuilt.
type ManifestStore struct {
	dir        string
	topicCount int
	library    *asset.Library
	resolver   asset.Resolver
	index      *index.TopicIndex
	eventStore events.EventStorage
	logger     logr.Logger
	locks      []sync.Mutex
}

type Options struct {
	ManifestDir string
	TopicCount  int
	Library     *asset.Library
	Resolver    asset.Resolver
	Index       *index.TopicIndex
	EventStore  events.EventStorage
	Logger      logr.Logger
}

func NewManifestStore(opts Options) (*ManifestStore, error) {
	if opts.ManifestDir == "" {
		return nil, fmt.Errorf("%w: manifest directory cannot be empty", apperrors.ErrInvalid)
	}
	if opts.Library == nil {
		return nil, fmt.Errorf("%w: asset library is required", apperrors.ErrInvalid)
	}
	if opts.TopicCount == 0 {
		opts.TopicCount = DefaultTopicCount
	}
	if opts.TopicCount < 0 {
		return nil, fmt.Errorf("%w: topic count must be positive, got %d", apperrors.ErrInvalid, opts.TopicCount)
	}
	if opts.Resolver == nil {
		opts.Resolver = asset.NewImageResolver(opts.Library)
	}
	if opts.Index == nil {
		opts.Index = index.NewIndex()
	}
	if opts.Logger.GetSink() == nil {
		opts.Logger = logr.Discard()
	}

	return &ManifestStore{
		dir:        opts.ManifestDir,
		topicCount: opts.TopicCount,
		library:    opts.Library,
		resolver:   opts.Resolver,
		index:      opts.Index,
		eventStore: opts.EventStore,
		logger:     opts.Logger,
		locks:      make([]sync.Mutex, opts.TopicCount),
	}, nil
}

func (s *ManifestStore) TopicCount() int {
	return s.topicCount
}

func (s *ManifestStore) ManifestDir() string {
	return s.dir
}

func (s *ManifestStore) ImageExists(name string) bool {
	return s.library.Exists(name)
}

func (s *ManifestStore) validateTopic(topic int) error {
	if topic < 0 || topic >= s.topicCount {
		return fmt.Errorf("%w: %d is outside [0, %d)", apperrors.ErrInvalidTopic, topic, s.topicCount)
	}
	return nil
}

func (s *ManifestStore) record(event events.Event) {
	events.StoreEventSafe(s.eventStore, s.logger, event)
}

// readManifest treats a missing manifest as empty.
func (s *ManifestStore) readManifest(topic int) ([]string, bool, error) {
	lines, err := manifest.ReadLines(manifest.Path(s.dir, topic))
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return lines, true, nil
}

func (s *ManifestStore) AddImage(topic int, name string) error {
	if err := s.validateTopic(topic); err != nil {
		return err
	}
	log := s.logger.WithValues("topic", topic, "image", name)

	if !s.ImageExists(name) {
		err := fmt.Errorf("%w: %q is not in %s", apperrors.ErrInvalidAsset, name, s.library.BaseDir())
		log.Info("Image does not exist, not adding to manifest")
		s.record(events.Warning(topic, name, events.OpAdd, "image does not exist", err))
		return err
	}

	s.locks[topic].Lock()
	defer s.locks[topic].Unlock()

	lines, _, err := s.readManifest(topic)
	if err != nil {
		log.Error(err, "failed to read manifest")
		s.record(events.Error(topic, name, events.OpAdd, "failed to read manifest", err))
		return err
	}

	if manifest.Contains(lines, name) {
		err := fmt.Errorf("%w: %q already listed in topic %d", apperrors.ErrDuplicate, name, topic)
		log.Info("Image already listed in manifest")
		s.record(events.Info(topic, name, events.OpAdd, "image already listed"))
		return err
	}

	if err := manifest.AppendLine(manifest.Path(s.dir, topic), name); err != nil {
		log.Error(err, "failed to append image to manifest")
		s.record(events.Error(topic, name, events.OpAdd, "failed to append image", err))
		return err
	}

	s.reloadLocked(topic)

	log.Info("Added image to manifest")
	s.record(events.Success(topic, name, events.OpAdd, "image added"))
	return nil
}

func (s *ManifestStore) DeleteImage(topic int, name string) (int, error) {
	if err := s.validateTopic(topic); err != nil {
		return 0, err
	}
	log := s.logger.WithValues("topic", topic, "image", name)

	s.locks[topic].Lock()
	defer s.locks[topic].Unlock()

	path := manifest.Path(s.dir, topic)
	lines, found, err := s.readManifest(topic)
	if err != nil {
		log.Error(err, "failed to read manifest")
		s.record(events.Error(topic, name, events.OpDelete, "failed to read manifest", err))
		return 0, err
	}
	if !found {
		err := fmt.Errorf("%w: manifest for topic %d", apperrors.ErrNotFound, topic)
		log.Info("Manifest does not exist, nothing to delete")
		s.record(events.Info(topic, name, events.OpDelete, "manifest does not exist"))
		return 0, err
	}

	kept, removed := manifest.Remove(lines, name)
	if removed == 0 {
		err := fmt.Errorf("%w: %q in topic %d", apperrors.ErrNotFound, name, topic)
		log.Info("Image not found in manifest")
		s.record(events.Info(topic, name, events.OpDelete, "image not listed"))
		return 0, err
	}

	if err := manifest.WriteLines(path, kept); err != nil {
		log.Error(err, "failed to rewrite manifest")
		s.record(events.Error(topic, name, events.OpDelete, "failed to rewrite manifest", err))
		return 0, err
	}

	s.reloadLocked(topic)

	log.Info("Deleted image from manifest", "removed", removed)
	s.record(events.Success(topic, name, events.OpDelete, fmt.Sprintf("removed %d line(s)", removed)))
	return removed, nil
}

// LoadAll reads every manifest and rebuilds the projection. A missing or
// unreadable manifest yields an empty topic; an image that cannot be resolved
// is skipped. Neither stops the rest of the load. Each topic is published
// while its lock is held, so a mutation that lands mid-load is never undone.
func (s *ManifestStore) LoadAll() map[int][]index.Entry {
	projection := make(map[int][]index.Entry, s.topicCount)
	total := 0
	for topic := 0; topic < s.topicCount; topic++ {
		s.locks[topic].Lock()
		projection[topic] = s.reloadLocked(topic)
		s.locks[topic].Unlock()
		total += len(projection[topic])
	}

	s.logger.Info("Loaded topic manifests", "topics", s.topicCount, "images", total)
	s.record(events.Event{
		Type:      events.EventTypeInfo,
		Operation: events.OpLoad,
		Message:   fmt.Sprintf("loaded %d images across %d topics", total, s.topicCount),
	})
	return projection
}

func (s *ManifestStore) Reload(topic int) ([]index.Entry, error) {
	if err := s.validateTopic(topic); err != nil {
		return nil, err
	}

	s.locks[topic].Lock()
	defer s.locks[topic].Unlock()

	entries := s.reloadLocked(topic)
	s.record(events.Info(topic, "", events.OpReload, fmt.Sprintf("reloaded %d images", len(entries))))
	return entries, nil
}

// reloadLocked must be called with the topic lock held.
func (s *ManifestStore) reloadLocked(topic int) []index.Entry {
	entries := s.loadTopic(topic)
	s.index.Set(topic, entries)
	return entries
}

func (s *ManifestStore) loadTopic(topic int) []index.Entry {
	log := s.logger.WithValues("topic", topic)
	entries := []index.Entry{}

	lines, found, err := s.readManifest(topic)
	if err != nil {
		log.Error(err, "failed to read manifest, treating topic as empty")
		s.record(events.Error(topic, "", events.OpLoad, "failed to read manifest", err))
		return entries
	}
	if !found {
		log.V(1).Info("No manifest for topic", "path", manifest.Path(s.dir, topic))
		return entries
	}

	for _, name := range lines {
		handle, err := s.resolver.Resolve(name)
		if err != nil {
			log.Info("Could not load image, skipping", "image", name, "error", err.Error())
			s.record(events.Warning(topic, name, events.OpResolve, "could not load image", err))
			continue
		}
		entries = append(entries, index.Entry{Name: name, Handle: handle})
	}
	return entries
}

func (s *ManifestStore) Topic(topic int) ([]index.Entry, error) {
	if err := s.validateTopic(topic); err != nil {
		return nil, err
	}
	entries, ok := s.index.Get(topic)
	if !ok {
		return []index.Entry{}, nil
	}
	return entries, nil
}

// Projection returns the current entries of every topic slot. Topics that
// have not been loaded yet come back empty.
func (s *ManifestStore) Projection() map[int][]index.Entry {
	projection := s.index.List()
	for topic := 0; topic < s.topicCount; topic++ {
		if _, ok := projection[topic]; !ok {
			projection[topic] = []index.Entry{}
		}
	}
	return projection
}

func (s *ManifestStore) Names(topic int) ([]string, error) {
	if err := s.validateTopic(topic); err != nil {
		return nil, err
	}

	s.locks[topic].Lock()
	defer s.locks[topic].Unlock()

	lines, _, err := s.readManifest(topic)
	if err != nil {
		return nil, err
	}
	if lines == nil {
		lines = []string{}
	}
	return lines, nil
}
