package store

import (
	"github.com/garunski/codequest/pkg/codequest/index"
)

// TopicStore is what the presentation layer needs from the manifest store.
type TopicStore interface {
	// TopicCount returns the number of topic slots.
	TopicCount() int

	// ImageExists reports whether name is present in the image directory.
	ImageExists(name string) bool

	// AddImage appends name to the topic manifest unless it is missing or already listed.
	AddImage(topic int, name string) error

	// DeleteImage removes every occurrence of name from the topic manifest
	// and returns how many lines were dropped.
	DeleteImage(topic int, name string) (int, error)

	// LoadAll rebuilds the projection for every topic.
	LoadAll() map[int][]index.Entry

	// Reload rebuilds the projection for a single topic.
	Reload(topic int) ([]index.Entry, error)

	// Topic returns the current projection of a topic.
	Topic(topic int) ([]index.Entry, error)

	// Projection returns the current entries of every topic.
	Projection() map[int][]index.Entry

	// Names returns the raw manifest lines of a topic.
	Names(topic int) ([]string, error)
}

var _ TopicStore = (*ManifestStore)(nil)
