package index

import (
	"sync"

	"github.com/garunski/codequest/pkg/codequest/asset"
)

// Entry pairs a manifest line with the handle it resolved to, so names and
// handles can never drift out of step.
type Entry struct {
	Name   string       `json:"name"`
	Handle asset.Handle `json:"handle"`
}

type TopicIndex struct {
	mu     sync.RWMutex
	topics map[int][]Entry
}

func NewIndex() *TopicIndex {
	return &TopicIndex{
		topics: make(map[int][]Entry),
	}
}

func copyEntries(src []Entry) []Entry {
	dst := make([]Entry, len(src))
	copy(dst, src)
	return dst
}

func (idx *TopicIndex) Get(topic int) ([]Entry, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	entries, ok := idx.topics[topic]
	if !ok {
		return nil, false
	}

	return copyEntries(entries), true
}

func (idx *TopicIndex) Set(topic int, entries []Entry) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.topics[topic] = copyEntries(entries)
}

func (idx *TopicIndex) List() map[int][]Entry {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	result := make(map[int][]Entry, len(idx.topics))
	for k, v := range idx.topics {
		result[k] = copyEntries(v)
	}
	return result
}
