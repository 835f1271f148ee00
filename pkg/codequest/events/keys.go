package events

import "fmt"

const (
	prefixAll     = "events/at/"
	prefixByTopic = "events/by-topic/"
	prefixByType  = "events/by-type/"
)

func timestampKey(e Event) string {
	return fmt.Sprintf("%s%020d/%s", prefixAll, e.Timestamp.UnixNano(), e.ID)
}

func topicPrefix(topic int) string {
	return fmt.Sprintf("%s%04d/", prefixByTopic, topic)
}

func topicKey(e Event) string {
	return fmt.Sprintf("%s%020d/%s", topicPrefix(*e.Topic), e.Timestamp.UnixNano(), e.ID)
}

func typePrefix(t EventType) string {
	return fmt.Sprintf("%s%s/", prefixByType, t)
}

func typeKey(e Event) string {
	return fmt.Sprintf("%s%020d/%s", typePrefix(e.Type), e.Timestamp.UnixNano(), e.ID)
}

// keysFor returns the primary key followed by every secondary index key.
func keysFor(e Event) []string {
	keys := []string{timestampKey(e), typeKey(e)}
	if e.Topic != nil {
		keys = append(keys, topicKey(e))
	}
	return keys
}
