package events

import (
	"errors"
	"testing"
	"time"

	"github.com/go-logr/logr"
)

type failingStorage struct {
	EventStorage
	calls int
}

func (f *failingStorage) StoreEvent(Event) error {
	f.calls++
	return errors.New("unavailable")
}

func TestStoreEventSafe_NilStorage(t *testing.T) {
	StoreEventSafe(nil, logr.Discard(), Info(0, "", OpLoad, "noop"))
}

func TestStoreEventSafe_SwallowsErrors(t *testing.T) {
	f := &failingStorage{}
	StoreEventSafe(f, logr.Discard(), Info(0, "", OpLoad, "noop"))
	if f.calls != 1 {
		t.Errorf("StoreEvent called %d times, want 1", f.calls)
	}
}

func TestConstructors(t *testing.T) {
	err := errors.New("boom")

	tests := []struct {
		name     string
		event    Event
		wantType EventType
		wantErr  string
	}{
		{"success", Success(1, "a.png", OpAdd, "added"), EventTypeSuccess, ""},
		{"error", Error(1, "a.png", OpAdd, "failed", err), EventTypeError, "boom"},
		{"error without cause", Error(1, "a.png", OpAdd, "failed", nil), EventTypeError, ""},
		{"info", Info(1, "", OpReload, "reloaded"), EventTypeInfo, ""},
		{"warning", Warning(1, "a.png", OpResolve, "skipped", err), EventTypeWarning, "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.event.Type != tt.wantType {
				t.Errorf("Type = %s, want %s", tt.event.Type, tt.wantType)
			}
			if tt.event.Error != tt.wantErr {
				t.Errorf("Error = %q, want %q", tt.event.Error, tt.wantErr)
			}
			if tt.event.Topic == nil || *tt.event.Topic != 1 {
				t.Errorf("Topic = %v, want 1", tt.event.Topic)
			}
			if time.Since(tt.event.Timestamp) > time.Minute {
				t.Error("Timestamp should be set to now")
			}
		})
	}
}

func TestValidEventType(t *testing.T) {
	for _, et := range []EventType{EventTypeError, EventTypeSuccess, EventTypeInfo, EventTypeWarning} {
		if !ValidEventType(et) {
			t.Errorf("ValidEventType(%s) = false, want true", et)
		}
	}
	if ValidEventType("debug") {
		t.Error("ValidEventType(debug) = true, want false")
	}
}
