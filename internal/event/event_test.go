package event

import "testing"

func TestNewEvent(t *testing.T) {
	evt := NewEvent(TopicObjectChanged, "payload", "editor-1")

	if evt.Type != TopicObjectChanged {
		t.Errorf("Type = %q, want %q", evt.Type, TopicObjectChanged)
	}
	if evt.Payload != "payload" {
		t.Errorf("Payload = %q", evt.Payload)
	}
	if evt.Metadata.ID == "" {
		t.Error("ID not set")
	}
	if evt.Metadata.Timestamp.IsZero() {
		t.Error("timestamp not set")
	}
	if evt.Metadata.Source != "editor-1" {
		t.Errorf("Source = %q", evt.Metadata.Source)
	}
	if evt.Metadata.Version != 1 {
		t.Errorf("Version = %d, want 1", evt.Metadata.Version)
	}
}

func TestEventIDsUnique(t *testing.T) {
	a := NewEvent(TopicObjectChanged, 0, "")
	b := NewEvent(TopicObjectChanged, 0, "")
	if a.Metadata.ID == b.Metadata.ID {
		t.Error("event IDs should be unique")
	}
}

func TestEventWithCausation(t *testing.T) {
	evt := NewEvent(TopicHistoryChanged, 1, "src")
	caused := evt.WithCausation("cmd-1")

	if caused.Metadata.CausationID != "cmd-1" {
		t.Errorf("CausationID = %q", caused.Metadata.CausationID)
	}
	if caused.Metadata.Source != "src" {
		t.Errorf("Source = %q", caused.Metadata.Source)
	}
	if evt.Metadata.CausationID != "" {
		t.Error("original event should be unchanged")
	}
}
