package event

// Topic names the kind of an event carried in an Event envelope.
// Topics are dot separated, most general segment first.
type Topic string

// Topics published by the engine.
const (
	TopicPropertyAdded   Topic = "object.property.added"
	TopicPropertyChanged Topic = "object.property.changed"
	TopicPropertyRemoved Topic = "object.property.removed"
	TopicChildAdded      Topic = "object.child.added"
	TopicChildRemoved    Topic = "object.child.removed"
	TopicObjectChanged   Topic = "object.changed"

	TopicSelectionChanged Topic = "selection.changed"

	TopicHistoryChanged      Topic = "history.changed"
	TopicHistoryCaretChanged Topic = "history.caret.changed"

	TopicDocumentLoaded Topic = "editor.document.loaded"
)

// String returns the topic as a string.
func (t Topic) String() string {
	return string(t)
}
