package object

import (
	"github.com/dshills/mapforge/internal/event"
	"github.com/dshills/mapforge/internal/property"
)

// PropertyEvent reports a property mutation on Object.
type PropertyEvent struct {
	Object   *Object
	Property *property.Property
	// Previous is the replaced property for PropertyChanged, nil otherwise.
	Previous *property.Property
}

// ChildEvent reports a child attached to or detached from Object.
type ChildEvent struct {
	Object *Object
	Child  Node
}

// ChangeKind names the mutation that started a ChangedEvent.
type ChangeKind int

const (
	PropertyAddedChange ChangeKind = iota
	PropertyChangedChange
	PropertyRemovedChange
	ChildAddedChange
	ChildRemovedChange
	// ChildrenReplacedChange and RestoredChange replace state wholesale.
	ChildrenReplacedChange
	RestoredChange
)

var changeKindNames = [...]string{
	"property added",
	"property changed",
	"property removed",
	"child added",
	"child removed",
	"children replaced",
	"restored",
}

func (k ChangeKind) String() string {
	if k < 0 || int(k) >= len(changeKindNames) {
		return "unknown"
	}
	return changeKindNames[k]
}

// ChangedEvent reports that Object or something below it was mutated.
type ChangedEvent struct {
	Object *Object
	// Origin is the object whose own mutation started the notification.
	Origin *Object
	Kind   ChangeKind

	// Property and Previous are set for property changes, Child for child
	// changes. They describe the mutation on Origin.
	Property *property.Property
	Previous *property.Property
	Child    Node
}

// Events holds the change channels of one object.
type Events struct {
	PropertyAdded   event.Channel[PropertyEvent]
	PropertyChanged event.Channel[PropertyEvent]
	PropertyRemoved event.Channel[PropertyEvent]

	ChildAdded   event.Channel[ChildEvent]
	ChildRemoved event.Channel[ChildEvent]

	// Changed fires once for every mutation of a descendant.
	Changed event.Channel[ChangedEvent]

	// Modified fires after every own mutation and every Changed.
	Modified event.Channel[ChangedEvent]
}
