package object

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	editerrors "github.com/dshills/mapforge/internal/errors"
	"github.com/dshills/mapforge/internal/event"
	"github.com/dshills/mapforge/internal/property"
)

// TypeRoot is the type of plain container objects.
const TypeRoot = "root"

// Node is implemented by *Object and by every type embedding it.
type Node interface {
	GUID() string
	Type() string
	Name() string

	Properties() []*property.Property
	GetProperty(name string) (*property.Property, bool)
	AddProperty(p *property.Property) error
	UpdateProperty(p *property.Property) error
	RemoveProperty(name string) error

	Children() []Node
	GetChild(guid string) (Node, bool)
	Find(guid string) (Node, bool)
	GetObjectsFromGuids(guids []string) []Node
	AddChild(child Node) error
	RemoveChild(guid string) (Node, error)
	Parent() *Object

	Events() *Events
	Serialize() Serialized

	// Base returns the embedded *Object.
	Base() *Object
}

// Object is a node of the document tree.
type Object struct {
	guid       string
	typ        string
	properties []*property.Property
	children   []Node
	parent     *Object
	edges      map[*Object]event.Subscription
	events     Events
}

// New creates an object with a generated GUID.
func New(typ, name string, props ...*property.Property) *Object {
	return NewWithGUID(uuid.NewString(), typ, name, props...)
}

// NewWithGUID creates an object with a caller-supplied GUID, used when
// restoring persisted objects. Properties with reserved names are ignored.
func NewWithGUID(guid, typ, name string, props ...*property.Property) *Object {
	if typ == "" {
		typ = TypeRoot
	}
	o := &Object{
		guid:  guid,
		typ:   typ,
		edges: make(map[*Object]event.Subscription),
	}
	o.properties = append(o.properties,
		property.New(property.NameName, name),
		property.New(property.NameType, typ),
		property.New(property.NameGUID, guid),
	)
	for _, p := range props {
		if isReserved(p.Name()) {
			continue
		}
		if i := o.indexOf(p.Name()); i >= 0 {
			o.properties[i] = p.Clone()
			continue
		}
		o.properties = append(o.properties, p.Clone())
	}
	return o
}

// GUID returns the immutable object identifier.
func (o *Object) GUID() string {
	return o.guid
}

// Type returns the object type.
func (o *Object) Type() string {
	return o.typ
}

// Name returns the value of the name property, or "".
func (o *Object) Name() string {
	if p, ok := o.GetProperty(property.NameName); ok {
		if s, ok := p.String(); ok {
			return s
		}
	}
	return ""
}

// Base returns o.
func (o *Object) Base() *Object {
	return o
}

// Events returns the object's change channels.
func (o *Object) Events() *Events {
	return &o.events
}

// Parent returns the object this one is attached to, or nil.
func (o *Object) Parent() *Object {
	return o.parent
}

// Properties returns the properties in insertion order.
// The returned slice is a copy; the properties themselves are immutable.
func (o *Object) Properties() []*property.Property {
	out := make([]*property.Property, len(o.properties))
	copy(out, o.properties)
	return out
}

// GetProperty returns the property with the given name.
func (o *Object) GetProperty(name string) (*property.Property, bool) {
	if i := o.indexOf(name); i >= 0 {
		return o.properties[i], true
	}
	return nil, false
}

// AddProperty appends p. It fails with ErrConflict if a property of that
// name exists and with ErrInvalidState for reserved names.
func (o *Object) AddProperty(p *property.Property) error {
	if isReserved(p.Name()) {
		return o.reservedError("add", p.Name())
	}
	if o.indexOf(p.Name()) >= 0 {
		return editerrors.NewConflictError("property", p.Name())
	}

	stored := p.Clone()
	o.properties = append(o.properties, stored)
	o.events.PropertyAdded.Emit(PropertyEvent{Object: o, Property: stored})
	o.modified(ChangedEvent{Kind: PropertyAddedChange, Property: stored})
	return nil
}

// UpdateProperty replaces the value and metadata of the property named
// p.Name() in place, keeping its position. If there is none it behaves as
// AddProperty.
func (o *Object) UpdateProperty(p *property.Property) error {
	if isReserved(p.Name()) {
		return o.reservedError("update", p.Name())
	}
	i := o.indexOf(p.Name())
	if i < 0 {
		return o.AddProperty(p)
	}

	prev := o.properties[i]
	stored := p.Clone()
	o.properties[i] = stored
	o.events.PropertyChanged.Emit(PropertyEvent{Object: o, Property: stored, Previous: prev})
	o.modified(ChangedEvent{Kind: PropertyChangedChange, Property: stored, Previous: prev})
	return nil
}

// RemoveProperty removes the property with the given name.
func (o *Object) RemoveProperty(name string) error {
	if isReserved(name) {
		return o.reservedError("remove", name)
	}
	i := o.indexOf(name)
	if i < 0 {
		return editerrors.NewLookupError("property", name)
	}

	removed := o.properties[i]
	o.properties = append(o.properties[:i:i], o.properties[i+1:]...)
	o.events.PropertyRemoved.Emit(PropertyEvent{Object: o, Property: removed})
	o.modified(ChangedEvent{Kind: PropertyRemovedChange, Previous: removed})
	return nil
}

// Children returns the children ordered by (type, guid).
// The returned slice is a copy.
func (o *Object) Children() []Node {
	out := make([]Node, len(o.children))
	copy(out, o.children)
	return out
}

// GetChild returns the direct child with the given GUID.
func (o *Object) GetChild(guid string) (Node, bool) {
	for _, c := range o.children {
		if c.GUID() == guid {
			return c, true
		}
	}
	return nil, false
}

// Find returns the descendant with the given GUID, searching depth first.
func (o *Object) Find(guid string) (Node, bool) {
	for _, c := range o.children {
		if c.GUID() == guid {
			return c, true
		}
		if found, ok := c.Find(guid); ok {
			return found, true
		}
	}
	return nil, false
}

// GetObjectsFromGuids resolves guids anywhere below o, skipping the ones
// that do not resolve.
func (o *Object) GetObjectsFromGuids(guids []string) []Node {
	objects := make([]Node, 0, len(guids))
	for _, guid := range guids {
		if obj, ok := o.Find(guid); ok {
			objects = append(objects, obj)
		}
	}
	return objects
}

// AddChild attaches child, detaching it from its current parent first, and
// re-sorts the children. Attaching o to itself or to one of its descendants
// fails with ErrInvalidState.
func (o *Object) AddChild(child Node) error {
	base := child.Base()
	for p := o; p != nil; p = p.parent {
		if p == base {
			return editerrors.NewOperationError("add child", base.guid,
				fmt.Errorf("would create a cycle: %w", editerrors.ErrInvalidState))
		}
	}
	if base.parent != nil {
		if _, err := base.parent.RemoveChild(base.guid); err != nil {
			return err
		}
	}

	o.attach(child)
	o.sortChildren()
	o.events.ChildAdded.Emit(ChildEvent{Object: o, Child: child})
	o.modified(ChangedEvent{Kind: ChildAddedChange, Child: child})
	return nil
}

// RemoveChild detaches the direct child with the given GUID and returns it.
func (o *Object) RemoveChild(guid string) (Node, error) {
	idx := -1
	for i, c := range o.children {
		if c.GUID() == guid {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, editerrors.NewLookupError("child", guid)
	}

	child := o.children[idx]
	o.children = append(o.children[:idx:idx], o.children[idx+1:]...)
	o.detach(child)
	o.events.ChildRemoved.Emit(ChildEvent{Object: o, Child: child})
	o.modified(ChangedEvent{Kind: ChildRemovedChange, Child: child})
	return child, nil
}

// ReplaceChildren swaps the whole child list at once. Events for the
// removed and added children are emitted only after the new list is in
// place, so observers never see a partially built tree.
func (o *Object) ReplaceChildren(children []Node) error {
	for _, c := range children {
		for p := o; p != nil; p = p.parent {
			if p == c.Base() {
				return editerrors.NewOperationError("replace children", c.GUID(),
					fmt.Errorf("would create a cycle: %w", editerrors.ErrInvalidState))
			}
		}
	}

	old := o.children
	o.children = nil
	for _, c := range old {
		o.detach(c)
	}
	for _, c := range children {
		if prev := c.Base().parent; prev != nil {
			if _, err := prev.RemoveChild(c.GUID()); err != nil {
				return err
			}
		}
		o.attach(c)
	}
	o.sortChildren()

	for _, c := range old {
		o.events.ChildRemoved.Emit(ChildEvent{Object: o, Child: c})
	}
	for _, c := range o.children {
		o.events.ChildAdded.Emit(ChildEvent{Object: o, Child: c})
	}
	o.modified(ChangedEvent{Kind: ChildrenReplacedChange})
	return nil
}

// Restore resets the GUID and own properties of a detached object to data,
// keeping its type and children. The property list is taken over in the
// persisted order; the reserved properties always reflect the result.
func (o *Object) Restore(data Serialized) error {
	if o.parent != nil {
		return editerrors.NewOperationError("restore object", o.guid,
			fmt.Errorf("object is attached: %w", editerrors.ErrInvalidState))
	}
	guid := data.GUID
	if guid == "" {
		guid = data.stringProperty(property.NameGUID)
	}
	if guid == "" {
		guid = o.guid
	}

	o.guid = guid
	o.properties = restoreProperties(guid, o.typ, data.Properties)
	o.modified(ChangedEvent{Kind: RestoredChange})
	return nil
}

// silentAttach links freshly built children without emitting events.
func (o *Object) silentAttach(children []Node) {
	for _, c := range children {
		o.attach(c)
	}
	o.sortChildren()
}

// attach links child under o and subscribes the single bubbling edge.
func (o *Object) attach(child Node) {
	base := child.Base()
	base.parent = o
	o.children = append(o.children, child)
	o.edges[base] = base.events.Modified.Subscribe(func(e ChangedEvent) {
		o.changed(e)
	}, event.WithPriority[ChangedEvent](event.PriorityCritical))
}

// detach cancels the bubbling edge and clears the back reference.
func (o *Object) detach(child Node) {
	base := child.Base()
	if sub, ok := o.edges[base]; ok {
		sub.Cancel()
		delete(o.edges, base)
	}
	if base.parent == o {
		base.parent = nil
	}
}

func (o *Object) sortChildren() {
	sort.SliceStable(o.children, func(i, j int) bool {
		a, b := o.children[i], o.children[j]
		if a.Type() != b.Type() {
			return a.Type() < b.Type()
		}
		return a.GUID() < b.GUID()
	})
}

// changed raises Changed for a mutation reported by a child.
func (o *Object) changed(e ChangedEvent) {
	e.Object = o
	o.events.Changed.Emit(e)
	o.events.Modified.Emit(e)
}

// modified notifies the parent edge of an own mutation described by e.
func (o *Object) modified(e ChangedEvent) {
	e.Object, e.Origin = o, o
	o.events.Modified.Emit(e)
}

func (o *Object) indexOf(name string) int {
	for i, p := range o.properties {
		if p.Name() == name {
			return i
		}
	}
	return -1
}

func (o *Object) reservedError(op, name string) error {
	return editerrors.NewOperationError(op+" property", name,
		fmt.Errorf("reserved property: %w", editerrors.ErrInvalidState))
}

func isReserved(name string) bool {
	return name == property.NameGUID || name == property.NameType
}
