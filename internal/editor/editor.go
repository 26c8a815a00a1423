package editor

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dshills/mapforge/internal/command"
	"github.com/dshills/mapforge/internal/document"
	editerrors "github.com/dshills/mapforge/internal/errors"
	"github.com/dshills/mapforge/internal/event"
	"github.com/dshills/mapforge/internal/history"
	"github.com/dshills/mapforge/internal/logging"
	"github.com/dshills/mapforge/internal/metrics"
	"github.com/dshills/mapforge/internal/object"
	"github.com/dshills/mapforge/internal/property"
	"github.com/dshills/mapforge/internal/selection"
)

// Change is the payload of the events an Editor publishes.
type Change struct {
	// Object and Origin are set for document changes. Kind, Property,
	// Previous and Child describe the mutation on Origin.
	Object   *object.Object
	Origin   *object.Object
	Kind     object.ChangeKind
	Property *property.Property
	Previous *property.Property
	Child    object.Node

	// Command is the command in flight when the change happened, if any.
	Command command.Command

	Selection []string
	Caret     int
}

// Editor owns the selection and undo buffer of one document.
type Editor struct {
	guid      string
	registry  *Registry
	doc       document.Document
	selection *selection.Set
	history   *history.Buffer

	log         zerolog.Logger
	metrics     *metrics.Metrics
	historyOpts []history.Option

	changed event.Channel[event.Event[Change]]
	docSub  event.Subscription
	subs    []event.Subscription

	busy     bool
	inflight command.Command
	closed   bool
}

// New creates an editor for doc and registers it in registry. doc may be
// nil; commands then fail until SetDocument is called. A GUID already in
// registry fails with ErrConflict.
func New(registry *Registry, doc document.Document, opts ...Option) (*Editor, error) {
	e := &Editor{
		guid:      uuid.NewString(),
		registry:  registry,
		selection: selection.New(),
		log:       logging.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.history = history.New(e.historyOpts...)
	e.log = logging.WithComponent(e.log, "editor").With().Str("editor", e.guid).Logger()

	if err := registry.Add(e); err != nil {
		return nil, err
	}

	e.subs = append(e.subs,
		e.selection.Changed().Subscribe(e.onSelectionChanged),
		e.history.Changed().Subscribe(e.onHistoryChanged),
		e.history.CaretChanged().Subscribe(e.onCaretChanged),
	)
	e.attach(doc)
	e.metrics.EditorAdded()
	e.log.Debug().Msg("editor created")
	return e, nil
}

// GUID returns the editor identifier.
func (e *Editor) GUID() string {
	return e.guid
}

// Document returns the edited document, or nil.
func (e *Editor) Document() document.Document {
	return e.doc
}

// Selection returns the editor's selection set.
func (e *Editor) Selection() *selection.Set {
	return e.selection
}

// History returns the editor's undo buffer.
func (e *Editor) History() *history.Buffer {
	return e.history
}

// Changed returns the channel carrying document, selection and history
// events.
func (e *Editor) Changed() *event.Channel[event.Event[Change]] {
	return &e.changed
}

// Subscribe registers handler for events with one of the given topics, or
// for every event when no topic is given.
func (e *Editor) Subscribe(handler event.Handler[event.Event[Change]], topics ...event.Topic) event.Subscription {
	if len(topics) == 0 {
		return e.changed.Subscribe(handler)
	}
	wanted := make(map[event.Topic]bool, len(topics))
	for _, t := range topics {
		wanted[t] = true
	}
	return e.changed.Subscribe(handler, event.WithFilter(func(ev event.Event[Change]) bool {
		return wanted[ev.Type]
	}))
}

// ApplyCommand runs cmd against the document and records it. The selection
// is cleared afterwards if the command asks for it.
func (e *Editor) ApplyCommand(cmd command.Command) error {
	if err := e.ready("apply"); err != nil {
		return err
	}

	err := e.run(metrics.OpApply, cmd, cmd.Do)
	if err != nil {
		return editerrors.NewOperationError("apply", cmd.Name(), err)
	}

	e.history.Push(cmd)
	if cmd.ClearSelection() {
		e.selection.Clear()
	}
	return nil
}

// ApplyGroup applies cmds as one undo unit. An empty group is a no-op.
func (e *Editor) ApplyGroup(name string, cmds ...command.Command) error {
	if len(cmds) == 0 {
		return nil
	}
	return e.ApplyCommand(command.NewCompoundCommand(name, cmds...))
}

// Group collects every command applied by fn into one undo unit. Groups
// nest into the outermost one. If fn fails, the commands it applied are
// undone and nothing is recorded for them.
func (e *Editor) Group(name string, fn func() error) error {
	if err := e.ready("group"); err != nil {
		return err
	}

	scope := e.history.GroupScope(name)
	if err := fn(); err != nil {
		applied := scope.Cancel()
		for i := len(applied) - 1; i >= 0; i-- {
			if uerr := applied[i].Undo(e.doc); uerr != nil {
				e.log.Error().Err(uerr).Str("command", applied[i].Name()).Msg("group rollback failed")
			}
		}
		return err
	}
	scope.End()
	return nil
}

// Undo reverts the command before the caret. The caret moves only when the
// command was undone.
func (e *Editor) Undo() error {
	if err := e.ready("undo"); err != nil {
		return err
	}
	if e.history.IsGrouping() {
		return history.ErrGrouping
	}

	entry, ok := e.history.PeekUndo()
	if !ok {
		return history.ErrNothingToUndo
	}
	cmd := entry.Command
	if err := e.run(metrics.OpUndo, cmd, cmd.Undo); err != nil {
		return editerrors.NewOperationError("undo", cmd.Name(), err)
	}
	_, err := e.history.Back()
	return err
}

// Redo re-applies the command after the caret. The caret moves only when
// the command was applied.
func (e *Editor) Redo() error {
	if err := e.ready("redo"); err != nil {
		return err
	}
	if e.history.IsGrouping() {
		return history.ErrGrouping
	}

	entry, ok := e.history.PeekRedo()
	if !ok {
		return history.ErrNothingToRedo
	}
	cmd := entry.Command
	if err := e.run(metrics.OpRedo, cmd, cmd.Do); err != nil {
		return editerrors.NewOperationError("redo", cmd.Name(), err)
	}
	_, err := e.history.Forward()
	return err
}

// SetDocument switches to doc, clearing the undo buffer and the selection.
// It fails while a command or a group is in progress.
func (e *Editor) SetDocument(doc document.Document) error {
	if e.busy {
		return editerrors.ErrReentrant
	}
	if e.history.IsGrouping() {
		return history.ErrGrouping
	}
	e.attach(doc)
	e.history.Clear()
	e.selection.Clear()

	guid := ""
	if doc != nil {
		guid = doc.GUID()
	}
	e.log.Info().Str("document", guid).Msg("document set")
	e.publish(event.TopicDocumentLoaded, Change{Caret: -1})
	return nil
}

// Open loads the document contents from r and resets the undo buffer and
// selection, which refer to the replaced objects.
func (e *Editor) Open(ctx context.Context, r io.Reader, format, name string) error {
	if err := e.ready("open"); err != nil {
		return err
	}
	if e.history.IsGrouping() {
		return history.ErrGrouping
	}
	e.busy = true
	err := e.doc.Open(ctx, r, format, name)
	e.busy = false
	if err != nil {
		e.log.Error().Err(err).Str("format", format).Msg("open failed")
		return err
	}

	e.history.Clear()
	e.selection.Clear()
	e.log.Info().Str("format", e.doc.Format()).Str("name", e.doc.Name()).Msg("document opened")
	e.publish(event.TopicDocumentLoaded, Change{Caret: -1})
	return nil
}

// Close deregisters the editor, drops its own subscriptions and cancels
// every subscription to Changed.
func (e *Editor) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true
	e.attach(nil)
	for _, sub := range e.subs {
		sub.Cancel()
	}
	e.subs = nil
	e.changed.Clear()
	e.metrics.EditorRemoved(e.guid)
	e.log.Debug().Msg("editor closed")
	return e.registry.Remove(e.guid)
}

func (e *Editor) ready(op string) error {
	if e.closed {
		return editerrors.NewOperationError(op, e.guid, editerrors.ErrInvalidState)
	}
	if e.doc == nil {
		return editerrors.NewOperationError(op, e.guid, editerrors.ErrNoDocument)
	}
	if e.busy {
		return editerrors.NewOperationError(op, e.guid, editerrors.ErrReentrant)
	}
	return nil
}

// run executes fn with cmd marked in flight, recording logs and metrics.
func (e *Editor) run(op string, cmd command.Command, fn func(document.Document) error) error {
	e.busy, e.inflight = true, cmd
	start := time.Now()
	err := fn(e.doc)
	elapsed := time.Since(start)
	e.busy, e.inflight = false, nil

	e.metrics.ObserveCommand(op, cmd.Name(), elapsed, err)
	if err != nil {
		e.log.Warn().Err(err).
			Str("op", op).
			Str("command", cmd.Name()).
			Str("guid", cmd.GUID()).
			Msg("command failed")
		return err
	}
	e.log.Debug().
		Str("op", op).
		Str("command", cmd.Name()).
		Str("guid", cmd.GUID()).
		Int("caret", e.history.Caret()).
		Dur("elapsed", elapsed).
		Msg(cmd.Description())
	return nil
}

func (e *Editor) attach(doc document.Document) {
	if e.docSub != nil {
		e.docSub.Cancel()
		e.docSub = nil
	}
	e.doc = doc
	if doc == nil {
		return
	}
	e.docSub = doc.Events().Modified.Subscribe(func(ev object.ChangedEvent) {
		e.publish(topicFor(ev.Kind), Change{
			Object:   ev.Object,
			Origin:   ev.Origin,
			Kind:     ev.Kind,
			Property: ev.Property,
			Previous: ev.Previous,
			Child:    ev.Child,
		})
	})
}

func topicFor(kind object.ChangeKind) event.Topic {
	switch kind {
	case object.PropertyAddedChange:
		return event.TopicPropertyAdded
	case object.PropertyChangedChange:
		return event.TopicPropertyChanged
	case object.PropertyRemovedChange:
		return event.TopicPropertyRemoved
	case object.ChildAddedChange:
		return event.TopicChildAdded
	case object.ChildRemovedChange:
		return event.TopicChildRemoved
	default:
		return event.TopicObjectChanged
	}
}

func (e *Editor) onSelectionChanged(ev selection.ChangedEvent) {
	e.publish(event.TopicSelectionChanged, Change{Selection: ev.Selected})
}

func (e *Editor) onHistoryChanged(ev history.ChangedEvent) {
	e.metrics.SetHistory(e.guid, ev.Caret, e.history.Len())
	e.publish(event.TopicHistoryChanged, Change{Command: ev.Command, Caret: ev.Caret})
}

func (e *Editor) onCaretChanged(ev history.CaretChangedEvent) {
	e.metrics.SetHistory(e.guid, ev.Caret, e.history.Len())
	e.publish(event.TopicHistoryCaretChanged, Change{Command: ev.Command, Caret: ev.Caret})
}

// publish stamps the in-flight command on the change and emits it.
func (e *Editor) publish(topic event.Topic, c Change) {
	if c.Command == nil {
		c.Command = e.inflight
	}
	if c.Selection == nil {
		c.Selection = e.selection.Slice()
	}
	ev := event.NewEvent(topic, c, e.guid)
	if c.Command != nil {
		ev = ev.WithCausation(c.Command.GUID())
	}
	e.changed.Emit(ev)
}
