package history

import (
	"fmt"
	"sync"
	"time"

	"github.com/dshills/mapforge/internal/command"
	editerrors "github.com/dshills/mapforge/internal/errors"
	"github.com/dshills/mapforge/internal/event"
)

// DefaultMaxEntries bounds the buffer when no limit is configured.
const DefaultMaxEntries = 1000

// Errors returned by Back and Forward. Both wrap ErrInvalidState.
var (
	ErrNothingToUndo = fmt.Errorf("nothing to undo: %w", editerrors.ErrInvalidState)
	ErrNothingToRedo = fmt.Errorf("nothing to redo: %w", editerrors.ErrInvalidState)
	ErrGrouping      = fmt.Errorf("command group in progress: %w", editerrors.ErrInvalidState)
)

// Entry describes one buffered command for history views.
type Entry struct {
	Command     command.Command
	GUID        string
	Name        string
	Description string
	Timestamp   time.Time
	Applied     bool
}

// ChangedEvent is emitted after Push and Clear.
type ChangedEvent struct {
	// Command is the pushed command, nil after Clear.
	Command command.Command
	Caret   int
	CanUndo bool
	CanRedo bool
}

// CaretChangedEvent is emitted after Back and Forward.
type CaretChangedEvent struct {
	Caret    int
	Previous int
	// Command is the command returned by the move.
	Command command.Command
}

type entry struct {
	command   command.Command
	timestamp time.Time
}

// Buffer is an undo buffer with a caret.
type Buffer struct {
	mu sync.Mutex

	entries []*entry
	// applied is the number of entries before the redo tail; the caret is
	// applied-1.
	applied int

	// groupMarks holds, per open group level, the length of groupCmds when
	// the level began.
	groupMarks []int
	groupName  string
	groupCmds  []command.Command

	maxEntries int

	changed      event.Channel[ChangedEvent]
	caretChanged event.Channel[CaretChangedEvent]
}

// Option configures a Buffer.
type Option func(*Buffer)

// WithMaxEntries bounds the number of buffered commands. Values <= 0 select
// DefaultMaxEntries.
func WithMaxEntries(n int) Option {
	return func(b *Buffer) {
		if n > 0 {
			b.maxEntries = n
		}
	}
}

// New creates an empty buffer.
func New(opts ...Option) *Buffer {
	b := &Buffer{maxEntries: DefaultMaxEntries}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Changed returns the channel notified after Push and Clear.
func (b *Buffer) Changed() *event.Channel[ChangedEvent] {
	return &b.changed
}

// CaretChanged returns the channel notified after Back and Forward.
func (b *Buffer) CaretChanged() *event.Channel[CaretChangedEvent] {
	return &b.caretChanged
}

// Push records an applied command. Everything after the caret is discarded.
// While a group is open the command is collected into the group instead.
func (b *Buffer) Push(cmd command.Command) {
	b.mu.Lock()
	if len(b.groupMarks) > 0 {
		b.groupCmds = append(b.groupCmds, cmd)
		b.mu.Unlock()
		return
	}
	e := b.pushLocked(cmd)
	b.mu.Unlock()

	b.changed.Emit(e)
}

func (b *Buffer) pushLocked(cmd command.Command) ChangedEvent {
	b.entries = append(b.entries[:b.applied:b.applied], &entry{
		command:   cmd,
		timestamp: time.Now(),
	})
	b.applied = len(b.entries)

	if len(b.entries) > b.maxEntries {
		excess := len(b.entries) - b.maxEntries
		b.entries = b.entries[excess:]
		b.applied -= excess
	}
	return b.changedLocked(cmd)
}

func (b *Buffer) changedLocked(cmd command.Command) ChangedEvent {
	return ChangedEvent{
		Command: cmd,
		Caret:   b.applied - 1,
		CanUndo: b.applied > 0,
		CanRedo: b.applied < len(b.entries),
	}
}

// Back moves the caret one step back and returns the command to undo.
// It fails with ErrNothingToUndo when no command is applied.
func (b *Buffer) Back() (command.Command, error) {
	b.mu.Lock()
	if len(b.groupMarks) > 0 {
		b.mu.Unlock()
		return nil, ErrGrouping
	}
	if b.applied == 0 {
		b.mu.Unlock()
		return nil, ErrNothingToUndo
	}
	cmd := b.entries[b.applied-1].command
	b.applied--
	e := CaretChangedEvent{Caret: b.applied - 1, Previous: b.applied, Command: cmd}
	b.mu.Unlock()

	b.caretChanged.Emit(e)
	return cmd, nil
}

// Forward moves the caret one step forward and returns the command to redo.
// It fails with ErrNothingToRedo when the caret is at the last command.
func (b *Buffer) Forward() (command.Command, error) {
	b.mu.Lock()
	if len(b.groupMarks) > 0 {
		b.mu.Unlock()
		return nil, ErrGrouping
	}
	if b.applied >= len(b.entries) {
		b.mu.Unlock()
		return nil, ErrNothingToRedo
	}
	cmd := b.entries[b.applied].command
	b.applied++
	e := CaretChangedEvent{Caret: b.applied - 1, Previous: b.applied - 2, Command: cmd}
	b.mu.Unlock()

	b.caretChanged.Emit(e)
	return cmd, nil
}

// Caret returns the index of the last applied command, or -1.
func (b *Buffer) Caret() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.applied - 1
}

// Len returns the number of buffered commands, including the redo tail.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries)
}

// CanUndo reports whether Back would succeed.
func (b *Buffer) CanUndo() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.groupMarks) == 0 && b.applied > 0
}

// CanRedo reports whether Forward would succeed.
func (b *Buffer) CanRedo() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.groupMarks) == 0 && b.applied < len(b.entries)
}

// Commands returns a snapshot of all buffered commands.
func (b *Buffer) Commands() []command.Command {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]command.Command, len(b.entries))
	for i, e := range b.entries {
		out[i] = e.command
	}
	return out
}

// Entries describes all buffered commands.
func (b *Buffer) Entries() []Entry {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]Entry, len(b.entries))
	for i := range b.entries {
		out[i] = b.describeLocked(i)
	}
	return out
}

// PeekUndo describes the command Back would return.
func (b *Buffer) PeekUndo() (Entry, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.applied == 0 {
		return Entry{}, false
	}
	return b.describeLocked(b.applied - 1), true
}

// PeekRedo describes the command Forward would return.
func (b *Buffer) PeekRedo() (Entry, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.applied >= len(b.entries) {
		return Entry{}, false
	}
	return b.describeLocked(b.applied), true
}

func (b *Buffer) describeLocked(i int) Entry {
	e := b.entries[i]
	return Entry{
		Command:     e.command,
		GUID:        e.command.GUID(),
		Name:        e.command.Name(),
		Description: e.command.Description(),
		Timestamp:   e.timestamp,
		Applied:     i < b.applied,
	}
}

// Clear drops all buffered commands and any open group.
func (b *Buffer) Clear() {
	b.mu.Lock()
	b.entries = nil
	b.applied = 0
	b.groupMarks = nil
	b.groupCmds = nil
	e := b.changedLocked(nil)
	b.mu.Unlock()

	b.changed.Emit(e)
}

// MaxEntries returns the buffer bound.
func (b *Buffer) MaxEntries() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.maxEntries
}
