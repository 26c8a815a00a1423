package history

import "github.com/dshills/mapforge/internal/command"

// BeginGroup starts collecting pushed commands into one undo unit. Groups
// nest: only the outermost EndGroup records the unit, and name is taken
// from the outermost BeginGroup.
func (b *Buffer) BeginGroup(name string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.groupMarks) == 0 {
		b.groupName = name
		b.groupCmds = nil
	}
	b.groupMarks = append(b.groupMarks, len(b.groupCmds))
}

// EndGroup closes the innermost group. Closing the outermost group pushes
// the collected commands as a command.CompoundCommand and returns it; an
// empty group pushes nothing.
func (b *Buffer) EndGroup() command.Command {
	b.mu.Lock()
	if len(b.groupMarks) == 0 {
		b.mu.Unlock()
		return nil
	}
	b.groupMarks = b.groupMarks[:len(b.groupMarks)-1]
	if len(b.groupMarks) > 0 {
		b.mu.Unlock()
		return nil
	}
	cmds := b.groupCmds
	b.groupCmds = nil
	if len(cmds) == 0 {
		b.mu.Unlock()
		return nil
	}

	compound := command.NewCompoundCommand(b.groupName, cmds...)
	e := b.pushLocked(compound)
	b.mu.Unlock()

	b.changed.Emit(e)
	return compound
}

// CancelGroup closes the innermost group and returns the commands collected
// since it began, without recording them. They are still applied to the
// document. Commands of enclosing groups are kept.
func (b *Buffer) CancelGroup() []command.Command {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.groupMarks) == 0 {
		return nil
	}
	mark := b.groupMarks[len(b.groupMarks)-1]
	b.groupMarks = b.groupMarks[:len(b.groupMarks)-1]

	cmds := make([]command.Command, len(b.groupCmds)-mark)
	copy(cmds, b.groupCmds[mark:])
	b.groupCmds = b.groupCmds[:mark]
	if len(b.groupMarks) == 0 {
		b.groupCmds = nil
	}
	return cmds
}

// IsGrouping reports whether a group is open.
func (b *Buffer) IsGrouping() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.groupMarks) > 0
}

// GroupScope closes one group level with defer:
//
//	scope := buf.GroupScope("Move features")
//	defer scope.End()
type GroupScope struct {
	buffer *Buffer
	active bool
}

// GroupScope opens a group and returns its scope.
func (b *Buffer) GroupScope(name string) *GroupScope {
	b.BeginGroup(name)
	return &GroupScope{buffer: b, active: true}
}

// End closes the group. Only the first End or Cancel has an effect.
func (g *GroupScope) End() command.Command {
	if !g.active {
		return nil
	}
	g.active = false
	return g.buffer.EndGroup()
}

// Cancel cancels the group and returns the commands it collected. Only the
// first End or Cancel has an effect.
func (g *GroupScope) Cancel() []command.Command {
	if !g.active {
		return nil
	}
	g.active = false
	return g.buffer.CancelGroup()
}
