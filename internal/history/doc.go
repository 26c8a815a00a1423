// Package history provides the undo buffer of an editor.
//
// The Buffer holds the ordered list of applied commands and a caret that
// points at the last applied one. Replaying commands [0..caret] against the
// initial document yields the current document.
//
//	buf := history.New(history.WithMaxEntries(500))
//	buf.Push(cmd)           // truncates the redo tail, caret -> last
//	undo, err := buf.Back() // command to undo, caret moves back
//	redo, err := buf.Forward()
//
// Back and Forward only move the caret; the caller runs Undo or Do on the
// returned command.
//
// # Grouping
//
// Commands pushed between BeginGroup and EndGroup are combined into a single
// command.CompoundCommand so they undo as one unit.
package history
