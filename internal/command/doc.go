// Package command provides undoable document edits.
//
// A Command captures everything it needs to apply and revert one edit:
// the selection snapshot taken when it was created plus whatever prior state
// Do recorded. Commands are serialized to a JSON envelope
//
//	{"type": "SetPropertyCommand", "payload": {"version": 1, "guid": "...", "selectionSet": [...], ...}}
//
// and rebuilt through a Registry keyed by the type name.
//
// Built-in commands:
//   - SetPropertyCommand: set one property on every selected object
//   - DeleteObjectCommand: detach the selected objects from their parents
//   - CompoundCommand: run several commands as one undo unit
package command
