// Package editor binds a document to its selection and undo buffer.
//
// An Editor applies commands to its document, records them in the undo
// buffer and moves through them with Undo and Redo. Editors are registered
// by GUID in a Registry so other components can find them.
//
//	reg := editor.NewRegistry()
//	ed, err := editor.New(reg, doc, editor.WithLogger(log))
//	if err != nil {
//	    return err
//	}
//	defer ed.Close()
//
//	err = ed.ApplyCommand(command.NewSetPropertyCommand(ed.Selection().Slice(), p))
//	err = ed.Undo()
//
// Commands run synchronously. Applying, undoing or redoing from an event
// handler while another command is in flight fails with ErrReentrant.
package editor
