// Package event provides the synchronous, typed notification channels that
// carry change events through the document engine.
//
// Every observable piece of the engine (a document object, a selection set,
// an undo buffer, an editor) owns one Channel per kind of change it reports.
// Emitting on a channel calls every subscribed handler in priority order, in
// the emitter's goroutine, before Emit returns:
//
//	var changed event.Channel[Changed]
//
//	sub := changed.Subscribe(func(c Changed) {
//	    fmt.Println("changed:", c.GUID)
//	})
//	defer sub.Cancel()
//
//	changed.Emit(Changed{GUID: "..."})
//
// # Priority Ordering
//
// Handlers execute in priority order, lower values first; ties run in
// subscription order:
//
//   - Critical (0): tree bookkeeping such as parent bubbling
//   - High (100): editors forwarding to their observers
//   - Normal (200): default
//   - Low (300): metrics, logging
//
// # Envelopes
//
// Events that leave an editor are wrapped in Event[T], which adds an ID, a
// timestamp and the publishing source, so observers holding only an editor
// GUID can correlate what they receive.
//
// # Thread Safety
//
// Subscribing and cancelling are safe for concurrent use and may happen from
// inside a handler; a handler cancelled during an Emit is not called for the
// remainder of that Emit. The engine itself mutates documents from a single
// goroutine.
package event
