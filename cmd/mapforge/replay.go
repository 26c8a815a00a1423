package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/dshills/mapforge/internal/command"
	"github.com/dshills/mapforge/internal/editor"
	"github.com/dshills/mapforge/internal/event"
	"github.com/dshills/mapforge/internal/watch"
)

// Log entries with these types step through history instead of applying a
// command.
const (
	entryUndo = "undo"
	entryRedo = "redo"
)

func (a *app) replay(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("replay", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	out := fs.String("out", "-", "Output document (format from extension)")
	watchLog := fs.Bool("watch", false, "Replay again whenever the log changes")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if fs.NArg() != 2 {
		return fmt.Errorf("%w: replay takes a document and a command log", errUsage)
	}
	docPath, logPath := fs.Arg(0), fs.Arg(1)

	source, err := os.ReadFile(docPath)
	if err != nil {
		return err
	}
	once := func() error {
		entries, err := os.ReadFile(logPath)
		if err != nil {
			return err
		}
		result, err := a.replayLog(ctx, source, a.formatFor(docPath), documentName(docPath), entries, a.formatFor(*out))
		if err != nil {
			return err
		}
		return a.writeOutput(*out, result)
	}

	if err := once(); err != nil {
		if !*watchLog {
			return err
		}
		a.log.Warn().Err(err).Str("log", logPath).Msg("replay failed")
	}
	if !*watchLog {
		return nil
	}
	return a.watchAndReplay(ctx, logPath, once)
}

// replayLog opens the snapshot, applies every log entry through an editor
// and returns the resulting snapshot encoded with outFormat.
func (a *app) replayLog(ctx context.Context, source []byte, format, name string, entries []byte, outFormat string) ([]byte, error) {
	doc, err := a.openDocument(ctx, source, format, name)
	if err != nil {
		return nil, err
	}

	var log []command.Saved
	if err := json.Unmarshal(entries, &log); err != nil {
		return nil, fmt.Errorf("command log: %w", err)
	}

	opts := []editor.Option{
		editor.WithLogger(a.log),
		editor.WithMaxEntries(a.cfg.History.MaxEntries),
	}
	if a.metrics != nil {
		opts = append(opts, editor.WithMetrics(a.metrics))
	}
	ed, err := editor.New(editor.NewRegistry(), doc, opts...)
	if err != nil {
		return nil, err
	}
	defer ed.Close()

	changes := 0
	ed.Subscribe(func(event.Event[editor.Change]) {
		changes++
	}, event.TopicPropertyAdded, event.TopicPropertyChanged, event.TopicPropertyRemoved,
		event.TopicChildAdded, event.TopicChildRemoved)
	ed.Subscribe(func(ev event.Event[editor.Change]) {
		cmd := ev.Payload.Command
		if cmd == nil {
			return
		}
		a.log.Debug().
			Str("topic", ev.Type.String()).
			Str("command", cmd.Name()).
			Int("caret", ev.Payload.Caret).
			Msg("history")
	}, event.TopicHistoryChanged, event.TopicHistoryCaretChanged)

	for i, entry := range log {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		switch entry.Type {
		case entryUndo:
			err = ed.Undo()
		case entryRedo:
			err = ed.Redo()
		default:
			var cmd command.Command
			if cmd, err = a.catalog.Commands.Create(entry); err == nil {
				err = ed.ApplyCommand(cmd)
			}
		}
		if err != nil {
			return nil, fmt.Errorf("log entry %d (%s): %w", i, entry.Type, err)
		}
	}

	a.log.Info().
		Int("entries", len(log)).
		Int("changes", changes).
		Int("caret", ed.History().Caret()).
		Int64("version", doc.Version()).
		Msg("replayed")
	return doc.Save(outFormat)
}

func (a *app) watchAndReplay(ctx context.Context, logPath string, replay func() error) error {
	w, err := watch.New()
	if err != nil {
		return err
	}
	defer w.Close()
	if err := w.Add(logPath); err != nil {
		return err
	}
	a.log.Info().Str("log", logPath).Msg("watching")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.Events():
			if !ok {
				return nil
			}
			if ev.Op.Has(watch.OpRemove) {
				a.log.Warn().Str("log", ev.Path).Msg("log removed")
				continue
			}
			if err := replay(); err != nil {
				a.log.Warn().Err(err).Str("log", ev.Path).Msg("replay failed")
				continue
			}
			a.log.Debug().Str("log", ev.Path).Stringer("op", ev.Op).Msg("replayed after change")
		case err, ok := <-w.Errors():
			if !ok {
				return nil
			}
			a.log.Warn().Err(err).Msg("watch error")
		}
	}
}
