package fs

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/jotter/pkg/core"
)

// watchDebounce coalesces the burst of events an atomic rename produces.
const watchDebounce = 50 * time.Millisecond

type watchWorker struct {
	backend  *Backend
	key      string
	filename string
	watcher  *fsnotify.Watcher
	events   chan core.Event
	debounce time.Duration
}

// Watch implements slot.Watcher. It reports changes to the file holding key,
// including edits made by other processes. The channel closes when ctx is done.
func (b *Backend) Watch(ctx context.Context, key string) (<-chan core.Event, error) {
	if _, err := b.fullPath(key); err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(b.Path); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", b.Path, err)
	}

	w := &watchWorker{
		backend:  b,
		key:      key,
		filename: b.Filename(key),
		watcher:  watcher,
		events:   make(chan core.Event),
		debounce: watchDebounce,
	}

	b.setWatcherActive(true)
	lifecycle.Go(ctx, w.run, lifecycle.WithErrorHandler(func(err error) {
		if b.config.Logger != nil {
			b.config.Logger.Error("watcher stopped", "error", err)
		}
	}))

	return w.events, nil
}

// translate maps a raw fsnotify event to a slot event. ok is false for
// events that do not concern the watched file.
func (w *watchWorker) translate(event fsnotify.Event) (core.Event, bool) {
	base := filepath.Base(event.Name)
	if base != w.filename || strings.HasPrefix(base, TempFilePrefix) {
		return core.Event{}, false
	}

	var t core.EventType
	switch {
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		t = core.EventDelete
	case event.Has(fsnotify.Create), event.Has(fsnotify.Write):
		t = core.EventModify
	default:
		return core.Event{}, false
	}

	return core.Event{
		Type:      t,
		Key:       w.key,
		Timestamp: time.Now().Unix(),
	}, true
}

func (w *watchWorker) run(ctx context.Context) error {
	defer close(w.events)
	defer w.backend.setWatcherActive(false)
	defer w.watcher.Close()

	var (
		pending *core.Event
		timer   *time.Timer
		fire    <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}
			if w.backend.config.Logger != nil {
				w.backend.config.Logger.Debug("event received", "name", event.Name, "op", event.Op.String())
			}

			e, ok := w.translate(event)
			if !ok {
				continue
			}
			pending = &e
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			if pending == nil {
				continue
			}
			select {
			case w.events <- *pending:
			case <-ctx.Done():
				return nil
			}
			pending = nil

		case err, ok := <-w.watcher.Errors:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			if w.backend.config.Logger != nil {
				w.backend.config.Logger.Error("fsnotify error", "error", err)
			}
		}
	}
}
