package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/text/cases"
)

// CommitMode decides what happens to an in-memory mutation when the
// storage write fails.
type CommitMode int

const (
	// CommitOptimistic applies the mutation in memory first and keeps it even
	// if the write fails. The persistence error is still returned.
	CommitOptimistic CommitMode = iota
	// CommitAfterPersist stages the mutation on a copy and swaps it in only
	// after the write succeeded.
	CommitAfterPersist
)

func (m CommitMode) String() string {
	if m == CommitAfterPersist {
		return "after-persist"
	}
	return "optimistic"
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLogger sets the logger for the store.
func WithLogger(logger *slog.Logger) StoreOption {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithIDGenerator replaces the default monotonic id generator.
func WithIDGenerator(ids IDGenerator) StoreOption {
	return func(s *Store) {
		s.ids = ids
	}
}

// WithCommitMode selects optimistic or two-phase commits.
func WithCommitMode(mode CommitMode) StoreOption {
	return func(s *Store) {
		s.mode = mode
	}
}

// WithReadOnly rejects every mutation with ErrReadOnly.
func WithReadOnly(enabled bool) StoreOption {
	return func(s *Store) {
		s.readOnly = enabled
	}
}

// Store owns the canonical in-memory collection of notes and is the sole
// writer of persisted note data. Every mutation is written through to the
// Storage before it returns.
type Store struct {
	mu       sync.Mutex
	storage  Storage
	notes    []Note
	ids      IDGenerator
	comments *Comments
	check    *noteValidator
	mode     CommitMode
	readOnly bool
	logger   *slog.Logger
}

// NewStore creates a Store backed by storage. The collection starts empty;
// call LoadAll to hydrate it.
func NewStore(storage Storage, opts ...StoreOption) *Store {
	s := &Store{
		storage: storage,
		notes:   []Note{},
		ids:     NewMonotonicIDs(),
		check:   newNoteValidator(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.comments = NewComments(s.ids)
	return s
}

// Storage returns the storage the store writes through to.
func (s *Store) Storage() Storage {
	return s.storage
}

// Comments returns the comment sub-store sharing this store's id generator.
func (s *Store) Comments() *Comments {
	return s.comments
}

// LoadAll reads the stored collection, replaces the in-memory one with it,
// and returns a copy. It never fails: unreadable storage reads as empty.
func (s *Store) LoadAll(ctx context.Context) []Note {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, err := s.storage.Read(ctx)
	if err != nil {
		s.warn("reading notes failed, starting empty", "error", err)
		stored = nil
	}

	notes := make([]Note, 0, len(stored))
	seen := make(map[int64]bool, len(stored))
	for _, n := range stored {
		if seen[n.ID] {
			s.warn("dropping note with duplicate id", "id", n.ID)
			continue
		}
		seen[n.ID] = true
		n = n.normalize()
		observeNote(s.ids, n)
		notes = append(notes, n)
	}

	s.notes = notes
	s.debug("notes loaded", "count", len(notes))
	return cloneNotes(notes)
}

// Notes returns a copy of the in-memory collection without reading storage.
func (s *Store) Notes() []Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneNotes(s.notes)
}

// Len returns the number of notes held in memory.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.notes)
}

// FindByID returns a copy of the note with id, or a NotFound error.
func (s *Store) FindByID(id int64) (Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.notes, id)
	if i < 0 {
		return Note{}, noteNotFound(id)
	}
	return s.notes[i].Clone(), nil
}

// Create validates the draft, assigns a fresh id, appends the note, and
// persists the collection.
//
// In optimistic mode a failed write still returns the created note along
// with the persistence error, because the note stays in memory.
func (s *Store) Create(ctx context.Context, d Draft) (Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.readOnly {
		return Note{}, ErrReadOnly
	}

	n := Note{
		Title:    d.Title,
		Content:  d.Content,
		Color:    d.Color,
		Tags:     d.Tags,
		Comments: nil,
	}.normalize()
	if err := s.check.validate(n); err != nil {
		return Note{}, err
	}

	n.ID = s.nextNoteID()
	next := append(cloneNotes(s.notes), n)

	ctx = withReason(ctx, fmt.Sprintf("create note %d", n.ID))
	if err := s.commit(ctx, next); err != nil {
		if s.mode == CommitAfterPersist {
			return Note{}, err
		}
		return n.Clone(), err
	}

	s.debug("note created", "id", n.ID)
	return n.Clone(), nil
}

// Update replaces the note with the same id, keeping its position, and
// persists the collection.
func (s *Store) Update(ctx context.Context, n Note) (Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.readOnly {
		return Note{}, ErrReadOnly
	}
	if indexOf(s.notes, n.ID) < 0 {
		return Note{}, noteNotFound(n.ID)
	}
	return s.updateLocked(ctx, n)
}

// errUnchanged lets a mutate callback skip the write.
var errUnchanged = errors.New("note unchanged")

// mutate applies fn to the note with id and persists the result, all under
// one hold of s.mu. When fn fails the note is returned unchanged with its
// error.
func (s *Store) mutate(ctx context.Context, id int64, fn func(Note) (Note, error)) (Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.readOnly {
		return Note{}, ErrReadOnly
	}

	i := indexOf(s.notes, id)
	if i < 0 {
		return Note{}, noteNotFound(id)
	}

	current := s.notes[i].Clone()
	n, err := fn(current.Clone())
	if errors.Is(err, errUnchanged) {
		return current, nil
	}
	if err != nil {
		return current, err
	}
	return s.updateLocked(ctx, n)
}

// updateLocked validates n and swaps it in for the note with the same id.
// Callers hold s.mu and have checked that the id exists.
func (s *Store) updateLocked(ctx context.Context, n Note) (Note, error) {
	i := indexOf(s.notes, n.ID)

	n = n.normalize()
	if err := s.check.validate(n); err != nil {
		return Note{}, err
	}
	observeNote(s.ids, n)

	next := cloneNotes(s.notes)
	next[i] = n

	ctx = withReason(ctx, fmt.Sprintf("update note %d", n.ID))
	if err := s.commit(ctx, next); err != nil {
		if s.mode == CommitAfterPersist {
			return Note{}, err
		}
		return n.Clone(), err
	}

	s.debug("note updated", "id", n.ID)
	return n.Clone(), nil
}

// Delete removes the note with id. An unknown id is not an error; the
// collection is persisted either way.
func (s *Store) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.readOnly {
		return ErrReadOnly
	}

	next := slices.DeleteFunc(cloneNotes(s.notes), func(n Note) bool {
		return n.ID == id
	})

	ctx = withReason(ctx, fmt.Sprintf("delete note %d", id))
	if err := s.commit(ctx, next); err != nil {
		return err
	}

	s.debug("note deleted", "id", id)
	return nil
}

// Reset empties the collection in memory and in storage.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.readOnly {
		return ErrReadOnly
	}

	if r, ok := s.storage.(Resettable); ok {
		if err := r.Clear(ctx); err != nil {
			return Persistence("clear notes", err)
		}
		s.notes = []Note{}
		return nil
	}
	return s.commit(withReason(ctx, "reset notes"), []Note{})
}

// AddTag appends tag to the note with id and persists it. A tag that is
// already present leaves the note unchanged and returns a validation error.
func (s *Store) AddTag(ctx context.Context, id int64, tag string) (Note, error) {
	tag = strings.TrimSpace(tag)
	return s.mutate(ctx, id, func(n Note) (Note, error) {
		if tag == "" {
			return n, Validation("tag is required")
		}
		if n.HasTag(tag) {
			return n, Validation(fmt.Sprintf("note %d is already tagged %q", id, tag))
		}
		n.Tags = append(n.Tags, tag)
		return n, nil
	})
}

// RemoveTag drops tag from the note with id and persists it. A missing tag
// is not an error and writes nothing.
func (s *Store) RemoveTag(ctx context.Context, id int64, tag string) (Note, error) {
	return s.mutate(ctx, id, func(n Note) (Note, error) {
		if !n.HasTag(tag) {
			return n, errUnchanged
		}
		n.Tags = slices.DeleteFunc(n.Tags, func(t string) bool { return t == tag })
		return n, nil
	})
}

// Comment adds a comment to the note with id and immediately persists the
// parent note.
func (s *Store) Comment(ctx context.Context, id int64, text string) (Note, error) {
	return s.mutate(ctx, id, func(n Note) (Note, error) {
		return s.comments.AddComment(n, text)
	})
}

// Uncomment removes a comment from the note with id and immediately persists
// the parent note.
func (s *Store) Uncomment(ctx context.Context, id, commentID int64) (Note, error) {
	return s.mutate(ctx, id, func(n Note) (Note, error) {
		return s.comments.RemoveComment(n, commentID), nil
	})
}

// FilterByTag returns the notes carrying at least one tag matching pattern.
// Patterns use doublestar syntax, so "work/*" matches "work/urgent".
func (s *Store) FilterByTag(pattern string) ([]Note, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, Validation(fmt.Sprintf("invalid tag pattern %q", pattern))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var out []Note
	for _, n := range s.notes {
		for _, t := range n.Tags {
			if ok, _ := doublestar.Match(pattern, t); ok {
				out = append(out, n.Clone())
				break
			}
		}
	}
	return out, nil
}

// Search returns the notes whose title or content contains query,
// ignoring case. It is a linear scan.
func (s *Store) Search(query string) []Note {
	fold := cases.Fold()
	q := fold.String(strings.TrimSpace(query))

	s.mu.Lock()
	defer s.mu.Unlock()

	var out []Note
	for _, n := range s.notes {
		if strings.Contains(fold.String(n.Title), q) || strings.Contains(fold.String(n.Content), q) {
			out = append(out, n.Clone())
		}
	}
	return out
}

// Watch reloads the collection whenever the storage reports an external
// change and emits an EventReload for each reload. The returned channel is
// closed when ctx is done or the storage stops watching.
func (s *Store) Watch(ctx context.Context) (<-chan Event, error) {
	w, ok := s.storage.(Watchable)
	if !ok {
		return nil, errors.New("storage does not support watching")
	}

	changes, err := w.Watch(ctx)
	if err != nil {
		return nil, err
	}

	out := make(chan Event)
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-changes:
				if !ok {
					return nil
				}
				notes := s.LoadAll(ctx)
				s.debug("reloaded after external change", "event", e.String(), "count", len(notes))
				select {
				case out <- Event{Type: EventReload, Key: e.Key, Timestamp: time.Now().Unix()}:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})
	return out, nil
}

// Close releases the storage if it holds resources.
func (s *Store) Close() error {
	if c, ok := s.storage.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// commit applies next according to the commit mode. Callers hold s.mu.
func (s *Store) commit(ctx context.Context, next []Note) error {
	if s.mode == CommitAfterPersist {
		if err := s.persist(ctx, next); err != nil {
			return err
		}
		s.notes = next
		return nil
	}

	s.notes = next
	return s.persist(ctx, next)
}

func (s *Store) persist(ctx context.Context, notes []Note) error {
	if err := s.storage.Write(ctx, notes); err != nil {
		if !errors.Is(err, ErrPersistence) {
			err = Persistence("write notes", err)
		}
		s.warn("persisting notes failed", "error", err, "mode", s.mode.String())
		return err
	}
	return nil
}

// nextNoteID draws ids until one is free in the collection. Callers hold s.mu.
func (s *Store) nextNoteID() int64 {
	for {
		id := s.ids.Next()
		if indexOf(s.notes, id) < 0 {
			return id
		}
	}
}

func withReason(ctx context.Context, reason string) context.Context {
	if v, ok := ctx.Value(ChangeReasonKey).(string); ok && v != "" {
		return ctx
	}
	return context.WithValue(ctx, ChangeReasonKey, reason)
}

func (s *Store) debug(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}

func (s *Store) warn(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Warn(msg, args...)
	}
}
