package progress

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/abhisek/aperture/internal/logger"
)

// ErrStorage wraps every failure to persist the progress map.
var ErrStorage = errors.New("progress storage error")

// Backend reads and writes the serialized progress document.
type Backend interface {
	// Read returns the stored document. A missing document returns
	// (nil, nil).
	Read(ctx context.Context) ([]byte, error)

	// Write replaces the stored document. On failure the previous document
	// must remain intact.
	Write(ctx context.Context, data []byte) error
}

// Store owns the in-memory progress map and mirrors every mutation to its
// backend immediately. It is not safe for concurrent use; the session that
// owns it is single-threaded.
type Store struct {
	backend   Backend
	log       *logger.Logger
	progress  Map
	lessonIDs []string
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLessons limits CompletedCount to the given lesson ids. Records for
// other ids are still loaded and persisted untouched.
func WithLessons(ids []string) StoreOption {
	return func(s *Store) { s.lessonIDs = append([]string(nil), ids...) }
}

// NewStore creates a Store over backend. Call Load before use.
func NewStore(backend Backend, log *logger.Logger, opts ...StoreOption) *Store {
	if log == nil {
		log = logger.Nop()
	}
	s := &Store{
		backend:  backend,
		log:      log,
		progress: Map{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads the persisted map, replacing in-memory state. It never fails:
// missing or corrupt storage yields an empty map.
func (s *Store) Load(ctx context.Context) Map {
	s.progress = s.read(ctx)
	return s.progress.Clone()
}

func (s *Store) read(ctx context.Context) Map {
	data, err := s.backend.Read(ctx)
	if err != nil {
		s.log.Warn("progress read failed, starting empty", "error", err)
		return Map{}
	}
	if len(data) == 0 {
		return Map{}
	}

	var m Map
	if err := json.Unmarshal(data, &m); err != nil {
		s.log.Warn("progress document corrupt, starting empty", "error", err)
		return Map{}
	}
	if m == nil {
		m = Map{}
	}
	return m
}

// RecordCompletion marks lessonID completed with rating and persists the
// whole map. On a write failure the in-memory map is still updated and the
// returned error wraps ErrStorage.
func (s *Store) RecordCompletion(ctx context.Context, lessonID string, rating int) error {
	r := rating
	s.progress[lessonID] = Record{Completed: true, Rating: &r}
	return s.persist(ctx)
}

// Reset clears all progress and persists the empty map.
func (s *Store) Reset(ctx context.Context) error {
	s.progress = Map{}
	return s.persist(ctx)
}

// CompletedCount returns the number of completed lessons. With WithLessons
// only those ids count; otherwise every stored record does.
func (s *Store) CompletedCount() int {
	if s.lessonIDs != nil {
		return s.progress.CompletedAmong(s.lessonIDs)
	}
	return s.progress.CompletedCount()
}

// Get returns the record for lessonID.
func (s *Store) Get(lessonID string) (Record, bool) {
	r, ok := s.progress[lessonID]
	return r, ok
}

// Snapshot returns a copy of the current map.
func (s *Store) Snapshot() Map {
	return s.progress.Clone()
}

func (s *Store) persist(ctx context.Context) error {
	data, err := json.Marshal(s.progress)
	if err != nil {
		return fmt.Errorf("%w: marshal: %v", ErrStorage, err)
	}
	if err := s.backend.Write(ctx, data); err != nil {
		s.log.Error("progress write failed, continuing in memory", "error", err)
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return nil
}
