package notes

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStore provides an in-memory implementation of Store
type MemoryStore struct {
	mu     sync.RWMutex
	notes  map[int64]Note
	lastID int64
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{notes: make(map[int64]Note)}
}

func (s *MemoryStore) Insert(ctx context.Context, in NoteInput) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastID++
	now := time.Now()
	s.notes[s.lastID] = Note{
		ID:          s.lastID,
		Title:       in.Title,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return s.lastID, nil
}

func (s *MemoryStore) FindByID(ctx context.Context, id int64) (*Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	note, ok := s.notes[id]
	if !ok {
		return nil, ErrNoteNotFound
	}
	return &note, nil
}

func (s *MemoryStore) List(ctx context.Context) ([]*Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	notes := make([]*Note, 0, len(s.notes))
	for _, n := range s.notes {
		n := n
		notes = append(notes, &n)
	}
	sort.Slice(notes, func(i, j int) bool { return notes[i].ID < notes[j].ID })
	return notes, nil
}

// Update overwrites an existing note. A missing id is a no-op, matching an
// UPDATE that touches zero rows.
func (s *MemoryStore) Update(ctx context.Context, id int64, in NoteInput) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	note, ok := s.notes[id]
	if ok {
		note.Title = in.Title
		note.Description = in.Description
		note.UpdatedAt = time.Now()
		s.notes[id] = note
	}
	return id, nil
}

func (s *MemoryStore) Migrate(ctx context.Context) error { return nil }

func (s *MemoryStore) Ping(ctx context.Context) error { return nil }

func (s *MemoryStore) Close() error { return nil }
