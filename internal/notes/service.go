package notes

import (
	"bytes"
	"context"
	"log/slog"

	"github.com/yuin/goldmark"
)

type Service struct {
	store Store
	md    goldmark.Markdown
	log   *slog.Logger
}

func NewService(store Store, log *slog.Logger) *Service {
	return &Service{
		store: store,
		md:    goldmark.New(),
		log:   log,
	}
}

// Create validates the input and stores a new note
func (s *Service) Create(ctx context.Context, in NoteInput) (*Note, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	s.log.Info("create_note called", "title", in.Title, "description", in.Description)
	id, err := s.store.Insert(ctx, in)
	if err != nil {
		return nil, err
	}

	return &Note{ID: id, Title: in.Title, Description: in.Description}, nil
}

// Get retrieves a note by ID
func (s *Service) Get(ctx context.Context, id int64) (*Note, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	return s.store.FindByID(ctx, id)
}

// List retrieves every note
func (s *Service) List(ctx context.Context) ([]*Note, error) {
	notes, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	if notes == nil {
		notes = []*Note{}
	}
	return notes, nil
}

// Update overwrites title and description of an existing note. The
// existence check runs before the write; a missing note is reported as
// ErrNoteNotFound and nothing is written.
func (s *Service) Update(ctx context.Context, id int64, in NoteInput) (*Note, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.store.FindByID(ctx, id); err != nil {
		return nil, err
	}

	s.log.Info("update_note called", "id", id, "title", in.Title, "description", in.Description)
	noteID, err := s.store.Update(ctx, id, in)
	if err != nil {
		return nil, err
	}

	return &Note{ID: noteID, Title: in.Title, Description: in.Description}, nil
}

// Ping checks the store connection when the store supports it
func (s *Service) Ping(ctx context.Context) error {
	if p, ok := s.store.(Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

// RenderMarkdown converts markdown content to HTML
func (s *Service) RenderMarkdown(content string) string {
	var buf bytes.Buffer
	if err := s.md.Convert([]byte(content), &buf); err != nil {
		return content // Return raw content on error
	}
	return buf.String()
}
