package notes

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNoteNotFound = errors.New("note not found")
)

// Note is a persisted note. Only id, title and description leave the API.
type Note struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}

// NoteInput is the body accepted by create and update
type NoteInput struct {
	Title       string `json:"title" validate:"required,min=2"`
	Description string `json:"description" validate:"required,min=2"`
}

// Store is the persistence contract the service runs against.
// FindByID reports a missing row as ErrNoteNotFound. Update does not check
// existence; callers do that first.
type Store interface {
	Insert(ctx context.Context, in NoteInput) (int64, error)
	FindByID(ctx context.Context, id int64) (*Note, error)
	List(ctx context.Context) ([]*Note, error)
	Update(ctx context.Context, id int64, in NoteInput) (int64, error)
}

// Migrator creates the notes table (or collection indexes) if missing.
type Migrator interface {
	Migrate(ctx context.Context) error
}

// Pinger is implemented by stores that can check their connection.
type Pinger interface {
	Ping(ctx context.Context) error
}
