package notes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS notes (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL,
    description TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);
`

// SQLiteStore keeps notes in a SQLite table. AUTOINCREMENT keeps ids from
// being reused after a row disappears.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Migrate creates the notes table if it does not exist
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, sqliteSchema); err != nil {
		return fmt.Errorf("create notes table: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Insert(ctx context.Context, in NoteInput) (int64, error) {
	now := time.Now().UnixNano()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO notes (title, description, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		in.Title, in.Description, now, now)
	if err != nil {
		return 0, fmt.Errorf("insert note: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert note: last id: %w", err)
	}
	return id, nil
}

func (s *SQLiteStore) FindByID(ctx context.Context, id int64) (*Note, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, title, description, created_at, updated_at FROM notes WHERE id = ?`, id)
	note, err := scanNote(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoteNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find note %d: %w", id, err)
	}
	return note, nil
}

func (s *SQLiteStore) List(ctx context.Context) ([]*Note, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, description, created_at, updated_at FROM notes ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	notes := []*Note{}
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return notes, nil
}

func (s *SQLiteStore) Update(ctx context.Context, id int64, in NoteInput) (int64, error) {
	_, err := s.db.ExecContext(ctx,
		`UPDATE notes SET title = ?, description = ?, updated_at = ? WHERE id = ?`,
		in.Title, in.Description, time.Now().UnixNano(), id)
	if err != nil {
		return 0, fmt.Errorf("update note %d: %w", id, err)
	}
	return id, nil
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNote(row rowScanner) (*Note, error) {
	var (
		note             Note
		created, updated int64
	)
	if err := row.Scan(&note.ID, &note.Title, &note.Description, &created, &updated); err != nil {
		return nil, err
	}
	note.CreatedAt = time.Unix(0, created)
	note.UpdatedAt = time.Unix(0, updated)
	return &note, nil
}
