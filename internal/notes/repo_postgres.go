package notes

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// noteRecord is the gorm mapping of the notes table
type noteRecord struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	Title       string    `gorm:"type:text;not null"`
	Description string    `gorm:"type:text;not null"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

func (noteRecord) TableName() string { return "notes" }

func (r noteRecord) toNote() *Note {
	return &Note{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// PostgresStore keeps notes in a PostgreSQL table through gorm.
type PostgresStore struct {
	db *gorm.DB
}

func NewPostgresStore(db *gorm.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Migrate creates the notes table if it does not exist
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&noteRecord{}); err != nil {
		return fmt.Errorf("migrate notes table: %w", err)
	}
	return nil
}

func (s *PostgresStore) Insert(ctx context.Context, in NoteInput) (int64, error) {
	rec := noteRecord{Title: in.Title, Description: in.Description}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return 0, fmt.Errorf("insert note: %w", err)
	}
	return rec.ID, nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id int64) (*Note, error) {
	var rec noteRecord
	err := s.db.WithContext(ctx).First(&rec, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoteNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find note %d: %w", id, err)
	}
	return rec.toNote(), nil
}

func (s *PostgresStore) List(ctx context.Context) ([]*Note, error) {
	var recs []noteRecord
	if err := s.db.WithContext(ctx).Order("id").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}

	notes := make([]*Note, len(recs))
	for i, rec := range recs {
		notes[i] = rec.toNote()
	}
	return notes, nil
}

func (s *PostgresStore) Update(ctx context.Context, id int64, in NoteInput) (int64, error) {
	err := s.db.WithContext(ctx).
		Model(&noteRecord{ID: id}).
		Updates(map[string]any{
			"title":       in.Title,
			"description": in.Description,
			"updated_at":  time.Now(),
		}).Error
	if err != nil {
		return 0, fmt.Errorf("update note %d: %w", id, err)
	}
	return id, nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *PostgresStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
