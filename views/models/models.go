package models

import "time"

// NoteView represents a note for template rendering
type NoteView struct {
	ID              int64
	Title           string
	Description     string
	DescriptionHTML string // rendered markdown
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
