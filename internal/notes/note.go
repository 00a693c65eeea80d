// Package notes is the reference domain module for the scaffolding: a
// minimal mongo-backed notes API exercising pagination, body decoding,
// and the standard response envelopes.
package notes

import (
	"time"

	"github.com/google/uuid"
)

// Note is a stored note document.
type Note struct {
	ID        uuid.UUID `bson:"_id" json:"id"`
	Title     string    `bson:"title" json:"title"`
	Body      string    `bson:"body" json:"body"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// CreateNoteCommand carries the request body for note creation.
type CreateNoteCommand struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Validate checks the command for required fields.
func (c CreateNoteCommand) Validate() error {
	if c.Title == "" {
		return ErrTitleRequired
	}
	return nil
}

// UpdateNoteCommand carries the request body for note updates.
type UpdateNoteCommand struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Validate checks the command for required fields.
func (c UpdateNoteCommand) Validate() error {
	if c.Title == "" {
		return ErrTitleRequired
	}
	return nil
}
