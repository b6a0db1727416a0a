package curio

import (
	"context"
	"time"
)

// Note is a plain-text annotation attached to an item.
type Note struct {
	ID        string    `json:"id"`
	ItemID    string    `json:"itemId"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Validate returns an error if the note contains invalid fields.
func (n *Note) Validate() error {
	if n.ItemID == "" {
		return Errorf(EINVALID, "note item ID required")
	}
	if n.Body == "" {
		return Errorf(EINVALID, "note body required")
	}
	return nil
}

// NoteService represents a service for managing notes.
type NoteService interface {
	// CreateNote creates a new note.
	CreateNote(ctx context.Context, note *Note) error

	// FindNoteByID retrieves a note by ID.
	// Returns ENOTFOUND if note does not exist.
	FindNoteByID(ctx context.Context, id string) (*Note, error)

	// FindNotesByItem retrieves all notes for an item, oldest first.
	FindNotesByItem(ctx context.Context, itemID string) ([]*Note, error)

	// UpdateNote replaces the note body.
	// Returns ENOTFOUND if note does not exist.
	UpdateNote(ctx context.Context, id string, body string) (*Note, error)

	// DeleteNote permanently removes a note.
	// Returns ENOTFOUND if note does not exist.
	DeleteNote(ctx context.Context, id string) error
}
