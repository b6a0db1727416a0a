package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/ayumu-h/curio"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ curio.NoteService = (*NoteService)(nil)

// NoteService implements curio.NoteService using SQLite.
type NoteService struct {
	db *DB
}

// NewNoteService creates a new NoteService.
func NewNoteService(db *DB) *NoteService {
	return &NoteService{db: db}
}

// CreateNote creates a new note.
func (s *NoteService) CreateNote(ctx context.Context, note *curio.Note) error {
	if err := note.Validate(); err != nil {
		return err
	}

	note.ID = uuid.New().String()
	note.CreatedAt = time.Now().UTC()
	note.UpdatedAt = note.CreatedAt

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO notes (id, item_id, body, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`, note.ID, note.ItemID, note.Body,
		note.CreatedAt.Format(time.RFC3339), note.UpdatedAt.Format(time.RFC3339))

	return err
}

func scanNote(row rowScanner) (*curio.Note, error) {
	var note curio.Note
	var createdAt, updatedAt string

	err := row.Scan(&note.ID, &note.ItemID, &note.Body, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	if note.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if note.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
		return nil, err
	}
	return &note, nil
}

// FindNoteByID retrieves a note by ID.
func (s *NoteService) FindNoteByID(ctx context.Context, id string) (*curio.Note, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, item_id, body, created_at, updated_at FROM notes WHERE id = ?
	`, id)
	note, err := scanNote(row)
	if err == sql.ErrNoRows {
		return nil, curio.Errorf(curio.ENOTFOUND, "note not found")
	}
	if err != nil {
		return nil, err
	}
	return note, nil
}

// FindNotesByItem retrieves all notes for an item, oldest first.
func (s *NoteService) FindNotesByItem(ctx context.Context, itemID string) ([]*curio.Note, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, item_id, body, created_at, updated_at
		FROM notes WHERE item_id = ? ORDER BY created_at
	`, itemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notes := []*curio.Note{}
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}
	return notes, rows.Err()
}

// UpdateNote replaces the note body.
func (s *NoteService) UpdateNote(ctx context.Context, id string, body string) (*curio.Note, error) {
	note, err := s.FindNoteByID(ctx, id)
	if err != nil {
		return nil, err
	}

	note.Body = body
	if err := note.Validate(); err != nil {
		return nil, err
	}
	note.UpdatedAt = time.Now().UTC()

	_, err = s.db.ExecContext(ctx, `
		UPDATE notes SET body = ?, updated_at = ? WHERE id = ?
	`, note.Body, note.UpdatedAt.Format(time.RFC3339), id)
	if err != nil {
		return nil, err
	}
	return note, nil
}

// DeleteNote permanently removes a note.
func (s *NoteService) DeleteNote(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return curio.Errorf(curio.ENOTFOUND, "note not found")
	}
	return nil
}
