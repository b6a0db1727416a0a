package mock

import (
	"context"

	"github.com/ayumu-h/curio"
)

var _ curio.NoteService = (*NoteService)(nil)

// NoteService is a mock implementation of curio.NoteService.
type NoteService struct {
	CreateNoteFn      func(ctx context.Context, note *curio.Note) error
	FindNoteByIDFn    func(ctx context.Context, id string) (*curio.Note, error)
	FindNotesByItemFn func(ctx context.Context, itemID string) ([]*curio.Note, error)
	UpdateNoteFn      func(ctx context.Context, id string, body string) (*curio.Note, error)
	DeleteNoteFn      func(ctx context.Context, id string) error
}

func (s *NoteService) CreateNote(ctx context.Context, note *curio.Note) error {
	return s.CreateNoteFn(ctx, note)
}

func (s *NoteService) FindNoteByID(ctx context.Context, id string) (*curio.Note, error) {
	return s.FindNoteByIDFn(ctx, id)
}

func (s *NoteService) FindNotesByItem(ctx context.Context, itemID string) ([]*curio.Note, error) {
	return s.FindNotesByItemFn(ctx, itemID)
}

func (s *NoteService) UpdateNote(ctx context.Context, id string, body string) (*curio.Note, error) {
	return s.UpdateNoteFn(ctx, id, body)
}

func (s *NoteService) DeleteNote(ctx context.Context, id string) error {
	return s.DeleteNoteFn(ctx, id)
}
