package mock

import (
	"context"

	"github.com/ayumu-h/curio"
)

var _ curio.CabinetService = (*CabinetService)(nil)

// CabinetService is a mock implementation of curio.CabinetService.
type CabinetService struct {
	CreateCabinetFn   func(ctx context.Context, cabinet *curio.Cabinet) error
	FindCabinetByIDFn func(ctx context.Context, id string) (*curio.Cabinet, error)
	FindCabinetsFn    func(ctx context.Context, filter curio.CabinetFilter) ([]*curio.Cabinet, error)
	UpdateCabinetFn   func(ctx context.Context, id string, upd curio.CabinetUpdate) (*curio.Cabinet, error)
	DeleteCabinetFn   func(ctx context.Context, id string) error
}

func (s *CabinetService) CreateCabinet(ctx context.Context, cabinet *curio.Cabinet) error {
	return s.CreateCabinetFn(ctx, cabinet)
}

func (s *CabinetService) FindCabinetByID(ctx context.Context, id string) (*curio.Cabinet, error) {
	return s.FindCabinetByIDFn(ctx, id)
}

func (s *CabinetService) FindCabinets(ctx context.Context, filter curio.CabinetFilter) ([]*curio.Cabinet, error) {
	return s.FindCabinetsFn(ctx, filter)
}

func (s *CabinetService) UpdateCabinet(ctx context.Context, id string, upd curio.CabinetUpdate) (*curio.Cabinet, error) {
	return s.UpdateCabinetFn(ctx, id, upd)
}

func (s *CabinetService) DeleteCabinet(ctx context.Context, id string) error {
	return s.DeleteCabinetFn(ctx, id)
}
