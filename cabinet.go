package curio

import (
	"context"
	"time"
)

// Cabinet groups catalogued items, like a shelf in a collection.
type Cabinet struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Validate returns an error if the cabinet contains invalid fields.
func (c *Cabinet) Validate() error {
	if c.Name == "" {
		return Errorf(EINVALID, "cabinet name required")
	}
	return nil
}

// CabinetService represents a service for managing cabinets.
type CabinetService interface {
	// CreateCabinet creates a new cabinet.
	CreateCabinet(ctx context.Context, cabinet *Cabinet) error

	// FindCabinetByID retrieves a cabinet by ID.
	// Returns ENOTFOUND if cabinet does not exist.
	FindCabinetByID(ctx context.Context, id string) (*Cabinet, error)

	// FindCabinets retrieves cabinets matching the filter.
	FindCabinets(ctx context.Context, filter CabinetFilter) ([]*Cabinet, error)

	// UpdateCabinet updates an existing cabinet.
	// Returns ENOTFOUND if cabinet does not exist.
	UpdateCabinet(ctx context.Context, id string, upd CabinetUpdate) (*Cabinet, error)

	// DeleteCabinet permanently removes a cabinet and all its items.
	// Returns ENOTFOUND if cabinet does not exist.
	DeleteCabinet(ctx context.Context, id string) error
}

// CabinetFilter represents a filter for FindCabinets.
type CabinetFilter struct {
	ID   *string `json:"id"`
	Name *string `json:"name"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// CabinetUpdate represents fields that can be updated on a cabinet.
type CabinetUpdate struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}
