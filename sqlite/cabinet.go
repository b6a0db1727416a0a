package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/ayumu-h/curio"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ curio.CabinetService = (*CabinetService)(nil)

// CabinetService implements curio.CabinetService using SQLite.
type CabinetService struct {
	db *DB
}

// NewCabinetService creates a new CabinetService.
func NewCabinetService(db *DB) *CabinetService {
	return &CabinetService{db: db}
}

// CreateCabinet creates a new cabinet.
func (s *CabinetService) CreateCabinet(ctx context.Context, cabinet *curio.Cabinet) error {
	if err := cabinet.Validate(); err != nil {
		return err
	}

	cabinet.ID = uuid.New().String()
	cabinet.CreatedAt = time.Now().UTC()
	cabinet.UpdatedAt = cabinet.CreatedAt

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO cabinets (id, name, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`, cabinet.ID, cabinet.Name, cabinet.Description,
		cabinet.CreatedAt.Format(time.RFC3339), cabinet.UpdatedAt.Format(time.RFC3339))

	return err
}

// FindCabinetByID retrieves a cabinet by ID.
func (s *CabinetService) FindCabinetByID(ctx context.Context, id string) (*curio.Cabinet, error) {
	var cabinet curio.Cabinet
	var createdAt, updatedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, description, created_at, updated_at
		FROM cabinets
		WHERE id = ?
	`, id).Scan(&cabinet.ID, &cabinet.Name, &cabinet.Description, &createdAt, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, curio.Errorf(curio.ENOTFOUND, "cabinet not found")
	}
	if err != nil {
		return nil, err
	}

	if cabinet.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if cabinet.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
		return nil, err
	}
	return &cabinet, nil
}

// FindCabinets retrieves cabinets matching the filter, ordered by name.
func (s *CabinetService) FindCabinets(ctx context.Context, filter curio.CabinetFilter) ([]*curio.Cabinet, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`
		SELECT id, name, description, created_at, updated_at
		FROM cabinets
		WHERE 1=1
	`)
	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Name != nil {
		query.WriteString(" AND name = ?")
		args = append(args, *filter.Name)
	}
	query.WriteString(" ORDER BY name")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cabinets := []*curio.Cabinet{}
	for rows.Next() {
		var cabinet curio.Cabinet
		var createdAt, updatedAt string
		if err := rows.Scan(&cabinet.ID, &cabinet.Name, &cabinet.Description, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		if cabinet.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
			return nil, err
		}
		if cabinet.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
			return nil, err
		}
		cabinets = append(cabinets, &cabinet)
	}
	return cabinets, rows.Err()
}

// UpdateCabinet updates an existing cabinet.
func (s *CabinetService) UpdateCabinet(ctx context.Context, id string, upd curio.CabinetUpdate) (*curio.Cabinet, error) {
	cabinet, err := s.FindCabinetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		cabinet.Name = *upd.Name
	}
	if upd.Description != nil {
		cabinet.Description = *upd.Description
	}
	if err := cabinet.Validate(); err != nil {
		return nil, err
	}
	cabinet.UpdatedAt = time.Now().UTC()

	_, err = s.db.ExecContext(ctx, `
		UPDATE cabinets SET name = ?, description = ?, updated_at = ?
		WHERE id = ?
	`, cabinet.Name, cabinet.Description, cabinet.UpdatedAt.Format(time.RFC3339), id)
	if err != nil {
		return nil, err
	}
	return cabinet, nil
}

// DeleteCabinet permanently removes a cabinet; its items cascade.
func (s *CabinetService) DeleteCabinet(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM cabinets WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return curio.Errorf(curio.ENOTFOUND, "cabinet not found")
	}
	return nil
}
