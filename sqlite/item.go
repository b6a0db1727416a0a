package sqlite

import (
	"context"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"github.com/ayumu-h/curio"
	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ curio.ItemService = (*ItemService)(nil)

// ItemService implements curio.ItemService using SQLite.
type ItemService struct {
	db *DB
}

// NewItemService creates a new ItemService.
func NewItemService(db *DB) *ItemService {
	return &ItemService{db: db}
}

// hashItem computes an xxHash over the identity fields of an item, used
// to detect whether a re-extraction changed anything worth reviewing.
func hashItem(item *curio.Item) string {
	h := xxhash.New()
	for _, field := range []string{item.Title, item.OriginalTitle, item.URL, item.Author, item.ImageURL, item.Episode} {
		_, _ = h.WriteString(field)
		_, _ = h.WriteString("\x00")
	}
	sum := h.Sum(nil)
	return hex.EncodeToString(sum)
}

// CreateItem creates a new item.
func (s *ItemService) CreateItem(ctx context.Context, item *curio.Item) error {
	if err := item.Validate(); err != nil {
		return err
	}

	item.ID = uuid.New().String()
	item.CreatedAt = time.Now().UTC()
	item.UpdatedAt = item.CreatedAt
	item.ContentHash = hashItem(item)

	creators, err := marshalJSONColumn(item.Creators)
	if err != nil {
		return err
	}
	keywords, err := marshalJSONColumn(item.Keywords)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO items (
			id, cabinet_id, title, original_title, url, author, creators,
			image_url, language, episode, description, keywords, source_name,
			feed_url, content_hash, published_at, next_update_at, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, item.ID, item.CabinetID, item.Title, item.OriginalTitle, item.URL, item.Author, creators,
		item.ImageURL, item.Language, item.Episode, item.Description, keywords, item.SourceName,
		item.FeedURL, item.ContentHash, nullableTime(item.PublishedAt), nullableTime(item.NextUpdateAt),
		item.CreatedAt.Format(time.RFC3339), item.UpdatedAt.Format(time.RFC3339))

	return err
}

const itemColumns = `
	id, cabinet_id, title, original_title, url, author, creators,
	image_url, language, episode, description, keywords, source_name,
	feed_url, content_hash, published_at, next_update_at, created_at, updated_at
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*curio.Item, error) {
	var item curio.Item
	var creators, keywords, createdAt, updatedAt string
	var publishedAt, nextUpdateAt sql.NullString

	err := row.Scan(&item.ID, &item.CabinetID, &item.Title, &item.OriginalTitle, &item.URL,
		&item.Author, &creators, &item.ImageURL, &item.Language, &item.Episode,
		&item.Description, &keywords, &item.SourceName, &item.FeedURL, &item.ContentHash,
		&publishedAt, &nextUpdateAt, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(creators), &item.Creators); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(keywords), &item.Keywords); err != nil {
		return nil, err
	}
	if item.PublishedAt, err = scanNullableTime(publishedAt, "published_at"); err != nil {
		return nil, err
	}
	if item.NextUpdateAt, err = scanNullableTime(nextUpdateAt, "next_update_at"); err != nil {
		return nil, err
	}
	if item.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if item.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
		return nil, err
	}
	return &item, nil
}

// FindItemByID retrieves an item by ID.
func (s *ItemService) FindItemByID(ctx context.Context, id string) (*curio.Item, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM items WHERE id = ?`, id)
	item, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, curio.Errorf(curio.ENOTFOUND, "item not found")
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

// FindItems retrieves items matching the filter.
func (s *ItemService) FindItems(ctx context.Context, filter curio.ItemFilter) ([]*curio.Item, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`SELECT ` + itemColumns + ` FROM items WHERE 1=1`)
	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.CabinetID != nil {
		query.WriteString(" AND cabinet_id = ?")
		args = append(args, *filter.CabinetID)
	}
	if filter.Title != nil {
		query.WriteString(" AND title LIKE ?")
		args = append(args, "%"+*filter.Title+"%")
	}
	if filter.SortBy == curio.SortByTitle {
		query.WriteString(" ORDER BY title")
	} else {
		query.WriteString(" ORDER BY created_at DESC")
	}
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []*curio.Item{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// UpdateItem updates an existing item and refreshes its content hash.
func (s *ItemService) UpdateItem(ctx context.Context, id string, upd curio.ItemUpdate) (*curio.Item, error) {
	item, err := s.FindItemByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.CabinetID != nil {
		item.CabinetID = *upd.CabinetID
	}
	if upd.Title != nil {
		item.Title = *upd.Title
	}
	if upd.ImageURL != nil {
		item.ImageURL = *upd.ImageURL
	}
	if upd.Episode != nil {
		item.Episode = *upd.Episode
	}
	if upd.Description != nil {
		item.Description = *upd.Description
	}
	if err := item.Validate(); err != nil {
		return nil, err
	}
	item.UpdatedAt = time.Now().UTC()
	item.ContentHash = hashItem(item)

	_, err = s.db.ExecContext(ctx, `
		UPDATE items SET cabinet_id = ?, title = ?, image_url = ?, episode = ?,
			description = ?, content_hash = ?, updated_at = ?
		WHERE id = ?
	`, item.CabinetID, item.Title, item.ImageURL, item.Episode,
		item.Description, item.ContentHash, item.UpdatedAt.Format(time.RFC3339), id)
	if err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteItem permanently removes an item; its notes cascade.
func (s *ItemService) DeleteItem(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return curio.Errorf(curio.ENOTFOUND, "item not found")
	}
	return nil
}
