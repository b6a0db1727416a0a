package curio

import (
	"context"
	"time"
)

// Item is one catalogued work. The metadata fields mirror what the
// extraction pipeline produces; persistence is entirely the caller's
// choice, the pipeline itself never writes items.
type Item struct {
	ID            string     `json:"id"`
	CabinetID     string     `json:"cabinetId"`
	Title         string     `json:"title"`
	OriginalTitle string     `json:"originalTitle,omitempty"`
	URL           string     `json:"url"`
	Author        string     `json:"author,omitempty"`
	Creators      []Creator  `json:"creators,omitempty"`
	ImageURL      string     `json:"imageUrl,omitempty"`
	Language      string     `json:"language,omitempty"`
	Episode       string     `json:"episode,omitempty"`
	Description   string     `json:"description,omitempty"`
	Keywords      []string   `json:"keywords,omitempty"`
	SourceName    string     `json:"sourceName,omitempty"`
	FeedURL       string     `json:"feedUrl,omitempty"`
	ContentHash   string     `json:"contentHash"`
	PublishedAt   *time.Time `json:"publishedAt"`
	NextUpdateAt  *time.Time `json:"nextUpdateAt"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// Validate returns an error if the item contains invalid fields.
func (i *Item) Validate() error {
	if i.CabinetID == "" {
		return Errorf(EINVALID, "item cabinet ID required")
	}
	if i.Title == "" {
		return Errorf(EINVALID, "item title required")
	}
	if i.URL != "" {
		if err := ValidateTargetURL(i.URL); err != nil {
			return err
		}
	}
	return nil
}

// NewItemFromMetadata seeds an item from an extraction record. The caller
// sets the cabinet before persisting.
func NewItemFromMetadata(pageURL string, meta *Metadata) *Item {
	item := &Item{
		Title:         meta.PrimaryTitle,
		OriginalTitle: meta.OriginalTitle,
		URL:           pageURL,
		Author:        meta.Author,
		Creators:      meta.Creators,
		ImageURL:      meta.Image,
		Language:      meta.Language,
		Description:   meta.Description,
		Keywords:      meta.Keywords,
		SourceName:    meta.SourceName,
		FeedURL:       meta.FeedURL,
		PublishedAt:   meta.PublishedAt,
		NextUpdateAt:  meta.NextUpdateAt,
	}
	if meta.Episode != nil {
		item.Episode = meta.Episode.Raw
	}
	return item
}

// ItemService represents a service for managing items.
type ItemService interface {
	// CreateItem creates a new item.
	CreateItem(ctx context.Context, item *Item) error

	// FindItemByID retrieves an item by ID.
	// Returns ENOTFOUND if item does not exist.
	FindItemByID(ctx context.Context, id string) (*Item, error)

	// FindItems retrieves items matching the filter.
	FindItems(ctx context.Context, filter ItemFilter) ([]*Item, error)

	// UpdateItem updates an existing item.
	// Returns ENOTFOUND if item does not exist.
	UpdateItem(ctx context.Context, id string, upd ItemUpdate) (*Item, error)

	// DeleteItem permanently removes an item and its notes.
	// Returns ENOTFOUND if item does not exist.
	DeleteItem(ctx context.Context, id string) error
}

// SortOrder represents the sort order for item queries.
type SortOrder string

// SortOrder constants for ItemFilter.
const (
	SortByCreatedAt SortOrder = "created_at"
	SortByTitle     SortOrder = "title"
)

// ItemFilter represents a filter for FindItems.
type ItemFilter struct {
	ID        *string `json:"id"`
	CabinetID *string `json:"cabinetId"`
	Title     *string `json:"title"` // substring match

	Offset int `json:"offset"`
	Limit  int `json:"limit"`

	SortBy SortOrder `json:"sortBy"`
}

// ItemUpdate represents fields that can be updated on an item.
type ItemUpdate struct {
	CabinetID   *string `json:"cabinetId"`
	Title       *string `json:"title"`
	ImageURL    *string `json:"imageUrl"`
	Episode     *string `json:"episode"`
	Description *string `json:"description"`
}
