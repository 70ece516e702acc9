package scholarslide

import (
	"context"
	"time"
)

// Conversion is a persisted record of one completed URL-to-fields
// conversion, kept for history and dedup diagnostics.
type Conversion struct {
	ID          string            `json:"id"`
	URL         string            `json:"url"`
	Method      string            `json:"method"`
	Title       string            `json:"title"`
	Authors     string            `json:"authors"`
	Date        string            `json:"date"`
	DOI         string            `json:"doi"`
	Fields      map[string]string `json:"fields"`
	ContentHash string            `json:"contentHash"`
	CreatedAt   time.Time         `json:"createdAt"`
}

// Validate returns an error if the conversion contains invalid fields.
func (c *Conversion) Validate() error {
	if c.URL == "" {
		return Errorf(EINVALID, "conversion URL required")
	}
	if c.Method == "" {
		return Errorf(EINVALID, "conversion method required")
	}
	return nil
}

// ConversionFilter represents a filter for FindConversions.
type ConversionFilter struct {
	ID  *string `json:"id"`
	URL *string `json:"url"`
	DOI *string `json:"doi"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// ConversionService represents a service for managing conversion history.
type ConversionService interface {
	// CreateConversion persists a new conversion record.
	CreateConversion(ctx context.Context, conv *Conversion) error

	// FindConversionByID retrieves a conversion by ID.
	// Returns ENOTFOUND if the conversion does not exist.
	FindConversionByID(ctx context.Context, id string) (*Conversion, error)

	// FindConversions retrieves conversions matching the filter, newest
	// first.
	FindConversions(ctx context.Context, filter ConversionFilter) ([]*Conversion, error)

	// DeleteConversion permanently removes a conversion.
	// Returns ENOTFOUND if the conversion does not exist.
	DeleteConversion(ctx context.Context, id string) error
}
