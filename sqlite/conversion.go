package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/scholarslide/scholarslide"
)

// Compile-time interface verification.
var _ scholarslide.ConversionService = (*ConversionService)(nil)

// ConversionService implements scholarslide.ConversionService using SQLite.
type ConversionService struct {
	db *DB
}

// NewConversionService creates a new ConversionService.
func NewConversionService(db *DB) *ConversionService {
	return &ConversionService{db: db}
}

// CreateConversion persists a new conversion record.
func (s *ConversionService) CreateConversion(ctx context.Context, conv *scholarslide.Conversion) error {
	if err := conv.Validate(); err != nil {
		return err
	}

	conv.ID = uuid.New().String()
	conv.CreatedAt = time.Now().UTC()

	fields, err := json.Marshal(conv.Fields)
	if err != nil {
		return fmt.Errorf("failed to encode fields: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO conversions (id, url, method, title, authors, date, doi, fields, content_hash, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, conv.ID, conv.URL, conv.Method, conv.Title, conv.Authors, conv.Date, conv.DOI,
		string(fields), conv.ContentHash, conv.CreatedAt.Format(time.RFC3339Nano))

	return err
}

// FindConversionByID retrieves a conversion by ID.
func (s *ConversionService) FindConversionByID(ctx context.Context, id string) (*scholarslide.Conversion, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, url, method, title, authors, date, doi, fields, content_hash, created_at
		FROM conversions
		WHERE id = ?
	`, id)

	conv, err := scanConversion(row.Scan)
	if err == sql.ErrNoRows {
		return nil, scholarslide.Errorf(scholarslide.ENOTFOUND, "conversion not found")
	}
	if err != nil {
		return nil, err
	}
	return conv, nil
}

// FindConversions retrieves conversions matching the filter, newest first.
func (s *ConversionService) FindConversions(ctx context.Context, filter scholarslide.ConversionFilter) ([]*scholarslide.Conversion, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, url, method, title, authors, date, doi, fields, content_hash, created_at FROM conversions WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}
	if filter.DOI != nil {
		query.WriteString(" AND doi = ?")
		args = append(args, *filter.DOI)
	}

	query.WriteString(" ORDER BY created_at DESC")

	// SQLite requires LIMIT when OFFSET is present; -1 means unlimited.
	switch {
	case filter.Limit > 0 && filter.Offset > 0:
		query.WriteString(" LIMIT ? OFFSET ?")
		args = append(args, filter.Limit, filter.Offset)
	case filter.Limit > 0:
		query.WriteString(" LIMIT ?")
		args = append(args, filter.Limit)
	case filter.Offset > 0:
		query.WriteString(" LIMIT -1 OFFSET ?")
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var convs []*scholarslide.Conversion
	for rows.Next() {
		conv, err := scanConversion(rows.Scan)
		if err != nil {
			return nil, err
		}
		convs = append(convs, conv)
	}
	return convs, rows.Err()
}

// DeleteConversion permanently removes a conversion.
func (s *ConversionService) DeleteConversion(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM conversions WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return scholarslide.Errorf(scholarslide.ENOTFOUND, "conversion not found")
	}
	return nil
}

// scanConversion reads one row via the provided scan function.
func scanConversion(scan func(dest ...any) error) (*scholarslide.Conversion, error) {
	var conv scholarslide.Conversion
	var fields, createdAt string

	if err := scan(&conv.ID, &conv.URL, &conv.Method, &conv.Title, &conv.Authors,
		&conv.Date, &conv.DOI, &fields, &conv.ContentHash, &createdAt); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(fields), &conv.Fields); err != nil {
		return nil, fmt.Errorf("failed to decode fields: %w", err)
	}

	var err error
	conv.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}

	return &conv, nil
}
