package mock

import (
	"context"

	"github.com/scholarslide/scholarslide"
)

var _ scholarslide.ConversionService = (*ConversionService)(nil)

// ConversionService is a mock implementation of
// scholarslide.ConversionService.
type ConversionService struct {
	CreateConversionFn   func(ctx context.Context, conv *scholarslide.Conversion) error
	FindConversionByIDFn func(ctx context.Context, id string) (*scholarslide.Conversion, error)
	FindConversionsFn    func(ctx context.Context, filter scholarslide.ConversionFilter) ([]*scholarslide.Conversion, error)
	DeleteConversionFn   func(ctx context.Context, id string) error
}

func (s *ConversionService) CreateConversion(ctx context.Context, conv *scholarslide.Conversion) error {
	return s.CreateConversionFn(ctx, conv)
}

func (s *ConversionService) FindConversionByID(ctx context.Context, id string) (*scholarslide.Conversion, error) {
	return s.FindConversionByIDFn(ctx, id)
}

func (s *ConversionService) FindConversions(ctx context.Context, filter scholarslide.ConversionFilter) ([]*scholarslide.Conversion, error) {
	return s.FindConversionsFn(ctx, filter)
}

func (s *ConversionService) DeleteConversion(ctx context.Context, id string) error {
	return s.DeleteConversionFn(ctx, id)
}
