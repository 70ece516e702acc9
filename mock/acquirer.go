package mock

import (
	"context"

	"github.com/scholarslide/scholarslide"
)

var _ scholarslide.Acquirer = (*Acquirer)(nil)

// Acquirer is a mock implementation of scholarslide.Acquirer.
type Acquirer struct {
	AcquireFn func(ctx context.Context, url string) (*scholarslide.RawDocument, error)
}

func (a *Acquirer) Acquire(ctx context.Context, url string) (*scholarslide.RawDocument, error) {
	return a.AcquireFn(ctx, url)
}
