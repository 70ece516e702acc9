package mock

import (
	"context"

	"github.com/scholarslide/scholarslide"
)

var _ scholarslide.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of scholarslide.Fetcher.
type Fetcher struct {
	NameFn  func() string
	FetchFn func(ctx context.Context, url string) (string, error)
}

func (f *Fetcher) Name() string {
	return f.NameFn()
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}
