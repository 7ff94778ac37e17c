package services

import (
	"context"

	"github.com/KhoaTranFitus/backend-food-app/app/responses"
)

// ISearchCache interface cho search result cache
type ISearchCache interface {
	Get(ctx context.Context, key string) (*responses.SearchResponse, bool, error)
	Set(ctx context.Context, key string, resp *responses.SearchResponse) error
	Invalidate(ctx context.Context) error
}
