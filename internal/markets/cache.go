package markets

import (
	"context"
	"time"

	"github.com/jvaldes/pairbot/pkg/cache"
)

// metadataTTL bounds staleness of cached token metadata. Tick sizes change
// rarely, so an hour is comfortable.
const metadataTTL = time.Hour

// CachedMetadataClient wraps a MetadataClient with a ristretto cache.
type CachedMetadataClient struct {
	client *MetadataClient
	cache  cache.Cache
}

// NewCachedMetadataClient creates a cached metadata client.
func NewCachedMetadataClient(client *MetadataClient, c cache.Cache) *CachedMetadataClient {
	return &CachedMetadataClient{
		client: client,
		cache:  c,
	}
}

// GetTokenMetadata returns the token's metadata, from cache when possible.
func (c *CachedMetadataClient) GetTokenMetadata(ctx context.Context, tokenID string) (TokenMetadata, error) {
	key := "token-meta:" + tokenID

	if cached, found := c.cache.Get(key); found {
		if meta, ok := cached.(TokenMetadata); ok {
			return meta, nil
		}
	}

	meta, err := c.client.FetchTokenMetadata(ctx, tokenID)
	if err != nil {
		return TokenMetadata{}, err
	}

	c.cache.Set(key, meta, metadataTTL)

	return meta, nil
}
