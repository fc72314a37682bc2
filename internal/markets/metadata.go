// Package markets fetches per-token trading metadata (tick size, minimum
// order size) from the CLOB API, with a cache in front so the execution
// path does not pay an HTTP round trip per leg.
package markets

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/goccy/go-json"
)

// Default metadata used when the API does not provide values.
const (
	DefaultTickSize     = 0.01
	DefaultMinOrderSize = 5.0
)

// TokenMetadata holds the trading constraints for one outcome token.
type TokenMetadata struct {
	TickSize     float64
	MinOrderSize float64
}

// MetadataClient fetches token metadata from the CLOB API.
type MetadataClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewMetadataClient creates a metadata client for the given CLOB host.
func NewMetadataClient(baseURL string) *MetadataClient {
	return &MetadataClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// FetchTokenMetadata fetches tick size and minimum order size for a token.
// Missing or unparsable values fall back to defaults rather than failing the
// execution path.
func (c *MetadataClient) FetchTokenMetadata(ctx context.Context, tokenID string) (TokenMetadata, error) {
	meta := TokenMetadata{
		TickSize:     DefaultTickSize,
		MinOrderSize: DefaultMinOrderSize,
	}

	tickSize, err := c.fetchTickSize(ctx, tokenID)
	if err == nil && tickSize > 0 {
		meta.TickSize = tickSize
	}

	minSize, err := c.fetchMinOrderSize(ctx, tokenID)
	if err == nil && minSize > 0 {
		meta.MinOrderSize = minSize
	}

	return meta, nil
}

func (c *MetadataClient) fetchTickSize(ctx context.Context, tokenID string) (float64, error) {
	url := fmt.Sprintf("%s/tick-size?token_id=%s", c.baseURL, tokenID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("API error: status %d", resp.StatusCode)
	}

	var data struct {
		MinimumTickSize float64 `json:"minimum_tick_size"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return 0, err
	}

	return data.MinimumTickSize, nil
}

func (c *MetadataClient) fetchMinOrderSize(ctx context.Context, tokenID string) (float64, error) {
	url := fmt.Sprintf("%s/book?token_id=%s", c.baseURL, tokenID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("API error: status %d", resp.StatusCode)
	}

	var data struct {
		MinSize float64 `json:"min_size"`
		Market  struct {
			MinSize float64 `json:"minimum_order_size"`
		} `json:"market"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return 0, err
	}

	if data.MinSize > 0 {
		return data.MinSize, nil
	}
	return data.Market.MinSize, nil
}
