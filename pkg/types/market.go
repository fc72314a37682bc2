package types

import (
	"github.com/goccy/go-json"
)

// SimplifiedMarket represents one market from the CLOB simplified-markets
// endpoint. ClobTokenIDs arrives as a JSON string containing an array of
// token identifiers (e.g. "[\"123\", \"456\"]").
type SimplifiedMarket struct {
	ConditionID  string `json:"condition_id"`
	Question     string `json:"question"`
	Active       bool   `json:"active"`
	Closed       bool   `json:"closed"`
	ClobTokenIDs string `json:"clobTokenIds"`
}

// TokenIDs decodes the ClobTokenIDs JSON string into a slice of token
// identifiers. Returns an error if the payload is not a JSON array of
// strings.
func (m *SimplifiedMarket) TokenIDs() ([]string, error) {
	var ids []string
	err := json.Unmarshal([]byte(m.ClobTokenIDs), &ids)
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// SimplifiedMarketsResponse wraps the paginated simplified-markets payload.
type SimplifiedMarketsResponse struct {
	Data       []SimplifiedMarket `json:"data"`
	NextCursor string             `json:"next_cursor"`
}

// MarketPair is one arbitrage candidate: a binary market with exactly two
// outcome tokens. The upstream token list maps index 0 to the NO side and
// index 1 to the YES side; Catalog.Refresh enforces this convention.
type MarketPair struct {
	Question   string
	YesTokenID string
	NoTokenID  string
}
