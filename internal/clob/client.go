// Package clob implements the Polymarket CLOB API client used by the bot:
// market listing, price quoting, signed FOK order submission, and
// best-effort cancellation.
package clob

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/goccy/go-json"
	"github.com/polymarket/go-order-utils/pkg/builder"
	"go.uber.org/zap"

	"github.com/jvaldes/pairbot/pkg/types"
)

// terminalCursor marks the last page of the simplified-markets listing.
const terminalCursor = "LTE="

// Client talks to the Polymarket CLOB API.
type Client struct {
	host         string
	apiKey       string
	secret       string
	passphrase   string
	privateKey   *ecdsa.PrivateKey
	address      string // EOA address derived from the private key
	funder       string // proxy/funder address, empty for plain EOA
	orderBuilder builder.ExchangeOrderBuilder
	httpClient   *http.Client
	logger       *zap.Logger
}

// ClientConfig holds configuration for the CLOB client.
type ClientConfig struct {
	Host       string
	ChainID    int64
	PrivateKey string // hex, optional for read-only use
	Funder     string
	APIKey     string
	Secret     string
	Passphrase string
	Logger     *zap.Logger
}

// NewClient creates a CLOB client. A private key is only required for order
// submission; a client without one can still list markets and quote prices.
func NewClient(cfg *ClientConfig) (*Client, error) {
	c := &Client{
		host:       strings.TrimRight(cfg.Host, "/"),
		apiKey:     cfg.APIKey,
		secret:     cfg.Secret,
		passphrase: cfg.Passphrase,
		funder:     cfg.Funder,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     cfg.Logger,
	}

	if cfg.PrivateKey != "" {
		privateKey, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.PrivateKey, "0x"))
		if err != nil {
			return nil, fmt.Errorf("parse private key: %w", err)
		}

		publicKey, ok := privateKey.Public().(*ecdsa.PublicKey)
		if !ok {
			return nil, fmt.Errorf("derive public key")
		}

		c.privateKey = privateKey
		c.address = crypto.PubkeyToAddress(*publicKey).Hex()
		c.orderBuilder = builder.NewExchangeOrderBuilderImpl(big.NewInt(cfg.ChainID), nil)
	}

	return c, nil
}

// SimplifiedMarkets fetches every market from the simplified-markets
// endpoint, following the cursor until the terminal page.
func (c *Client) SimplifiedMarkets(ctx context.Context) ([]types.SimplifiedMarket, error) {
	var all []types.SimplifiedMarket
	cursor := ""

	for {
		page, next, err := c.fetchMarketsPage(ctx, cursor)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)

		if next == "" || next == terminalCursor {
			break
		}
		cursor = next
	}

	c.logger.Debug("fetched-simplified-markets", zap.Int("count", len(all)))

	return all, nil
}

func (c *Client) fetchMarketsPage(ctx context.Context, cursor string) ([]types.SimplifiedMarket, string, error) {
	endpoint := c.host + "/simplified-markets"
	if cursor != "" {
		endpoint += "?next_cursor=" + url.QueryEscape(cursor)
	}

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, "", fmt.Errorf("fetch markets page: %w", err)
	}

	var resp types.SimplifiedMarketsResponse
	err = json.Unmarshal(body, &resp)
	if err != nil {
		return nil, "", fmt.Errorf("unmarshal markets page: %w", err)
	}

	return resp.Data, resp.NextCursor, nil
}

// BuyPrice fetches the current executable buy price for a token.
func (c *Client) BuyPrice(ctx context.Context, tokenID string) (float64, error) {
	params := url.Values{}
	params.Add("token_id", tokenID)
	params.Add("side", "BUY")

	body, err := c.get(ctx, fmt.Sprintf("%s/price?%s", c.host, params.Encode()))
	if err != nil {
		PriceFetchFailuresTotal.Inc()
		return 0, fmt.Errorf("fetch price: %w", err)
	}

	var resp types.PriceResponse
	err = json.Unmarshal(body, &resp)
	if err != nil {
		PriceFetchFailuresTotal.Inc()
		return 0, fmt.Errorf("unmarshal price: %w", err)
	}

	price, err := strconv.ParseFloat(resp.Price, 64)
	if err != nil {
		PriceFetchFailuresTotal.Inc()
		return 0, fmt.Errorf("parse price %q: %w", resp.Price, err)
	}

	return price, nil
}

func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "pairbot/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, string(body))
	}

	return body, nil
}
