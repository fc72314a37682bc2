package catalog

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/jvaldes/pairbot/pkg/types"
)

// MarketLister is the slice of the trading API the catalog consumes.
type MarketLister interface {
	SimplifiedMarkets(ctx context.Context) ([]types.SimplifiedMarket, error)
}

// Catalog holds the current set of tradable market pairs. Refresh replaces
// the set wholesale from the upstream market list; a pair absent from the
// latest refresh is gone. A failed refresh leaves the previous set intact.
type Catalog struct {
	lister   MarketLister
	keywords []string // lowercased
	invert   bool
	logger   *zap.Logger

	mu    sync.RWMutex
	pairs []types.MarketPair
}

// Config holds catalog configuration.
type Config struct {
	Lister MarketLister
	// Keywords that must ALL appear in a market's question text
	// (case-insensitive) for the market to be admitted.
	Keywords []string
	// InvertOutcomeOrder swaps the token-index mapping. The default
	// convention is index 0 = NO token, index 1 = YES token; flipping it
	// silently inverts the trade direction, so it is exposed as explicit
	// configuration rather than guessed.
	InvertOutcomeOrder bool
	Logger             *zap.Logger
}

// New creates an empty catalog. Call Refresh to populate it.
func New(cfg *Config) *Catalog {
	keywords := make([]string, 0, len(cfg.Keywords))
	for _, k := range cfg.Keywords {
		keywords = append(keywords, strings.ToLower(k))
	}

	return &Catalog{
		lister:   cfg.Lister,
		keywords: keywords,
		invert:   cfg.InvertOutcomeOrder,
		logger:   cfg.Logger,
	}
}

// Refresh queries the market source and atomically replaces the pair set
// with every market that matches all keywords, is active, and decodes to
// exactly two outcome tokens. On any fetch or decode failure of the listing
// itself the previous pair set is kept and the error is returned for the
// caller to log; refresh failures are never fatal.
func (c *Catalog) Refresh(ctx context.Context) error {
	markets, err := c.lister.SimplifiedMarkets(ctx)
	if err != nil {
		RefreshFailuresTotal.Inc()
		return fmt.Errorf("list markets: %w", err)
	}

	pairs := make([]types.MarketPair, 0, len(markets))
	for i := range markets {
		pair, ok := c.admit(&markets[i])
		if !ok {
			continue
		}
		pairs = append(pairs, pair)
	}

	c.mu.Lock()
	c.pairs = pairs
	c.mu.Unlock()

	PairsTracked.Set(float64(len(pairs)))

	c.logger.Info("catalog-refreshed",
		zap.Int("markets-listed", len(markets)),
		zap.Int("pairs-admitted", len(pairs)))

	return nil
}

// admit applies the filter rules to one listed market.
func (c *Catalog) admit(m *types.SimplifiedMarket) (types.MarketPair, bool) {
	if !m.Active || m.Closed {
		return types.MarketPair{}, false
	}

	question := strings.ToLower(m.Question)
	for _, k := range c.keywords {
		if !strings.Contains(question, k) {
			return types.MarketPair{}, false
		}
	}

	ids, err := m.TokenIDs()
	if err != nil {
		c.logger.Warn("catalog-token-ids-undecodable",
			zap.String("question", m.Question),
			zap.Error(err))
		return types.MarketPair{}, false
	}
	// Exactly two distinct outcome tokens make a binary pair.
	if len(ids) != 2 {
		return types.MarketPair{}, false
	}

	noID, yesID := ids[0], ids[1]
	if c.invert {
		noID, yesID = yesID, noID
	}

	return types.MarketPair{
		Question:   m.Question,
		YesTokenID: yesID,
		NoTokenID:  noID,
	}, true
}

// Pairs returns a snapshot copy of the current pair set. The scanner
// iterates the snapshot, so a refresh mid-pass never affects the pass in
// progress.
func (c *Catalog) Pairs() []types.MarketPair {
	c.mu.RLock()
	defer c.mu.RUnlock()

	snapshot := make([]types.MarketPair, len(c.pairs))
	copy(snapshot, c.pairs)
	return snapshot
}

// Len returns the number of tracked pairs.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.pairs)
}
