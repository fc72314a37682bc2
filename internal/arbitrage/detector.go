package arbitrage

import (
	"go.uber.org/zap"

	"github.com/jvaldes/pairbot/pkg/types"
)

// Detector decides whether a pair of live buy prices constitutes an
// arbitrage opportunity. It is a pure function of its inputs and the
// configured threshold: no hidden state, no side effects beyond metrics.
type Detector struct {
	threshold float64
	logger    *zap.Logger
}

// Config holds detector configuration.
type Config struct {
	// Threshold is the combined-price cutoff. An opportunity exists iff
	// yesPrice + noPrice < Threshold. Economically meaningful values lie
	// in (0, 1): each share pair pays out exactly 1.0 at resolution.
	Threshold float64
	Logger    *zap.Logger
}

// New creates a new arbitrage detector.
func New(cfg Config) *Detector {
	return &Detector{
		threshold: cfg.Threshold,
		logger:    cfg.Logger,
	}
}

// Check evaluates one market pair. It returns the opportunity and true when
// the combined buy price is strictly below the threshold; otherwise nil and
// false. The edge (1 - combined) is carried for observability only and is
// not part of the acceptance test.
func (d *Detector) Check(pair types.MarketPair, yesPrice, noPrice float64) (*Opportunity, bool) {
	combined := yesPrice + noPrice
	if combined >= d.threshold {
		return nil, false
	}

	opp := NewOpportunity(pair.Question, pair.YesTokenID, pair.NoTokenID, yesPrice, noPrice, d.threshold)

	OpportunitiesDetectedTotal.Inc()
	OpportunityEdgeBPS.Observe(opp.Edge * 10000)

	d.logger.Info("arbitrage-opportunity-detected",
		zap.String("opportunity-id", opp.ID),
		zap.String("question", opp.Question),
		zap.Float64("yes-price", yesPrice),
		zap.Float64("no-price", noPrice),
		zap.Float64("combined", combined),
		zap.Float64("edge", opp.Edge))

	return opp, true
}

// Threshold returns the configured combined-price cutoff.
func (d *Detector) Threshold() float64 {
	return d.threshold
}
