package arbitrage

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Opportunity represents a detected arbitrage window for one market pair.
// It lives for a single scan iteration: the executor either acts on it
// immediately or it is discarded.
type Opportunity struct {
	ID            string
	Question      string
	YesTokenID    string
	NoTokenID     string
	YesPrice      float64
	NoPrice       float64
	CombinedPrice float64
	Edge          float64 // 1.0 - CombinedPrice, before fees
	Threshold     float64
	DetectedAt    time.Time
}

// NewOpportunity builds an Opportunity from the two live buy prices.
func NewOpportunity(question, yesTokenID, noTokenID string, yesPrice, noPrice, threshold float64) *Opportunity {
	combined := yesPrice + noPrice

	return &Opportunity{
		ID:            uuid.New().String(),
		Question:      question,
		YesTokenID:    yesTokenID,
		NoTokenID:     noTokenID,
		YesPrice:      yesPrice,
		NoPrice:       noPrice,
		CombinedPrice: combined,
		Edge:          1.0 - combined,
		Threshold:     threshold,
		DetectedAt:    time.Now(),
	}
}

// String returns a human-readable representation of the opportunity.
func (o *Opportunity) String() string {
	q := o.Question
	if len(q) > 60 {
		q = q[:60] + "..."
	}
	return fmt.Sprintf("Opportunity[%s] %s | YES=%.4f NO=%.4f Combined=%.4f Edge=%.4f",
		o.ID[:8], q, o.YesPrice, o.NoPrice, o.CombinedPrice, o.Edge)
}
