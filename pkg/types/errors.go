package types

import "fmt"

// LegError represents a failed buy order for one leg of an arbitrage pair.
type LegError struct {
	Side    string // YES or NO
	TokenID string
	Message string // API errorMsg or transport error
}

func (e *LegError) Error() string {
	return fmt.Sprintf("%s leg failed (token %s): %s", e.Side, e.TokenID, e.Message)
}

// Known Polymarket CLOB API error codes
const (
	ErrInvalidMinTickSize = "INVALID_ORDER_MIN_TICK_SIZE"
	ErrNotEnoughBalance   = "INVALID_ORDER_NOT_ENOUGH_BALANCE"
	ErrFOKNotFilled       = "FOK_ORDER_NOT_FILLED_ERROR"
	ErrMarketNotReady     = "MARKET_NOT_READY"
)
