package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/jvaldes/pairbot/pkg/types"
)

// SubmittedOrder captures the arguments of one SubmitBuyFOK call.
type SubmittedOrder struct {
	TokenID string
	Price   float64
	Size    float64
}

// MockOrderPlacer is an in-memory order placer for execution tests.
type MockOrderPlacer struct {
	mu sync.Mutex

	// FailTokens lists token ids whose orders come back unfilled.
	FailTokens map[string]bool
	// CancelFails makes every cancellation report not-canceled.
	CancelFails bool

	Submitted []SubmittedOrder
	Cancelled []string

	nextID int
}

// NewMockOrderPlacer creates an order placer that fills everything.
func NewMockOrderPlacer() *MockOrderPlacer {
	return &MockOrderPlacer{FailTokens: make(map[string]bool)}
}

// SubmitBuyFOK records the order and fills it unless the token is marked
// as failing.
func (m *MockOrderPlacer) SubmitBuyFOK(_ context.Context, tokenID string, price, size float64) (*types.OrderSubmissionResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Submitted = append(m.Submitted, SubmittedOrder{TokenID: tokenID, Price: price, Size: size})

	if m.FailTokens[tokenID] {
		return &types.OrderSubmissionResponse{
			Success:  false,
			ErrorMsg: "order couldn't be fully filled, FOK orders are fully filled or killed",
		}, nil
	}

	m.nextID++
	return &types.OrderSubmissionResponse{
		Success: true,
		OrderID: fmt.Sprintf("mock-order-%d", m.nextID),
		Status:  "matched",
	}, nil
}

// Cancel records the cancellation.
func (m *MockOrderPlacer) Cancel(_ context.Context, orderID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Cancelled = append(m.Cancelled, orderID)
	return !m.CancelFails, nil
}
