package testutil

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/jvaldes/pairbot/internal/ledger"
	"github.com/jvaldes/pairbot/pkg/types"
)

// MockClobAPI is a mock HTTP server that simulates the CLOB REST API:
// market listing with cursor pagination, per-token buy prices, and order
// submission and cancellation.
type MockClobAPI struct {
	*httptest.Server

	mu      sync.RWMutex
	markets []types.SimplifiedMarket
	prices  map[string]string // token id -> price string

	// RejectOrders makes every order submission come back unfilled.
	RejectOrders bool

	SubmittedOrders []types.OrderSubmissionRequest
	CancelledOrders []string

	nextOrderID int
}

// NewMockClobAPI creates a mock CLOB server.
func NewMockClobAPI(markets []types.SimplifiedMarket, prices map[string]string) *MockClobAPI {
	mock := &MockClobAPI{
		markets: markets,
		prices:  prices,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/simplified-markets", mock.handleMarkets)
	mux.HandleFunc("/price", mock.handlePrice)
	mux.HandleFunc("/order", mock.handleOrder)

	mock.Server = httptest.NewServer(mux)
	return mock
}

func (m *MockClobAPI) handleMarkets(w http.ResponseWriter, r *http.Request) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(types.SimplifiedMarketsResponse{
		Data:       m.markets,
		NextCursor: "LTE=",
	})
}

func (m *MockClobAPI) handlePrice(w http.ResponseWriter, r *http.Request) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	price, ok := m.prices[r.URL.Query().Get("token_id")]
	if !ok {
		http.Error(w, `{"error":"unknown token"}`, http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(types.PriceResponse{Price: price})
}

func (m *MockClobAPI) handleOrder(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	defer m.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")

	switch r.Method {
	case http.MethodPost:
		var req types.OrderSubmissionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"bad request"}`, http.StatusBadRequest)
			return
		}
		m.SubmittedOrders = append(m.SubmittedOrders, req)

		if m.RejectOrders {
			json.NewEncoder(w).Encode(types.OrderSubmissionResponse{
				Success:  false,
				ErrorMsg: "order couldn't be fully filled, FOK orders are fully filled or killed",
			})
			return
		}

		m.nextOrderID++
		json.NewEncoder(w).Encode(types.OrderSubmissionResponse{
			Success: true,
			OrderID: fmt.Sprintf("mock-order-%d", m.nextOrderID),
			Status:  "matched",
		})

	case http.MethodDelete:
		var req struct {
			OrderID string `json:"orderID"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"bad request"}`, http.StatusBadRequest)
			return
		}
		m.CancelledOrders = append(m.CancelledOrders, req.OrderID)

		json.NewEncoder(w).Encode(types.CancelResponse{
			Canceled: []string{req.OrderID},
		})

	default:
		http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
	}
}

// SetPrice updates the quoted buy price for a token.
func (m *MockClobAPI) SetPrice(tokenID, price string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prices[tokenID] = price
}

// SetMarkets replaces the market listing.
func (m *MockClobAPI) SetMarkets(markets []types.SimplifiedMarket) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.markets = markets
}

// MockReporter records every daily report it receives.
type MockReporter struct {
	mu       sync.Mutex
	Reports  []ledger.Snapshot
	FailWith error
}

// SendDailyReport records the snapshot and returns the configured error.
func (m *MockReporter) SendDailyReport(_ context.Context, snap ledger.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Reports = append(m.Reports, snap)
	return m.FailWith
}

// ReportCount returns how many reports were delivered.
func (m *MockReporter) ReportCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Reports)
}
