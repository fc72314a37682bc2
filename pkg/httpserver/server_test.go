package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/jvaldes/pairbot/internal/ledger"
	"github.com/jvaldes/pairbot/pkg/healthprobe"
)

func TestNew(t *testing.T) {
	logger := zap.NewNop()
	healthChecker := healthprobe.New()

	tests := []struct {
		name string
		cfg  *Config
	}{
		{
			name: "valid_config_minimal",
			cfg: &Config{
				Port:          "8080",
				Logger:        logger,
				HealthChecker: healthChecker,
			},
		},
		{
			name: "valid_config_with_ledger",
			cfg: &Config{
				Port:          "8080",
				Logger:        logger,
				HealthChecker: healthChecker,
				Ledger:        ledger.New(time.Now().UTC(), logger),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := New(tt.cfg)
			if server == nil {
				t.Fatal("New() returned nil server")
			}
			if server.server == nil {
				t.Error("New() server.server is nil")
			}
			if server.logger != tt.cfg.Logger {
				t.Error("New() logger not set correctly")
			}
			if server.healthChecker != tt.cfg.HealthChecker {
				t.Error("New() healthChecker not set correctly")
			}
		})
	}
}

func TestHealthEndpoints(t *testing.T) {
	logger := zap.NewNop()
	healthChecker := healthprobe.New()

	server := New(&Config{
		Port:          "0",
		Logger:        logger,
		HealthChecker: healthChecker,
	})

	ts := httptest.NewServer(server.server.Handler)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("health request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected /health 200, got %d", resp.StatusCode)
	}

	resp, err = http.Get(ts.URL + "/ready")
	if err != nil {
		t.Fatalf("ready request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("expected /ready 503 before SetReady, got %d", resp.StatusCode)
	}

	healthChecker.SetReady(true)

	resp, err = http.Get(ts.URL + "/ready")
	if err != nil {
		t.Fatalf("ready request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected /ready 200 after SetReady, got %d", resp.StatusCode)
	}
}

func TestLedgerEndpoint(t *testing.T) {
	logger := zap.NewNop()
	led := ledger.New(time.Now().UTC(), logger)
	led.RecordScan()
	led.RecordOpportunity()
	led.ApplyTrade(0.75, 23.75)

	server := New(&Config{
		Port:          "0",
		Logger:        logger,
		HealthChecker: healthprobe.New(),
		Ledger:        led,
	})

	ts := httptest.NewServer(server.server.Handler)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/ledger")
	if err != nil {
		t.Fatalf("ledger request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var snap ledger.Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if snap.Scans != 1 {
		t.Errorf("expected 1 scan, got %d", snap.Scans)
	}
	if snap.Opportunities != 1 {
		t.Errorf("expected 1 opportunity, got %d", snap.Opportunities)
	}
	if snap.SuccessfulTrades != 1 {
		t.Errorf("expected 1 trade, got %d", snap.SuccessfulTrades)
	}
	if snap.DailyProfit != 0.75 {
		t.Errorf("expected daily profit 0.75, got %f", snap.DailyProfit)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	server := New(&Config{
		Port:          "0",
		Logger:        zap.NewNop(),
		HealthChecker: healthprobe.New(),
	})

	ts := httptest.NewServer(server.server.Handler)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatalf("metrics request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected /metrics 200, got %d", resp.StatusCode)
	}
}
