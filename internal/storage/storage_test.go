package storage

import (
	"bytes"
	"context"
	"io"
	"os"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"go.uber.org/zap"

	"github.com/jvaldes/pairbot/internal/arbitrage"
	"github.com/jvaldes/pairbot/internal/execution"
)

func testOpportunity() *arbitrage.Opportunity {
	return arbitrage.NewOpportunity(
		"Will BTC close above 60k in the next 15 minutes?",
		"yes-token-id", "no-token-id",
		0.45, 0.50, 0.98,
	)
}

func testResult(oppID string) *execution.Result {
	return &execution.Result{
		OpportunityID: oppID,
		Success:       true,
		NoOrderID:     "order-no",
		YesOrderID:    "order-yes",
		Profit:        0.75,
		Cost:          23.75,
		ExecutedAt:    time.Now(),
	}
}

func TestConsoleStorage_New(t *testing.T) {
	logger, _ := zap.NewDevelopment()

	storage := NewConsoleStorage(logger)

	if storage == nil {
		t.Fatal("expected non-nil storage")
	}

	if storage.logger == nil {
		t.Error("expected non-nil logger")
	}
}

func TestConsoleStorage_StoreOpportunity(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	storage := NewConsoleStorage(logger)

	opp := testOpportunity()
	ctx := context.Background()

	// Capture stdout
	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	err := storage.StoreOpportunity(ctx, opp)

	// Restore stdout
	w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	io.Copy(&buf, r)
	output := buf.String()

	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}

	if !bytes.Contains([]byte(output), []byte("ARBITRAGE OPPORTUNITY DETECTED")) {
		t.Error("expected output to contain 'ARBITRAGE OPPORTUNITY DETECTED'")
	}

	if !bytes.Contains([]byte(output), []byte(opp.Question)) {
		t.Errorf("expected output to contain the market question %q", opp.Question)
	}
}

func TestConsoleStorage_StoreTrade(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	storage := NewConsoleStorage(logger)

	opp := testOpportunity()
	res := testResult(opp.ID)
	ctx := context.Background()

	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	err := storage.StoreTrade(ctx, opp, res)

	w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	io.Copy(&buf, r)
	output := buf.String()

	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}

	if !bytes.Contains([]byte(output), []byte("TRADE EXECUTED")) {
		t.Error("expected output to contain 'TRADE EXECUTED'")
	}
}

func TestConsoleStorage_Close(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	storage := NewConsoleStorage(logger)

	err := storage.Close()
	if err != nil {
		t.Errorf("expected no error on close, got %v", err)
	}
}

func TestPostgresStorage_StoreOpportunity(t *testing.T) {
	logger, _ := zap.NewDevelopment()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	storage := &PostgresStorage{
		db:     db,
		logger: logger,
	}

	opp := testOpportunity()
	ctx := context.Background()

	mock.ExpectExec("INSERT INTO arbitrage_opportunities").
		WithArgs(
			opp.ID,
			opp.Question,
			opp.YesTokenID,
			opp.NoTokenID,
			sqlmock.AnyArg(), // DetectedAt
			opp.YesPrice,
			opp.NoPrice,
			opp.CombinedPrice,
			opp.Edge,
			opp.Threshold,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = storage.StoreOpportunity(ctx, opp)
	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestPostgresStorage_StoreTrade(t *testing.T) {
	logger, _ := zap.NewDevelopment()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	storage := &PostgresStorage{
		db:     db,
		logger: logger,
	}

	opp := testOpportunity()
	res := testResult(opp.ID)
	ctx := context.Background()

	mock.ExpectExec("INSERT INTO trades").
		WithArgs(
			res.OpportunityID,
			opp.Question,
			sqlmock.AnyArg(), // ExecutedAt
			res.Success,
			res.NoOrderID,
			res.YesOrderID,
			res.FailedLeg,
			res.Cleanup.String(),
			res.Profit,
			res.Cost,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = storage.StoreTrade(ctx, opp, res)
	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestPostgresStorage_StoreOpportunityError(t *testing.T) {
	logger, _ := zap.NewDevelopment()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	storage := &PostgresStorage{
		db:     db,
		logger: logger,
	}

	mock.ExpectExec("INSERT INTO arbitrage_opportunities").
		WillReturnError(io.ErrUnexpectedEOF)

	err = storage.StoreOpportunity(context.Background(), testOpportunity())
	if err == nil {
		t.Error("expected an error from a failed insert")
	}
}
