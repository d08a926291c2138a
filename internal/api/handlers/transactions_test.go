package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/awicaksono/Invest-Ledger-Backend/internal/api/request"
	"github.com/awicaksono/Invest-Ledger-Backend/internal/model"
	"github.com/awicaksono/Invest-Ledger-Backend/internal/testutil"
	"github.com/shopspring/decimal"
)

func TestTransactionHandler_AllTransactions(t *testing.T) {
	setupHandler := func(t *testing.T) (*TransactionHandler, *sql.DB) {
		t.Helper()
		db := testutil.SetupTestDB(t)
		ts := testutil.NewTestTransactionService(t, db)
		return NewTransactionHandler(ts), db
	}

	t.Run("returns empty array when no transactions exist", func(t *testing.T) {
		handler, _ := setupHandler(t)

		req := httptest.NewRequest(http.MethodGet, "/api/transaction", nil)
		w := httptest.NewRecorder()

		handler.AllTransactions(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response []model.Transaction
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if response == nil {
			t.Error("Expected non-nil array, got nil")
		}

		if len(response) != 0 {
			t.Errorf("Expected empty array, got %d transactions", len(response))
		}
	})

	t.Run("returns all transactions successfully", func(t *testing.T) {
		handler, db := setupHandler(t)

		platform := testutil.NewPlatform().Build(t, db)
		asset := testutil.NewAsset().Build(t, db)
		portfolio := testutil.NewPortfolio().Build(t, db)
		holding := testutil.NewHolding(asset.ID, portfolio.ID).Build(t, db)

		tx1 := testutil.NewTransaction(platform.ID, asset.ID, portfolio.ID, holding.ID).Build(t, db)
		tx2 := testutil.NewTransaction(platform.ID, asset.ID, portfolio.ID, holding.ID).Build(t, db)

		req := httptest.NewRequest(http.MethodGet, "/api/transaction", nil)
		w := httptest.NewRecorder()

		handler.AllTransactions(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response []model.Transaction
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if len(response) != 2 {
			t.Errorf("Expected 2 transactions, got %d", len(response))
		}

		foundTransactions := make(map[string]bool)
		for _, tx := range response {
			foundTransactions[tx.ID] = true
		}

		if !foundTransactions[tx1.ID] {
			t.Error("Expected to find tx1 in response")
		}
		if !foundTransactions[tx2.ID] {
			t.Error("Expected to find tx2 in response")
		}
	})

	t.Run("returns 500 on database error", func(t *testing.T) {
		handler, db := setupHandler(t)
		db.Close()

		req := httptest.NewRequest(http.MethodGet, "/api/transaction", nil)
		w := httptest.NewRecorder()

		handler.AllTransactions(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Errorf("Expected 500, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestTransactionHandler_CreateBuy(t *testing.T) {
	setupHandler := func(t *testing.T) (*TransactionHandler, *sql.DB) {
		t.Helper()
		db := testutil.SetupTestDB(t)
		ts := testutil.NewTestTransactionService(t, db)
		return NewTransactionHandler(ts), db
	}

	t.Run("records a buy and returns 201", func(t *testing.T) {
		handler, db := setupHandler(t)

		platform := testutil.NewPlatform().Build(t, db)
		asset := testutil.NewAsset().Build(t, db)
		portfolio := testutil.NewPortfolio().Build(t, db)

		body := request.CreateBuyRequest{
			PlatformID:  platform.ID,
			AssetID:     asset.ID,
			PortfolioID: portfolio.ID,
			Quantity:    decimal.NewFromInt(10),
			Price:       decimal.NewFromInt(1000),
			Date:        "2025-01-15",
			Currency:    "IDR",
		}
		req := testutil.NewRequestWithJSON(t, http.MethodPost, "/api/transaction/buy", body)
		w := httptest.NewRecorder()

		handler.CreateBuy(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
		}

		var response model.Transaction
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if response.Type != model.TransactionTypeBuy {
			t.Errorf("Expected type buy, got %s", response.Type)
		}
		if !response.Quantity.Equal(decimal.NewFromInt(10)) {
			t.Errorf("Expected quantity 10, got %s", response.Quantity)
		}
		// Absent exchange rate defaults to 1.
		if !response.ExchangeRate.Equal(decimal.NewFromInt(1)) {
			t.Errorf("Expected exchange rate 1, got %s", response.ExchangeRate)
		}
	})

	t.Run("returns 400 on validation failure", func(t *testing.T) {
		handler, db := setupHandler(t)

		platform := testutil.NewPlatform().Build(t, db)
		asset := testutil.NewAsset().Build(t, db)
		portfolio := testutil.NewPortfolio().Build(t, db)

		body := request.CreateBuyRequest{
			PlatformID:  platform.ID,
			AssetID:     asset.ID,
			PortfolioID: portfolio.ID,
			Quantity:    decimal.Zero,
			Price:       decimal.NewFromInt(1000),
			Date:        "2025-01-15",
			Currency:    "IDR",
		}
		req := testutil.NewRequestWithJSON(t, http.MethodPost, "/api/transaction/buy", body)
		w := httptest.NewRecorder()

		handler.CreateBuy(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 400 on malformed body", func(t *testing.T) {
		handler, _ := setupHandler(t)

		req := testutil.NewRequestWithBody(http.MethodPost, "/api/transaction/buy", strings.NewReader("{not json"))
		w := httptest.NewRecorder()

		handler.CreateBuy(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 404 when the portfolio does not exist", func(t *testing.T) {
		handler, db := setupHandler(t)

		platform := testutil.NewPlatform().Build(t, db)
		asset := testutil.NewAsset().Build(t, db)

		body := request.CreateBuyRequest{
			PlatformID:  platform.ID,
			AssetID:     asset.ID,
			PortfolioID: testutil.MakeID(),
			Quantity:    decimal.NewFromInt(10),
			Price:       decimal.NewFromInt(1000),
			Date:        "2025-01-15",
			Currency:    "IDR",
		}
		req := testutil.NewRequestWithJSON(t, http.MethodPost, "/api/transaction/buy", body)
		w := httptest.NewRecorder()

		handler.CreateBuy(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestTransactionHandler_CreateSell(t *testing.T) {
	t.Run("returns 400 when quantity exceeds the platform position", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		ts := testutil.NewTestTransactionService(t, db)
		handler := NewTransactionHandler(ts)

		platform := testutil.NewPlatform().Build(t, db)
		asset := testutil.NewAsset().Build(t, db)
		portfolio := testutil.NewPortfolio().Build(t, db)

		buyBody := request.CreateBuyRequest{
			PlatformID:  platform.ID,
			AssetID:     asset.ID,
			PortfolioID: portfolio.ID,
			Quantity:    decimal.NewFromInt(10),
			Price:       decimal.NewFromInt(1000),
			Date:        "2025-01-15",
			Currency:    "IDR",
		}
		buyReq := testutil.NewRequestWithJSON(t, http.MethodPost, "/api/transaction/buy", buyBody)
		buyRec := httptest.NewRecorder()
		handler.CreateBuy(buyRec, buyReq)
		if buyRec.Code != http.StatusCreated {
			t.Fatalf("buy setup failed: %d: %s", buyRec.Code, buyRec.Body.String())
		}

		var buy model.Transaction
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(buyRec.Body).Decode(&buy)

		sellBody := request.CreateSellRequest{
			PlatformID: platform.ID,
			HoldingID:  buy.HoldingID,
			Quantity:   decimal.NewFromInt(99),
			Price:      decimal.NewFromInt(1000),
			Date:       "2025-02-01",
			Currency:   "IDR",
		}
		req := testutil.NewRequestWithJSON(t, http.MethodPost, "/api/transaction/sell", sellBody)
		w := httptest.NewRecorder()

		handler.CreateSell(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestTransactionHandler_DeleteTransaction(t *testing.T) {
	t.Run("returns 404 for unknown transaction", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		ts := testutil.NewTestTransactionService(t, db)
		handler := NewTransactionHandler(ts)

		req := testutil.NewRequestWithURLParams(
			http.MethodDelete,
			"/api/transaction/"+testutil.MakeID(),
			map[string]string{"uuid": testutil.MakeID()},
		)
		w := httptest.NewRecorder()

		handler.DeleteTransaction(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})
}
