package web_test

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"zuno-agent/internal/adapters/web"
	"zuno-agent/internal/app"
	"zuno-agent/internal/core"
	"zuno-agent/internal/seed"
	"zuno-agent/internal/store/memory"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// scriptedClassifier maps exact utterances to candidates; anything else is
// treated as non-transactional.
type scriptedClassifier map[string]*core.TransactionCandidate

func (s scriptedClassifier) Classify(_ context.Context, text string) (*core.TransactionCandidate, error) {
	return s[text], nil
}

func newTestServer(t *testing.T, classifier core.IntentClassifier) (*httptest.Server, core.LedgerStore) {
	t.Helper()
	ledger := memory.NewLedger()
	inventory := memory.NewInventory()
	for _, it := range seed.Catalog() {
		if err := inventory.Put(context.Background(), it); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	ingestor := core.NewIngestor(classifier, ledger, inventory, zerolog.Nop())
	finance := core.NewFinanceEngine(ledger, inventory, core.FixedGrowth{Rate: decimal.NewFromFloat(12.5)})
	svc := app.NewAppService(ingestor, finance, ledger, inventory)

	srv := httptest.NewServer(web.NewHandler(svc, "", zerolog.Nop()))
	t.Cleanup(srv.Close)
	return srv, ledger
}

func postUtterance(t *testing.T, srv *httptest.Server, text string) app.SubmitResult {
	t.Helper()
	body := strings.NewReader(`{"text": ` + jsonString(text) + `}`)
	resp, err := http.Post(srv.URL+"/api/utterances", "application/json", body)
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var result app.SubmitResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return result
}

func jsonString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func TestSubmitUtterance(t *testing.T) {
	classifier := scriptedClassifier{
		"do kilo chini bechi 80 rupaye mein": {
			Item: "Chini (Sugar)", Quantity: 2, Total: decimal.NewFromInt(80), Mode: core.PayCash,
		},
	}
	srv, _ := newTestServer(t, classifier)

	accepted := postUtterance(t, srv, "do kilo chini bechi 80 rupaye mein")
	if !accepted.Accepted || accepted.Record == nil {
		t.Fatalf("expected accepted result, got %+v", accepted)
	}
	if !accepted.Record.UnitPrice.Equal(decimal.NewFromInt(40)) {
		t.Errorf("expected derived unit price 40, got %s", accepted.Record.UnitPrice)
	}

	rejected := postUtterance(t, srv, "mausam kaisa hai")
	if rejected.Accepted {
		t.Error("small talk must not be accepted")
	}
}

func TestSubmitUtterance_BadRequest(t *testing.T) {
	srv, _ := newTestServer(t, scriptedClassifier{})

	resp, err := http.Post(srv.URL+"/api/utterances", "application/json", strings.NewReader(`{"text": "  "}`))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for blank text, got %d", resp.StatusCode)
	}
}

func TestListTransactionsAndFinancials(t *testing.T) {
	classifier := scriptedClassifier{
		"sale": {Item: "Chini (Sugar)", Quantity: 2, UnitPrice: decimal.NewFromInt(40), Mode: core.PayCash},
		"udhaar": {
			Item: "Aata (Flour)", Quantity: 5, UnitPrice: decimal.NewFromInt(35),
			Mode: core.PayCredit, Counterparty: "Ramesh Bhai",
		},
	}
	srv, _ := newTestServer(t, classifier)
	postUtterance(t, srv, "sale")
	postUtterance(t, srv, "udhaar")

	resp, err := http.Get(srv.URL + "/api/transactions?kind=Credit")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	var list app.TransactionListResult
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(list.Transactions) != 1 || list.Transactions[0].Kind != core.Credit {
		t.Errorf("kind filter failed: %+v", list.Transactions)
	}

	finResp, err := http.Get(srv.URL + "/api/financials")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer finResp.Body.Close()
	var snap core.FinancialSnapshot
	if err := json.NewDecoder(finResp.Body).Decode(&snap); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !snap.TotalRevenue.Equal(decimal.NewFromInt(80)) {
		t.Errorf("expected revenue 80, got %s", snap.TotalRevenue)
	}
	if !snap.TrappedCapital.Equal(decimal.NewFromInt(175)) {
		t.Errorf("expected trapped capital 175, got %s", snap.TrappedCapital)
	}
}

func TestSettleCredit(t *testing.T) {
	classifier := scriptedClassifier{
		"udhaar": {Item: "Aata (Flour)", Quantity: 5, UnitPrice: decimal.NewFromInt(35), Mode: core.PayCredit},
	}
	srv, _ := newTestServer(t, classifier)
	postUtterance(t, srv, "udhaar")

	resp, err := http.Post(srv.URL+"/api/transactions/1/settle", "application/json", nil)
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}

	missing, err := http.Post(srv.URL+"/api/transactions/99/settle", "application/json", nil)
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	missing.Body.Close()
	if missing.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 for unknown id, got %d", missing.StatusCode)
	}
}

func TestInventoryEndpoint(t *testing.T) {
	srv, _ := newTestServer(t, scriptedClassifier{})

	resp, err := http.Get(srv.URL + "/api/inventory")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	var inv app.InventoryResult
	if err := json.NewDecoder(resp.Body).Decode(&inv); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(inv.Items) != len(seed.Catalog()) {
		t.Fatalf("expected %d items, got %d", len(seed.Catalog()), len(inv.Items))
	}
	for _, it := range inv.Items {
		if it.Item == "Doodh (Milk)" && !it.LowStock {
			t.Error("milk at 5 with threshold 10 must flag low stock")
		}
	}
}

func TestExportCSV(t *testing.T) {
	classifier := scriptedClassifier{
		"sale": {Item: "Chini (Sugar)", Quantity: 2, UnitPrice: decimal.NewFromInt(40), Mode: core.PayCash},
	}
	srv, _ := newTestServer(t, classifier)
	postUtterance(t, srv, "sale")

	resp, err := http.Get(srv.URL + "/api/export/ledger.csv")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if ct := resp.Header.Get("Content-Type"); ct != "text/csv" {
		t.Errorf("expected text/csv, got %s", ct)
	}

	rows, err := csv.NewReader(resp.Body).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(rows) != 2 {
		t.Errorf("expected header + 1 record, got %d rows", len(rows))
	}
}
