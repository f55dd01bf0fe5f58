package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"zuno-agent/internal/app"
	"zuno-agent/internal/core"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Handler holds the ApplicationService and the chi router.
type Handler struct {
	svc    app.ApplicationService
	router chi.Router
}

// NewHandler creates and wires the chi router with all routes.
func NewHandler(svc app.ApplicationService, allowedOrigins string, log zerolog.Logger) http.Handler {
	h := &Handler{svc: svc}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger(log))
	r.Use(Recoverer(log))
	r.Use(CORS(allowedOrigins))
	r.Use(RequestBodyLimit(64 << 10))

	r.Get("/api/health", h.health)
	r.Post("/api/utterances", h.submitUtterance)
	r.Get("/api/transactions", h.listTransactions)
	r.Post("/api/transactions/{id}/settle", h.settleCredit)
	r.Get("/api/inventory", h.listInventory)
	r.Get("/api/financials", h.financials)
	r.Get("/api/export/ledger.csv", h.exportCSV)
	r.Get("/api/export/ledger.xlsx", h.exportXLSX)

	h.router = r
	return r
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

type utteranceRequest struct {
	Text string `json:"text"`
}

// submitUtterance drives the ingestion pipeline. A discarded utterance is a
// normal 200 with accepted=false, not an error: the contract is that
// submission never fails loudly on classification problems.
func (h *Handler) submitUtterance(w http.ResponseWriter, r *http.Request) {
	var req utteranceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, "invalid JSON body", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, r, "text is required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	result, err := h.svc.SubmitUtterance(r.Context(), req.Text)
	if err != nil {
		writeError(w, r, "failed to record transaction", "INGEST_FAILED", http.StatusInternalServerError)
		return
	}
	writeJSON(w, result)
}

func (h *Handler) listTransactions(w http.ResponseWriter, r *http.Request) {
	q := app.TransactionQuery{
		Kind:   r.URL.Query().Get("kind"),
		Search: r.URL.Query().Get("q"),
	}
	result, err := h.svc.ListTransactions(r.Context(), q)
	if err != nil {
		writeError(w, r, "failed to list transactions", "INTERNAL_ERROR", http.StatusInternalServerError)
		return
	}
	writeJSON(w, result)
}

func (h *Handler) settleCredit(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, r, "invalid transaction id", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	if err := h.svc.SettleCredit(r.Context(), id); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			writeError(w, r, "transaction not found", "NOT_FOUND", http.StatusNotFound)
			return
		}
		writeError(w, r, "failed to settle transaction", "INTERNAL_ERROR", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]bool{"settled": true})
}

func (h *Handler) listInventory(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListInventory(r.Context())
	if err != nil {
		writeError(w, r, "failed to list inventory", "INTERNAL_ERROR", http.StatusInternalServerError)
		return
	}
	writeJSON(w, result)
}

func (h *Handler) financials(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.GetFinancialSnapshot(r.Context())
	if err != nil {
		writeError(w, r, "failed to compute financials", "INTERNAL_ERROR", http.StatusInternalServerError)
		return
	}
	writeJSON(w, result.Snapshot)
}

func (h *Handler) exportCSV(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="ledger.csv"`)
	if err := h.svc.ExportLedgerCSV(r.Context(), w); err != nil {
		// Headers are already out; nothing sensible left to send.
		return
	}
}

func (h *Handler) exportXLSX(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="ledger.xlsx"`)
	_ = h.svc.ExportLedgerXLSX(r.Context(), w)
}
