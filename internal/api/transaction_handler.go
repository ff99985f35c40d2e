package api

import (
	"net/http"
	"strconv"

	"github.com/micropay/micropay-api/internal/api/shared"
	"github.com/micropay/micropay-api/internal/service"
)

// TransactionHandler handles the transfer endpoints.
type TransactionHandler struct {
	transfers service.TransferService
}

// NewTransactionHandler creates a new TransactionHandler with the given
// dependencies.
func NewTransactionHandler(transfers service.TransferService) *TransactionHandler {
	return &TransactionHandler{transfers: transfers}
}

// Create handles POST /transactions.
func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req TransferRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	txn, err := h.transfers.Transfer(r.Context(), req.FromEmail, req.ToEmail, req.Amount)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, txn)
}

// List handles GET /transactions. An optional limit query parameter caps
// the result; the store default applies otherwise.
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseLimit(r)

	views, err := h.transfers.ListTransactions(r.Context(), limit)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, views)
}

// parseLimit reads the limit query parameter. Zero means "store default";
// garbage is treated the same way rather than erroring a read path.
func parseLimit(r *http.Request) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0
	}
	return limit
}
