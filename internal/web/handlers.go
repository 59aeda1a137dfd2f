package web

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/reclaimhq/dormant/internal/account"
)

// handleListAccounts returns all accounts, optionally narrowed by the
// "search" query parameter.
func (s *Server) handleListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := s.service.Search(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, accounts)
}

// handleGetAccount returns a single account by id.
func (s *Server) handleGetAccount(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondBadRequest(w, r, "invalid account id")
		return
	}

	acc, err := s.service.GetAccount(r.Context(), id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, acc)
}

// handleBankSummaries returns per-bank aggregates.
func (s *Server) handleBankSummaries(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.service.BankSummaries(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summaries)
}

// handleUpdateAccount applies a partial update to one account.
func (s *Server) handleUpdateAccount(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondBadRequest(w, r, "invalid account id")
		return
	}

	var payload account.UpdatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.respondBadRequest(w, r, "invalid request body")
		return
	}

	updated, err := s.service.UpdateAccount(r.Context(), id, payload)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// bulkUpdateRequest is the body of PUT /api/accounts/bulk.
type bulkUpdateRequest struct {
	AccountIDs []uuid.UUID           `json:"accountIds"`
	UpdateData account.UpdatePayload `json:"updateData"`
}

// bulkUpdateResponse reports how many accounts were actually updated,
// which may be fewer than requested when some ids did not resolve.
type bulkUpdateResponse struct {
	UpdatedCount int `json:"updatedCount"`
}

// handleBulkUpdate applies one payload across many account ids.
func (s *Server) handleBulkUpdate(w http.ResponseWriter, r *http.Request) {
	var req bulkUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondBadRequest(w, r, "invalid request body")
		return
	}
	if len(req.AccountIDs) == 0 {
		s.respondBadRequest(w, r, "accountIds cannot be empty")
		return
	}

	count, err := s.service.BulkUpdate(r.Context(), req.AccountIDs, req.UpdateData)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, bulkUpdateResponse{UpdatedCount: count})
}

// createAccountRequest is the body of POST /api/accounts.
type createAccountRequest struct {
	AccountNumber string          `json:"accountNumber"`
	BankName      string          `json:"bankName"`
	Balance       decimal.Decimal `json:"balance"`
	CustomerName  string          `json:"customerName"`
	CustomerEmail string          `json:"customerEmail"`
	Comments      string          `json:"comments"`
}

// handleCreateAccount persists a single new record.
func (s *Server) handleCreateAccount(w http.ResponseWriter, r *http.Request) {
	var req createAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondBadRequest(w, r, "invalid request body")
		return
	}

	created, err := s.service.CreateAccount(r.Context(), &account.Account{
		AccountNumber: req.AccountNumber,
		BankName:      req.BankName,
		Balance:       req.Balance,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		Comments:      req.Comments,
	})
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}
