package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/Juadebfm/payment/internal/domain"
	"github.com/Juadebfm/payment/internal/infra/http/middleware"
	"github.com/Juadebfm/payment/internal/usecase"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// TransactionHandler exposes the ledger operations over HTTP.
type TransactionHandler struct {
	recordUseCase *usecase.RecordTransactionUseCase
	listUseCase   *usecase.ListTransactionsUseCase
	getUseCase    *usecase.GetTransactionUseCase
}

func NewTransactionHandler(
	record *usecase.RecordTransactionUseCase,
	list *usecase.ListTransactionsUseCase,
	get *usecase.GetTransactionUseCase,
) *TransactionHandler {
	return &TransactionHandler{
		recordUseCase: record,
		listUseCase:   list,
		getUseCase:    get,
	}
}

// DTOs. JSON tags follow the API's snake_case convention; the wire shape is
// decoupled from the domain structs.
type RecordTransactionRequest struct {
	Type           string  `json:"type"`
	Amount         float64 `json:"amount"`
	Cryptocurrency string  `json:"cryptocurrency"`
	WalletAddress  string  `json:"wallet_address"`
}

type TransactionResponse struct {
	ID             string    `json:"id"`
	Type           string    `json:"type"`
	Amount         float64   `json:"amount"`
	Cryptocurrency string    `json:"cryptocurrency"`
	WalletAddress  string    `json:"wallet_address"`
	Timestamp      time.Time `json:"timestamp"`
}

type RecordTransactionResponse struct {
	Transaction TransactionResponse `json:"transaction"`
	Balance     float64             `json:"balance"`
	Holdings    map[string]float64  `json:"holdings"`
}

// Create records one sent/received movement against the caller's wallet.
func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := middleware.UserID(ctx)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Missing authenticated identity")
		return
	}

	var req RecordTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid payload")
		return
	}

	output, err := h.recordUseCase.Execute(ctx, usecase.RecordTransactionInput{
		UserID:         userID,
		Type:           domain.TransactionType(req.Type),
		Amount:         req.Amount,
		Cryptocurrency: req.Cryptocurrency,
		WalletAddress:  req.WalletAddress,
	})
	if err != nil {
		// Domain error -> HTTP status mapping.
		switch {
		case errors.Is(err, domain.ErrInvalidTransactionType),
			errors.Is(err, domain.ErrInvalidAmount),
			errors.Is(err, domain.ErrInvalidCurrency):
			respondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, domain.ErrAccountNotFound):
			respondError(w, http.StatusNotFound, "Account not found")
		case errors.Is(err, domain.ErrInsufficientFunds):
			respondError(w, http.StatusUnprocessableEntity, "Insufficient cryptocurrency balance")
		default:
			// Store failure or bug; never coerced into a business error.
			log.Error().Err(err).Msg("failed to record transaction")
			respondError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	respondJSON(w, http.StatusCreated, RecordTransactionResponse{
		Transaction: toTransactionResponse(output.Transaction),
		Balance:     output.Balance,
		Holdings:    output.Holdings,
	})
}

// List returns the caller's transactions, most recent first.
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := middleware.UserID(ctx)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Missing authenticated identity")
		return
	}

	transactions, err := h.listUseCase.Execute(ctx, userID)
	if err != nil {
		log.Error().Err(err).Msg("failed to list transactions")
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	responses := make([]TransactionResponse, 0, len(transactions))
	for _, transaction := range transactions {
		responses = append(responses, toTransactionResponse(transaction))
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"transactions": responses})
}

// Get fetches a single transaction, enforcing ownership.
func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := middleware.UserID(ctx)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Missing authenticated identity")
		return
	}

	transaction, err := h.getUseCase.Execute(ctx, userID, chi.URLParam(r, "id"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTransactionNotFound):
			respondError(w, http.StatusNotFound, "Transaction not found")
		case errors.Is(err, domain.ErrForbidden):
			respondError(w, http.StatusForbidden, "Unauthorized to view this transaction")
		default:
			log.Error().Err(err).Msg("failed to get transaction")
			respondError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"transaction": toTransactionResponse(*transaction),
	})
}

func toTransactionResponse(t domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:             t.ID,
		Type:           string(t.Type),
		Amount:         t.Amount,
		Cryptocurrency: t.Cryptocurrency,
		WalletAddress:  t.WalletAddress,
		Timestamp:      t.Timestamp,
	}
}

// JSON response helpers shared by the handlers in this package.
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Msg("failed to encode JSON response")
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
