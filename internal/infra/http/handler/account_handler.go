package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Juadebfm/payment/internal/domain"
	"github.com/Juadebfm/payment/internal/infra/http/middleware"
	"github.com/Juadebfm/payment/internal/usecase"
	"github.com/rs/zerolog/log"
)

type AccountHandler struct {
	createUseCase *usecase.CreateAccountUseCase
	getUseCase    *usecase.GetAccountUseCase
}

func NewAccountHandler(create *usecase.CreateAccountUseCase, get *usecase.GetAccountUseCase) *AccountHandler {
	return &AccountHandler{
		createUseCase: create,
		getUseCase:    get,
	}
}

type CreateAccountRequest struct {
	Balance  float64            `json:"balance"`
	Holdings map[string]float64 `json:"holdings"`
}

type AccountResponse struct {
	ID       string             `json:"id"`
	Balance  float64            `json:"balance"`
	Holdings map[string]float64 `json:"holdings"`
}

// Create provisions a wallet account for the authenticated caller.
func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := middleware.UserID(ctx)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Missing authenticated identity")
		return
	}

	var req CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid payload")
		return
	}

	output, err := h.createUseCase.Execute(ctx, usecase.CreateAccountInput{
		ID:       userID,
		Balance:  req.Balance,
		Holdings: req.Holdings,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAccountExists):
			respondError(w, http.StatusConflict, "Account already exists")
		case errors.Is(err, domain.ErrInvalidAmount):
			respondError(w, http.StatusBadRequest, "Holdings must be non-negative")
		case errors.Is(err, domain.ErrInvalidCurrency):
			respondError(w, http.StatusBadRequest, "Invalid currency symbol")
		default:
			log.Error().Err(err).Msg("failed to create account")
			respondError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	respondJSON(w, http.StatusCreated, AccountResponse{
		ID:       output.ID,
		Balance:  output.Balance,
		Holdings: output.Holdings,
	})
}

// Me returns the caller's account with its transaction history resolved.
func (h *AccountHandler) Me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := middleware.UserID(ctx)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Missing authenticated identity")
		return
	}

	output, err := h.getUseCase.Execute(ctx, userID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAccountNotFound):
			respondError(w, http.StatusNotFound, "Account not found")
		default:
			log.Error().Err(err).Msg("failed to get account")
			respondError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	transactions := make([]TransactionResponse, 0, len(output.Transactions))
	for _, transaction := range output.Transactions {
		transactions = append(transactions, toTransactionResponse(transaction))
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"account": AccountResponse{
			ID:       output.ID,
			Balance:  output.Balance,
			Holdings: output.Holdings,
		},
		"transactions": transactions,
	})
}
