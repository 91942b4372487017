package domain

import "errors"

var (
	ErrInvalidTransactionType = errors.New("invalid transaction type")
	ErrInvalidAmount          = errors.New("transaction amount must be greater than zero")
	ErrInvalidCurrency        = errors.New("invalid currency symbol")
	ErrInsufficientFunds      = errors.New("insufficient cryptocurrency balance")
	ErrAccountNotFound        = errors.New("account not found")
	ErrAccountExists          = errors.New("account already exists")
	ErrTransactionNotFound    = errors.New("transaction not found")
	ErrForbidden              = errors.New("transaction belongs to another account")
)
