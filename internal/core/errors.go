package core

import "errors"

// Domain errors. These are the only failure kinds the ledger produces;
// callers discriminate with errors.Is, never by parsing messages.
var (
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrAccountInactive     = errors.New("account is inactive")
	ErrInsufficientFunds   = errors.New("insufficient funds")
	ErrCreditLimitExceeded = errors.New("credit limit exceeded")
	ErrMissingDestination  = errors.New("transfer requires a destination account")
	ErrAlreadyReversed     = errors.New("transaction already reversed")
	ErrInvalidKind         = errors.New("invalid account kind")
	ErrNotFound            = errors.New("not found")
	ErrDuplicateAccount    = errors.New("account number already in use")
	ErrEmptyDescription    = errors.New("empty description")
)
