package domain

import "errors"

var (
	// Verification failures. All of them leave state untouched.
	ErrMissingData         = errors.New("payment confirmation data is missing")
	ErrMalformedPayload    = errors.New("payment confirmation payload is malformed")
	ErrMissingSignature    = errors.New("payment confirmation signature is missing")
	ErrTransactionNotFound = errors.New("payment transaction not found")
	ErrInvalidSignature    = errors.New("payment signature verification failed")
	ErrAmountMismatch      = errors.New("confirmation amount does not match transaction amount")
	ErrPaymentIncomplete   = errors.New("gateway reports payment not successful")

	// Materialization failures.
	ErrTransactionNotVerified = errors.New("transaction must be verified before materialization")
	// ErrOrderInsertFailed means the processed flag is set but no order was
	// committed. Fatal: requires manual reconciliation, never auto-retried.
	ErrOrderInsertFailed = errors.New("order insert failed after processed flag was set")
	ErrOrderNotReady     = errors.New("order is being materialized by a concurrent request")

	// Webhook / state machine failures.
	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidStatus     = errors.New("requested status is not allowed")
	ErrInvalidTransition = errors.New("order status transition is not permitted")
)
