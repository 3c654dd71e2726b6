package ledger

import "errors"

var (
	// ErrUnknownLedgerType indicates an unsupported report mode.
	ErrUnknownLedgerType = errors.New("ledger: unknown ledger type")
	// ErrBadDate indicates a malformed date in the request.
	ErrBadDate = errors.New("ledger: malformed date")
	// ErrBadConfiguration indicates the report configuration cannot be used.
	ErrBadConfiguration = errors.New("ledger: invalid report configuration")
)
