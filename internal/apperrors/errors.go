package apperrors

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInternal indicates an unexpected failure in a collaborator or the database.
var ErrInternal = errors.New("internal error")

// Structural errors: caller-fixable input problems.
var (
	ErrMissingAccount          = errors.New("entry has no resolvable account")
	ErrUnsupportedAccountModel = errors.New("unsupported account model")
	ErrTooFewEntries           = errors.New("voucher requires at least two entries")
	ErrInvalidEntrySplit       = errors.New("entry must have exactly one of debit or credit greater than zero")
)

// Business-rule errors.
var (
	ErrUnbalanced          = errors.New("voucher entries do not balance")
	ErrInvalidExchangeRate = errors.New("exchange rate must be greater than zero")
	ErrVoucherLocked       = errors.New("voucher can no longer be edited")
	ErrInvalidTransition   = errors.New("invalid voucher status transition")
)

// Conflict errors. The caller may retry the whole operation once.
var ErrConcurrentModification = errors.New("voucher was modified concurrently")

// ErrAccountNotFound is propagated from the account master lookups.
var ErrAccountNotFound = errors.New("account not found")

// Kind groups errors by how a caller is expected to react to them.
type Kind string

const (
	KindStructural   Kind = "STRUCTURAL"
	KindBusinessRule Kind = "BUSINESS_RULE"
	KindConflict     Kind = "CONFLICT"
	KindNotFound     Kind = "NOT_FOUND"
	KindInternal     Kind = "INTERNAL"
)

// KindOf classifies err. Unknown errors are internal.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrConcurrentModification), errors.Is(err, ErrDuplicate):
		return KindConflict
	case errors.Is(err, ErrAccountNotFound), errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrUnbalanced),
		errors.Is(err, ErrInvalidExchangeRate),
		errors.Is(err, ErrVoucherLocked),
		errors.Is(err, ErrInvalidTransition):
		return KindBusinessRule
	case errors.Is(err, ErrMissingAccount),
		errors.Is(err, ErrUnsupportedAccountModel),
		errors.Is(err, ErrTooFewEntries),
		errors.Is(err, ErrInvalidEntrySplit),
		errors.Is(err, ErrValidation):
		return KindStructural
	}
	return KindInternal
}

// BalanceError reports the totals of an unbalanced entry list.
type BalanceError struct {
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
}

func (e *BalanceError) Error() string {
	return fmt.Sprintf("%s: debits sum is %s and credits sum is %s",
		ErrUnbalanced.Error(), e.TotalDebit.String(), e.TotalCredit.String())
}

func (e *BalanceError) Unwrap() error { return ErrUnbalanced }

// EntryError pins a structural failure to an entry position.
type EntryError struct {
	Index int
	Err   error
}

func (e *EntryError) Error() string {
	return fmt.Sprintf("entry %d: %s", e.Index, e.Err.Error())
}

func (e *EntryError) Unwrap() error { return e.Err }

// TransitionError is returned when a lifecycle move is not allowed.
type TransitionError struct {
	From string
	To   string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition.Error(), e.From, e.To)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }

// AppError carries an HTTP-ish status code alongside a wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }
