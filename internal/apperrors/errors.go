package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// Store level outcomes of insert/replace.
var (
	ErrDuplicateKey = errors.New("duplicate key")
	ErrRowNotFound  = errors.New("row not found")
)

// Business outcomes. They reject a single operation (or a single batch item)
// without touching the rest of the ledger.
var (
	ErrAlreadyApplied       = errors.New("execed")
	ErrAlreadySettled       = errors.New("order already settled")
	ErrInsufficientBalance  = errors.New("insufficient balance")
	ErrCreatorVerification  = errors.New("the caller is not the creator of the currency")
	ErrBuiltinCurrency      = errors.New("built-in currency can't be released")
	ErrCurrencyMismatch     = errors.New("the exchange is invalid")
	ErrAssetNotFound        = errors.New("the user have not currency")
	ErrResidualUnresolvable = errors.New("failed compute balance")
	ErrAmountOverflow       = errors.New("amount exceeds the ledger range")
)

// Kind classifies an error into the three tiers the engine distinguishes.
type Kind int

const (
	// KindStorageFault aborts the whole invocation. It is the zero value so
	// that any unclassified error is treated as fatal.
	KindStorageFault Kind = iota
	KindInputValidation
	KindBusinessRejection
)

func (k Kind) String() string {
	switch k {
	case KindInputValidation:
		return "INPUT_VALIDATION"
	case KindBusinessRejection:
		return "BUSINESS_REJECTION"
	default:
		return "STORAGE_FAULT"
	}
}

// AppError carries a Kind, an HTTP-ish code and the wrapped cause.
type AppError struct {
	Kind    Kind
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	if e.Message == "" {
		return e.Err.Error()
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError builds an AppError whose kind is derived from the code:
// 4xx are input validation, 422 is a business rejection, anything else is a
// storage fault.
func NewAppError(code int, message string, err error) *AppError {
	kind := KindStorageFault
	switch {
	case code == http.StatusUnprocessableEntity:
		kind = KindBusinessRejection
	case code >= 400 && code < 500:
		kind = KindInputValidation
	}
	return &AppError{Kind: kind, Code: code, Message: message, Err: err}
}

// Validation reports malformed input. Nothing has been mutated.
func Validation(format string, args ...any) error {
	return &AppError{
		Kind:    KindInputValidation,
		Code:    http.StatusBadRequest,
		Message: fmt.Sprintf(format, args...),
		Err:     ErrValidation,
	}
}

// Rejection reports a business outcome, wrapping one of the sentinels above.
func Rejection(sentinel error, format string, args ...any) error {
	return &AppError{
		Kind:    KindBusinessRejection,
		Code:    http.StatusUnprocessableEntity,
		Message: fmt.Sprintf(format, args...),
		Err:     sentinel,
	}
}

// Fault reports a storage failure. It always aborts the invocation.
func Fault(message string, err error) error {
	return &AppError{
		Kind:    KindStorageFault,
		Code:    http.StatusInternalServerError,
		Message: message,
		Err:     err,
	}
}

// KindOf returns the tier of err. Errors that were never classified are
// storage faults.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindStorageFault
}

// IsRejection reports whether err is a business rejection.
func IsRejection(err error) bool {
	return err != nil && KindOf(err) == KindBusinessRejection
}
