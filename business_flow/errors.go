// Package businessflow contains the reconciliation core and upload use cases
package businessflow

import (
	"errors"
	"fmt"
)

// Business flow error constants
var (
	// Auth errors
	ErrUserNotFound      = errors.New("user not found")
	ErrUserInactive      = errors.New("user is inactive")
	ErrIncorrectPassword = errors.New("incorrect password")
	ErrSessionNotFound   = errors.New("session not found")
	ErrSessionExpired    = errors.New("session has expired")

	// Carrier errors
	ErrCarrierNotFound      = errors.New("carrier not found")
	ErrCarrierInactive      = errors.New("carrier is inactive")
	ErrCarrierNameRequired  = errors.New("carrier name is required")
	ErrCarrierAlreadyExists = errors.New("carrier already exists")

	// Contract errors
	ErrContractNumberRequired    = errors.New("contract number is required")
	ErrDuplicateContractNumber   = errors.New("contract number already exists")
	ErrCounterpartyMismatch      = errors.New("contract counterparty does not match the carrier")
	ErrContractTextEmpty         = errors.New("contract text is empty")
	ErrNoRatesExtracted          = errors.New("no price rates could be extracted from the contract")
	ErrContractValidFromRequired = errors.New("contract validity start is required")

	// Plan errors
	ErrDepotNotFound = errors.New("depot not found")
	ErrRouteNotFound = errors.New("route not found")

	ErrPlanEmpty             = errors.New("plan contains no route rows")
	ErrPlanValidFromRequired = errors.New("plan validity start is required")
	ErrRouteNameRequired     = errors.New("route name is required")

	// Proof errors
	ErrPeriodInvalid = errors.New("period must be in YYYY-MM form")
	ErrProofNotFound = errors.New("proof not found")

	// Invoice errors
	ErrDuplicateInvoiceNumber = errors.New("invoice number already exists")
	ErrInvoiceAmountInvalid   = errors.New("invoice amount must be positive")
	ErrInvoiceNotFound        = errors.New("invoice not found")

	// Reconciliation errors
	ErrNoPriceConfig = errors.New("no active price config covers the period")
)

// MissingSheetError is the structural parse failure raised when a required
// worksheet is absent from an uploaded workbook. It aborts the whole upload;
// nothing is committed.
type MissingSheetError struct {
	SheetName string
}

func (e *MissingSheetError) Error() string {
	return fmt.Sprintf("required sheet %q is missing from the workbook", e.SheetName)
}

// IsMissingSheet checks whether the error chain contains a MissingSheetError
func IsMissingSheet(err error) bool {
	var msErr *MissingSheetError
	return errors.As(err, &msErr)
}

type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func IsUserNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound)
}

func IsUserInactive(err error) bool {
	return errors.Is(err, ErrUserInactive)
}

func IsIncorrectPassword(err error) bool {
	return errors.Is(err, ErrIncorrectPassword)
}

func IsSessionNotFound(err error) bool {
	return errors.Is(err, ErrSessionNotFound)
}

func IsSessionExpired(err error) bool {
	return errors.Is(err, ErrSessionExpired)
}

func IsCarrierNotFound(err error) bool {
	return errors.Is(err, ErrCarrierNotFound)
}

func IsCarrierInactive(err error) bool {
	return errors.Is(err, ErrCarrierInactive)
}

func IsCarrierNameRequired(err error) bool {
	return errors.Is(err, ErrCarrierNameRequired)
}

func IsCarrierAlreadyExists(err error) bool {
	return errors.Is(err, ErrCarrierAlreadyExists)
}

func IsContractNumberRequired(err error) bool {
	return errors.Is(err, ErrContractNumberRequired)
}

func IsDuplicateContractNumber(err error) bool {
	return errors.Is(err, ErrDuplicateContractNumber)
}

func IsCounterpartyMismatch(err error) bool {
	return errors.Is(err, ErrCounterpartyMismatch)
}

func IsContractTextEmpty(err error) bool {
	return errors.Is(err, ErrContractTextEmpty)
}

func IsNoRatesExtracted(err error) bool {
	return errors.Is(err, ErrNoRatesExtracted)
}

func IsPlanEmpty(err error) bool {
	return errors.Is(err, ErrPlanEmpty)
}

func IsPlanValidFromRequired(err error) bool {
	return errors.Is(err, ErrPlanValidFromRequired)
}

func IsPeriodInvalid(err error) bool {
	return errors.Is(err, ErrPeriodInvalid)
}

func IsProofNotFound(err error) bool {
	return errors.Is(err, ErrProofNotFound)
}

func IsDuplicateInvoiceNumber(err error) bool {
	return errors.Is(err, ErrDuplicateInvoiceNumber)
}

func IsInvoiceAmountInvalid(err error) bool {
	return errors.Is(err, ErrInvoiceAmountInvalid)
}

func IsInvoiceNotFound(err error) bool {
	return errors.Is(err, ErrInvoiceNotFound)
}

func IsNoPriceConfig(err error) bool {
	return errors.Is(err, ErrNoPriceConfig)
}
