package apperrors

import (
	"fmt"
	"net/http"
)

// Domain error factories for the marketplace core. These map the error
// taxonomy onto HTTP codes once, so handlers never branch on error kind.

// ErrNotFound converts a repository miss (e.g. gorm.ErrRecordNotFound)
// into a 404.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

// ErrQuotaExceeded signals that the subscriber has no cases remaining.
func ErrQuotaExceeded() *AppError {
	return New(CodeQuotaExceeded, "entitlement", "Case quota exceeded for current plan", http.StatusBadRequest)
}

// ErrInvalidPlan signals a plan name outside the offered set.
func ErrInvalidPlan(plan string) *AppError {
	return New(CodeInvalidPlan, "entitlement", fmt.Sprintf("Unknown subscription plan: %s", plan), http.StatusBadRequest)
}

// ErrInvalidRole signals a role value outside the closed role set.
func ErrInvalidRole(role string) *AppError {
	return New(CodeInvalidRole, "user", fmt.Sprintf("Unknown role: %s", role), http.StatusBadRequest)
}

// ErrNoRecipient signals a message posted to a case with no assigned
// investigator. The message is rejected, not queued.
func ErrNoRecipient() *AppError {
	return New(CodeNoRecipient, "case", "Case has no assigned investigator to receive the message", http.StatusBadRequest)
}

// ErrNoInvestigator signals a review submitted for a case that was never
// assigned.
func ErrNoInvestigator() *AppError {
	return New(CodeNoInvestigator, "review", "Case has no assigned investigator to review", http.StatusBadRequest)
}

// ErrInvalidTransition signals a case status change the lifecycle forbids.
func ErrInvalidTransition(from, to string) *AppError {
	return New(CodeInvalidStatus, "case", fmt.Sprintf("Cannot transition case from %s to %s", from, to), http.StatusBadRequest)
}

func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}
