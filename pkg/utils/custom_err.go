package utils

import "errors"

var (
	ErrListingNotFound    = errors.New("listing not found")
	ErrBookingNotFound    = errors.New("booking not found")
	ErrAccountNotFound    = errors.New("account not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidPage        = errors.New("invalid page parameter")
	ErrInvalidPageSize    = errors.New("invalid page size parameter")
	ErrDatabaseError      = errors.New("database error")
	ErrPaymentProvider    = errors.New("payment provider error")

	// Planner pipeline failures. All of them are recoverable: the
	// itinerary service converts them into a fallback plan and only
	// surfaces the message as a diagnostic annotation.
	ErrPlannerMissingKey = errors.New("planner api key is not configured")
	ErrPlannerTransport  = errors.New("planner transport error")
	ErrPlannerIncomplete = errors.New("planner returned incomplete output")
	ErrPlannerParse      = errors.New("planner returned unparseable output")
	ErrReconcileFailed   = errors.New("itinerary reconciliation failed")
)
