package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrEventNotFound     = errors.New("event not found")
	ErrCategoryNotFound  = errors.New("category not found")
	ErrPurchaseNotFound  = errors.New("purchase not found")
	ErrInvalidQuantity   = errors.New("invalid ticket quantity")
	ErrInvalidGuestInfo  = errors.New("invalid guest info")
	ErrInvalidInput      = errors.New("invalid input")
	ErrCategoryInUse     = errors.New("category has events")
	ErrEventHasPurchases = errors.New("event has purchases")
	ErrTransactionFailed = errors.New("purchase transaction failed")
)

// InvalidQuantityError reports a rejected ticket quantity together with the
// availability at the time of the check, so the caller can re-render a
// corrected checkout form. Matches ErrInvalidQuantity under errors.Is.
type InvalidQuantityError struct {
	Available int
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("invalid ticket quantity: %d available", e.Available)
}

func (e *InvalidQuantityError) Is(target error) bool {
	return target == ErrInvalidQuantity
}
