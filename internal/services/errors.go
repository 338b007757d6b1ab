// internal/services/errors.go
package services

import (
	"errors"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Sentinel errors surfaced to handlers; map them with errors.Is.
var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrOrderNotFound    = errors.New("order not found")
	ErrCityNotFound     = errors.New("city not found")

	// ErrInsufficientStock: the requested quantity change would take product
	// stock negative. Nothing is mutated when this is returned.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrDuplicateActiveOrder: a concurrent request created the open order
	// first. Internal; ActiveOrder retries by re-reading the winner's row.
	ErrDuplicateActiveOrder = errors.New("duplicate active order")

	ErrInvalidCartAction = errors.New("invalid cart action")
	ErrOrderEmpty        = errors.New("order has no items")

	ErrAlreadySubscribed = errors.New("email already subscribed")

	// ErrPaymentSession wraps failures of the external payment processor.
	// Cart state is untouched when it is returned.
	ErrPaymentSession = errors.New("payment session failure")
)

// isUniqueViolation reports whether err is a unique-constraint violation,
// either translated by GORM or raw from the driver (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
