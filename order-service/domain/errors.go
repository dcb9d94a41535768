package domain

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrOrderNotFound signals a lookup for an order that does not exist
	ErrOrderNotFound = errors.New("order not found")

	// ErrStaleOrder signals a lost version compare-and-swap: another
	// writer updated or removed the order concurrently.
	ErrStaleOrder = errors.New("order was modified concurrently")

	// ErrReservationNotConfirmed signals that the inventory collaborator
	// answered the reserve call without the confirmation status. Terminal
	// for placement; no order state exists, so nothing to compensate.
	ErrReservationNotConfirmed = errors.New("inventory reservation not confirmed")

	// ErrRollbackNotConfirmed signals an unconfirmed inventory rollback;
	// the compensation loop keeps the order and retries the next pass.
	ErrRollbackNotConfirmed = errors.New("inventory rollback not confirmed")
)

// ItemsNotInStockError carries the SKUs that failed the stock check.
// Not automatically retryable; the caller resubmits with adjusted
// quantities.
type ItemsNotInStockError struct {
	Unavailable []string
}

func (e *ItemsNotInStockError) Error() string {
	return fmt.Sprintf("items not in stock: %s", strings.Join(e.Unavailable, ", "))
}
