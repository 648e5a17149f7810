// Package session keeps per-visitor cart state outside the database.
package session

import (
	"context"
	"strconv"
)

// Store holds one cart per session id: product id -> positive quantity.
// Implementations never keep a zero or negative quantity.
type Store interface {
	// Items returns a copy of the cart; an unknown session yields an empty map.
	Items(ctx context.Context, sessionID string) (map[int64]int, error)
	// Incr adds delta to the quantity of productID, creating the entry if needed,
	// and returns the new quantity.
	Incr(ctx context.Context, sessionID string, productID int64, delta int) (int, error)
	// Set stores qty exactly; qty <= 0 removes the entry.
	Set(ctx context.Context, sessionID string, productID int64, qty int) error
	Clear(ctx context.Context, sessionID string) error
}

func field(productID int64) string {
	return strconv.FormatInt(productID, 10)
}
