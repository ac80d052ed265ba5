// Package repository holds the persistence adapters: the read-only player
// roster, the squad store and the customer store, each with a CSV backend
// and, for squads and customers, a SQLite backend.
package repository

import (
	"context"

	"github.com/okian/nsl/internal/domain/model"
)

// Roster provides the read-only player pool.
type Roster interface {
	// Players returns every roster row. A missing source yields an empty
	// slice, not an error.
	Players(ctx context.Context) ([]model.Player, error)
}

// SquadStore loads and saves customer squads.
type SquadStore interface {
	// Load returns the stored rows of customerID, empty when none exist.
	Load(ctx context.Context, customerID string) ([]model.SquadSlot, error)

	// Save replaces every stored row of customerID with slots. Rows of other
	// customers are kept.
	Save(ctx context.Context, customerID string, slots []model.SquadSlot) error
}

// CustomerStore holds customer accounts.
type CustomerStore interface {
	// FindByEmail matches email case-insensitively.
	// Returns ErrNotFound if no account uses it.
	FindByEmail(ctx context.Context, email string) (model.Customer, error)

	// FindByID returns the account with the exact id.
	// Returns ErrNotFound if there is none.
	FindByID(ctx context.Context, id string) (model.Customer, error)

	// Create stores a new account and assigns its id ("customer<N+1>").
	Create(ctx context.Context, name, email, pin string) (model.Customer, error)
}
