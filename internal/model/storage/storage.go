package storage

import (
	"context"

	"max.ks1230/expense-tracker/internal/entity/expense"
	"max.ks1230/expense-tracker/internal/entity/user"
)

// Storage is the full set of operations the tracker needs from a
// backend. The file store is the canonical implementation; the others
// exist for tests and deployments that outgrow a flat file.
type Storage interface {
	SaveExpense(ctx context.Context, owner string, rec expense.Record) error
	UserExpenses(ctx context.Context, owner string) ([]expense.Record, error)
	DeleteExpense(ctx context.Context, owner, rendered string) error

	UserByName(ctx context.Context, name string) (user.Record, bool, error)
	SaveUser(ctx context.Context, rec user.Record) error
}
