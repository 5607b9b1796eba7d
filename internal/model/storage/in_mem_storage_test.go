package storage

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"max.ks1230/expense-tracker/internal/entity/user"
	"max.ks1230/expense-tracker/internal/model/customerr"
)

func Test_OnInMemDelete_ShouldMatchRenderedText(t *testing.T) {
	ctx := context.Background()
	s := NewInMemStorage()

	rec := testRecord(10, "10", "Food", "")
	require.NoError(t, s.SaveExpense(ctx, "alice", rec))

	require.NoError(t, s.DeleteExpense(ctx, "alice", rec.Render()))
	err := s.DeleteExpense(ctx, "alice", rec.Render())

	assert.True(t, errors.Is(err, customerr.ErrNotFound))
}

func Test_OnInMemUserExpenses_ShouldIsolateOwners(t *testing.T) {
	ctx := context.Background()
	s := NewInMemStorage()

	require.NoError(t, s.SaveExpense(ctx, "alice", testRecord(10, "10", "Food", "")))

	recs, err := s.UserExpenses(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func Test_OnInMemUserByName_ShouldFindSavedUser(t *testing.T) {
	ctx := context.Background()
	s := NewInMemStorage()

	require.NoError(t, s.SaveUser(ctx, user.Record{Name: "alice", PasswordHash: "abc"}))

	rec, found, err := s.UserByName(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "abc", rec.PasswordHash)
}
