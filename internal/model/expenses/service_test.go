package expenses

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"max.ks1230/expense-tracker/internal/entity/expense"
	"max.ks1230/expense-tracker/internal/model/customerr"
)

type storageStub struct {
	saved     []expense.Record
	owners    []string
	deleteErr error
}

func (s *storageStub) SaveExpense(_ context.Context, owner string, rec expense.Record) error {
	s.owners = append(s.owners, owner)
	s.saved = append(s.saved, rec)
	return nil
}

func (s *storageStub) DeleteExpense(_ context.Context, _, _ string) error {
	return s.deleteErr
}

type cfgStub bool

func (c cfgStub) AuthEnabled() bool { return bool(c) }

func Test_OnCreate_ShouldRejectEmptyAmount(t *testing.T) {
	service := NewService(&storageStub{}, cfgStub(true))

	err := service.Create(context.Background(), "bob", "   ", "Food", "lunch")

	assert.True(t, errors.Is(err, customerr.ErrInvalidAmount))
}

func Test_OnCreate_ShouldRejectNonNumericAmount(t *testing.T) {
	store := &storageStub{}
	service := NewService(store, cfgStub(true))

	err := service.Create(context.Background(), "bob", "ten", "Food", "lunch")

	assert.True(t, errors.Is(err, customerr.ErrInvalidAmount))
	assert.Empty(t, store.saved)
}

func Test_OnCreate_ShouldRejectPlaceholderCategory(t *testing.T) {
	service := NewService(&storageStub{}, cfgStub(true))

	err := service.Create(context.Background(), "bob", "10", CategoryPlaceholder, "")
	assert.True(t, errors.Is(err, customerr.ErrMissingCategory))

	err = service.Create(context.Background(), "bob", "10", "", "")
	assert.True(t, errors.Is(err, customerr.ErrMissingCategory))
}

func Test_OnCreate_ShouldStampAndStoreRecord(t *testing.T) {
	store := &storageStub{}
	service := NewService(store, cfgStub(true))

	before := time.Now()
	err := service.Create(context.Background(), "bob", " 12.5 ", "Food", " lunch ")
	require.NoError(t, err)

	require.Len(t, store.saved, 1)
	rec := store.saved[0]
	assert.Equal(t, []string{"bob"}, store.owners)
	assert.Equal(t, "12.5", rec.AmountText)
	assert.Equal(t, 12.5, rec.Amount)
	assert.Equal(t, "Food", rec.Category)
	assert.Equal(t, "lunch", rec.Note)

	created, ok := rec.CreatedAt()
	require.True(t, ok)
	assert.WithinDuration(t, before, created, 2*time.Second)
}

func Test_OnCreate_ShouldUseLegacyLayoutWhenAuthDisabled(t *testing.T) {
	store := &storageStub{}
	service := NewService(store, cfgStub(false))

	require.NoError(t, service.Create(context.Background(), "", "7", "Travel", "bus"))

	require.Len(t, store.saved, 1)
	_, err := time.Parse(expense.LegacyTimeLayout, store.saved[0].CreatedText)
	assert.NoError(t, err)
}

func Test_OnDelete_ShouldPropagateNotFound(t *testing.T) {
	store := &storageStub{deleteErr: customerr.ErrNotFound}
	service := NewService(store, cfgStub(true))

	err := service.Delete(context.Background(), "bob", "whatever")

	assert.True(t, errors.Is(err, customerr.ErrNotFound))
}
