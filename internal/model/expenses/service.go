package expenses

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"max.ks1230/expense-tracker/internal/entity/expense"
	"max.ks1230/expense-tracker/internal/model/customerr"
)

// CategoryPlaceholder is the "nothing chosen" sentinel the original
// form used; it is rejected the same way an empty category is.
const CategoryPlaceholder = "Select Category"

type expenseStorage interface {
	SaveExpense(ctx context.Context, owner string, rec expense.Record) error
	DeleteExpense(ctx context.Context, owner, rendered string) error
}

type config interface {
	AuthEnabled() bool
}

// Service owns the two mutations: create and delete-by-display-string.
type Service struct {
	storage expenseStorage
	owned   bool
}

func NewService(storage expenseStorage, cfg config) *Service {
	return &Service{storage: storage, owned: cfg.AuthEnabled()}
}

// Create validates the input, stamps the record with the current time
// and appends it. The raw amount text is preserved so the single-user
// file keeps amounts exactly as entered.
func (s *Service) Create(ctx context.Context, owner, amountText, category, note string) error {
	amountText = strings.TrimSpace(amountText)
	if amountText == "" {
		return customerr.ErrInvalidAmount
	}
	amount, err := strconv.ParseFloat(amountText, 64)
	if err != nil {
		return errors.Wrap(customerr.ErrInvalidAmount, amountText)
	}
	if category == "" || category == CategoryPlaceholder {
		return customerr.ErrMissingCategory
	}

	layout := expense.LegacyTimeLayout
	if s.owned {
		layout = expense.TimeLayout
	}
	rec := expense.Record{
		CreatedText: time.Now().Format(layout),
		AmountText:  amountText,
		Amount:      amount,
		Category:    category,
		Note:        strings.TrimSpace(note),
	}
	return errors.Wrap(s.storage.SaveExpense(ctx, owner, rec), "create expense")
}

// Delete removes the first stored row of the owner whose rendered
// display text equals the given string. Deleting the same text twice
// fails with customerr.ErrNotFound the second time.
func (s *Service) Delete(ctx context.Context, owner, rendered string) error {
	return errors.Wrap(s.storage.DeleteExpense(ctx, owner, rendered), "delete expense")
}
