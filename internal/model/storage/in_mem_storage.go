package storage

import (
	"context"

	"max.ks1230/expense-tracker/internal/entity/expense"
	"max.ks1230/expense-tracker/internal/entity/user"
	"max.ks1230/expense-tracker/internal/model/customerr"
)

// InMemStorage mirrors the file store semantics without touching disk.
type InMemStorage struct {
	expenseMap map[string][]expense.Record
	userMap    map[string]user.Record
}

func NewInMemStorage() *InMemStorage {
	return &InMemStorage{
		expenseMap: make(map[string][]expense.Record),
		userMap:    make(map[string]user.Record),
	}
}

func (s *InMemStorage) SaveExpense(_ context.Context, owner string, rec expense.Record) error {
	s.expenseMap[owner] = append(s.expenseMap[owner], rec)
	return nil
}

func (s *InMemStorage) UserExpenses(_ context.Context, owner string) ([]expense.Record, error) {
	recs := s.expenseMap[owner]
	res := make([]expense.Record, len(recs))
	copy(res, recs)
	return res, nil
}

func (s *InMemStorage) DeleteExpense(_ context.Context, owner, rendered string) error {
	recs := s.expenseMap[owner]
	for i, rec := range recs {
		if rec.Render() == rendered {
			s.expenseMap[owner] = append(recs[:i:i], recs[i+1:]...)
			return nil
		}
	}
	return customerr.ErrNotFound
}

func (s *InMemStorage) UserByName(_ context.Context, name string) (user.Record, bool, error) {
	rec, ok := s.userMap[name]
	return rec, ok, nil
}

func (s *InMemStorage) SaveUser(_ context.Context, rec user.Record) error {
	s.userMap[rec.Name] = rec
	return nil
}
