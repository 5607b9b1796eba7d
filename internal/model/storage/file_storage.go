package storage

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"max.ks1230/expense-tracker/internal/entity/expense"
	"max.ks1230/expense-tracker/internal/entity/user"
	"max.ks1230/expense-tracker/internal/model/customerr"
)

const (
	unownedFieldCount = 4
	ownedFieldCount   = 5
)

var usersHeader = []string{"username", "password_hash"}

type fileConfig interface {
	ExpenseFile() string
	UsersFile() string
}

// FileStorage keeps expenses and credentials in two delimited text
// files. When owned is true every expense row carries the owner name as
// its last field and rows without it are invisible.
type FileStorage struct {
	expenses *RecordStore
	users    *RecordStore
	owned    bool
}

func NewFileStorage(cfg fileConfig, owned bool) (*FileStorage, error) {
	s := &FileStorage{
		expenses: NewRecordStore(cfg.ExpenseFile()),
		users:    NewRecordStore(cfg.UsersFile()),
		owned:    owned,
	}
	if owned {
		if err := s.users.EnsureRow(usersHeader); err != nil {
			return nil, errors.Wrap(err, "init users file")
		}
	}
	return s, nil
}

func (s *FileStorage) fieldCount() int {
	if s.owned {
		return ownedFieldCount
	}
	return unownedFieldCount
}

// recordFromRow builds a record from a well-formed row. The amount is
// parsed leniently: a row whose amount field is not a number keeps a
// zero amount but is still a record.
func (s *FileStorage) recordFromRow(row []string) (expense.Record, string) {
	rec := expense.Record{
		CreatedText: row[0],
		AmountText:  row[1],
		Category:    row[2],
		Note:        row[3],
	}
	if v, err := strconv.ParseFloat(strings.TrimSpace(row[1]), 64); err == nil {
		rec.Amount = v
	}
	var owner string
	if s.owned {
		owner = row[4]
	}
	return rec, owner
}

func (s *FileStorage) rowFromRecord(owner string, rec expense.Record) []string {
	amount := rec.AmountText
	if s.owned {
		// The multi-user file stores amounts normalized to two decimals.
		amount = fmt.Sprintf("%.2f", rec.Amount)
	}
	row := []string{rec.CreatedText, amount, rec.Category, rec.Note}
	if s.owned {
		row = append(row, owner)
	}
	return row
}

func (s *FileStorage) SaveExpense(_ context.Context, owner string, rec expense.Record) error {
	return errors.Wrap(s.expenses.Append(s.rowFromRecord(owner, rec)), "save expense")
}

// UserExpenses returns the owner's records in file order. Rows with too
// few fields are skipped; in owned mode rows of other owners are too.
func (s *FileStorage) UserExpenses(_ context.Context, owner string) ([]expense.Record, error) {
	rows, err := s.expenses.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "get expenses")
	}

	recs := make([]expense.Record, 0, len(rows))
	for _, row := range rows {
		if len(row) < s.fieldCount() {
			continue
		}
		rec, rowOwner := s.recordFromRow(row)
		if s.owned && rowOwner != owner {
			continue
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

// DeleteExpense removes the first row in file order that belongs to the
// owner and renders exactly as the given display string. Every other
// row, including short ones, survives the rewrite untouched.
func (s *FileStorage) DeleteExpense(_ context.Context, owner, rendered string) error {
	rows, err := s.expenses.ReadAll()
	if err != nil {
		return errors.Wrap(err, "delete expense")
	}

	for i, row := range rows {
		if len(row) < s.fieldCount() {
			continue
		}
		rec, rowOwner := s.recordFromRow(row)
		if s.owned && rowOwner != owner {
			continue
		}
		if rec.Render() != rendered {
			continue
		}
		remaining := make([][]string, 0, len(rows)-1)
		remaining = append(remaining, rows[:i]...)
		remaining = append(remaining, rows[i+1:]...)
		return errors.Wrap(s.expenses.Rewrite(remaining), "delete expense")
	}
	return customerr.ErrNotFound
}

// UserByName scans the credential file for an exact, case-sensitive
// name match. The header row is skipped.
func (s *FileStorage) UserByName(_ context.Context, name string) (user.Record, bool, error) {
	rows, err := s.users.ReadAll()
	if err != nil {
		return user.Record{}, false, errors.Wrap(err, "get user")
	}

	for i, row := range rows {
		if i == 0 || len(row) == 0 {
			continue
		}
		if row[0] != name {
			continue
		}
		rec := user.Record{Name: row[0]}
		if len(row) > 1 {
			rec.PasswordHash = row[1]
		}
		return rec, true, nil
	}
	return user.Record{}, false, nil
}

func (s *FileStorage) SaveUser(_ context.Context, rec user.Record) error {
	return errors.Wrap(s.users.Append([]string{rec.Name, rec.PasswordHash}), "save user")
}
