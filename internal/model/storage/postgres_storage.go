package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	sq "github.com/Masterminds/squirrel"

	// postgres driver
	_ "github.com/lib/pq"
	"github.com/pkg/errors"

	"max.ks1230/expense-tracker/internal/entity/expense"
	"max.ks1230/expense-tracker/internal/entity/user"
	"max.ks1230/expense-tracker/internal/model/customerr"
)

const dsnTemplate = "user=%s password=%s host=%s dbname=%s sslmode=disable"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type pgConfig interface {
	Host() string
	Username() string
	Password() string
	Database() string
}

// PostgresStorage is the backend for deployments that outgrow the flat
// file. Timestamps are stored as the same text the file store uses so
// rendered rows stay identical across backends.
type PostgresStorage struct {
	db *sql.DB
}

func NewPostgresStorage(config pgConfig) (*PostgresStorage, error) {
	db, err := sql.Open("postgres", fmt.Sprintf(dsnTemplate,
		config.Username(),
		config.Password(),
		config.Host(),
		config.Database()))
	if err != nil {
		return nil, errors.Wrap(err, "cannot connect to database")
	}
	if err = db.Ping(); err != nil {
		return nil, errors.Wrap(err, "cannot connect to database")
	}
	return &PostgresStorage{db}, nil
}

func (s *PostgresStorage) SaveExpense(ctx context.Context, owner string, rec expense.Record) error {
	query := psql.Insert("expenses").
		Columns("owner", "created_text", "amount", "category", "note").
		Values(owner, rec.CreatedText, rec.Amount, rec.Category, rec.Note)

	_, err := query.RunWith(s.db).ExecContext(ctx)
	return errors.Wrap(err, "save expense")
}

func (s *PostgresStorage) UserExpenses(ctx context.Context, owner string) ([]expense.Record, error) {
	query := psql.Select("created_text", "amount", "category", "note").
		From("expenses").
		Where(sq.Eq{"owner": owner}).
		OrderBy("id")

	rows, err := query.RunWith(s.db).QueryContext(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "get expenses")
	}
	defer func() {
		rowErr := rows.Close()
		if rowErr != nil {
			log.Println("error closing rows", rowErr)
		}
	}()

	recs := make([]expense.Record, 0)
	for rows.Next() {
		var rec expense.Record
		err = rows.Scan(&rec.CreatedText, &rec.Amount, &rec.Category, &rec.Note)
		if err != nil {
			return nil, errors.Wrap(err, "get expenses")
		}
		rec.AmountText = fmt.Sprintf("%.2f", rec.Amount)
		recs = append(recs, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "get expenses")
	}

	return recs, nil
}

func (s *PostgresStorage) DeleteExpense(ctx context.Context, owner, rendered string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "delete expense")
	}
	defer func() {
		txErr := tx.Rollback()
		if txErr != nil && !errors.Is(txErr, sql.ErrTxDone) {
			log.Println("error when transaction rollback", txErr)
		}
	}()

	query := psql.Select("id", "created_text", "amount", "category", "note").
		From("expenses").
		Where(sq.Eq{"owner": owner}).
		OrderBy("id")

	rows, err := query.RunWith(tx).QueryContext(ctx)
	if err != nil {
		return errors.Wrap(err, "delete expense")
	}

	matched := int64(-1)
	for rows.Next() {
		var id int64
		var rec expense.Record
		if err = rows.Scan(&id, &rec.CreatedText, &rec.Amount, &rec.Category, &rec.Note); err != nil {
			_ = rows.Close()
			return errors.Wrap(err, "delete expense")
		}
		if rec.Render() == rendered {
			matched = id
			break
		}
	}
	if err = rows.Close(); err != nil {
		return errors.Wrap(err, "delete expense")
	}
	if matched < 0 {
		return customerr.ErrNotFound
	}

	del := psql.Delete("expenses").Where(sq.Eq{"id": matched})
	if _, err = del.RunWith(tx).ExecContext(ctx); err != nil {
		return errors.Wrap(err, "delete expense")
	}
	return errors.Wrap(tx.Commit(), "delete expense")
}

func (s *PostgresStorage) UserByName(ctx context.Context, name string) (user.Record, bool, error) {
	query := psql.Select("password_hash").
		From("users").
		Where(sq.Eq{"username": name})

	rec := user.Record{Name: name}
	err := query.RunWith(s.db).QueryRowContext(ctx).Scan(&rec.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return user.Record{}, false, nil
	}
	if err != nil {
		return user.Record{}, false, errors.Wrap(err, "get user")
	}
	return rec, true, nil
}

func (s *PostgresStorage) SaveUser(ctx context.Context, rec user.Record) error {
	query := psql.Insert("users").
		Columns("username", "password_hash").
		Values(rec.Name, rec.PasswordHash)

	_, err := query.RunWith(s.db).ExecContext(ctx)
	return errors.Wrap(err, "save user")
}
