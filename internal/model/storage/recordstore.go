package storage

import (
	"bytes"
	"encoding/csv"
	"os"

	"github.com/pkg/errors"
)

// RecordStore is the raw row layer over one delimited file. It knows
// nothing about what the fields mean; that is the caller's business.
type RecordStore struct {
	path string
}

func NewRecordStore(path string) *RecordStore {
	return &RecordStore{path: path}
}

// Append writes one row to the end of the file, creating it if needed.
func (s *RecordStore) Append(fields []string) error {
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return errors.Wrap(err, "open store for append")
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(fields); err != nil {
		return errors.Wrap(err, "append row")
	}
	w.Flush()
	return errors.Wrap(w.Error(), "flush row")
}

// ReadAll returns every row in file order. A missing file is not an
// error: the store simply has no rows yet.
func (s *RecordStore) ReadAll() ([][]string, error) {
	f, err := os.Open(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "open store")
	}
	defer f.Close()

	r := csv.NewReader(f)
	// Row width varies across variants and legacy files; callers decide
	// what counts as well-formed.
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	return rows, errors.Wrap(err, "read store")
}

// Rewrite replaces the whole file with the given rows. The new content
// is encoded in memory first and written in a single operation so the
// store is never left half-written.
func (s *RecordStore) Rewrite(rows [][]string) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(rows); err != nil {
		return errors.Wrap(err, "encode rows")
	}
	return errors.Wrap(os.WriteFile(s.path, buf.Bytes(), 0644), "rewrite store")
}

// EnsureRow appends the given row only when the file does not exist
// yet. Used for the credential file header.
func (s *RecordStore) EnsureRow(fields []string) error {
	_, err := os.Stat(s.path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return errors.Wrap(err, "stat store")
	}
	return s.Append(fields)
}
