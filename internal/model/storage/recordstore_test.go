package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRecordStore(t *testing.T) *RecordStore {
	return NewRecordStore(filepath.Join(t.TempDir(), "rows.csv"))
}

func Test_OnReadAll_ShouldReturnNothingForMissingFile(t *testing.T) {
	s := newTestRecordStore(t)

	rows, err := s.ReadAll()

	assert.NoError(t, err)
	assert.Empty(t, rows)
}

func Test_OnAppend_ShouldCreateFileAndKeepOrder(t *testing.T) {
	s := newTestRecordStore(t)

	require.NoError(t, s.Append([]string{"a", "1"}))
	require.NoError(t, s.Append([]string{"b", "2"}))

	rows, err := s.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a", "1"}, {"b", "2"}}, rows)
}

func Test_OnAppend_ShouldSurviveDelimitersInFields(t *testing.T) {
	s := newTestRecordStore(t)

	require.NoError(t, s.Append([]string{"2025-01-02 10:30", "25.5", "Food", "pizza, extra \"hot\""}))

	rows, err := s.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "pizza, extra \"hot\"", rows[0][3])
}

func Test_OnRewrite_ShouldReplaceContent(t *testing.T) {
	s := newTestRecordStore(t)
	require.NoError(t, s.Append([]string{"old", "row"}))

	require.NoError(t, s.Rewrite([][]string{{"new", "row"}}))

	rows, err := s.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"new", "row"}}, rows)
}

func Test_OnEnsureRow_ShouldOnlyWriteOnce(t *testing.T) {
	s := newTestRecordStore(t)

	require.NoError(t, s.EnsureRow([]string{"username", "password_hash"}))
	require.NoError(t, s.EnsureRow([]string{"username", "password_hash"}))

	rows, err := s.ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
