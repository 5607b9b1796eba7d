package reports

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"max.ks1230/expense-tracker/internal/entity/expense"
)

type expensesStub struct {
	recs []expense.Record
	err  error
}

func (s *expensesStub) UserExpenses(_ context.Context, _ string) ([]expense.Record, error) {
	return s.recs, s.err
}

func testRecord(created, amountText, category, note string) expense.Record {
	amount, _ := strconv.ParseFloat(amountText, 64)
	return expense.Record{
		CreatedText: created,
		AmountText:  amountText,
		Amount:      amount,
		Category:    category,
		Note:        note,
	}
}

func Test_OnLoad_ShouldNarrowRowsButNotTotals(t *testing.T) {
	stub := &expensesStub{recs: []expense.Record{
		testRecord("2024-05-01 10:00:00", "10", "Food", "pizza"),
		testRecord("2024-05-02 11:00:00", "5", "Travel", "bus ticket"),
	}}
	generator := NewGenerator(stub)

	view, err := generator.Load(context.Background(), "bob", "food")
	require.NoError(t, err)

	require.Len(t, view.Rows, 1)
	assert.Equal(t, "2024-05-01 10:00:00 | ₹10.00 | Food (pizza)", view.Rows[0])
	assert.Equal(t, 15.0, view.Total)
	assert.Equal(t, []CategoryTotal{{"Food", 10}, {"Travel", 5}}, view.Categories)
}

func Test_OnLoad_ShouldMatchNoteCaseInsensitively(t *testing.T) {
	stub := &expensesStub{recs: []expense.Record{
		testRecord("2024-05-01 10:00:00", "10", "Food", "Pizza Night"),
		testRecord("2024-05-02 11:00:00", "5", "Travel", "bus"),
	}}
	generator := NewGenerator(stub)

	view, err := generator.Load(context.Background(), "bob", "  PIZZA ")
	require.NoError(t, err)

	require.Len(t, view.Rows, 1)
	assert.Contains(t, view.Rows[0], "Pizza Night")
}

func Test_OnLoad_ShouldKeepFirstSeenCategoryOrder(t *testing.T) {
	stub := &expensesStub{recs: []expense.Record{
		testRecord("2024-05-01 10:00:00", "5", "Travel", "bus"),
		testRecord("2024-05-02 11:00:00", "10", "Food", "pizza"),
		testRecord("2024-05-03 12:00:00", "2.5", "Travel", "metro"),
	}}
	generator := NewGenerator(stub)

	view, err := generator.Load(context.Background(), "bob", "")
	require.NoError(t, err)

	assert.Equal(t, []CategoryTotal{{"Travel", 7.5}, {"Food", 10}}, view.Categories)
	assert.Equal(t, 17.5, view.Total)
}

func Test_OnLoad_ShouldCountUnparsedAmountsAsZero(t *testing.T) {
	stub := &expensesStub{recs: []expense.Record{
		testRecord("2024-05-01 10:00:00", "oops", "Food", "typo"),
		testRecord("2024-05-02 11:00:00", "10", "Food", "pizza"),
	}}
	generator := NewGenerator(stub)

	view, err := generator.Load(context.Background(), "bob", "")
	require.NoError(t, err)

	assert.Len(t, view.Rows, 2)
	assert.Equal(t, 10.0, view.Total)
	assert.Equal(t, []CategoryTotal{{"Food", 10}}, view.Categories)
}

func Test_OnGenerate_ShouldRenderCategoriesAndTotal(t *testing.T) {
	stub := &expensesStub{recs: []expense.Record{
		testRecord("2024-05-01 10:00:00", "10", "Food", "pizza"),
		testRecord("2024-05-02 11:00:00", "5", "Travel", "bus"),
		testRecord("2024-05-03 12:00:00", "2.5", "Food", "coffee"),
	}}
	generator := NewGenerator(stub)

	report, err := generator.Generate(context.Background(), "bob", "")
	require.NoError(t, err)

	assert.Equal(t, "Food: ₹12.50\nTravel: ₹5.00\n\nTotal: ₹17.50", report)
}

func Test_OnGenerate_ShouldReturnEmptyStringWhenNoRecords(t *testing.T) {
	generator := NewGenerator(&expensesStub{})

	report, err := generator.Generate(context.Background(), "bob", "")
	require.NoError(t, err)

	assert.Empty(t, report)
}

func Test_OnGenerate_ShouldRejectUnknownPeriod(t *testing.T) {
	generator := NewGenerator(&expensesStub{})

	_, err := generator.Generate(context.Background(), "bob", "decade")

	assert.ErrorContains(t, err, "decade")
}

func Test_OnGenerate_ShouldFilterOldRecordsForPeriod(t *testing.T) {
	recent := time.Now().Format(expense.TimeLayout)
	stub := &expensesStub{recs: []expense.Record{
		testRecord("1999-01-01 10:00:00", "5", "Travel", "old"),
		testRecord(recent, "10", "Food", "fresh"),
		testRecord("not a timestamp", "2.5", "Food", "broken"),
	}}
	generator := NewGenerator(stub)

	report, err := generator.Generate(context.Background(), "bob", "year")
	require.NoError(t, err)

	assert.Equal(t, "Food: ₹10.00\n\nTotal: ₹10.00", report)
}

func Test_OnValidPeriod_ShouldAcceptKnownPeriodsOnly(t *testing.T) {
	for _, period := range ReportPeriods() {
		assert.True(t, ValidPeriod(period), period)
	}
	assert.False(t, ValidPeriod("decade"))
}
