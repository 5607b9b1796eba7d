package reports

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jinzhu/now"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"max.ks1230/expense-tracker/internal/entity/expense"
	"max.ks1230/expense-tracker/internal/logger"
)

type expensesStorage interface {
	UserExpenses(ctx context.Context, owner string) ([]expense.Record, error)
}

type CategoryTotal struct {
	Category string
	Amount   float64
}

// View is one loaded listing: the rows to display and the summary
// numbers. The summary always covers the owner's whole record set —
// search narrows Rows, never Total or Categories.
type View struct {
	Rows       []string
	Total      float64
	Categories []CategoryTotal
}

type Generator struct {
	storage expensesStorage
}

func NewGenerator(storage expensesStorage) *Generator {
	return &Generator{storage: storage}
}

// Load reads the owner's records and splits them into display rows and
// aggregates. The search substring is matched case-insensitively
// against category and note; an empty search displays everything.
// Category totals keep first-seen order.
func (g *Generator) Load(ctx context.Context, owner, search string) (View, error) {
	recs, err := g.storage.UserExpenses(ctx, owner)
	if err != nil {
		return View{}, errors.Wrap(err, "load expenses")
	}

	needle := strings.ToLower(strings.TrimSpace(search))
	var view View
	seen := make(map[string]int)
	for _, rec := range recs {
		if needle == "" ||
			strings.Contains(strings.ToLower(rec.Category), needle) ||
			strings.Contains(strings.ToLower(rec.Note), needle) {
			view.Rows = append(view.Rows, rec.Render())
		}
		view.Total += rec.Amount
		if i, ok := seen[rec.Category]; ok {
			view.Categories[i].Amount += rec.Amount
		} else {
			seen[rec.Category] = len(view.Categories)
			view.Categories = append(view.Categories, CategoryTotal{rec.Category, rec.Amount})
		}
	}
	return view, nil
}

// Generate builds the rendered per-category report for the period:
// one "{category}: ₹{amount}" line per category in first-seen order,
// then a blank line and the total. Empty period covers everything.
// The empty string result means the owner has no records in range.
func (g *Generator) Generate(ctx context.Context, owner, period string) (string, error) {
	logger.Info("GenerateReport - start", zap.String("owner", owner), zap.String("period", period))
	defer logger.Info("GenerateReport - end")

	start, err := periodStart(period)
	if err != nil {
		return "", err
	}

	recs, err := g.storage.UserExpenses(ctx, owner)
	if err != nil {
		return "", errors.Wrap(err, "generate report")
	}
	if !start.IsZero() {
		recs = filterCreatedAfter(recs, start)
	}
	if len(recs) == 0 {
		return "", nil
	}

	var totals []CategoryTotal
	total := 0.0
	seen := make(map[string]int)
	for _, rec := range recs {
		total += rec.Amount
		if i, ok := seen[rec.Category]; ok {
			totals[i].Amount += rec.Amount
		} else {
			seen[rec.Category] = len(totals)
			totals = append(totals, CategoryTotal{rec.Category, rec.Amount})
		}
	}

	lines := make([]string, 0, len(totals)+2)
	for _, t := range totals {
		lines = append(lines, fmt.Sprintf("%s: ₹%.2f", t.Category, t.Amount))
	}
	lines = append(lines, "", fmt.Sprintf("Total: ₹%.2f", total))
	return strings.Join(lines, "\n"), nil
}

func periodStart(period string) (time.Time, error) {
	switch period {
	case "":
		return time.Time{}, nil
	case "week":
		return now.BeginningOfWeek(), nil
	case "month":
		return now.BeginningOfMonth(), nil
	case "year":
		return now.BeginningOfYear(), nil
	}
	return time.Time{}, errors.Errorf("report period %s is not supported", period)
}

// filterCreatedAfter keeps records stamped at or after the boundary.
// Records whose timestamp does not parse are left out of period
// reports; they still show up in full ones.
func filterCreatedAfter(recs []expense.Record, after time.Time) []expense.Record {
	res := make([]expense.Record, 0)
	for _, rec := range recs {
		created, ok := rec.CreatedAt()
		if ok && !created.Before(after) {
			res = append(res, rec)
		}
	}
	return res
}

// ReportPeriods lists the accepted /report arguments.
func ReportPeriods() []string {
	return []string{"", "week", "month", "year"}
}

func ValidPeriod(period string) bool {
	_, err := periodStart(period)
	return err == nil
}
