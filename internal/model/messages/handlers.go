package messages

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"max.ks1230/expense-tracker/internal/logger"
	"max.ks1230/expense-tracker/internal/model/customerr"
	"max.ks1230/expense-tracker/internal/model/reports"
	"max.ks1230/expense-tracker/internal/model/sessions"
)

const (
	dontUnderstandMessage = "I don't understand you :("
	loveToTalkMessage     = "I would love to talk about it more!"
	okMessage             = "Gotcha!"
	noExpensesMessage     = "You have no expenses yet"

	incorrectUsageMessage    = "That is an incorrect command usage"
	incorrectAmountMessage   = "Amount must be a number!"
	missingCategoryMessage   = "Please fill amount and select category!"
	needLoginMessage         = "Please /login first"
	accountsOffMessage       = "Accounts are disabled on this tracker"
	registeredMessage        = "Registration successful! You can now login."
	duplicateUserMessage     = "Username already exists."
	loginFailedMessage       = "Invalid username or password."
	loggedOutMessage         = "Logged out. See you!"
	selectExpenseMessage     = "Select an expense to delete!"
	expenseGoneMessage       = "Could not find the selected expense in storage."
	deletedMessage           = "Deleted!"
	noTotalsMessage          = "No expenses found!"
	reportPendingMessage     = "Preparing your report. It will arrive shortly"
	cannotGetExpensesMessage = "Can't get your expenses atm. Try later"
	cannotSaveExpenseMessage = "Can't save your expense atm. Try later"
)

const (
	startCommand       = "/start"
	registerCommand    = "/register"
	loginCommand       = "/login"
	logoutCommand      = "/logout"
	addCommand         = "/add"
	listCommand        = "/list"
	totalsCommand      = "/totals"
	reportCommand      = "/report"
	categoriesCommand  = "/categories"
	newCategoryCommand = "/newcategory"
	deleteCommand      = "/delete"
)

type expenseService interface {
	Create(ctx context.Context, owner, amountText, category, note string) error
	Delete(ctx context.Context, owner, rendered string) error
}

type reportService interface {
	Load(ctx context.Context, owner, search string) (reports.View, error)
	Generate(ctx context.Context, owner, period string) (string, error)
}

type authService interface {
	Register(ctx context.Context, name, password string) error
	Authenticate(ctx context.Context, name, password string) error
}

type reportCache interface {
	GetReport(owner, period string) (string, error)
	CacheReport(owner, period, report string) error
	InvalidateCache(owner string, periods []string) error
}

type reportProducer interface {
	ProduceMessage(message []byte) error
}

type config interface {
	AuthEnabled() bool
}

type handler func(ctx context.Context, arg string, chatID int64) (string, error)

type handlerMap map[string]handler

// HandlerService routes one command per button of the original form:
// add, list, search, totals, delete, plus the account commands of the
// authenticated variant.
type HandlerService struct {
	handlersMap handlerMap
	expenses    expenseService
	reports     reportService
	auth        authService
	sessions    *sessions.Manager
	cache       reportCache
	producer    reportProducer
	authEnabled bool
}

func NewHandlerService(expenses expenseService, reportSvc reportService, auth authService,
	sessionManager *sessions.Manager, cfg config) *HandlerService {
	res := &HandlerService{
		handlersMap: nil,
		expenses:    expenses,
		reports:     reportSvc,
		auth:        auth,
		sessions:    sessionManager,
		authEnabled: cfg.AuthEnabled(),
	}
	res.handlersMap = newMap(res)
	return res
}

// SetCache plugs in the report cache. Without it every /report hits
// storage.
func (s *HandlerService) SetCache(cache reportCache) {
	s.cache = cache
}

// SetReportProducer switches /report to the async pipeline: requests
// go to the reporter via the broker instead of being built inline.
func (s *HandlerService) SetReportProducer(producer reportProducer) {
	s.producer = producer
}

func (s *HandlerService) HandleMessage(ctx context.Context, text string, chatID int64) (string, error) {
	cmd, arg := parseCommand(text)
	countCommand(cmd)

	handler, ok := s.handlersMap[cmd]
	if ok {
		return handler(ctx, arg, chatID)
	}
	return dontUnderstandMessage, nil
}

func newMap(s *HandlerService) handlerMap {
	m := make(handlerMap)
	m[startCommand] = s.handleStart
	m[registerCommand] = s.handleRegister
	m[loginCommand] = s.handleLogin
	m[logoutCommand] = s.handleLogout
	m[addCommand] = s.handleAdd
	m[listCommand] = s.handleList
	m[totalsCommand] = s.handleTotals
	m[reportCommand] = s.handleReport
	m[categoriesCommand] = s.handleCategories
	m[newCategoryCommand] = s.handleNewCategory
	m[deleteCommand] = s.handleDelete

	m[""] = s.handleNoCommand

	return m
}

// owner resolves whose expenses the chat may see. With accounts off
// everything belongs to the single implicit owner.
func (s *HandlerService) owner(chatID int64) (string, bool) {
	if !s.authEnabled {
		return "", true
	}
	sess := s.sessions.Get(chatID)
	if !sess.LoggedIn() {
		return "", false
	}
	return sess.Owner(), true
}

func (s *HandlerService) handleStart(_ context.Context, _ string, _ int64) (string, error) {
	lines := []string{
		"Hello! I am ExpenseTracker bot 🤖",
		"",
		addCommand + " <amount> <category> [note] — save an expense",
		listCommand + " [search] — show your expenses",
		totalsCommand + " — totals per category",
		reportCommand + " [week|month|year] — spending report",
		deleteCommand + " <n> — delete row n of the last listing",
		categoriesCommand + " — known categories",
		newCategoryCommand + " <name> — add a category",
	}
	if s.authEnabled {
		lines = append(lines,
			registerCommand+" <user> <password> — create an account",
			loginCommand+" <user> <password>",
			logoutCommand,
		)
	}
	return strings.Join(lines, "\n"), nil
}

func (s *HandlerService) handleRegister(ctx context.Context, arg string, _ int64) (string, error) {
	if !s.authEnabled {
		return accountsOffMessage, nil
	}
	args := strings.Fields(arg)
	if len(args) != 2 {
		return incorrectUsageMessage, nil
	}
	err := s.auth.Register(ctx, args[0], args[1])
	if errors.Is(err, customerr.ErrDuplicateUser) {
		return duplicateUserMessage, nil
	}
	if err != nil {
		return cannotSaveExpenseMessage, errors.Wrap(err, "handle register")
	}
	return registeredMessage, nil
}

func (s *HandlerService) handleLogin(ctx context.Context, arg string, chatID int64) (string, error) {
	if !s.authEnabled {
		return accountsOffMessage, nil
	}
	args := strings.Fields(arg)
	if len(args) != 2 {
		return incorrectUsageMessage, nil
	}
	err := s.auth.Authenticate(ctx, args[0], args[1])
	if errors.Is(err, customerr.ErrInvalidCredentials) {
		return loginFailedMessage, nil
	}
	if err != nil {
		return cannotGetExpensesMessage, errors.Wrap(err, "handle login")
	}
	s.sessions.Get(chatID).Login(args[0])
	return "Logged in as " + args[0], nil
}

func (s *HandlerService) handleLogout(_ context.Context, _ string, chatID int64) (string, error) {
	s.sessions.Get(chatID).Logout()
	return loggedOutMessage, nil
}

func (s *HandlerService) handleAdd(ctx context.Context, arg string, chatID int64) (string, error) {
	owner, ok := s.owner(chatID)
	if !ok {
		return needLoginMessage, nil
	}
	args := strings.Fields(arg)
	if len(args) < 2 {
		return incorrectUsageMessage, nil
	}
	amount, category := args[0], args[1]
	note := strings.Join(args[2:], " ")

	sess := s.sessions.Get(chatID)
	if !sess.HasCategory(category) {
		return fmt.Sprintf("Unknown category %q. Use %s to add it", category, newCategoryCommand), nil
	}

	err := s.expenses.Create(ctx, owner, amount, category, note)
	if errors.Is(err, customerr.ErrInvalidAmount) {
		return incorrectAmountMessage, nil
	}
	if errors.Is(err, customerr.ErrMissingCategory) {
		return missingCategoryMessage, nil
	}
	if err != nil {
		return cannotSaveExpenseMessage, errors.Wrap(err, "handle add")
	}
	s.invalidateReports(owner)
	return okMessage, nil
}

func (s *HandlerService) handleList(ctx context.Context, arg string, chatID int64) (string, error) {
	owner, ok := s.owner(chatID)
	if !ok {
		return needLoginMessage, nil
	}
	view, err := s.reports.Load(ctx, owner, arg)
	if err != nil {
		return cannotGetExpensesMessage, errors.Wrap(err, "handle list")
	}
	sess := s.sessions.Get(chatID)
	sess.SetLastRows(view.Rows)

	if len(view.Rows) == 0 {
		return noExpensesMessage, nil
	}
	lines := make([]string, 0, len(view.Rows)+2)
	for i, row := range view.Rows {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, row))
	}
	lines = append(lines, "", fmt.Sprintf("Total: ₹%.2f", view.Total))
	return strings.Join(lines, "\n"), nil
}

func (s *HandlerService) handleTotals(ctx context.Context, _ string, chatID int64) (string, error) {
	owner, ok := s.owner(chatID)
	if !ok {
		return needLoginMessage, nil
	}
	view, err := s.reports.Load(ctx, owner, "")
	if err != nil {
		return cannotGetExpensesMessage, errors.Wrap(err, "handle totals")
	}
	if len(view.Categories) == 0 {
		return noTotalsMessage, nil
	}
	lines := make([]string, 0, len(view.Categories))
	for _, t := range view.Categories {
		lines = append(lines, fmt.Sprintf("%s: ₹%.2f", t.Category, t.Amount))
	}
	return strings.Join(lines, "\n"), nil
}

func (s *HandlerService) handleReport(ctx context.Context, arg string, chatID int64) (string, error) {
	owner, ok := s.owner(chatID)
	if !ok {
		return needLoginMessage, nil
	}
	if !reports.ValidPeriod(arg) {
		return incorrectUsageMessage, nil
	}
	if s.cache != nil {
		if text, err := s.cache.GetReport(owner, arg); err == nil && text != "" {
			return text, nil
		}
	}
	if s.producer != nil {
		return s.requestReport(owner, arg, chatID)
	}

	text, err := s.reports.Generate(ctx, owner, arg)
	if err != nil {
		return cannotGetExpensesMessage, errors.Wrap(err, "handle report")
	}
	if text == "" {
		return noExpensesMessage, nil
	}
	if s.cache != nil {
		if err := s.cache.CacheReport(owner, arg, text); err != nil {
			logger.Warn("failed to cache report", zap.Error(err))
		}
	}
	return text, nil
}

func (s *HandlerService) requestReport(owner, period string, chatID int64) (string, error) {
	raw, err := json.Marshal(reports.Request{ChatID: chatID, Owner: owner, Period: period})
	if err != nil {
		return cannotGetExpensesMessage, errors.Wrap(err, "request report")
	}
	if err := s.producer.ProduceMessage(raw); err != nil {
		return cannotGetExpensesMessage, errors.Wrap(err, "request report")
	}
	return reportPendingMessage, nil
}

func (s *HandlerService) handleCategories(_ context.Context, _ string, chatID int64) (string, error) {
	return strings.Join(s.sessions.Get(chatID).Categories(), "\n"), nil
}

func (s *HandlerService) handleNewCategory(_ context.Context, arg string, chatID int64) (string, error) {
	name := strings.TrimSpace(arg)
	if name == "" {
		return incorrectUsageMessage, nil
	}
	if !s.sessions.Get(chatID).AddCategory(name) {
		return fmt.Sprintf("'%s' already exists.", name), nil
	}
	return "Added category " + name, nil
}

func (s *HandlerService) handleDelete(ctx context.Context, arg string, chatID int64) (string, error) {
	owner, ok := s.owner(chatID)
	if !ok {
		return needLoginMessage, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return selectExpenseMessage, nil
	}
	sess := s.sessions.Get(chatID)
	rendered, ok := sess.LastRow(n)
	if !ok {
		return selectExpenseMessage, nil
	}

	err = s.expenses.Delete(ctx, owner, rendered)
	if errors.Is(err, customerr.ErrNotFound) {
		return expenseGoneMessage, nil
	}
	if err != nil {
		return cannotSaveExpenseMessage, errors.Wrap(err, "handle delete")
	}
	s.invalidateReports(owner)
	return deletedMessage, nil
}

func (s *HandlerService) handleNoCommand(_ context.Context, _ string, _ int64) (string, error) {
	return loveToTalkMessage, nil
}

func (s *HandlerService) invalidateReports(owner string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateCache(owner, reports.ReportPeriods()); err != nil {
		logger.Warn("failed to invalidate report cache", zap.Error(err))
	}
}
