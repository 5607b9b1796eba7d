package sessions

import "sync"

var defaultCategories = []string{
	"Food", "Travel", "Shopping", "Bills", "Entertainment",
	"Health", "Education", "Groceries", "Other",
}

// Session is the per-chat state the shell keeps between commands: who
// is logged in, the category set (default list plus session additions,
// not persisted across restarts) and the rows of the last listing so a
// numeric pick can be resolved back to its rendered display string.
type Session struct {
	owner      string
	loggedIn   bool
	categories []string
	lastRows   []string
}

func newSession() *Session {
	s := &Session{categories: make([]string, len(defaultCategories))}
	copy(s.categories, defaultCategories)
	return s
}

func (s *Session) Owner() string {
	return s.owner
}

func (s *Session) LoggedIn() bool {
	return s.loggedIn
}

func (s *Session) Login(owner string) {
	s.owner = owner
	s.loggedIn = true
}

func (s *Session) Logout() {
	s.owner = ""
	s.loggedIn = false
	s.lastRows = nil
}

func (s *Session) Categories() []string {
	res := make([]string, len(s.categories))
	copy(res, s.categories)
	return res
}

func (s *Session) HasCategory(name string) bool {
	for _, cat := range s.categories {
		if cat == name {
			return true
		}
	}
	return false
}

// AddCategory appends a category to the session set. Reports false if
// it was already there.
func (s *Session) AddCategory(name string) bool {
	if s.HasCategory(name) {
		return false
	}
	s.categories = append(s.categories, name)
	return true
}

func (s *Session) SetLastRows(rows []string) {
	s.lastRows = rows
}

// LastRow returns the n-th (1-based) row of the last listing.
func (s *Session) LastRow(n int) (string, bool) {
	if n < 1 || n > len(s.lastRows) {
		return "", false
	}
	return s.lastRows[n-1], true
}

// Manager hands out one session per chat.
type Manager struct {
	mu       sync.Mutex
	sessions map[int64]*Session
}

func NewManager() *Manager {
	return &Manager{sessions: make(map[int64]*Session)}
}

func (m *Manager) Get(chatID int64) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[chatID]
	if !ok {
		s = newSession()
		m.sessions[chatID] = s
	}
	return s
}
