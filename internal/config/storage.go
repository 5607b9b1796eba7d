package config

const (
	defaultDriver      = "file"
	defaultExpenseFile = "data/expenses.csv"
	defaultUsersFile   = "data/users.csv"
)

type StorageConfig struct {
	StorageDriver string `yaml:"driver"`
	ExpensePath   string `yaml:"expense-file"`
	UsersPath     string `yaml:"users-file"`
}

// Driver is one of "file", "memory", "postgres".
func (s *StorageConfig) Driver() string {
	if s.StorageDriver == "" {
		return defaultDriver
	}
	return s.StorageDriver
}

func (s *StorageConfig) ExpenseFile() string {
	if s.ExpensePath == "" {
		return defaultExpenseFile
	}
	return s.ExpensePath
}

func (s *StorageConfig) UsersFile() string {
	if s.UsersPath == "" {
		return defaultUsersFile
	}
	return s.UsersPath
}
