package config

type AppConfig struct {
	Auth bool `yaml:"auth-enabled"`
}

// AuthEnabled selects the multi-user variant: expense rows carry an
// owner column and the bot requires /login.
func (s *AppConfig) AuthEnabled() bool {
	return s.Auth
}
