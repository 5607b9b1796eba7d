package config

const defaultMetricsAddr = ":9100"

type MetricsConfig struct {
	Address string `yaml:"addr"`
}

func (s *MetricsConfig) Addr() string {
	if s.Address == "" {
		return defaultMetricsAddr
	}
	return s.Address
}
