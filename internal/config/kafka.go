package config

type KafkaConfig struct {
	BrokerList  []string `yaml:"brokers"`
	ReqTopic    string   `yaml:"requests-topic"`
	ResTopic    string   `yaml:"results-topic"`
	ReporterGrp string   `yaml:"reporter-group"`
	BotGrp      string   `yaml:"bot-group"`
}

func (s *KafkaConfig) Brokers() []string {
	return s.BrokerList
}

func (s *KafkaConfig) RequestsTopic() string {
	return s.ReqTopic
}

func (s *KafkaConfig) ResultsTopic() string {
	return s.ResTopic
}

func (s *KafkaConfig) ReporterGroup() string {
	return s.ReporterGrp
}

func (s *KafkaConfig) BotGroup() string {
	return s.BotGrp
}

// Enabled reports whether the async report pipeline is configured.
func (s *KafkaConfig) Enabled() bool {
	return len(s.BrokerList) > 0
}
