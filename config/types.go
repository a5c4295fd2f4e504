package config

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port int `yaml:"port" validate:"gt=0"`
}

// KafkaConfig contains kafka event transport configuration
type KafkaConfig struct {
	Brokers []string `yaml:"brokers" validate:"omitempty,min=1,dive,hostname_port"`
}

// RedisConfig contains redis event transport configuration
type RedisConfig struct {
	Addr     string `yaml:"addr" validate:"omitempty,hostname_port"`
	Password string `yaml:"password"`
}

// EventBusConfig selects the transport carrying domain events
type EventBusConfig struct {
	Backend       string      `yaml:"backend" validate:"omitempty,oneof=memory channels kafka redis"`
	ConsumerGroup string      `yaml:"consumerGroup"`
	Kafka         KafkaConfig `yaml:"kafka"`
	Redis         RedisConfig `yaml:"redis"`
}

// StorageConfig selects where full-state snapshots are kept
type StorageConfig struct {
	Backend string `yaml:"backend" validate:"omitempty,oneof=file postgres"`
	Dir     string `yaml:"dir"`
	DSN     string `yaml:"dsn"`
}

// BootstrapConfig optionally seeds state at startup from a bulk import file
type BootstrapConfig struct {
	ImportFile string `yaml:"importFile"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Server    ServerConfig    `yaml:"server" validate:"required"`
	EventBus  EventBusConfig  `yaml:"eventbus"`
	Storage   StorageConfig   `yaml:"storage"`
	Bootstrap BootstrapConfig `yaml:"bootstrap"`
}
