package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server  ServerConfig  `mapstructure:"server" validate:"required"`
	Storage StorageConfig `mapstructure:"storage" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// StorageConfig locates the on-disk state: the document directory used by
// the blob provider and the directory holding media attachments.
type StorageConfig struct {
	DataDir  string `mapstructure:"data_dir" validate:"required"`
	MediaDir string `mapstructure:"media_dir" validate:"required"`
}
