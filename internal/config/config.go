package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Mastery  MasteryConfig  `mapstructure:"mastery" validate:"required"`
	Seed     SeedConfig     `mapstructure:"seed"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// LogFormat selects the slog handler: json for the server, text for terminals.
	LogFormat string `mapstructure:"log_format" validate:"required,oneof=json text"`
}

// Storage engines understood by DatabaseConfig.Engine.
const (
	EngineSQLite   = "sqlite"
	EnginePostgres = "postgres"
	EngineJSON     = "json"
	EngineMemory   = "memory"
)

// DatabaseConfig contains all persistence-related configuration settings.
type DatabaseConfig struct {
	Engine string `mapstructure:"engine" validate:"required,oneof=sqlite postgres json memory"`
	// URL is the PostgreSQL connection string. Only used by the postgres engine.
	URL string `mapstructure:"url" validate:"required_if=Engine postgres,omitempty,url"`
	// Path is the file used by the sqlite and json engines.
	Path         string `mapstructure:"path" validate:"required_if=Engine sqlite,required_if=Engine json"`
	AutoMigrate  bool   `mapstructure:"auto_migrate"`
	MaxOpenConns int    `mapstructure:"max_open_conns" validate:"gte=1"`
}

// MasteryConfig carries the scoring increments applied by the mastery service.
type MasteryConfig struct {
	QuestionStep int     `mapstructure:"question_step" validate:"gt=0,lte=100"`
	TableStep    float64 `mapstructure:"table_step" validate:"gt=0,lte=100"`
	TableCells   int     `mapstructure:"table_cells" validate:"gt=0"`
	PartialCap   int     `mapstructure:"partial_cap" validate:"gte=0,lt=100"`
}

// SeedConfig controls how an empty collection is populated.
type SeedConfig struct {
	// File is an optional YAML verb list. The built-in list is used when empty.
	File    string `mapstructure:"file"`
	Enabled bool   `mapstructure:"enabled"`
}
