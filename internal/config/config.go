package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Log     LogConfig     `yaml:"log"`
	Sources SourcesConfig `yaml:"sources"`
}

// ServerConfig holds settings of the optional health endpoint server.
type ServerConfig struct {
	Enabled         bool          `yaml:"enabled"          env:"SERVER_ENABLED"          env-default:"false"`
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// SourcesConfig says where the game master and language tables live and how
// the catalog loads them. Paths are relative to BaseURL, which may be a
// directory or an http(s) URL.
type SourcesConfig struct {
	BaseURL           string        `yaml:"base_url"           env:"SOURCES_BASE_URL"           env-default:"assets"`
	GameMasterPath    string        `yaml:"game_master_path"   env:"SOURCES_GAME_MASTER_PATH"   env-default:"data/GAME_MASTER.json"`
	RootProperty      string        `yaml:"root_property"      env:"SOURCES_ROOT_PROPERTY"      env-default:"itemTemplates"`
	MoveNamesPath     string        `yaml:"move_names_path"    env:"SOURCES_MOVE_NAMES_PATH"    env-default:"language/moves.txt"`
	PokemonNamesPath  string        `yaml:"pokemon_names_path" env:"SOURCES_POKEMON_NAMES_PATH" env-default:"language/pokemon.txt"`
	GeneralTextsPath  string        `yaml:"general_texts_path" env:"SOURCES_GENERAL_TEXTS_PATH" env-default:"language/general.txt"`
	Language          string        `yaml:"language"           env:"SOURCES_LANGUAGE"           env-default:"English"`
	DelimiterRaw      string        `yaml:"delimiter"          env:"SOURCES_DELIMITER"          env-default:"tab"`
	KeyColumn         string        `yaml:"key_column"         env:"SOURCES_KEY_COLUMN"         env-default:"Key"`
	FetchTimeout      time.Duration `yaml:"fetch_timeout"      env:"SOURCES_FETCH_TIMEOUT"      env-default:"10s"`
	MaxConcurrent     int           `yaml:"max_concurrent"     env:"SOURCES_MAX_CONCURRENT"     env-default:"4"`
	MoveSortersRaw    string        `yaml:"move_sorters"       env:"SOURCES_MOVE_SORTERS"       env-default:"name"`
	PokemonSortersRaw string        `yaml:"pokemon_sorters"    env:"SOURCES_POKEMON_SORTERS"    env-default:"index"`

	// Populated by Validate.
	Delimiter      rune     `yaml:"-"`
	MoveSorters    []string `yaml:"-"`
	PokemonSorters []string `yaml:"-"`
}
