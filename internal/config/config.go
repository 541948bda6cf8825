package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// FileName is the config file written by "smsledger init".
const FileName = "smsledger.yaml"

const (
	DefaultLocation     = "Africa/Addis_Ababa"
	DefaultSourceFormat = "smsbackup"
	DefaultLookbackDays = 7
	DefaultMaxMessages  = 100
	DefaultExportFormat = "csv"
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "text"
)

// Config represents the top-level smsledger.yaml configuration.
type Config struct {
	Parser ParserConfig `yaml:"parser"`
	Source SourceConfig `yaml:"source"`
	Export ExportConfig `yaml:"export"`
	Log    LogConfig    `yaml:"log"`
}

// ParserConfig controls the extraction pipeline.
type ParserConfig struct {
	Location      string   `yaml:"location" envconfig:"SMSLEDGER_PARSER_LOCATION"` // IANA zone SMS timestamps are read in
	ExtraKeywords []string `yaml:"extra_keywords,omitempty" envconfig:"SMSLEDGER_PARSER_EXTRA_KEYWORDS"`
	Banks         []string `yaml:"banks,omitempty" envconfig:"SMSLEDGER_PARSER_BANKS"` // empty enables all
}

// SourceConfig selects which messages are fed to the pipeline.
type SourceConfig struct {
	Format       string   `yaml:"format" envconfig:"SMSLEDGER_SOURCE_FORMAT"`
	Senders      []string `yaml:"senders,omitempty" envconfig:"SMSLEDGER_SOURCE_SENDERS"`
	LookbackDays int      `yaml:"lookback_days" envconfig:"SMSLEDGER_SOURCE_LOOKBACK_DAYS"`
	MaxMessages  int      `yaml:"max_messages" envconfig:"SMSLEDGER_SOURCE_MAX_MESSAGES"`
}

// ExportConfig controls the ledger handoff file.
type ExportConfig struct {
	Format string `yaml:"format" envconfig:"SMSLEDGER_EXPORT_FORMAT"` // "csv" or "json"
}

// LogConfig controls logrus output.
type LogConfig struct {
	Level  string `yaml:"level" envconfig:"SMSLEDGER_LOG_LEVEL"`
	Format string `yaml:"format" envconfig:"SMSLEDGER_LOG_FORMAT"` // "text" or "json"
}

// Load reads an smsledger.yaml file from disk, applies environment
// overrides and fills defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return finish(&cfg)
}

// LoadOptional is Load, except a missing file yields the defaults plus
// environment overrides.
func LoadOptional(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return finish(&Config{})
	}
	return cfg, err
}

func finish(cfg *Config) (*Config, error) {
	if err := envconfig.Process("smsledger", cfg); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}
	if err := cfg.validateAndAddDefaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default() *Config {
	return &Config{
		Parser: ParserConfig{
			Location: DefaultLocation,
		},
		Source: SourceConfig{
			Format:       DefaultSourceFormat,
			LookbackDays: DefaultLookbackDays,
			MaxMessages:  DefaultMaxMessages,
		},
		Export: ExportConfig{
			Format: DefaultExportFormat,
		},
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

func (c *Config) validateAndAddDefaults() error {
	c.Parser.Location = strings.TrimSpace(c.Parser.Location)
	if c.Parser.Location == "" {
		c.Parser.Location = DefaultLocation
	}
	if c.Source.Format == "" {
		c.Source.Format = DefaultSourceFormat
	}
	if c.Source.LookbackDays == 0 {
		c.Source.LookbackDays = DefaultLookbackDays
	}
	if c.Source.MaxMessages == 0 {
		c.Source.MaxMessages = DefaultMaxMessages
	}
	if c.Export.Format == "" {
		c.Export.Format = DefaultExportFormat
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogFormat
	}

	return validation.Errors{
		"parser": validation.ValidateStruct(&c.Parser,
			validation.Field(&c.Parser.Location, validation.By(loadableLocation)),
		),
		"source": validation.ValidateStruct(&c.Source,
			validation.Field(&c.Source.LookbackDays, validation.Min(1)),
			validation.Field(&c.Source.MaxMessages, validation.Min(1)),
		),
		"export": validation.ValidateStruct(&c.Export,
			validation.Field(&c.Export.Format, validation.In("csv", "json")),
		),
		"log": validation.ValidateStruct(&c.Log,
			validation.Field(&c.Log.Level, validation.By(parsableLevel)),
			validation.Field(&c.Log.Format, validation.In("text", "json")),
		),
	}.Filter()
}

func loadableLocation(value interface{}) error {
	name, _ := value.(string)
	if _, err := time.LoadLocation(name); err != nil {
		return fmt.Errorf("unknown time zone %q", name)
	}
	return nil
}

// Location returns the zone SMS timestamps are interpreted in.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Parser.Location)
	if err != nil {
		return nil, fmt.Errorf("loading location %q: %w", c.Parser.Location, err)
	}
	return loc, nil
}

// Since returns the start of the lookback window ending at now.
func (c *Config) Since(now time.Time) time.Time {
	return now.AddDate(0, 0, -c.Source.LookbackDays)
}
