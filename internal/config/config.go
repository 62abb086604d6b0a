package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store   StoreConfig   `yaml:"store" mapstructure:"store"`
	Analyze AnalyzeConfig `yaml:"analyze" mapstructure:"analyze"`
	Batch   BatchConfig   `yaml:"batch" mapstructure:"batch"`
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the run history database.
type StoreConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// AnalyzeConfig configures analysis defaults. The assumed figures backstop
// facts that omit market context; wherever one is used it is surfaced on the
// result's assumptions.
type AnalyzeConfig struct {
	Format                     string  `yaml:"format" mapstructure:"format"`
	AssumedSubmarketVacancyPct float64 `yaml:"assumed_submarket_vacancy_pct" mapstructure:"assumed_submarket_vacancy_pct"`
	AssumedNationalAvgWage     float64 `yaml:"assumed_national_avg_wage" mapstructure:"assumed_national_avg_wage"`
}

// BatchConfig configures batch processing.
type BatchConfig struct {
	MaxConcurrentFiles int `yaml:"max_concurrent_files" mapstructure:"max_concurrent_files"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("DEAL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.path", "deal-analyzer.db")
	v.SetDefault("analyze.format", "table")
	v.SetDefault("analyze.assumed_submarket_vacancy_pct", 15.0)
	v.SetDefault("analyze.assumed_national_avg_wage", 18.50)
	v.SetDefault("batch.max_concurrent_files", 5)
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks the configuration for the given mode ("analyze", "batch",
// "serve"). Shared bounds are checked for every mode.
func (c *Config) Validate(mode string) error {
	var problems []string

	switch mode {
	case "analyze", "batch":
	case "serve":
		if c.Server.Port <= 0 {
			problems = append(problems, "server.port must be > 0")
		}
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if c.Batch.MaxConcurrentFiles < 1 || c.Batch.MaxConcurrentFiles > 50 {
		problems = append(problems, "batch.max_concurrent_files must be between 1 and 50")
	}
	if v := c.Analyze.AssumedSubmarketVacancyPct; v <= 0 || v > 100 {
		problems = append(problems, "analyze.assumed_submarket_vacancy_pct must be in (0,100]")
	}
	if c.Analyze.AssumedNationalAvgWage <= 0 {
		problems = append(problems, "analyze.assumed_national_avg_wage must be > 0")
	}

	if len(problems) > 0 {
		return eris.New("config: " + strings.Join(problems, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
