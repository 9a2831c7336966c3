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
	Source    SourceConfig    `yaml:"source" mapstructure:"source"`
	Normalize NormalizeConfig `yaml:"normalize" mapstructure:"normalize"`
	Output    OutputConfig    `yaml:"output" mapstructure:"output"`
	Report    ReportConfig    `yaml:"report" mapstructure:"report"`
	Export    ExportConfig    `yaml:"export" mapstructure:"export"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// SourceConfig locates the spreadsheet to load.
type SourceConfig struct {
	Path       string `yaml:"path" mapstructure:"path"`
	SheetName  string `yaml:"sheet_name" mapstructure:"sheet_name"`
	SheetIndex int    `yaml:"sheet_index" mapstructure:"sheet_index"`
}

// NormalizeConfig configures column mapping overrides.
type NormalizeConfig struct {
	SchemaPath string `yaml:"schema_path" mapstructure:"schema_path"`
}

// OutputConfig configures where EDA artifacts are written.
type OutputConfig struct {
	Dir string `yaml:"dir" mapstructure:"dir"`
}

// ReportConfig configures aggregation limits and report rendering.
type ReportConfig struct {
	TopMunicipalities       int  `yaml:"top_municipalities" mapstructure:"top_municipalities"`
	TopStatesInReport       int  `yaml:"top_states" mapstructure:"top_states"`
	TopMunicipalitiesReport int  `yaml:"top_municipalities_report" mapstructure:"top_municipalities_report"`
	IncludeTimestamp        bool `yaml:"include_timestamp" mapstructure:"include_timestamp"`
}

// ExportConfig configures the front-end exports.
type ExportConfig struct {
	Dir        string   `yaml:"dir" mapstructure:"dir"`
	SampleSize int      `yaml:"sample_size" mapstructure:"sample_size"`
	MockFormat string   `yaml:"mock_format" mapstructure:"mock_format"`
	MockFile   string   `yaml:"mock_file" mapstructure:"mock_file"`
	Formats    []string `yaml:"formats" mapstructure:"formats"`
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
	v.SetEnvPrefix("SORO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("source.path", "soro-map-mvp/antivenom_db.xlsx")
	v.SetDefault("source.sheet_name", "")
	v.SetDefault("source.sheet_index", 0)
	v.SetDefault("normalize.schema_path", "")
	v.SetDefault("output.dir", ".database_info")
	v.SetDefault("report.top_municipalities", 20)
	v.SetDefault("report.top_states", 10)
	v.SetDefault("report.top_municipalities_report", 10)
	v.SetDefault("report.include_timestamp", false)
	v.SetDefault("export.dir", "public/data")
	v.SetDefault("export.sample_size", 50)
	v.SetDefault("export.mock_format", "ts")
	v.SetDefault("export.mock_file", "centros.mock.ts")
	v.SetDefault("export.formats", []string{"json"})
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

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks option values that would otherwise fail late in a run.
func (c *Config) Validate() error {
	if c.Source.Path == "" {
		return eris.New("config: source.path is required")
	}
	if c.Source.SheetIndex < 0 {
		return eris.Errorf("config: source.sheet_index must be >= 0, got %d", c.Source.SheetIndex)
	}
	switch c.Export.MockFormat {
	case "ts", "json":
	default:
		return eris.Errorf("config: export.mock_format must be ts or json, got %q", c.Export.MockFormat)
	}
	for _, f := range c.Export.Formats {
		switch f {
		case "json", "csv", "geojson", "shp":
		default:
			return eris.Errorf("config: unknown export format %q", f)
		}
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
