package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/dkoosis/sift/pkg/diag"
)

// Names used to locate settings.
const (
	EnvPrefix = "SIFT"
	FileName  = ".sift"
)

// Defaults.
const (
	DefaultFormat = "auto"
	DefaultTop    = 20
	DefaultTheme  = "default"

	// HistoryDefault selects the history database in the user config dir.
	HistoryDefault = "default"
)

// Config is the resolved configuration of one invocation.
type Config struct {
	Format  string   `mapstructure:"format" validate:"oneof=auto json yaml markdown text terminal llm sarif"`
	Output  string   `mapstructure:"output"`
	Top     int      `mapstructure:"top" validate:"min=0,max=10000"`
	Root    string   `mapstructure:"root"`
	Theme   string   `mapstructure:"theme" validate:"oneof=default orca mono"`
	Width   int      `mapstructure:"width" validate:"min=0"`
	History string   `mapstructure:"history"`
	Label   string   `mapstructure:"label" validate:"max=200"`
	FailOn  string   `mapstructure:"fail-on" validate:"omitempty,oneof=error warning info"`
	Verbose bool     `mapstructure:"verbose"`
	Inputs  []string `mapstructure:"inputs" validate:"dive,required"`

	// File is the config file that was read, if any.
	File string `mapstructure:"-"`
}

var validate = validator.New()

// New returns a viper instance with sift's defaults and environment binding.
// Callers bind flags to it before Load.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("format", DefaultFormat)
	v.SetDefault("output", "")
	v.SetDefault("top", DefaultTop)
	v.SetDefault("root", "")
	v.SetDefault("theme", DefaultTheme)
	v.SetDefault("width", 0)
	v.SetDefault("history", "")
	v.SetDefault("label", "")
	v.SetDefault("fail-on", "")
	v.SetDefault("verbose", false)
	v.SetDefault("inputs", []string{})
	return v
}

// Load reads the config file (file, or .sift.yaml from the usual places),
// merges env and bound flags, and validates the result. A missing default
// config file is fine; a missing explicit one is an error.
func Load(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "sift"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		cfg.Theme = "mono"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate config: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	if field == "failon" {
		field = "fail-on"
	}
	switch fe.Tag() {
	case "oneof":
		return fmt.Sprintf("%s %q must be one of: %s", field, fmt.Sprint(fe.Value()), strings.ReplaceAll(fe.Param(), " ", ", "))
	case "min", "max":
		return fmt.Sprintf("%s %v out of range (%s %s)", field, fe.Value(), fe.Tag(), fe.Param())
	default:
		return fmt.Sprintf("%s fails %q", field, fe.Tag())
	}
}

// FailOnSeverity returns the threshold severity and whether one is set.
func (c *Config) FailOnSeverity() (diag.Severity, bool) {
	if c.FailOn == "" {
		return "", false
	}
	s, err := diag.ParseSeverity(c.FailOn)
	if err != nil {
		return "", false
	}
	return s, true
}

// HistoryPath resolves the history setting. An empty result means history
// is disabled.
func (c *Config) HistoryPath(defaultPath func() (string, error)) (string, error) {
	if c.History != HistoryDefault {
		return c.History, nil
	}
	p, err := defaultPath()
	if err != nil {
		return "", fmt.Errorf("history path: %w", err)
	}
	return p, nil
}
