package main

import (
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/GottfriedHerold/PseudoMersenne/pseudomersenne/common"
)

// EnvPrefix is the prefix of environment variables that override config file settings.
const EnvPrefix = "PMFIELD"

// Config is the configuration of pmfield.
type Config struct {
	LogLevel string                   `mapstructure:"logLevel" yaml:"logLevel"`
	Format   string                   `mapstructure:"format" yaml:"format"` // "hex" or "dec"
	Fields   []common.FieldParameters `mapstructure:"fields" yaml:"fields"`
}

const (
	formatHex = "hex"
	formatDec = "dec"
)

// loadConfig reads the config file at path (if non-empty), applies environment overrides and values of explicitly set flags.
func loadConfig(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetDefault("logLevel", "warn")
	v.SetDefault("format", formatHex)

	if err := v.BindPFlag("logLevel", flags.Lookup("log-level")); err != nil {
		return nil, errors.Wrap(err, "cannot bind flag log-level")
	}
	if err := v.BindPFlag("format", flags.Lookup("format")); err != nil {
		return nil, errors.Wrap(err, "cannot bind flag format")
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "cannot read config file %s", path)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "cannot parse config")
	}
	switch cfg.Format {
	case formatHex, formatDec:
	default:
		return nil, errors.Errorf("unknown output format %q, expected %q or %q", cfg.Format, formatHex, formatDec)
	}
	for i := range cfg.Fields {
		if err := cfg.Fields[i].Validate(); err != nil {
			return nil, errors.WithMessagef(err, "custom field #%d in config", i)
		}
	}
	return &cfg, nil
}

// newLogger creates a console logger writing to w at the given level.
func newLogger(level string, w io.Writer) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid log level %q", level)
	}
	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.AddSync(w), lvl)
	return zap.New(core).Named("pmfield"), nil
}
