package main

import (
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/pflag"
	"github.com/tendermint/tendermint/libs/log"
)

// envPrefix is the prefix of every environment variable read by heirloomd,
// for example HEIRLOOM_BIND.
const envPrefix = "heirloom"

// Config is the runtime configuration of the daemon. Values come from the
// environment first and are overridden by explicitly set flags.
type Config struct {
	Home        string `envconfig:"HOME"`
	Bind        string `envconfig:"BIND" default:"tcp://localhost:26658"`
	MetricsAddr string `envconfig:"METRICS_ADDR" default:"localhost:9464"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	Debug       bool   `envconfig:"DEBUG"`
	History     bool   `envconfig:"HISTORY" default:"true"`
}

func defaultHome() string {
	return filepath.Join(os.ExpandEnv("$HOME"), ".heirloom")
}

// loadConfig reads the environment and applies the flags the user set.
func loadConfig(flags *pflag.FlagSet) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, err
	}
	if cfg.Home == "" {
		cfg.Home = defaultHome()
	}

	var err error
	flags.Visit(func(f *pflag.Flag) {
		if err != nil {
			return
		}
		switch f.Name {
		case flagHome:
			cfg.Home = f.Value.String()
		case flagBind:
			cfg.Bind = f.Value.String()
		case flagMetrics:
			cfg.MetricsAddr = f.Value.String()
		case flagLogLevel:
			cfg.LogLevel = f.Value.String()
		case flagDebug:
			cfg.Debug, err = flags.GetBool(flagDebug)
		case flagHistory:
			cfg.History, err = flags.GetBool(flagHistory)
		}
	})
	return &cfg, err
}

// newLogger builds the tendermint logger writing to stdout at the
// configured level.
func newLogger(cfg *Config) (log.Logger, error) {
	logger := log.NewTMLogger(log.NewSyncWriter(os.Stdout)).With("module", "heirloom")
	level := cfg.LogLevel
	if cfg.Debug {
		level = "debug"
	}
	opt, err := log.AllowLevel(level)
	if err != nil {
		return nil, err
	}
	return log.NewFilter(logger, opt), nil
}
