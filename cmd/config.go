package cmd

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Config holds xmlhl settings from the config file, XMLHL_* variables and
// flags, in increasing order of precedence.
type Config struct {
	Charset  string `mapstructure:"charset"`
	Output   string `mapstructure:"output"`
	NoColor  bool   `mapstructure:"no_color"`
	LogLevel string `mapstructure:"log_level"`
}

// Defaults returns the settings used when nothing else is configured.
func Defaults() Config {
	return Config{
		Charset:  "UTF-8",
		Output:   "table",
		LogLevel: "warning",
	}
}

// loadConfig reads cfgFile, or the default config location when cfgFile is
// empty. A missing default config file is not an error.
func loadConfig(v *viper.Viper, cfgFile string) (Config, error) {
	defaults := Defaults()
	v.SetDefault("charset", defaults.Charset)
	v.SetDefault("output", defaults.Output)
	v.SetDefault("no_color", defaults.NoColor)
	v.SetDefault("log_level", defaults.LogLevel)

	v.SetEnvPrefix("xmlhl")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "xmlhl"))
		}
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return Config{}, errors.Wrap(err, "read config")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "parse config")
	}
	return cfg, nil
}
