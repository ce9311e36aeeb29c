package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"mapkit/internal/document"
)

const (
	configFileName = ".mapkit"
	configFileType = "yaml"
	envPrefix      = "MAPKIT"

	cfgKeyOutput     = "output"
	cfgKeyIndent     = "indent"
	cfgKeySeparator  = "separator"
	cfgKeyDebounceMs = "watch.debounce_ms"
	cfgKeyLogLevel   = "log.level"

	defaultOutput     = "yaml"
	defaultIndent     = document.DefaultIndent
	defaultSeparator  = "."
	defaultDebounceMs = 300
	defaultLogLevel   = "info"
)

// loadConfig reads the optional config file, MAPKIT_* environment variables
// and the output and separator flags, in increasing order of precedence.
// A missing config file is not an error unless it was named explicitly.
func loadConfig(cfgFile string, flags *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()

	v.SetDefault(cfgKeyOutput, defaultOutput)
	v.SetDefault(cfgKeyIndent, defaultIndent)
	v.SetDefault(cfgKeySeparator, defaultSeparator)
	v.SetDefault(cfgKeyDebounceMs, defaultDebounceMs)
	v.SetDefault(cfgKeyLogLevel, defaultLogLevel)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for _, key := range []string{cfgKeyOutput, cfgKeySeparator} {
		if f := flags.Lookup(key); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("bind flag %s: %w", key, err)
			}
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(configFileName)
		v.SetConfigType(configFileType)
		v.AddConfigPath(".")

		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "mapkit"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if err := validateConfig(v); err != nil {
		return nil, err
	}

	return v, nil
}

func validateConfig(v *viper.Viper) error {
	if _, err := document.ParseFormat(v.GetString(cfgKeyOutput)); err != nil {
		return fmt.Errorf("%s: %w", cfgKeyOutput, err)
	}

	sep := v.GetString(cfgKeySeparator)
	if sep == "" || strings.ContainsAny(sep, `=\`) {
		return fmt.Errorf("%s: %q cannot separate keys", cfgKeySeparator, sep)
	}

	if v.GetInt(cfgKeyIndent) < 1 {
		return fmt.Errorf("%s: must be positive", cfgKeyIndent)
	}

	return nil
}

func outputFormat(v *viper.Viper) document.Format {
	// validated by loadConfig
	f, _ := document.ParseFormat(v.GetString(cfgKeyOutput))
	return f
}

func debounce(v *viper.Viper) time.Duration {
	return time.Duration(v.GetInt(cfgKeyDebounceMs)) * time.Millisecond
}
