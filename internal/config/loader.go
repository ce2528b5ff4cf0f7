package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// configName is the config file name without extension.
const configName = ".lintgate"

// configType is the config file format.
const configType = "yaml"

// envPrefix is the environment variable prefix for lintgate settings.
const envPrefix = "LINTGATE"

// envKeySeparator is the nested key separator in environment variable names.
const envKeySeparator = "_"

// envUpdateAnyway is the override directive: when set to exactly "1" the
// updater may grow the baseline despite a detected regression.
const envUpdateAnyway = envPrefix + "_UPDATE_ANYWAY"

// Load builds the configuration from defaults, an optional config file,
// and LINTGATE_* environment variables, in increasing precedence. An
// explicit configPath wins over the search in CWD and $HOME; a missing
// searched file is not an error.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("baseline", DefaultBaseline)
	v.SetDefault("clippy.args", []string{})

	v.SetConfigType(configType)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", envKeySeparator))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(".")

		if home, homeErr := os.UserHomeDir(); homeErr == nil {
			v.AddConfigPath(home)
		}
	}

	if readErr := v.ReadInConfig(); readErr != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFound) {
			return nil, fmt.Errorf("read config: %w", readErr)
		}
	}

	var cfg Config

	if unmarshalErr := v.Unmarshal(&cfg); unmarshalErr != nil {
		return nil, fmt.Errorf("unmarshal config: %w", unmarshalErr)
	}

	if validateErr := cfg.Validate(); validateErr != nil {
		return nil, fmt.Errorf("validate config: %w", validateErr)
	}

	return &cfg, nil
}

// UpdateAnyway reports whether the override directive is active. Only the
// literal value "1" counts.
func UpdateAnyway() bool {
	return os.Getenv(envUpdateAnyway) == "1"
}
