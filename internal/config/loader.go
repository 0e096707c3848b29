package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kartikahlawat/Taks-manager/internal/errors"
	"github.com/spf13/viper"
)

const (
	// ConfigFileName is the per-directory config file name.
	ConfigFileName = ".taskmanager.yaml"
	// GlobalConfigDir is the directory for the user config, relative to home.
	GlobalConfigDir = ".config/taskmanager"
	// GlobalConfigFile is the user config file name.
	GlobalConfigFile = "config.yaml"
	// EnvPrefix prefixes environment overrides, e.g. TASKMANAGER_LOG_PATH.
	EnvPrefix = "TASKMANAGER"
	// DotEnvFile is loaded from the working directory before reading the environment.
	DotEnvFile = ".env"
)

// Find locates the config file using the search order:
// 1. Explicit path (from --config flag)
// 2. .taskmanager.yaml in current directory
// 3. ~/.config/taskmanager/config.yaml
//
// Returns the path to the config file, or empty string if not found.
func Find(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			if os.IsNotExist(err) {
				return "", errors.WrapWithCode(err, errors.ErrConfig,
					"Specified config file not found: "+explicit,
					"Check the path is correct")
			}
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot access config file: "+explicit,
				"Check file permissions")
		}
		return explicit, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot determine current directory",
			"Check directory permissions")
	}

	localConfig := filepath.Join(cwd, ConfigFileName)
	if _, err := os.Stat(localConfig); err == nil {
		return localConfig, nil
	}

	if home, err := os.UserHomeDir(); err == nil && home != "" {
		globalConfig := filepath.Join(home, GlobalConfigDir, GlobalConfigFile)
		if _, err := os.Stat(globalConfig); err == nil {
			return globalConfig, nil
		}
	}

	return "", nil
}

// SetDefaults registers every config key with its default value. Environment
// overrides only apply to keys viper knows about, so all keys must be set here.
func SetDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("interval", d.Interval)
	v.SetDefault("read_timeout", d.ReadTimeout)
	v.SetDefault("process_timeout", d.ProcessTimeout)
	v.SetDefault("history_size", d.HistorySize)
	v.SetDefault("top_processes", d.TopProcesses)
	v.SetDefault("log.enabled", d.Log.Enabled)
	v.SetDefault("log.path", d.Log.Path)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("log.retry_every", d.Log.RetryEvery)
	v.SetDefault("log.queue_size", d.Log.QueueSize)
	v.SetDefault("display.mode", d.Display.Mode)
}

// Load builds the effective config from defaults, the config file, .env,
// TASKMANAGER_* environment variables and whatever flags are bound to v.
// v may be nil. It returns the config and the path of the file read, which
// is empty when no file was found.
func Load(explicit string, v *viper.Viper) (*Config, string, error) {
	if v == nil {
		v = viper.New()
	}

	if err := loadDotEnv(DotEnvFile); err != nil {
		return nil, "", err
	}

	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	path, err := Find(explicit)
	if err != nil {
		return nil, "", err
	}

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, "", errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to read config file",
				"Check the file exists and is valid YAML: "+path)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		where := "your environment and flags"
		if path != "" {
			where = path
		}
		return nil, "", errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config format",
			"Check the values in "+where)
	}

	cfg.Log.Path = ExpandPath(cfg.Log.Path)

	if err := Validate(cfg); err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

// loadDotEnv loads variables from path without overriding ones already set.
// A missing file is not an error.
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to read "+path,
			"Check the file uses KEY=value lines")
	}
	return nil
}
