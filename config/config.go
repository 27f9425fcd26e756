package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	logger "github.com/askdesk/askdesk-go/logging/logger/config"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

var (
	config *Config
	mu     sync.Mutex
	v      *viper.Viper
)

func init() {
	v = viper.New()
}

// Config represents the client configuration
type Config struct {
	AppName string
	RunMode string
	API     *API
	Session *Session
	Logger  *logger.Config
	Redis   *Redis
	Viper   *viper.Viper
}

// Init loads the configuration on first use; later calls return the
// loaded instance. A failed load is not cached, so Init may be retried.
func Init(configPath string) (*Config, error) {
	mu.Lock()
	defer mu.Unlock()

	if config != nil {
		return config, nil
	}
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	config = cfg
	return config, nil
}

// GetConfig returns the loaded configuration
func GetConfig() (*Config, error) {
	mu.Lock()
	defer mu.Unlock()
	if config == nil {
		return nil, fmt.Errorf("configuration not initialized")
	}
	return config, nil
}

// LoadConfig loads the configuration from the file
func LoadConfig(configPath string) (*Config, error) {
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("askdesk")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.askdesk")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("askdesk")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// a missing file falls back to defaults and env overrides
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound && !os.IsNotExist(err) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	return buildConfig(v), nil
}

// Watch reloads the configuration when the file changes
func Watch(onChange func(*Config)) {
	v.OnConfigChange(func(e fsnotify.Event) {
		mu.Lock()
		defer mu.Unlock()
		config = buildConfig(v)
		if onChange != nil {
			onChange(config)
		}
	})
	v.WatchConfig()
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_name", "askdesk")
	v.SetDefault("run_mode", "release")
	v.SetDefault("api.base_url", "http://localhost:5000/api")
	v.SetDefault("api.timeout", "10s")
	v.SetDefault("session.dir", defaultSessionDir())
	v.SetDefault("logger.level", 4)
	v.SetDefault("logger.format", "text")
}

func buildConfig(v *viper.Viper) *Config {
	return &Config{
		AppName: v.GetString("app_name"),
		RunMode: v.GetString("run_mode"),
		API:     getAPIConfig(v),
		Session: getSessionConfig(v),
		Logger:  logger.GetConfig(v),
		Redis:   getRedisConfig(v),
		Viper:   v,
	}
}

func defaultSessionDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "askdesk")
	}
	return "."
}
