package config

import (
	"time"

	"github.com/askdesk/askdesk-go/consts"

	"github.com/spf13/viper"
)

// API backend endpoint configuration
type API struct {
	BaseURL string
	Timeout time.Duration
}

// Session persisted session record configuration
type Session struct {
	Dir string
}

// Redis optional cache backend configuration
type Redis struct {
	Addr     string
	Password string
	DB       int
}

func getAPIConfig(v *viper.Viper) *API {
	timeout := v.GetDuration("api.timeout")
	if timeout <= 0 {
		timeout = consts.RequestTimeout
	}
	return &API{
		BaseURL: v.GetString("api.base_url"),
		Timeout: timeout,
	}
}

func getSessionConfig(v *viper.Viper) *Session {
	return &Session{
		Dir: v.GetString("session.dir"),
	}
}

func getRedisConfig(v *viper.Viper) *Redis {
	if !v.IsSet("redis.addr") {
		return nil
	}
	return &Redis{
		Addr:     v.GetString("redis.addr"),
		Password: v.GetString("redis.password"),
		DB:       v.GetInt("redis.db"),
	}
}
