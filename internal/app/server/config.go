package server

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	IdleTimeout time.Duration

	ContentRoot  string
	FetchTimeout time.Duration

	LogLevel       string
	LogDevelopment bool
}

// LoadConfig reads config.yaml from the given directories (./configs/server
// and . when none are given). A missing file leaves the defaults in place.
// SKB_* environment variables override file values.
func LoadConfig(paths ...string) (Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{"./configs/server", "."}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetDefault("server.port", "8080")
	v.SetDefault("server.idle_timeout", "5m")
	v.SetDefault("content.root", "./content")
	v.SetDefault("content.fetch_timeout", "10s")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)

	v.SetEnvPrefix("SKB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	idleTimeout, err := time.ParseDuration(v.GetString("server.idle_timeout"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid server.idle_timeout: %w", err)
	}
	fetchTimeout, err := time.ParseDuration(v.GetString("content.fetch_timeout"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid content.fetch_timeout: %w", err)
	}

	return Config{
		Port:           v.GetString("server.port"),
		IdleTimeout:    idleTimeout,
		ContentRoot:    v.GetString("content.root"),
		FetchTimeout:   fetchTimeout,
		LogLevel:       v.GetString("log.level"),
		LogDevelopment: v.GetBool("log.development"),
	}, nil
}
