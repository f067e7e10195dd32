// Package config loads runtime settings. Everything has a default; env vars
// with the TAXENGINE_ prefix and an optional taxengine.yaml override it.
package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port          int
	RulePackDir   string
	PackStaleness time.Duration
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetDefault("server.port", 8080)
	v.SetDefault("rulepack.dir", "")
	v.SetDefault("rulepack.staleness_days", 35)

	v.SetEnvPrefix("TAXENGINE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("taxengine")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	return &Config{
		Port:          v.GetInt("server.port"),
		RulePackDir:   v.GetString("rulepack.dir"),
		PackStaleness: time.Duration(v.GetInt("rulepack.staleness_days")) * 24 * time.Hour,
	}, nil
}
