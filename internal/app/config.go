package app

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config contains global runtime configuration.
type Config struct {
	Project  string
	LogLevel string
}

// MustLoadConfigFromViper builds Config from Viper-bound flags/env.
func MustLoadConfigFromViper() Config {
	p := viper.GetString("project")
	if p == "" {
		panic("project root is empty")
	}
	return Config{
		Project:  p,
		LogLevel: viper.GetString("log_level"),
	}
}

// Validate returns error if configuration is invalid.
func (c Config) Validate() error {
	if c.Project == "" {
		return fmt.Errorf("project root cannot be empty")
	}
	return nil
}
