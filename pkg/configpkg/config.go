// Package configpkg provides parsing functionality for environment variables.
package configpkg

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

// Config stores all configuration of the application.
//
// The values are read by viper from an optional app.env file and environment variables.
type Config struct {
	Environement   string `mapstructure:"GO_ENV"`
	ServerAddress  string `mapstructure:"SERVER_ADDRESS"`
	DBDriver       string `mapstructure:"DB_DRIVER"`
	DBSource       string `mapstructure:"DB_SOURCE"`
	KafkaBrokers   string `mapstructure:"KAFKA_BROKERS"`
	KafkaTopic     string `mapstructure:"KAFKA_TOPIC"`
	MaxUploadBytes int64  `mapstructure:"MAX_UPLOAD_BYTES"`
}

var defaults = map[string]any{
	"GO_ENV":           "production",
	"SERVER_ADDRESS":   "0.0.0.0:8080",
	"DB_DRIVER":        "postgres",
	"DB_SOURCE":        "",
	"KAFKA_BROKERS":    "",
	"KAFKA_TOPIC":      "account_states",
	"MAX_UPLOAD_BYTES": 32 << 20,
}

// Load reads configuration from file or environment variables.
// A missing app.env file is not an error.
func Load(path string) (Config, error) {
	var c Config

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return c, err
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}

	return c, nil
}

// Brokers returns the configured Kafka brokers, or nil when none are set.
func (c Config) Brokers() []string {
	var brokers []string

	for _, b := range strings.Split(c.KafkaBrokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}

	return brokers
}
