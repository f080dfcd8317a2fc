package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Mode            string        `mapstructure:"mode"`
	Port            int           `mapstructure:"port"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
	MaxMessageSize  int64         `mapstructure:"max_message_size"`
	PingPeriod      time.Duration `mapstructure:"ping_period"`
	EmptyRoomGrace  time.Duration `mapstructure:"empty_room_grace"`
	UnjoinedRoomTTL time.Duration `mapstructure:"unjoined_room_ttl"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	v.SetConfigFile(fmt.Sprintf("config/config.%s.yaml", env))
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetDefault("mode", "release")
	v.SetDefault("port", 3001)
	v.SetDefault("allowed_origins", []string{"http://localhost:5173"})
	v.SetDefault("max_message_size", 1024)
	v.SetDefault("ping_period", "54s")
	v.SetDefault("empty_room_grace", "60s")
	v.SetDefault("unjoined_room_ttl", "5m")

	v.SetEnvPrefix("FULLCIRCLE")
	v.AutomaticEnv()

	// Missing config file is fine, defaults plus env cover it.
	_ = v.ReadInConfig()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
