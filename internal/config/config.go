package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Environment string       `mapstructure:"environment"`
	AppHost     string       `mapstructure:"host"`
	ListenAddr  string       `mapstructure:"listen_addr"`
	DB          DBConfig     `mapstructure:"db"`
	JWT         JWTConfig    `mapstructure:"jwt"`
	CORS        CORSConfig   `mapstructure:"cors"`
	Cookie      CookieConfig `mapstructure:"cookie"`
}

type DBConfig struct {
	Source string `mapstructure:"source"`
}

type JWTConfig struct {
	Secret         string `mapstructure:"secret"`
	ExpirationDays int    `mapstructure:"expiration_days"`
}

type CORSConfig struct {
	Origins []string `mapstructure:"origins"`
}

type CookieConfig struct {
	Secure   bool   `mapstructure:"secure"`
	SameSite string `mapstructure:"samesite"`
	Domain   string `mapstructure:"domain"`
}

func Load() (*Config, error) {
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("/configs")
	viper.SetConfigName("settings")
	viper.SetConfigType("yml")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("environment", "development")
	viper.SetDefault("listen_addr", ":8080")
	viper.SetDefault("jwt.expiration_days", 7)
	viper.SetDefault("cookie.samesite", "lax")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) TokenTTL() time.Duration {
	days := c.JWT.ExpirationDays
	if days <= 0 {
		days = 7
	}
	return time.Duration(days) * 24 * time.Hour
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}
