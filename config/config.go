package config

import (
	"errors"

	"github.com/spf13/viper"
)

// Config holds every runtime setting the server reads. Values come from
// the environment (a .env file is loaded by main before this runs).
type Config struct {
	Port        string
	DatabaseURI string
	JWTSecret   string
	AppEnv      string

	MpesaConsumerKey    string
	MpesaConsumerSecret string
	MpesaShortcode      string
	MpesaPasskey        string
}

func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("DATABASE_URI", "kulachipo.db")
	v.SetDefault("APP_ENV", "development")

	cfg := &Config{
		Port:        v.GetString("PORT"),
		DatabaseURI: v.GetString("DATABASE_URI"),
		JWTSecret:   v.GetString("JWT_SECRET"),
		AppEnv:      v.GetString("APP_ENV"),

		MpesaConsumerKey:    v.GetString("MPESA_CONSUMER_KEY"),
		MpesaConsumerSecret: v.GetString("MPESA_CONSUMER_SECRET"),
		MpesaShortcode:      v.GetString("MPESA_SHORTCODE"),
		MpesaPasskey:        v.GetString("MPESA_PASSKEY"),
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET environment variable not set")
	}

	return cfg, nil
}

// MpesaConfigured reports whether all M-Pesa credentials are present.
func (c *Config) MpesaConfigured() bool {
	return c.MpesaConsumerKey != "" && c.MpesaConsumerSecret != "" &&
		c.MpesaShortcode != "" && c.MpesaPasskey != ""
}
