package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
)

const (
	DevEnv = "dev"
	ProEnv = "pro"
)

type Config struct {
	Env           string `env:"ENV" envDefault:"pro"`
	AddressListen string `env:"ADDRESS_LISTEN"`
	JWTSecret     string `env:"JWT_SECRET"`
	DBDriver      string `env:"DB_DRIVER" envDefault:"sqlite"`
	DBURL         string `env:"DB_URL"`
	WhitelistHost string `env:"WHITELIST_HOST"`
	EnableSignup  bool   `env:"ENABLE_SIGNUP"`

	// Web Push. Broadcast is disabled when the VAPID pair is absent.
	VAPIDPublicKey  string `env:"VAPID_PUBLIC_KEY"`
	VAPIDPrivateKey string `env:"VAPID_PRIVATE_KEY"`
	PushContact     string `env:"PUSH_CONTACT" envDefault:"mailto:admin@localhost"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.JWTSecret == "" {
		if cfg.Env != DevEnv {
			return Config{}, errors.New("no secret defined")
		}
		cfg.JWTSecret = "unsecure"
	}
	return cfg, nil
}

func (c Config) Dev() bool {
	return c.Env == DevEnv
}
