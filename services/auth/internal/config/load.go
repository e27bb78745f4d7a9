package config

import "github.com/minhngo/storefront/pkg/config"

type ServiceConfig struct {
	config.Config

	// Seed credential for the injected in-memory repository.
	SeedUsername string
	SeedPassword string
	SeedRole     string
}

func Load() ServiceConfig {
	cfg := config.Load()

	config.MustNonEmptyBytes(cfg.JWTSecret, "JWT_SECRET")

	return ServiceConfig{
		Config:       cfg,
		SeedUsername: config.EnvDefault("AUTH_USERNAME", "admin"),
		SeedPassword: config.EnvDefault("AUTH_PASSWORD", "admin"),
		SeedRole:     config.EnvDefault("AUTH_ROLE", "Admin"),
	}
}
