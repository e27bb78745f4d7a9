package config

import "github.com/minhngo/storefront/pkg/config"

type ServiceConfig struct {
	config.Config

	// StrictStatusFlow restricts transitions to pending -> completed or
	// cancelled and makes those terminal. Off by default.
	StrictStatusFlow bool
}

func Load() ServiceConfig {
	cfg := config.Load()

	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	config.MustNonEmptyBytes(cfg.JWTSecret, "JWT_SECRET")
	config.MustNonEmpty(cfg.CatalogURL, "CATALOG_URL")

	return ServiceConfig{
		Config:           cfg,
		StrictStatusFlow: config.EnvBool("ORDER_STRICT_STATUS"),
	}
}
