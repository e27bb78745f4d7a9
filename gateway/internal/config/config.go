package config

import (
	"os"

	"github.com/minhngo/storefront/pkg/config"
)

type Config struct {
	ListenAddr string
	AuthURL    string
	CatalogURL string
	OrderURL   string
	StaticDir  string
}

func Load() *Config {
	cfg := &Config{
		ListenAddr: config.EnvDefault("GATEWAY_ADDR", ":8080"),
		AuthURL:    os.Getenv("AUTH_URL"),
		CatalogURL: os.Getenv("CATALOG_URL"),
		OrderURL:   os.Getenv("ORDER_URL"),
		StaticDir:  config.EnvDefault("STATIC_DIR", "web"),
	}

	config.MustNonEmpty(cfg.AuthURL, "AUTH_URL")
	config.MustNonEmpty(cfg.CatalogURL, "CATALOG_URL")
	config.MustNonEmpty(cfg.OrderURL, "ORDER_URL")
	return cfg
}
