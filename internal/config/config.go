// Package config declares the runtime configuration parsed from environment
// variables (or flags) with the STOREFRONT prefix.
package config

import "time"

type Config struct {
	Web      Web
	Commerce Commerce
	Cart     Cart
	Shipping Shipping
	DB       DB
}

type Web struct {
	Addr            string        `conf:"default::8080"`
	ShutdownTimeout time.Duration `conf:"default:10s"`
	CORSOrigins     []string      `conf:"default:http://localhost:3000"`
}

// Commerce parameterizes the upstream GraphQL commerce API. With StoreDomain
// or AccessToken empty the gateway starts but every cart operation reports a
// configuration error without touching the network.
type Commerce struct {
	StoreDomain string        `conf:"example:shop.mystorefront.com"`
	APIVersion  string        `conf:"default:2024-07"`
	AccessToken string        `conf:"mask"`
	Timeout     time.Duration `conf:"default:10s"`
}

type Cart struct {
	DefaultCurrency  string        `conf:"default:USD"`
	OperationTimeout time.Duration `conf:"default:15s"`
	SessionTTL       time.Duration `conf:"default:720h"`
}

// Shipping carries the free-shipping threshold and flat rate as decimal
// strings; they are parsed once at composition time.
type Shipping struct {
	FreeThreshold string `conf:"default:149.00"`
	FlatRate      string `conf:"default:9.90"`
}

// DB points at the snapshot store. An empty DSN selects the in-memory
// snapshot repository.
type DB struct {
	DSN string
}
