// Package config loads env-tagged configuration structs from the process
// environment, reading a .env file once if one is present.
//
// Packages declare their own Config structs (ledger.AlgodConfig,
// entitlement.PGConfig, payment.Config) and load them at startup:
//
//	var cfg payment.Config
//	config.MustLoad(&cfg)
package config

import (
	"errors"
	"fmt"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	// ErrNilPointer is returned when a nil pointer is provided to Load.
	ErrNilPointer = errors.New("nil pointer provided to config loader")
	// ErrParsingConfig is returned when environment variables cannot be
	// parsed into the config struct.
	ErrParsingConfig = errors.New("failed to parse environment variables into config")
)

var defaultEnvLoaded sync.Once

// Load populates v from environment variables based on `env` field tags.
// The default .env file is loaded once per process; its absence is not an
// error.
func Load[T any](v *T) error {
	defaultEnvLoaded.Do(func() {
		_ = godotenv.Load()
	})

	if v == nil {
		return ErrNilPointer
	}

	if err := env.Parse(v); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}

	return nil
}

// MustLoad works like Load but panics if loading fails. Use for
// configurations the application cannot start without.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}
