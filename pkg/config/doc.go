// Package config loads process configuration from environment variables.
//
// Configuration structs declare their surface with `env` tags and are
// populated through the generic Load entry point. A .env file in the working
// directory is honored once per process, which keeps local development
// environments declarative without affecting deployments.
//
//	type RouterConfig struct {
//	    Strategy string `env:"MULTITENANCY_TYPE" envDefault:"schema"`
//	    Owner    string `env:"MULTITENANCY_DATABASE_OWNER,required"`
//	}
//
//	var cfg RouterConfig
//	if err := config.Load(&cfg); err != nil {
//	    // handle error
//	}
//
// MustLoad panics on failure and is intended for configuration the process
// cannot start without.
package config
