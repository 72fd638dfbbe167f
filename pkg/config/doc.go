// Package config loads configuration structs from environment variables.
//
// Load parses `env` struct tags via caarlos0/env after bootstrapping the
// process environment from an optional .env file. Each config type is parsed
// once and cached for the process lifetime, so independent components can
// load the same config without re-reading the environment.
//
//	type HTTPConfig struct {
//		Addr string `env:"HTTP_ADDR" envDefault:":8080"`
//	}
//
//	var cfg HTTPConfig
//	config.MustLoad(&cfg)
package config
