// config.go
//
// Environment-driven configuration for the bingo server. Values come from
// the process environment (optionally seeded from a .env file in main).

package main

import "github.com/kelseyhightower/envconfig"

type config struct {
	Port         string `envconfig:"PORT" default:"8787"`
	DBPath       string `envconfig:"DB_PATH" default:"./data/bingo.db"`
	LogLevel     string `envconfig:"LOG_LEVEL" default:"info"`
	ClientOrigin string `envconfig:"CLIENT_ORIGIN" default:"http://localhost:5173"`
}

func loadConfig() (config, error) {
	var c config
	err := envconfig.Process("", &c)
	return c, err
}
