package main

import (
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/recruiting-bingo/go-server/internal/card"
	"github.com/recruiting-bingo/go-server/internal/httpserver"
	"github.com/recruiting-bingo/go-server/internal/room"
	"github.com/recruiting-bingo/go-server/internal/store"
	"github.com/recruiting-bingo/go-server/internal/ws"
)

func main() {
	_ = godotenv.Load()
	cfg, err := loadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	db, err := openDB(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer db.Close()
	if err := migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	hub := ws.NewHub()
	engine := room.NewEngine(store.NewSQLiteStore(db), hub, card.DefaultLibrary())
	srv := httpserver.New(engine, hub)

	log.Info().Str("port", cfg.Port).Str("clientOrigin", cfg.ClientOrigin).Msg("starting bingo-go")
	if err := srv.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
