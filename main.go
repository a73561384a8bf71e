package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/skyblue-will/letterdrop/internal/game"
	"github.com/skyblue-will/letterdrop/internal/httpserver"
	"github.com/skyblue-will/letterdrop/internal/persist"
	"github.com/skyblue-will/letterdrop/internal/store"
	"github.com/skyblue-will/letterdrop/internal/words"
)

func main() {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := newCmd(cfg).Execute(); err != nil {
		log.Error().Err(err).Msg("letterdrop exited")
		os.Exit(1)
	}
}

func serve(cfg *Config) error {
	if lvl, err := zerolog.ParseLevel(cfg.logLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	if err := words.Init(); err != nil {
		log.Fatal().Err(err).Msg("failed to load word list")
	}

	var kv store.KV
	if cfg.dbPath == "" {
		log.Warn().Msg("no db path set, player state is in-memory only")
		kv = store.NewMemory()
	} else {
		var err error
		kv, err = store.OpenSQLite(cfg.dbPath)
		if err != nil {
			log.Fatal().Err(err).Str("db", cfg.dbPath).Msg("failed to open database")
		}
	}

	srv := httpserver.New(persist.New(kv), httpserver.Config{
		JWTSecret:    cfg.jwtSecret,
		ClientOrigin: cfg.clientOrigin,
		Game: game.Config{
			RevealInterval: cfg.revealInterval,
			SettleDelay:    cfg.settleDelay,
		},
	})

	log.Info().Str("addr", cfg.addr()).Int("words", words.Count()).Msg("starting letterdrop")
	return srv.Start(cfg.addr())
}
