package main

import (
	"context"
	"net/http"
	"os"
	"time"

	scs "github.com/alexedwards/scs/v2"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/bgeissle-a11y/your-dressage-journey-sub002/internal/auth"
	"github.com/bgeissle-a11y/your-dressage-journey-sub002/internal/clock"
	"github.com/bgeissle-a11y/your-dressage-journey-sub002/internal/config"
	"github.com/bgeissle-a11y/your-dressage-journey-sub002/internal/db"
	"github.com/bgeissle-a11y/your-dressage-journey-sub002/internal/email"
	"github.com/bgeissle-a11y/your-dressage-journey-sub002/internal/http/routes"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("load config")
	}

	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect to database")
	}
	defer pool.Close()
	queries := db.New(pool)

	sess := scs.New()
	sess.Lifetime = 12 * time.Hour
	sess.Cookie.HttpOnly = true
	sess.Cookie.SameSite = http.SameSiteLaxMode
	sess.Cookie.Secure = false

	ml := auth.MagicLink{
		Secret:  []byte(cfg.JWTSecret),
		BaseURL: cfg.BaseURL,
	}

	sender := email.NewSMTPSender(cfg.SMTPAddr, cfg.SMTPFrom)

	tasks := asynq.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() { _ = tasks.Close() }()

	s := routes.New(routes.ServerOptions{
		Sess:  sess,
		Q:     queries,
		Magic: ml,
		Cfg:   cfg,
		Email: sender,
		Tasks: tasks,
		Clk:   clock.System{},
	})
	h := hlog.NewHandler(logger)(s.Router)

	logger.Info().Str("port", cfg.Port).Msg("api listening")
	srv := &http.Server{Addr: ":" + cfg.Port, Handler: sess.LoadAndSave(h)}
	logger.Fatal().Err(srv.ListenAndServe()).Msg("server stopped")
}
