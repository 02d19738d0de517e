package main

import (
	"context"
	"time"

	"budget/internal/cache"
	"budget/internal/cli"
	apphttp "budget/internal/http"
	"budget/internal/log"
	"budget/internal/services"
	"budget/internal/session"
)

func main() {
	cli.LoadEnvFile()

	cfg, err := cli.LoadAndValidateConfig()
	if err != nil {
		cli.Exit(log.New(log.DefaultConfig()), "Invalid configuration", err)
	}
	logger := cli.SetupLogger(cfg.LogLevel)

	sessions := session.NewManager(session.Config{
		CookieName:  cfg.SessionCookie,
		TTL:         cfg.SessionTTL,
		MaxSessions: cfg.MaxSessions,
		Secure:      cfg.SecureCookies,
	}, logger)
	intake := services.NewTransactionService(logger)

	srv := apphttp.NewServer(cfg.Addr(), sessions, intake, apphttp.Options{
		Logger:             logger,
		SurfaceRejections:  cfg.SurfaceRejections,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		Chrome: apphttp.Chrome{
			Hide:       cfg.HideChrome,
			FooterText: cfg.FooterText,
			FooterLink: cfg.FooterLink,
		},
	})

	sweeper := cache.NewManager()
	sweeper.Register(sessions.Cleaner())
	background := append(srv.Background(), func(ctx context.Context) error {
		return sweeper.Run(ctx, time.Minute)
	})

	logger.Info("Starting budget server",
		log.FieldOperation, log.OpStartup,
		"port", cfg.Port,
		"session_ttl", cfg.SessionTTL.String(),
		"max_sessions", cfg.MaxSessions,
		"chrome_hidden", cfg.HideChrome)

	if err := cli.Serve(context.Background(), logger, srv, cfg.ShutdownTimeout, background...); err != nil {
		cli.Exit(logger, "Server error", err)
	}
	logger.Info("Server stopped gracefully")
}
