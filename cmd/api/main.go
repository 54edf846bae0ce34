package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	server "liok_hotels/internal/adapters/http_server"
	"liok_hotels/internal/adapters/media"
	"liok_hotels/internal/adapters/observability"
	redisad "liok_hotels/internal/adapters/redis"
	"liok_hotels/internal/app"
	"liok_hotels/internal/domain"
	"liok_hotels/internal/shared"
	"liok_hotels/internal/storage/memory"
	mysqlrepo "liok_hotels/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, reg)

	var (
		repos    domain.Repositories
		sessions domain.SessionStore
		cache    domain.Cache
	)
	switch cfg.Storage {
	case "memory":
		log.Warn().Msg("in-memory storage: data is lost on restart")
		repos = memory.New().Repositories()
		sessions = memory.NewSessionStore(cfg.SessionTTL)
		if err := seedStaff(ctx, app.NewAuthService(repos.Users, cfg.BcryptCost), cfg); err != nil {
			log.Fatal().Err(err).Msg("seed staff user")
		}
	default:
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("sql.Open failed")
		}
		defer db.Close()
		if err := db.PingContext(ctx); err != nil {
			log.Fatal().Err(err).Msg("db.Ping failed")
		}
		db.SetConnMaxLifetime(5 * time.Minute)
		log.Info().Msg("database connection ok")
		repos = mysqlrepo.New(db).Repositories()

		rc := redisad.NewClient(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		defer rc.Close()
		if err := rc.Ping(ctx).Err(); err != nil {
			log.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("redis ping failed")
		}
		sessions = redisad.NewSessionStore(rc, cfg.SessionTTL)
		cache = redisad.NewCache(rc)
	}

	// deps
	store := media.NewLocal(cfg.MediaRoot)
	h := &server.Handlers{
		Catalog:   app.NewCatalogService(repos, store, cache, cfg.CacheTTL),
		Content:   app.NewContentService(repos, store),
		Inquiries: app.NewInquiryService(repos, observability.ObserveSubmission),
		Dashboard: app.NewDashboardService(repos),
		Auth:      app.NewAuthService(repos.Users, cfg.BcryptCost),
		Sessions:  sessions,
		Cookie:    server.CookieConfig{Secure: cfg.SessionSecure, TTL: cfg.SessionTTL},
		MediaURL:  cfg.MediaURL,
	}

	// http
	srv := server.New()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	if cfg.MediaServe {
		srv.Static(cfg.MediaURL, cfg.MediaRoot)
	}
	srv.MountHandlers(h)

	log.Info().Str("addr", cfg.HTTPAddr).Str("storage", cfg.Storage).Msg("site listening")
	if err := srv.Run(ctx, cfg.HTTPAddr); err != nil {
		log.Fatal().Err(err).Msg("http server failed")
	}
}

// seedStaff creates the configured staff account; in-memory storage starts
// with no users at all.
func seedStaff(ctx context.Context, auth *app.AuthService, cfg shared.Config) error {
	if cfg.StaffUsername == "" || cfg.StaffPassword == "" {
		return nil
	}
	u, _, err := auth.CreateStaff(ctx, cfg.StaffUsername, cfg.StaffPassword)
	if err != nil {
		return err
	}
	log.Info().Str("username", u.Username).Msg("staff user seeded")
	return nil
}
