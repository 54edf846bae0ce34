// Command createstaff adds a back-office account, or resets the password of
// an existing one and makes it staff.
//
//	createstaff -username admin            # password from LIOK_STAFF_PASSWORD
//	createstaff                            # both from the environment
//	createstaff -username admin -password secret
package main

import (
	"context"
	"database/sql"
	"flag"
	"os"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"liok_hotels/internal/adapters/observability"
	"liok_hotels/internal/app"
	"liok_hotels/internal/shared"
	mysqlrepo "liok_hotels/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	username := flag.String("username", cfg.StaffUsername, "staff username (default $LIOK_STAFF_USERNAME)")
	password := flag.String("password", cfg.StaffPassword, "staff password (default $LIOK_STAFF_PASSWORD)")
	flag.Parse()

	if cfg.Storage != "mysql" {
		log.Fatal().Str("storage", cfg.Storage).Msg("in-memory storage is seeded by the api from LIOK_STAFF_USERNAME/LIOK_STAFF_PASSWORD")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}

	repos := mysqlrepo.New(db).Repositories()
	auth := app.NewAuthService(repos.Users, cfg.BcryptCost)
	u, created, err := auth.CreateStaff(ctx, *username, *password)
	if ve, ok := app.AsValidation(err); ok {
		for field, msg := range ve.Fields {
			log.Error().Str("field", field).Msg(msg)
		}
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("create staff failed")
	}
	action := "updated"
	if created {
		action = "created"
	}
	log.Info().Int64("id", u.ID).Str("username", u.Username).Msg("staff user " + action)
}
