package shared

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	LogLevel    string
	HTTPAddr    string
	MetricsAddr string

	Storage   string // mysql|memory
	MySQLDSN  string
	RedisAddr string
	RedisDB   int
	RedisPass string
	CacheTTL  time.Duration

	SessionTTL    time.Duration
	SessionSecure bool

	MediaRoot  string
	MediaURL   string
	MediaServe bool

	BcryptCost int

	// Staff account seeded into in-memory storage, and the createstaff defaults.
	StaffUsername string
	StaffPassword string
}

// Load reads the environment, after merging a .env file from the working
// directory if there is one. Variables already set win over the file.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg(".env not loaded")
	}

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
			log.Warn().Str("key", k).Str("value", v).Msg("not an integer, using default")
		}
		return def
	}
	c := Config{
		AppEnv:        env("APP_ENV", "prod"),
		LogLevel:      env("LOG_LEVEL", "info"),
		HTTPAddr:      env("HTTP_ADDR", ":8080"),
		MetricsAddr:   env("METRICS_ADDR", ""),
		Storage:       strings.ToLower(env("STORAGE", "mysql")),
		MySQLDSN:      env("MYSQL_DSN", "root:root@tcp(localhost:3306)/liok?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:     env("REDIS_ADDR", "localhost:6379"),
		RedisPass:     env("REDIS_PASSWORD", ""),
		RedisDB:       atoi("REDIS_DB", 0),
		CacheTTL:      time.Duration(atoi("CACHE_TTL_SECONDS", 300)) * time.Second,
		SessionTTL:    time.Duration(atoi("SESSION_TTL_HOURS", 336)) * time.Hour,
		SessionSecure: envBool("SESSION_COOKIE_SECURE", false),
		MediaRoot:     env("MEDIA_ROOT", "media"),
		MediaURL:      env("MEDIA_URL", "/media/"),
		MediaServe:    envBool("MEDIA_SERVE", true),
		BcryptCost:    atoi("BCRYPT_COST", 10),
		StaffUsername: os.Getenv("LIOK_STAFF_USERNAME"),
		StaffPassword: os.Getenv("LIOK_STAFF_PASSWORD"),
	}
	if !strings.HasSuffix(c.MediaURL, "/") {
		c.MediaURL += "/"
	}
	if c.Storage != "mysql" && c.Storage != "memory" {
		log.Warn().Str("storage", c.Storage).Msg("unknown STORAGE, using mysql")
		c.Storage = "mysql"
	}
	if c.Storage == "memory" && (c.StaffUsername == "" || c.StaffPassword == "") {
		log.Warn().Msg("in-memory storage without LIOK_STAFF_USERNAME/LIOK_STAFF_PASSWORD: no one can log in")
	}
	if c.AppEnv != "dev" && !c.SessionSecure {
		log.Warn().Msg("SESSION_COOKIE_SECURE is off outside dev")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envBool(k string, def bool) bool {
	if v := os.Getenv(k); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
