// Package env loads the process configuration from the environment and an
// optional .env file.
package env

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	cenv "github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port      int    `env:"PORT" envDefault:"4002"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"console"`

	WordPressURL string `env:"WP_BASE_URL,required"`
	// SiteURL is the public site; relative links in CMS content are
	// rewritten against it.
	SiteURL        string `env:"SITE_BASE_URL"`
	PropertySource string `env:"PROPERTY_SOURCE" envDefault:"wordpress"`
	// FeedFunctionURL is where the catalog reaches the feed proxy. Empty
	// means this process.
	FeedFunctionURL string        `env:"FEED_FUNCTION_URL"`
	FeedFTP         FTPConfig     `envPrefix:"FEED_FTP_"`
	FeedCacheTTL    time.Duration `env:"FEED_CACHE_TTL" envDefault:"15m"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	PostgresDSN  string `env:"PG_DSN"`
	ReviewsToken string `env:"REVIEWS_TOKEN"`
	ReviewsURL   string `env:"REVIEWS_URL"`

	HTTPTimeout time.Duration `env:"HTTP_TIMEOUT" envDefault:"10s"`
	CORSOrigins []string      `env:"CORS_ORIGINS" envSeparator:"," envDefault:"*"`
	// RateLimit is requests per minute and client IP.
	RateLimit int `env:"RATE_LIMIT" envDefault:"100"`
}

type FTPConfig struct {
	Host     string        `env:"HOST"`
	Port     int           `env:"PORT" envDefault:"21"`
	User     string        `env:"USER"`
	Password string        `env:"PASSWORD"`
	Path     string        `env:"PATH" envDefault:"/export/annonces.xml"`
	Timeout  time.Duration `env:"TIMEOUT" envDefault:"10s"`
}

// IngesterConfig is the configuration of the review ingestion binary.
type IngesterConfig struct {
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"console"`

	PostgresDSN string        `env:"PG_DSN,required"`
	ReviewsURL  string        `env:"REVIEWS_URL"`
	Interval    time.Duration `env:"INGEST_INTERVAL" envDefault:"24h"`
	Timeout     time.Duration `env:"INGEST_TIMEOUT" envDefault:"1m"`
	RunOnce     bool          `env:"INGEST_RUN_ONCE"`
}

// Load reads files (".env" when none is given) into the environment
// without overriding it, then parses the Config. Missing files are fine.
func Load(files ...string) (Config, error) {
	return load[Config](files)
}

// LoadIngester is Load for the ingestion binary.
func LoadIngester(files ...string) (IngesterConfig, error) {
	return load[IngesterConfig](files)
}

func load[T any](files []string) (T, error) {
	var cfg T
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("load %s: %w", f, err)
		}
	}
	if err := cenv.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}
