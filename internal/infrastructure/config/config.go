package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=3000"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	API   APIConfig
	Auth  AuthConfig
	Mongo MongoConfig
	Redis RedisConfig
	Cache CacheConfig
}

// APIConfig points the client at the remote backend. TokenBackend selects
// where the session token persists: "file" for a single process, "redis" to
// share it across gateway instances.
type APIConfig struct {
	Base         string `env:"API_BASE,            default=http://localhost:8080/Comic/api"`
	Candidates   string `env:"API_BASE_CANDIDATES"`
	TokenBackend string `env:"TOKEN_BACKEND,       default=file"`
	TokenFile    string `env:"TOKEN_FILE,          default=.comicreader/token"`
}

// AuthConfig controls session bootstrap. AutoLogin is a development
// convenience and must stay off in production.
type AuthConfig struct {
	AutoLogin       bool   `env:"AUTO_LOGIN,       default=false"`
	DefaultUsername string `env:"DEFAULT_USERNAME, default=admin"`
	DefaultPassword string `env:"DEFAULT_PASSWORD"`
	SessionTTLHours int    `env:"SESSION_TTL_HOURS, default=168"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=comicreader"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

// CacheConfig tunes the gateway's Redis response cache on proxied GETs.
type CacheConfig struct {
	Enabled    bool `env:"CACHE_ENABLED,     default=true"`
	TTLSeconds int  `env:"CACHE_TTL_SECONDS, default=60"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
