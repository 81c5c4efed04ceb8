package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Backend BackendConfig
	Store   StoreConfig
	Mongo   MongoConfig
	Redis   RedisConfig
}

type BackendConfig struct {
	BaseURL string        `env:"AUTH_BACKEND_URL,     default=http://localhost:5000"`
	Timeout time.Duration `env:"AUTH_BACKEND_TIMEOUT, default=15s"`
}

// StoreConfig selects the persistence medium for the session store.
type StoreConfig struct {
	// Driver is one of: memory, file, redis, mongo.
	Driver   string `env:"SESSION_STORE_DRIVER, default=file"`
	FilePath string `env:"SESSION_STORE_FILE,   default=session.json"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=trainhub"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
