package config

import (
	"errors"
	"io/fs"
	"net"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

// ServerConfig is read from the environment by `studylit serve`.
type ServerConfig struct {
	Env             string        `env:"STUDYLIT_ENV" env-default:"prod"`
	Host            string        `env:"STUDYLIT_HTTP_HOST" env-default:"127.0.0.1"`
	Port            string        `env:"STUDYLIT_HTTP_PORT" env-default:"8080"`
	ShutdownTimeout time.Duration `env:"STUDYLIT_HTTP_SHUTDOWN_TIMEOUT" env-default:"5s"`
	JWTSecret       string        `env:"STUDYLIT_JWT_SECRET"`
	JWTIssuer       string        `env:"STUDYLIT_JWT_ISSUER"`
}

// Addr returns host:port.
func (c ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// ReadServerEnv loads .env from the working directory when present and reads
// ServerConfig from the environment.
func ReadServerEnv() (ServerConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return ServerConfig{}, err
	}

	var cfg ServerConfig
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return ServerConfig{}, err
	}
	switch cfg.Env {
	case EnvLocal, EnvDev, EnvProd:
	default:
		return ServerConfig{}, errors.New("STUDYLIT_ENV must be one of local, dev, prod")
	}
	return cfg, nil
}
