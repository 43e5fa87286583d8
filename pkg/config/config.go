package config

import (
	"time"
)

type DB struct {
	Url string `envconfig:"URL"`
}

type Jwt struct {
	Secret string        `envconfig:"SECRET" required:"true"`
	Expiry time.Duration `envconfig:"EXPIRY" default:"168h"`
	// CookieName is where the signed token is stored on login.
	CookieName string `envconfig:"COOKIE_NAME" default:"token"`
}

type RateLimit struct {
	MaxRequests int           `envconfig:"MAX_REQUESTS" default:"100"`
	Window      time.Duration `envconfig:"WINDOW" default:"1m"`
}

type Cors struct {
	Origins string `envconfig:"ORIGINS" default:"http://localhost:3001"`
}

type Server struct {
	Host string `envconfig:"HOST" default:"localhost"`
	Port int    `envconfig:"PORT" default:"3000"`
}

type App struct {
	Env       string     `envconfig:"APP_ENV" default:"development"`
	Server    *Server    `envconfig:"SERVER"`
	DB        *DB        `envconfig:"DATABASE"`
	Jwt       *Jwt       `envconfig:"JWT"`
	RateLimit *RateLimit `envconfig:"RATE_LIMIT"`
	Cors      *Cors      `envconfig:"CORS"`
}
