package config

import (
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

// BaseConfig is the root application configuration, loaded from app.json
// with environment overrides.
type BaseConfig struct {
	Server      Server      `json:"server" koanf:"server"`
	Auth        Auth        `json:"auth" koanf:"auth"`
	Persistence Persistence `json:"persistence" koanf:"persistence"`
	Uploads     Uploads     `json:"uploads" koanf:"uploads"`
}

type Server struct {
	Address string `json:"address" koanf:"address"`
}

type Auth struct {
	SigningKey      string   `json:"signing_key" koanf:"signing_key"`
	TokenExpiration int      `json:"token_expiration" koanf:"token_expiration"`
	Issuer          string   `json:"issuer" koanf:"issuer"`
	Audience        []string `json:"audience" koanf:"audience"`
}

type Persistence struct {
	Debug                 bool   `json:"debug" koanf:"debug"`
	Driver                string `json:"driver" koanf:"driver"`
	DSN                   string `json:"dsn" koanf:"dsn"`
	OtelIdentifier        string `json:"otel_identifier" koanf:"otel_identifier"`
	PingTimeoutExpression string `json:"ping_timeout" koanf:"ping_timeout"`
}

type Uploads struct {
	Dir      string `json:"dir" koanf:"dir"`
	MaxBytes int64  `json:"max_bytes" koanf:"max_bytes"`
}

func (a BaseConfig) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.Auth),
		validation.Field(&a.Persistence),
	)
}

func (a BaseConfig) GetServer() Server {
	return a.Server
}

func (a BaseConfig) GetAuth() Auth {
	return a.Auth
}

func (a BaseConfig) GetPersistence() Persistence {
	return a.Persistence
}

func (a BaseConfig) GetUploads() Uploads {
	return a.Uploads
}

func (s Server) GetAddress() string {
	if s.Address == "" {
		return ":8080"
	}
	return s.Address
}

func (a Auth) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.SigningKey, validation.Required),
	)
}

func (a Auth) GetSigningKey() string {
	return a.SigningKey
}

func (a Auth) GetTokenExpiration() int {
	if a.TokenExpiration <= 0 {
		return 24
	}
	return a.TokenExpiration
}

func (a Auth) GetIssuer() string {
	if a.Issuer == "" {
		return "jobboard"
	}
	return a.Issuer
}

func (a Auth) GetAudience() []string {
	return a.Audience
}

func (p Persistence) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.DSN, validation.Required),
	)
}

func (p Persistence) GetDebug() bool {
	return p.Debug
}

func (p Persistence) GetDriver() string {
	if p.Driver == "" {
		return "sqlite"
	}
	return p.Driver
}

func (p Persistence) GetDSN() string {
	return p.DSN
}

func (p Persistence) GetServer() string {
	return p.DSN
}

func (p Persistence) GetOtelIdentifier() string {
	return p.OtelIdentifier
}

func (p Persistence) GetPingTimeoutExpression() string {
	if p.PingTimeoutExpression == "" {
		return "5s"
	}
	return p.PingTimeoutExpression
}

func (p Persistence) GetPingTimeout() time.Duration {
	dur, err := time.ParseDuration(p.GetPingTimeoutExpression())
	if err != nil {
		panic(
			fmt.Sprintf("unable to parse time: expr %s", p.PingTimeoutExpression),
		)
	}
	return dur
}

func (u Uploads) GetDir() string {
	if u.Dir == "" {
		return "uploads"
	}
	return u.Dir
}

func (u Uploads) GetMaxBytes() int64 {
	if u.MaxBytes <= 0 {
		return 8 << 20
	}
	return u.MaxBytes
}
