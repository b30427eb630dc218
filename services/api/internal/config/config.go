// Package config loads runtime configuration for the pizzad service.
package config

import (
	"context"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config holds runtime configuration for the API service. The hashing secret
// and third-party credentials are supplied externally; the core never reads
// the environment on its own.
type Config struct {
	Addr           string        `env:"ADDR,default=:3000"`
	TLSAddr        string        `env:"TLS_ADDR,default=:3001"`
	TLSCertFile    string        `env:"TLS_CERT_FILE"`
	TLSKeyFile     string        `env:"TLS_KEY_FILE"`
	DataDir        string        `env:"DATA_DIR,default=.data"`
	HashingSecret  string        `env:"HASHING_SECRET,required"`
	TokenTTL       time.Duration `env:"TOKEN_TTL,default=1h"`
	AllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS"`

	StripeAPIKey string `env:"STRIPE_API_KEY"`

	MailgunDomain string `env:"MAILGUN_DOMAIN"`
	MailgunAPIKey string `env:"MAILGUN_API_KEY"`
	MailgunFrom   string `env:"MAILGUN_FROM"`

	TwilioAccountSID string `env:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken  string `env:"TWILIO_AUTH_TOKEN"`
	TwilioFromPhone  string `env:"TWILIO_FROM_PHONE"`

	NATSURL      string `env:"NATS_URL"`
	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

// Load returns a Config populated from environment variables.
func Load(ctx context.Context) (Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// TLSEnabled reports whether the encrypted listener has certificate material.
func (c Config) TLSEnabled() bool {
	return c.TLSCertFile != "" && c.TLSKeyFile != ""
}
