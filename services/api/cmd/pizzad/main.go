package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"pizzad/pkg/bus"
	"pizzad/pkg/mailgun"
	"pizzad/pkg/payment"
	"pizzad/pkg/render"
	"pizzad/pkg/storage"
	"pizzad/pkg/twilio"
	"pizzad/services/api"
	"pizzad/services/api/internal/config"
	"pizzad/services/api/internal/otel"
)

const serviceName = "pizzad"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	_ = godotenv.Load()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	cleanup, err := otel.Init(ctx, serviceName, cfg.OTLPEndpoint)
	if err != nil {
		log.Fatal().Err(err).Msg("init otel")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := cleanup(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown otel")
		}
	}()

	store, err := storage.Open(cfg.DataDir)
	if err != nil {
		log.Fatal().Err(err).Msg("open record store")
	}

	renderer, err := render.New()
	if err != nil {
		log.Fatal().Err(err).Msg("init renderer")
	}

	payments, err := payment.New(payment.Config{APIKey: cfg.StripeAPIKey})
	if err != nil {
		log.Fatal().Err(err).Msg("init payment client")
	}

	mailer, err := mailgun.New(mailgun.Config{
		Domain: cfg.MailgunDomain,
		APIKey: cfg.MailgunAPIKey,
		From:   cfg.MailgunFrom,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("init mailgun client")
	}

	deps := &api.Deps{
		Store:    store,
		Payments: payments,
		Mailer:   mailer,
		Renderer: renderer,
	}

	if cfg.TwilioAccountSID != "" {
		sms, err := twilio.New(twilio.Config{
			AccountSID: cfg.TwilioAccountSID,
			AuthToken:  cfg.TwilioAuthToken,
			FromPhone:  cfg.TwilioFromPhone,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("init twilio client")
		}
		deps.SMS = sms
	}

	if cfg.NATSURL != "" {
		events, err := bus.New(cfg.NATSURL)
		if err != nil {
			log.Fatal().Err(err).Msg("connect nats")
		}
		defer events.Close()
		deps.Bus = events
	}

	app, err := api.New(deps, api.Config{
		HashingSecret:  cfg.HashingSecret,
		TokenTTL:       cfg.TokenTTL,
		AllowedOrigins: cfg.AllowedOrigins,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("init api")
	}

	var handler http.Handler = app.Routes()
	if cfg.OTLPEndpoint != "" {
		handler = otelhttp.NewHandler(handler, serviceName)
	}

	// the same handler serves both transports; protocol choice only affects
	// the listening socket
	plain := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	servers := []*http.Server{plain}

	go func() {
		log.Info().Str("addr", cfg.Addr).Msg("starting pizzad")
		if err := plain.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http server")
		}
	}()

	if cfg.TLSEnabled() {
		secure := &http.Server{
			Addr:              cfg.TLSAddr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}
		servers = append(servers, secure)

		go func() {
			log.Info().Str("addr", cfg.TLSAddr).Msg("starting pizzad (tls)")
			if err := secure.ListenAndServeTLS(cfg.TLSCertFile, cfg.TLSKeyFile); err != nil && err != http.ErrServerClosed {
				log.Fatal().Err(err).Msg("https server")
			}
		}()
	}

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for _, srv := range servers {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown server")
		}
	}
}
