// Package api implements the pizza-ordering HTTP API: user accounts, session
// tokens, the menu, carts, and order placement against the flat-file record
// store, with payment and email handled by injected capabilities.
package api

import (
	"context"
	"errors"
	"time"

	"pizzad/pkg/bus"
	"pizzad/pkg/payment"
	"pizzad/pkg/render"
	"pizzad/pkg/storage"
)

const (
	collectionUsers  = "users"
	collectionTokens = "tokens"
	collectionCarts  = "carts"
	collectionOrders = "orders"
	collectionMenu   = "menu"

	// menuKey is the fixed key of the single menu record.
	menuKey = "menu"

	defaultTokenTTL = time.Hour

	topicUserCreated = "pizzad.users.created"
	topicTokenIssued = "pizzad.tokens.issued"
	topicCartCreated = "pizzad.carts.created"
	topicOrderPlaced = "pizzad.orders.placed"
)

// PaymentProcessor charges a payment source for an order amount.
type PaymentProcessor interface {
	Charge(ctx context.Context, amount float64, source, orderID string) (payment.Charge, error)
}

// MailSender delivers a plain-text email.
type MailSender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// SMSSender delivers an SMS. No handler currently sends one; the capability is
// wired for parity with the other outbound channels.
type SMSSender interface {
	Send(ctx context.Context, phone, message string) error
}

// Config controls runtime behaviour for the API handlers.
type Config struct {
	HashingSecret  string
	TokenTTL       time.Duration
	AllowedOrigins []string
}

// Deps holds the external dependencies required by the API layer.
type Deps struct {
	Store    *storage.Store
	Payments PaymentProcessor
	Mailer   MailSender
	SMS      SMSSender
	Bus      *bus.Bus
	Renderer *render.Engine
}

// API wires dependencies, collections, and configuration for HTTP handlers.
type API struct {
	users    storage.Collection[User]
	tokens   storage.Collection[Token]
	carts    storage.Collection[Cart]
	orders   storage.Collection[Order]
	menus    storage.Collection[Menu]
	payments PaymentProcessor
	mailer   MailSender
	sms      SMSSender
	bus      *bus.Bus
	renderer *render.Engine
	config   Config
	now      func() time.Time
}

// New initialises the API layer with sane defaults applied to the provided
// configuration.
func New(deps *Deps, cfg Config) (*API, error) {
	if deps == nil {
		return nil, errors.New("deps are required")
	}
	if deps.Store == nil {
		return nil, errors.New("record store is required")
	}
	if deps.Payments == nil {
		return nil, errors.New("payment processor is required")
	}
	if deps.Mailer == nil {
		return nil, errors.New("mail sender is required")
	}
	if deps.Renderer == nil {
		return nil, errors.New("renderer is required")
	}
	if cfg.HashingSecret == "" {
		return nil, errors.New("hashing secret is required")
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}

	return &API{
		users:    storage.NewCollection[User](deps.Store, collectionUsers),
		tokens:   storage.NewCollection[Token](deps.Store, collectionTokens),
		carts:    storage.NewCollection[Cart](deps.Store, collectionCarts),
		orders:   storage.NewCollection[Order](deps.Store, collectionOrders),
		menus:    storage.NewCollection[Menu](deps.Store, collectionMenu),
		payments: deps.Payments,
		mailer:   deps.Mailer,
		sms:      deps.SMS,
		bus:      deps.Bus,
		renderer: deps.Renderer,
		config:   cfg,
		now:      time.Now,
	}, nil
}
