// Package exchange ingests exchange notifications and reconciles them into an order snapshot.
package exchange

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/DanielPopoola/payorder-sdk/internal/core/domain"
	"github.com/DanielPopoola/payorder-sdk/internal/core/ports"
	"github.com/DanielPopoola/payorder-sdk/internal/logger"
	"go.uber.org/zap"
)

var (
	errNoLookup    = errors.New("no status lookup configured")
	errEmptyLookup = errors.New("status lookup returned no order")
)

// Config holds the credentials and field mapping an exchange is processed with.
type Config struct {
	// Username is the token code, Password the API token.
	Username     string
	Password     string
	ReferenceKey string
}

// Exchange handles a single inbound notification. It is not safe to share between requests.
type Exchange struct {
	in       Input
	cfg      Config
	lookup   ports.StatusLookup
	verifier *SignatureVerifier
	logger   *zap.Logger

	once       sync.Once
	payload    domain.NotificationPayload
	payloadErr error
}

func New(in Input, cfg Config, lookup ports.StatusLookup, l *zap.Logger) *Exchange {
	if l == nil {
		l = zap.NewNop()
	}
	return &Exchange{
		in:       in,
		cfg:      cfg,
		lookup:   lookup,
		verifier: NewSignatureVerifier(l),
		logger:   l,
	}
}

// Payload normalizes the notification on first call and returns the same result afterwards.
func (e *Exchange) Payload() (domain.NotificationPayload, error) {
	e.once.Do(func() {
		e.payload, e.payloadErr = Normalize(e.in, e.cfg.ReferenceKey)
	})
	return e.payload, e.payloadErr
}

func (e *Exchange) IsSignedExchange() bool {
	return IsSignedExchange(e.in.Headers)
}

// EventStateChangeToPaid reports whether the notification completed a payment.
func (e *Exchange) EventStateChangeToPaid() bool {
	p, err := e.Payload()
	return err == nil && p.Action == domain.EventPaid
}

// Process reconciles the notification.
//
// Signed notifications are trusted once the signature checks out. Unsigned
// pending notifications yield a status-only snapshot. Every other unsigned
// notification is escalated to the status endpoint, whose answer replaces
// whatever the notification said.
func (e *Exchange) Process(ctx context.Context) (*domain.OrderSnapshot, error) {
	log := logger.With(ctx, e.logger)

	p, err := e.Payload()
	if err != nil {
		return nil, err
	}

	if e.IsSignedExchange() {
		if !e.verifier.Verify(e.in.Headers, e.in.Body, e.cfg.Username, e.cfg.Password) {
			return nil, domain.NewSigningFailedError()
		}
		log.Debug("signed exchange verified", zap.String("pay_order_id", p.PayOrderID))
		return domain.SnapshotFromPayload(p), nil
	}

	state, stateErr := p.State()
	if stateErr == nil && state == domain.StatusPending {
		return domain.PendingSnapshot(*p.InternalStateID), nil
	}

	if p.IsLegacy() {
		log.Warn("unsigned legacy exchange, escalating to status lookup",
			zap.String("pay_order_id", p.PayOrderID),
			zap.String("action", p.Action),
		)
	} else if stateErr != nil {
		log.Info("exchange status not classifiable, escalating", zap.Error(stateErr))
	}

	return e.escalate(ctx, p, log)
}

func (e *Exchange) escalate(ctx context.Context, p domain.NotificationPayload, log *zap.Logger) (*domain.OrderSnapshot, error) {
	if p.PayOrderID == "" {
		return nil, domain.NewMissingOrderIDError()
	}
	if e.lookup == nil {
		return nil, domain.NewEscalationFailedError(errNoLookup)
	}

	var (
		snap *domain.OrderSnapshot
		err  error
	)
	if strings.Contains(strings.ToLower(p.Action), "refund") {
		snap, err = e.lookup.TransactionStatus(ctx, p.PayOrderID)
	} else {
		snap, err = e.lookup.OrderStatus(ctx, p.PayOrderID)
	}
	if err != nil {
		log.Error("status lookup failed", zap.String("pay_order_id", p.PayOrderID), zap.Error(err))
		return nil, domain.NewEscalationFailedError(err)
	}
	if snap == nil {
		return nil, domain.NewEscalationFailedError(errEmptyLookup)
	}

	return snap, nil
}

// Respond renders an acknowledgement on this exchange's channel.
func (e *Exchange) Respond(success bool, message string) string {
	return FormatResponse(success, message, e.IsSignedExchange())
}

func (e *Exchange) RespondWith(ack Acknowledgement) string {
	return e.Respond(ack.Result, ack.Message)
}
