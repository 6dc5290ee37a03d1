package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/DanielPopoola/payorder-sdk/internal/core/domain"
	"github.com/DanielPopoola/payorder-sdk/internal/core/exchange"
	"github.com/DanielPopoola/payorder-sdk/internal/core/ports"
	"github.com/DanielPopoola/payorder-sdk/internal/logger"
	"go.uber.org/zap"
)

const publishFailedMessage = "event could not be published"

// Dispatcher turns a reconciled order into the acknowledgement for upstream.
type Dispatcher interface {
	Dispatch(ctx context.Context, payload domain.NotificationPayload, order *domain.OrderSnapshot) (exchange.Acknowledgement, error)
}

type ExchangeHandler struct {
	cfg          exchange.Config
	maxBodyBytes int64
	lookup       ports.StatusLookup
	dispatcher   Dispatcher
	logger       *zap.Logger
}

func NewExchangeHandler(cfg exchange.Config, maxBodyBytes int64, lookup ports.StatusLookup, dispatcher Dispatcher, l *zap.Logger) *ExchangeHandler {
	if l == nil {
		l = zap.NewNop()
	}
	return &ExchangeHandler{
		cfg:          cfg,
		maxBodyBytes: maxBodyBytes,
		lookup:       lookup,
		dispatcher:   dispatcher,
		logger:       l,
	}
}

// ServeHTTP always answers 200: the body tells upstream whether to retry.
func (h *ExchangeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.With(ctx, h.logger)

	in, err := exchange.FromRequest(r, h.maxBodyBytes)
	if err != nil {
		log.Warn("unreadable exchange request", zap.Error(err))
		msg := "invalid request"
		if errors.Is(err, exchange.ErrBodyTooLarge) {
			msg = err.Error()
		}
		signed := exchange.IsSignedExchange(r.Header)
		writeAck(w, signed, exchange.FormatResponse(false, msg, signed))
		return
	}

	ex := exchange.New(in, h.cfg, h.lookup, h.logger)
	signed := ex.IsSignedExchange()

	order, err := ex.Process(ctx)
	if err != nil {
		log.Error("exchange processing failed",
			zap.Bool("signed", signed),
			zap.String("code", errorCode(err)),
			zap.Error(err),
		)
		writeAck(w, signed, ex.Respond(false, err.Error()))
		return
	}

	payload, _ := ex.Payload()
	ack, err := h.dispatcher.Dispatch(ctx, payload, order)
	if err != nil {
		log.Error("exchange dispatch failed", zap.String("pay_order_id", payload.PayOrderID), zap.Error(err))
		writeAck(w, signed, ex.Respond(false, dispatchFailureMessage(err)))
		return
	}

	writeAck(w, signed, ex.RespondWith(ack))
}

func writeAck(w http.ResponseWriter, signed bool, body string) {
	if signed {
		w.Header().Set("Content-Type", "application/json")
	} else {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}

// dispatchFailureMessage keeps broker and transport detail out of the acknowledgement.
func dispatchFailureMessage(err error) string {
	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Error()
	}
	return publishFailedMessage
}

func errorCode(err error) string {
	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	return "INTERNAL_ERROR"
}

// Health answers liveness probes.
func Health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
