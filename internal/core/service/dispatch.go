package service

import (
	"context"
	"fmt"
	"time"

	"github.com/DanielPopoola/payorder-sdk/internal/core/domain"
	"github.com/DanielPopoola/payorder-sdk/internal/core/exchange"
	"github.com/DanielPopoola/payorder-sdk/internal/core/ports"
	"github.com/DanielPopoola/payorder-sdk/internal/logger"
	"go.uber.org/zap"
)

// Dispatcher decides what a reconciled exchange means for the merchant and
// tells downstream consumers about it.
type Dispatcher struct {
	publisher ports.EventPublisher
	logger    *zap.Logger
	now       func() time.Time
}

// NewDispatcher creates a Dispatcher. A nil publisher disables event publishing.
func NewDispatcher(publisher ports.EventPublisher, l *zap.Logger) *Dispatcher {
	if l == nil {
		l = zap.NewNop()
	}
	return &Dispatcher{
		publisher: publisher,
		logger:    l,
		now:       time.Now,
	}
}

// Dispatch classifies the snapshot and returns the acknowledgement to send upstream.
// payload supplies the identifiers a status-only snapshot lacks.
func (d *Dispatcher) Dispatch(ctx context.Context, payload domain.NotificationPayload, order *domain.OrderSnapshot) (exchange.Acknowledgement, error) {
	log := logger.With(ctx, d.logger)

	state, err := order.State()
	if err != nil {
		return exchange.Acknowledgement{}, err
	}

	ref := firstNonEmpty(order.Reference, payload.Reference)
	ack := exchange.Acknowledgement{Result: true, Message: message(state, ref)}

	log.Info("exchange reconciled",
		zap.String("pay_order_id", firstNonEmpty(order.ID, payload.PayOrderID)),
		zap.String("reference", ref),
		zap.String("state", string(state)),
		zap.Int("status_code", order.Status.Code),
	)

	if d.publisher == nil {
		return ack, nil
	}

	event := d.event(payload, order, state, ref)
	if err := d.publisher.Publish(ctx, event); err != nil {
		log.Error("publish order event failed", zap.String("routing_key", event.RoutingKey()), zap.Error(err))
		return exchange.Acknowledgement{}, fmt.Errorf("publish order event: %w", err)
	}

	return ack, nil
}

func (d *Dispatcher) event(payload domain.NotificationPayload, order *domain.OrderSnapshot, state domain.PayStatus, ref string) domain.OrderEvent {
	amount := order.Amount
	if amount.Value == 0 && payload.Amount != 0 {
		amount = domain.NewAmount(payload.Amount, payload.Currency)
	}
	if amount.Currency == "" {
		amount.Currency = firstNonEmpty(payload.Currency, domain.DefaultCurrency)
	}

	return domain.OrderEvent{
		OrderID:    firstNonEmpty(order.OrderID, payload.OrderID),
		PayOrderID: firstNonEmpty(order.ID, payload.PayOrderID),
		Reference:  ref,
		State:      state,
		StatusCode: order.Status.Code,
		Amount:     amount.Value,
		Currency:   amount.Currency,
		OccurredAt: d.now().UTC(),
	}
}

func message(state domain.PayStatus, ref string) string {
	switch state {
	case domain.StatusPending:
		return "Processed pending"
	case domain.StatusPaid:
		return "Processed paid. Order: " + ref
	case domain.StatusAuthorize:
		return "Processed authorize. Order: " + ref
	case domain.StatusCancel:
		return "Processed cancel. Order: " + ref
	case domain.StatusRefund, domain.StatusPartialRefund:
		return "Processed refund. Order: " + ref
	case domain.StatusChargeback:
		return "Processed chargeback. Order: " + ref
	default:
		return "No action defined for payment state " + string(state)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
