package domain

import (
	"strings"
	"time"
)

// OrderEvent is published once an exchange has been reconciled.
type OrderEvent struct {
	OrderID    string    `json:"order_id"`
	PayOrderID string    `json:"pay_order_id"`
	Reference  string    `json:"reference"`
	State      PayStatus `json:"state"`
	StatusCode int       `json:"status_code"`
	Amount     int64     `json:"amount"`
	Currency   string    `json:"currency"`
	OccurredAt time.Time `json:"occurred_at"`
}

// RoutingKey is the topic the event is published under, e.g. "order.paid".
func (e OrderEvent) RoutingKey() string {
	return "order." + strings.ToLower(string(e.State))
}
