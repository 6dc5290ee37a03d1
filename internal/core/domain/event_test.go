package domain_test

import (
	"testing"

	"github.com/DanielPopoola/payorder-sdk/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestOrderEvent_RoutingKey(t *testing.T) {
	assert.Equal(t, "order.paid", domain.OrderEvent{State: domain.StatusPaid}.RoutingKey())
	assert.Equal(t, "order.partial_refund", domain.OrderEvent{State: domain.StatusPartialRefund}.RoutingKey())
}
