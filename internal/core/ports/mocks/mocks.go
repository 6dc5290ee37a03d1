// Package mocks holds testify mocks of the core ports.
package mocks

import (
	"context"

	"github.com/DanielPopoola/payorder-sdk/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

// OrderAPI mocks ports.OrderAPI, and so ports.StatusLookup.
type OrderAPI struct {
	mock.Mock
}

func NewOrderAPI(t interface {
	mock.TestingT
	Cleanup(func())
}) *OrderAPI {
	m := &OrderAPI{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func snapshot(args mock.Arguments) (*domain.OrderSnapshot, error) {
	var snap *domain.OrderSnapshot
	if v := args.Get(0); v != nil {
		snap = v.(*domain.OrderSnapshot)
	}
	return snap, args.Error(1)
}

func (m *OrderAPI) OrderStatus(ctx context.Context, orderID string) (*domain.OrderSnapshot, error) {
	return snapshot(m.Called(ctx, orderID))
}

func (m *OrderAPI) TransactionStatus(ctx context.Context, transactionID string) (*domain.OrderSnapshot, error) {
	return snapshot(m.Called(ctx, transactionID))
}

func (m *OrderAPI) Create(ctx context.Context, req domain.OrderCreateRequest) (*domain.OrderSnapshot, error) {
	return snapshot(m.Called(ctx, req))
}

func (m *OrderAPI) Capture(ctx context.Context, orderID string) (*domain.OrderSnapshot, error) {
	return snapshot(m.Called(ctx, orderID))
}

func (m *OrderAPI) CaptureAmount(ctx context.Context, req domain.CaptureAmountRequest) (*domain.OrderSnapshot, error) {
	return snapshot(m.Called(ctx, req))
}

func (m *OrderAPI) CaptureProducts(ctx context.Context, req domain.CaptureProductsRequest) (*domain.OrderSnapshot, error) {
	return snapshot(m.Called(ctx, req))
}

func (m *OrderAPI) Void(ctx context.Context, orderID string) (*domain.OrderSnapshot, error) {
	return snapshot(m.Called(ctx, orderID))
}

func (m *OrderAPI) Approve(ctx context.Context, orderID string) (*domain.OrderSnapshot, error) {
	return snapshot(m.Called(ctx, orderID))
}

func (m *OrderAPI) Decline(ctx context.Context, orderID string) (*domain.OrderSnapshot, error) {
	return snapshot(m.Called(ctx, orderID))
}

func (m *OrderAPI) Abort(ctx context.Context, orderID string) (*domain.OrderSnapshot, error) {
	return snapshot(m.Called(ctx, orderID))
}

func (m *OrderAPI) Refund(ctx context.Context, req domain.RefundRequest) (*domain.OrderSnapshot, error) {
	return snapshot(m.Called(ctx, req))
}

// EventPublisher mocks ports.EventPublisher.
type EventPublisher struct {
	mock.Mock
}

func NewEventPublisher(t interface {
	mock.TestingT
	Cleanup(func())
}) *EventPublisher {
	m := &EventPublisher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *EventPublisher) Publish(ctx context.Context, event domain.OrderEvent) error {
	return m.Called(ctx, event).Error(0)
}
