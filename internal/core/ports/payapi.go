package ports

import (
	"context"

	"github.com/DanielPopoola/payorder-sdk/internal/core/domain"
)

// StatusLookup fetches the authoritative state of an order or transaction.
type StatusLookup interface {
	OrderStatus(ctx context.Context, orderID string) (*domain.OrderSnapshot, error)
	TransactionStatus(ctx context.Context, transactionID string) (*domain.OrderSnapshot, error)
}

// OrderAPI defines the lifecycle operations of the payment processor.
type OrderAPI interface {
	StatusLookup

	Create(ctx context.Context, req domain.OrderCreateRequest) (*domain.OrderSnapshot, error)
	Capture(ctx context.Context, orderID string) (*domain.OrderSnapshot, error)
	CaptureAmount(ctx context.Context, req domain.CaptureAmountRequest) (*domain.OrderSnapshot, error)
	CaptureProducts(ctx context.Context, req domain.CaptureProductsRequest) (*domain.OrderSnapshot, error)
	Void(ctx context.Context, orderID string) (*domain.OrderSnapshot, error)
	Approve(ctx context.Context, orderID string) (*domain.OrderSnapshot, error)
	Decline(ctx context.Context, orderID string) (*domain.OrderSnapshot, error)
	Abort(ctx context.Context, orderID string) (*domain.OrderSnapshot, error)
	Refund(ctx context.Context, req domain.RefundRequest) (*domain.OrderSnapshot, error)
}
