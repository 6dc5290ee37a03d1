package ports

import (
	"context"

	"github.com/DanielPopoola/payorder-sdk/internal/core/domain"
)

// EventPublisher fans reconciled order events out to downstream consumers.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.OrderEvent) error
}
