package service

import (
	"context"
	"strings"

	"github.com/DanielPopoola/payorder-sdk/internal/core/domain"
	"github.com/DanielPopoola/payorder-sdk/internal/core/ports"
	"github.com/DanielPopoola/payorder-sdk/internal/logger"
	"github.com/go-playground/validator"
	"go.uber.org/zap"
)

// OrderService validates lifecycle requests before they reach the payment API.
type OrderService struct {
	api       ports.OrderAPI
	validate  *validator.Validate
	serviceID string
	logger    *zap.Logger
}

// NewOrderService creates the service. serviceID is filled into create requests that carry none.
func NewOrderService(api ports.OrderAPI, serviceID string, l *zap.Logger) *OrderService {
	if l == nil {
		l = zap.NewNop()
	}
	return &OrderService{
		api:       api,
		validate:  validator.New(),
		serviceID: serviceID,
		logger:    l,
	}
}

func (s *OrderService) Create(ctx context.Context, req domain.OrderCreateRequest) (*domain.OrderSnapshot, error) {
	if req.ServiceID == "" {
		req.ServiceID = s.serviceID
	}
	if req.Amount.Currency == "" {
		req.Amount.Currency = domain.DefaultCurrency
	}
	if err := s.check(req); err != nil {
		return nil, err
	}

	order, err := s.api.Create(ctx, req)
	if err != nil {
		logger.With(ctx, s.logger).Error("create order failed", zap.String("reference", req.Reference), zap.Error(err))
		return nil, err
	}

	logger.With(ctx, s.logger).Info("order created",
		zap.String("order_id", order.ID),
		zap.String("reference", order.Reference),
	)
	return order, nil
}

func (s *OrderService) Status(ctx context.Context, orderID string) (*domain.OrderSnapshot, error) {
	if err := s.requireID(orderID); err != nil {
		return nil, err
	}
	return s.api.OrderStatus(ctx, orderID)
}

func (s *OrderService) TransactionStatus(ctx context.Context, transactionID string) (*domain.OrderSnapshot, error) {
	if err := s.requireID(transactionID); err != nil {
		return nil, err
	}
	return s.api.TransactionStatus(ctx, transactionID)
}

func (s *OrderService) Capture(ctx context.Context, orderID string) (*domain.OrderSnapshot, error) {
	return s.transition(ctx, "capture", orderID, s.api.Capture)
}

func (s *OrderService) CaptureAmount(ctx context.Context, req domain.CaptureAmountRequest) (*domain.OrderSnapshot, error) {
	if err := s.check(req); err != nil {
		return nil, err
	}
	return s.logged(ctx, "capture amount", req.OrderID, func() (*domain.OrderSnapshot, error) {
		return s.api.CaptureAmount(ctx, req)
	})
}

func (s *OrderService) CaptureProducts(ctx context.Context, req domain.CaptureProductsRequest) (*domain.OrderSnapshot, error) {
	if err := s.check(req); err != nil {
		return nil, err
	}
	return s.logged(ctx, "capture products", req.OrderID, func() (*domain.OrderSnapshot, error) {
		return s.api.CaptureProducts(ctx, req)
	})
}

func (s *OrderService) Void(ctx context.Context, orderID string) (*domain.OrderSnapshot, error) {
	return s.transition(ctx, "void", orderID, s.api.Void)
}

func (s *OrderService) Approve(ctx context.Context, orderID string) (*domain.OrderSnapshot, error) {
	return s.transition(ctx, "approve", orderID, s.api.Approve)
}

func (s *OrderService) Decline(ctx context.Context, orderID string) (*domain.OrderSnapshot, error) {
	return s.transition(ctx, "decline", orderID, s.api.Decline)
}

func (s *OrderService) Abort(ctx context.Context, orderID string) (*domain.OrderSnapshot, error) {
	return s.transition(ctx, "abort", orderID, s.api.Abort)
}

func (s *OrderService) Refund(ctx context.Context, req domain.RefundRequest) (*domain.OrderSnapshot, error) {
	if req.Amount.Currency == "" {
		req.Amount.Currency = domain.DefaultCurrency
	}
	if err := s.check(req); err != nil {
		return nil, err
	}
	return s.logged(ctx, "refund", req.TransactionID, func() (*domain.OrderSnapshot, error) {
		return s.api.Refund(ctx, req)
	})
}

func (s *OrderService) transition(ctx context.Context, op, orderID string, call func(context.Context, string) (*domain.OrderSnapshot, error)) (*domain.OrderSnapshot, error) {
	if err := s.requireID(orderID); err != nil {
		return nil, err
	}
	return s.logged(ctx, op, orderID, func() (*domain.OrderSnapshot, error) {
		return call(ctx, orderID)
	})
}

func (s *OrderService) logged(ctx context.Context, op, id string, call func() (*domain.OrderSnapshot, error)) (*domain.OrderSnapshot, error) {
	log := logger.With(ctx, s.logger).With(zap.String("operation", op), zap.String("id", id))

	order, err := call()
	if err != nil {
		log.Error("order operation failed", zap.Error(err))
		return nil, err
	}

	log.Info("order operation done", zap.Int("status_code", order.Status.Code))
	return order, nil
}

func (s *OrderService) check(req any) error {
	if err := s.validate.Struct(req); err != nil {
		return domain.NewValidationError(err)
	}
	return nil
}

func (s *OrderService) requireID(id string) error {
	if strings.TrimSpace(id) == "" {
		return domain.NewValidationError(errEmptyID)
	}
	return nil
}
