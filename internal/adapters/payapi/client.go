// Package payapi talks to the payment processor's order and transaction endpoints.
package payapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/DanielPopoola/payorder-sdk/internal/config"
	"github.com/DanielPopoola/payorder-sdk/internal/core/domain"
	"github.com/DanielPopoola/payorder-sdk/internal/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Client struct {
	username     string
	password     string
	orderBaseURL string
	restBaseURL  string
	httpClient   *http.Client
	logger       *zap.Logger
}

func NewClient(cfg config.PayAPIConfig, l *zap.Logger) *Client {
	if l == nil {
		l = zap.NewNop()
	}
	return &Client{
		username:     cfg.Username,
		password:     cfg.Password,
		orderBaseURL: cfg.OrderBaseURL,
		restBaseURL:  cfg.RestBaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: l,
	}
}

func (c *Client) OrderStatus(ctx context.Context, orderID string) (*domain.OrderSnapshot, error) {
	return sendRequest[struct{}](
		c, ctx, http.MethodGet, c.orderURL(orderID, "status"), nil,
	)
}

func (c *Client) TransactionStatus(ctx context.Context, transactionID string) (*domain.OrderSnapshot, error) {
	return sendRequest[struct{}](
		c, ctx, http.MethodGet, c.restBaseURL+"/transactions/"+url.PathEscape(transactionID)+"/status", nil,
	)
}

func (c *Client) Create(ctx context.Context, req domain.OrderCreateRequest) (*domain.OrderSnapshot, error) {
	body := createOrderRequest{OrderCreateRequest: req}
	if req.PaymentMethodID != 0 {
		body.PaymentMethod = &paymentMethodRef{ID: req.PaymentMethodID}
	}
	if req.TestMode {
		body.Integration = &integrationRef{Test: true}
	}
	return sendRequest[createOrderRequest](
		c, ctx, http.MethodPost, c.orderBaseURL+"/orders", &body,
	)
}

func (c *Client) Capture(ctx context.Context, orderID string) (*domain.OrderSnapshot, error) {
	return c.patchOrder(ctx, orderID, "capture")
}

func (c *Client) CaptureAmount(ctx context.Context, req domain.CaptureAmountRequest) (*domain.OrderSnapshot, error) {
	return sendRequest[captureAmountBody](
		c, ctx, http.MethodPatch, c.orderURL(req.OrderID, "capture/amount"), &captureAmountBody{Amount: req.Amount},
	)
}

func (c *Client) CaptureProducts(ctx context.Context, req domain.CaptureProductsRequest) (*domain.OrderSnapshot, error) {
	return sendRequest[captureProductsBody](
		c, ctx, http.MethodPatch, c.orderURL(req.OrderID, "capture/products"), &captureProductsBody{Products: req.Products},
	)
}

func (c *Client) Void(ctx context.Context, orderID string) (*domain.OrderSnapshot, error) {
	return c.patchOrder(ctx, orderID, "void")
}

func (c *Client) Approve(ctx context.Context, orderID string) (*domain.OrderSnapshot, error) {
	return c.patchOrder(ctx, orderID, "approve")
}

func (c *Client) Decline(ctx context.Context, orderID string) (*domain.OrderSnapshot, error) {
	return c.patchOrder(ctx, orderID, "decline")
}

func (c *Client) Abort(ctx context.Context, orderID string) (*domain.OrderSnapshot, error) {
	return c.patchOrder(ctx, orderID, "abort")
}

func (c *Client) Refund(ctx context.Context, req domain.RefundRequest) (*domain.OrderSnapshot, error) {
	body := refundBody{Amount: req.Amount, Description: req.Description}
	return sendRequest[refundBody](
		c, ctx, http.MethodPatch, c.restBaseURL+"/transactions/"+url.PathEscape(req.TransactionID)+"/refund", &body,
	)
}

func (c *Client) patchOrder(ctx context.Context, orderID, action string) (*domain.OrderSnapshot, error) {
	return sendRequest[struct{}](
		c, ctx, http.MethodPatch, c.orderURL(orderID, action), nil,
	)
}

func (c *Client) orderURL(orderID, action string) string {
	return c.orderBaseURL + "/orders/" + url.PathEscape(orderID) + "/" + action
}

// sendRequest is a generic helper for calling the payment API and mapping the answer to a snapshot.
func sendRequest[Req any](c *Client, ctx context.Context, method, fullURL string, req *Req) (*domain.OrderSnapshot, error) {
	var body io.Reader
	if req != nil {
		jsonData, err := json.Marshal(req)
		if err != nil {
			return nil, fmt.Errorf("error marshalling json: %w", err)
		}
		body = bytes.NewReader(jsonData)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	reqID := logger.RequestIDFrom(ctx)
	if reqID == "" {
		reqID = uuid.NewString()
	}

	httpReq.SetBasicAuth(c.username, c.password)
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set(logger.RequestIDHeader, reqID)
	if req != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response: %w", err)
	}

	c.logger.Debug("pay api call",
		zap.String("request_id", reqID),
		zap.String("method", method),
		zap.String("url", fullURL),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, parseAPIError(resp.StatusCode, respBody)
	}

	var payResp orderResponse
	if err := json.Unmarshal(respBody, &payResp); err != nil {
		return nil, fmt.Errorf("error decoding json response: %w", err)
	}

	return payResp.toDomain(), nil
}
