package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/DanielPopoola/payorder-sdk/internal/core/domain"
	"github.com/DanielPopoola/payorder-sdk/internal/core/service"
	"github.com/spf13/cobra"
)

func createCmd() *cobra.Command {
	var (
		req      domain.OrderCreateRequest
		amount   string
		currency string
		fast     bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an order and print its payment link",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := domain.AmountFromUnits(amount, currency)
			if err != nil {
				return err
			}
			req.Amount = a
			if fast {
				req.EnableFastCheckout(true, true, true)
			}
			return run(func(ctx context.Context, svc *service.OrderService) (*domain.OrderSnapshot, error) {
				return svc.Create(ctx, req)
			})
		},
	}

	cmd.Flags().StringVar(&amount, "amount", "", "amount in major units, e.g. 12.50")
	cmd.Flags().StringVar(&currency, "currency", domain.DefaultCurrency, "ISO 4217 currency code")
	cmd.Flags().StringVar(&req.ServiceID, "service", "", "service id (defaults to configuration)")
	cmd.Flags().StringVar(&req.Description, "description", "", "order description")
	cmd.Flags().StringVar(&req.Reference, "reference", "", "merchant reference")
	cmd.Flags().StringVar(&req.ReturnURL, "return-url", "", "URL the customer returns to")
	cmd.Flags().StringVar(&req.ExchangeURL, "exchange-url", "", "URL receiving status notifications")
	cmd.Flags().Int64Var(&req.PaymentMethodID, "method", 0, "payment method id")
	cmd.Flags().BoolVar(&req.TestMode, "test", false, "create the order in test mode")
	cmd.Flags().BoolVar(&fast, "fast-checkout", false, "collect customer details during checkout")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("return-url")

	return cmd
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status [order-id]",
		Short: "Show the current status of an order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, svc *service.OrderService) (*domain.OrderSnapshot, error) {
				return svc.Status(ctx, args[0])
			})
		},
	}
}

func transactionStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "transaction-status [transaction-id]",
		Short: "Show the status of a transaction, including refunds",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, svc *service.OrderService) (*domain.OrderSnapshot, error) {
				return svc.TransactionStatus(ctx, args[0])
			})
		},
	}
}

func captureCmd() *cobra.Command {
	var (
		amount   string
		products []string
	)

	cmd := &cobra.Command{
		Use:   "capture [order-id]",
		Short: "Capture an authorized order, fully or partially",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			orderID := args[0]
			switch {
			case amount != "" && len(products) > 0:
				return fmt.Errorf("--amount and --product are mutually exclusive")
			case amount != "":
				a, err := domain.AmountFromUnits(amount, "")
				if err != nil {
					return err
				}
				return run(func(ctx context.Context, svc *service.OrderService) (*domain.OrderSnapshot, error) {
					return svc.CaptureAmount(ctx, domain.CaptureAmountRequest{OrderID: orderID, Amount: a.Value})
				})
			case len(products) > 0:
				parsed, err := parseProducts(products)
				if err != nil {
					return err
				}
				return run(func(ctx context.Context, svc *service.OrderService) (*domain.OrderSnapshot, error) {
					return svc.CaptureProducts(ctx, domain.CaptureProductsRequest{OrderID: orderID, Products: parsed})
				})
			default:
				return run(func(ctx context.Context, svc *service.OrderService) (*domain.OrderSnapshot, error) {
					return svc.Capture(ctx, orderID)
				})
			}
		},
	}

	cmd.Flags().StringVar(&amount, "amount", "", "capture this amount in major units")
	cmd.Flags().StringSliceVar(&products, "product", nil, "capture products as id:quantity")

	return cmd
}

func refundCmd() *cobra.Command {
	var (
		amount      string
		currency    string
		description string
	)

	cmd := &cobra.Command{
		Use:   "refund [transaction-id]",
		Short: "Refund a paid transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := domain.AmountFromUnits(amount, currency)
			if err != nil {
				return err
			}
			req := domain.RefundRequest{TransactionID: args[0], Amount: a, Description: description}
			return run(func(ctx context.Context, svc *service.OrderService) (*domain.OrderSnapshot, error) {
				return svc.Refund(ctx, req)
			})
		},
	}

	cmd.Flags().StringVar(&amount, "amount", "", "amount to refund in major units")
	cmd.Flags().StringVar(&currency, "currency", domain.DefaultCurrency, "ISO 4217 currency code")
	cmd.Flags().StringVar(&description, "description", "", "refund description")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func transitionCmd(use, short string, call func(*service.OrderService, context.Context, string) (*domain.OrderSnapshot, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [order-id]",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, svc *service.OrderService) (*domain.OrderSnapshot, error) {
				return call(svc, ctx, args[0])
			})
		},
	}
}

// parseProducts reads "id:quantity" pairs, a missing quantity means 1.
func parseProducts(values []string) ([]domain.CaptureProduct, error) {
	products := make([]domain.CaptureProduct, 0, len(values))
	for _, v := range values {
		id, qty, found := strings.Cut(v, ":")
		p := domain.CaptureProduct{ID: strings.TrimSpace(id), Quantity: 1}
		if found {
			n, err := strconv.Atoi(strings.TrimSpace(qty))
			if err != nil {
				return nil, fmt.Errorf("invalid quantity in %q: %w", v, err)
			}
			p.Quantity = n
		}
		if p.ID == "" {
			return nil, fmt.Errorf("missing product id in %q", v)
		}
		products = append(products, p)
	}
	return products, nil
}
