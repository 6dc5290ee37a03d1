package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/DanielPopoola/payorder-sdk/internal/adapters/payapi"
	"github.com/DanielPopoola/payorder-sdk/internal/config"
	"github.com/DanielPopoola/payorder-sdk/internal/core/domain"
	"github.com/DanielPopoola/payorder-sdk/internal/core/service"
	"github.com/DanielPopoola/payorder-sdk/internal/logger"
	"github.com/spf13/cobra"
)

var Version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:           "paycli",
		Short:         "Manage orders on the payment API",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(createCmd())
	rootCmd.AddCommand(statusCmd())
	rootCmd.AddCommand(transactionStatusCmd())
	rootCmd.AddCommand(captureCmd())
	rootCmd.AddCommand(refundCmd())
	rootCmd.AddCommand(transitionCmd("void", "Void an authorized order", (*service.OrderService).Void))
	rootCmd.AddCommand(transitionCmd("approve", "Approve an order under verification", (*service.OrderService).Approve))
	rootCmd.AddCommand(transitionCmd("decline", "Decline an order under verification", (*service.OrderService).Decline))
	rootCmd.AddCommand(transitionCmd("abort", "Abort an open order", (*service.OrderService).Abort))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newService() (*service.OrderService, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	log, err := logger.Init(cfg.Primary.Env, cfg.Logger.Level)
	if err != nil {
		return nil, err
	}
	client := payapi.NewClient(cfg.PayAPI, log.Named("payapi"))
	return service.NewOrderService(client, cfg.PayAPI.ServiceID, log), nil
}

func printOrder(order *domain.OrderSnapshot) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(order)
}

// run builds the service, calls fn and prints the resulting order.
func run(fn func(context.Context, *service.OrderService) (*domain.OrderSnapshot, error)) error {
	svc, err := newService()
	if err != nil {
		return err
	}
	defer logger.Sync()

	order, err := fn(context.Background(), svc)
	if err != nil {
		return err
	}
	return printOrder(order)
}
