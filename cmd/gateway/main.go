package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DanielPopoola/payorder-sdk/internal/adapters/handler"
	"github.com/DanielPopoola/payorder-sdk/internal/adapters/payapi"
	"github.com/DanielPopoola/payorder-sdk/internal/adapters/rabbitmq"
	"github.com/DanielPopoola/payorder-sdk/internal/config"
	"github.com/DanielPopoola/payorder-sdk/internal/core/exchange"
	"github.com/DanielPopoola/payorder-sdk/internal/core/ports"
	"github.com/DanielPopoola/payorder-sdk/internal/core/service"
	"github.com/DanielPopoola/payorder-sdk/internal/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.Init(cfg.Primary.Env, cfg.Logger.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	log.Info("starting exchange gateway",
		zap.String("port", cfg.Server.Port),
		zap.String("env", cfg.Primary.Env),
		zap.String("exchange_path", cfg.Exchange.Path),
	)

	apiClient := payapi.NewClient(cfg.PayAPI, log.Named("payapi"))

	var publisher ports.EventPublisher
	if cfg.Broker.URL != "" {
		p, err := rabbitmq.NewPublisher(cfg.Broker, log.Named("rabbitmq"))
		if err != nil {
			log.Fatal("failed to connect to broker", zap.Error(err))
		}
		defer p.Close()
		publisher = p
		log.Info("publishing order events", zap.String("exchange", cfg.Broker.Exchange))
	}

	dispatcher := service.NewDispatcher(publisher, log.Named("dispatcher"))
	exchangeHandler := handler.NewExchangeHandler(
		exchange.Config{
			Username:     cfg.PayAPI.Username,
			Password:     cfg.PayAPI.Password,
			ReferenceKey: cfg.Exchange.ReferenceKey,
		},
		cfg.Server.MaxBodyBytes,
		apiClient,
		dispatcher,
		log.Named("exchange"),
	)

	r := chi.NewRouter()
	r.Use(logger.RequestIDMiddleware)
	r.Use(middleware.RealIP)
	r.Use(logger.AccessLog(log))
	r.Use(handler.Recovery(log))

	r.Get("/healthz", handler.Health)
	r.Group(func(r chi.Router) {
		if cfg.Server.RateLimit > 0 {
			r.Use(handler.NewRateLimiter(cfg.Server.RateLimit, cfg.Server.RateBurst).Middleware)
		}
		r.Method(http.MethodPost, cfg.Exchange.Path, exchangeHandler)
		r.Method(http.MethodGet, cfg.Exchange.Path, exchangeHandler)
	})

	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("server starting", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}

	log.Info("server exited")
}
