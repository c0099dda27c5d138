package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"restaurant-system/internal/common/logger"
	"restaurant-system/internal/config"
	"restaurant-system/internal/connections/database"
	"restaurant-system/internal/connections/rabbitmq"
	"restaurant-system/internal/microservices/notificator"
	"restaurant-system/internal/microservices/order"
)

func main() {
	mode := flag.String("mode", "order-service", "order-service | notification-subscriber")
	cfgPath := flag.String("config", "config.yaml", "path to YAML config")
	port := flag.Int("port", 0, "http port, overrides config")
	flag.Parse()

	lg := logger.New("bootstrap")

	cfg, err := config.LoadConfig(*cfgPath)
	if err != nil {
		lg.Error("config_load_failed", err, map[string]any{"path": *cfgPath})
		os.Exit(1)
	}
	if *port != 0 {
		cfg.HTTP.Port = *port
	}
	lg.SetLevel(cfg.Log.Level)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	switch *mode {
	case "order-service":
		err = runOrderService(ctx, cfg)
	case "notification-subscriber":
		err = runNotificator(ctx, cfg)
	default:
		fmt.Fprintln(os.Stderr, "--mode must be one of: order-service | notification-subscriber")
		os.Exit(2)
	}
	if err != nil {
		lg.Error("fatal", err, map[string]any{"mode": *mode})
		os.Exit(1)
	}
}

func runOrderService(ctx context.Context, cfg *config.Config) error {
	lg := logger.New("order-service")
	lg.SetLevel(cfg.Log.Level)

	db, err := database.ConnectDB(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()
	lg.Info("db_connected", map[string]any{
		"host": cfg.Database.Host, "port": cfg.Database.Port, "database": cfg.Database.Database,
	})

	var rmq *rabbitmq.Client
	if cfg.RabbitMQ.Enabled() {
		rmq, err = rabbitmq.Dial(cfg.RabbitMQ)
		if err != nil {
			return fmt.Errorf("rabbitmq connect: %w", err)
		}
		defer rmq.Close()
		if err := rmq.DeclareTopology(); err != nil {
			return err
		}
		lg.Info("rabbitmq_connected", map[string]any{"host": cfg.RabbitMQ.Host, "vhost": cfg.RabbitMQ.VHost})
	} else {
		lg.Info("rabbitmq_disabled", nil)
	}

	lg.Info("service_started", map[string]any{"port": cfg.HTTP.Port})
	return order.Run(ctx, cfg.HTTP, db, rmq, lg)
}

func runNotificator(ctx context.Context, cfg *config.Config) error {
	lg := logger.New("notification-subscriber")
	lg.SetLevel(cfg.Log.Level)

	if !cfg.RabbitMQ.Enabled() {
		return errors.New("notification-subscriber requires rabbitmq config")
	}
	rmq, err := rabbitmq.Dial(cfg.RabbitMQ)
	if err != nil {
		return fmt.Errorf("rabbitmq connect: %w", err)
	}
	defer rmq.Close()
	if err := rmq.Ping(); err != nil {
		return err
	}

	lg.Info("service_started", nil)
	return notificator.Run(ctx, rmq, lg)
}
