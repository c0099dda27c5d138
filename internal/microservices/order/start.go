package order

import (
	"context"
	"database/sql"
	"strconv"

	"restaurant-system/internal/common/httpx"
	"restaurant-system/internal/common/logger"
	"restaurant-system/internal/config"
	"restaurant-system/internal/connections/rabbitmq"
	"restaurant-system/internal/microservices/order/events"
	"restaurant-system/internal/microservices/order/handlers"
	"restaurant-system/internal/microservices/order/repository"
	"restaurant-system/internal/microservices/order/service"
)

// Run serves the order API until ctx is canceled. rmqClient may be nil, in
// which case no events are published.
func Run(ctx context.Context, cfg config.HTTPConfig, db *sql.DB, rmqClient *rabbitmq.Client, lg *logger.Logger) error {
	var pub events.Publisher = events.NopPublisher{}
	if rmqClient != nil {
		pub = events.NewRabbitPublisher(rmqClient)
	}

	repo := repository.New(db)
	svc := service.New(repo, pub, lg)
	h := handlers.New(svc, repo, lg)

	srv := httpx.New(":"+strconv.Itoa(cfg.Port), handlers.Router(h, lg), httpx.Timeouts{
		Read:  cfg.ReadTimeout,
		Write: cfg.WriteTimeout,
		Idle:  cfg.IdleTimeout,
	})
	lg.Info("order_service_listening", map[string]any{"port": cfg.Port})
	return srv.Run(ctx)
}
