package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/vietanh2810/dining-pos-api/internal/api"
	"github.com/vietanh2810/dining-pos-api/internal/config"
	"github.com/vietanh2810/dining-pos-api/internal/db"
	"github.com/vietanh2810/dining-pos-api/internal/logger"
	"github.com/vietanh2810/dining-pos-api/internal/messaging"
	"github.com/vietanh2810/dining-pos-api/internal/service"
)

func Start() error {
	conf, err := config.Load("./cmd/app/config.yml")
	if err != nil {
		return fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		return fmt.Errorf("failed to initialize logger -> %w", err)
	}

	dbURL := os.Getenv("DATABASE_URL")
	var database *gorm.DB
	if dbURL != "" {
		database, err = db.OpenPostgresWithURL(dbURL)
	} else {
		database, err = db.Open(conf)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database -> %w", err)
	}

	var publishers []service.EventPublisher
	if conf.RabbitMQ.Enabled {
		publisher, err := messaging.Dial(*conf.RabbitMQ)
		if err != nil {
			return fmt.Errorf("failed to initialize rabbitmq -> %w", err)
		}
		defer publisher.Close()
		publishers = append(publishers, publisher)
		zap.L().Info(fmt.Sprintf("publishing events to exchange %v", conf.RabbitMQ.Exchange))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s := api.NewServer(conf, database, publishers...)
	go s.Floor.Run(ctx)

	addr := ":" + s.Config.API.Port
	zap.L().Info(fmt.Sprintf("starting server at %v", addr))
	if err = s.Router.Run(addr); err != nil {
		return fmt.Errorf("failed to start the server -> %w", err)
	}

	return nil
}
