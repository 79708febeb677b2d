package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fitpass/gym-checkin-system/config"
	"github.com/fitpass/gym-checkin-system/internal/adapter/http/handler"
	httpserver "github.com/fitpass/gym-checkin-system/internal/adapter/http/server"
	"github.com/fitpass/gym-checkin-system/internal/adapter/postgres"
	rabbitbroker "github.com/fitpass/gym-checkin-system/internal/adapter/rabbit"
	"github.com/fitpass/gym-checkin-system/internal/domain/models"
	"github.com/fitpass/gym-checkin-system/internal/service/auth"
	"github.com/fitpass/gym-checkin-system/internal/service/checkin"
	"github.com/fitpass/gym-checkin-system/internal/service/geo"
	"github.com/fitpass/gym-checkin-system/internal/service/gym"
	"github.com/fitpass/gym-checkin-system/pkg/logger"
	postgresclient "github.com/fitpass/gym-checkin-system/pkg/postgres"
	"github.com/fitpass/gym-checkin-system/pkg/rabbit"
	"github.com/fitpass/gym-checkin-system/pkg/trm"
	"github.com/fitpass/gym-checkin-system/pkg/wshub"
)

type App struct {
	postgresDB *postgresclient.PostgreDB
	rabbitMQ   *rabbit.RabbitMQ
	connHub    *wshub.ConnectionHub
	broker     *rabbitbroker.CheckInBroker
	httpServer *httpserver.API

	cfg config.Config
	log logger.Logger
}

// NewApplication wires the repositories, services and transports.
func NewApplication(ctx context.Context, cfg config.Config, log logger.Logger) (*App, error) {
	db, err := postgresclient.New(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	rabbitClient, err := rabbit.New(ctx, cfg.RabbitMQ.GetDSN(), log)
	if err != nil {
		db.Pool.Close()
		return nil, err
	}

	// repositories
	userRepo := postgres.NewUserRepo(db.Pool)
	refreshRepo := postgres.NewRefreshTokenRepo(db.Pool)
	gymRepo := postgres.NewGymRepo(db.Pool)
	checkInRepo := postgres.NewCheckInRepo(db.Pool)

	txManager := trm.New(db.Pool)

	// messaging and live feed
	broker := rabbitbroker.NewCheckInBroker(rabbitClient, log)
	if err := broker.Setup(ctx); err != nil {
		rabbitClient.Close(ctx)
		db.Pool.Close()
		return nil, err
	}
	connHub := wshub.NewConnHub(log)
	feed := handler.NewFeed(connHub, httpserver.ServiceName, log)

	// services
	calc := geo.New()
	tokenSvc := auth.NewTokenService(cfg.Auth.JWTSecret, userRepo, refreshRepo, txManager, cfg.Auth.AccessTokenTTL, cfg.Auth.RefreshTokenTTL, log)
	authSvc := auth.NewAuthService(userRepo, tokenSvc, log)
	gymSvc := gym.NewGymService(gymRepo, log)
	checkInSvc := checkin.NewCheckInService(checkInRepo, gymRepo, calc, broker, feed, log)

	server, err := httpserver.New(cfg, authSvc, gymSvc, checkInSvc, authSvc, feed, log)
	if err != nil {
		rabbitClient.Close(ctx)
		db.Pool.Close()
		return nil, err
	}

	return &App{
		postgresDB: db,
		rabbitMQ:   rabbitClient,
		connHub:    connHub,
		broker:     broker,
		httpServer: server,
		cfg:        cfg,
		log:        log,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	defer func() {
		a.close(ctx)
		a.log.Info(ctx, "application closed")
	}()

	consumerCtx, stopConsumer := context.WithCancel(ctx)
	defer stopConsumer()

	// Back-office hook: notification and gamification workers consume
	// the same events; for now the app only records them.
	go func() {
		err := a.broker.ConsumeCheckInCreated(consumerCtx, a.handleCheckInCreated)
		if err != nil {
			a.log.Error(consumerCtx, "checkin consumer stopped", err)
		}
	}()

	errCh := make(chan error, 1)
	a.httpServer.Run(ctx, errCh)

	// Waiting signal
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	a.log.Info(ctx, "application started")
	select {
	case errRun := <-errCh:
		return errRun
	case sig := <-shutdownCh:
		a.log.Info(ctx, "shutting down application", "signal", sig.String())
		return nil
	}
}

func (a *App) handleCheckInCreated(ctx context.Context, msg models.CheckInCreatedMessage) error {
	a.log.Info(ctx, "check-in recorded",
		"checkin_id", msg.CheckInID.String(),
		"created_at", msg.CreatedAt,
	)
	return nil
}

func (a *App) close(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	if err := a.httpServer.Stop(ctx); err != nil {
		a.log.Error(ctx, "failed to shutdown HTTP server", err)
	}

	a.connHub.Close()

	if err := a.rabbitMQ.Close(ctx); err != nil {
		a.log.Error(ctx, "failed to close RabbitMQ connection", err)
	}

	a.postgresDB.Pool.Close()
}
