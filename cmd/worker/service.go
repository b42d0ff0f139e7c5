package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/trovekart/storefront-backend/internal/cartsync"
	"github.com/trovekart/storefront-backend/internal/cron"
	"github.com/trovekart/storefront-backend/pkg/config"
	"github.com/trovekart/storefront-backend/pkg/db"
	"github.com/trovekart/storefront-backend/pkg/logger"
	"github.com/trovekart/storefront-backend/pkg/pubsub"
	"github.com/trovekart/storefront-backend/pkg/redis"
)

type ServiceParams struct {
	Config           *config.Config
	Logger           *logger.Logger
	DB               *db.Client
	Redis            *redis.Client
	PubSub           *pubsub.Client
	CartSyncConsumer *cartsync.Consumer
	CartView         *cartsync.View
	Cron             *cron.Service
	AdminAddr        string
}

type Service struct {
	cfg       *config.Config
	logg      *logger.Logger
	db        *db.Client
	redis     *redis.Client
	pubsub    *pubsub.Client
	consumer  *cartsync.Consumer
	view      *cartsync.View
	cron      *cron.Service
	adminAddr string
}

func NewService(params ServiceParams) (*Service, error) {
	if params.Config == nil {
		return nil, errors.New("config is required")
	}
	if params.Logger == nil {
		return nil, errors.New("logger is required")
	}
	if params.DB == nil {
		return nil, errors.New("database client is required")
	}
	if params.Redis == nil {
		return nil, errors.New("redis client is required")
	}
	if params.PubSub == nil {
		return nil, errors.New("pubsub client is required")
	}
	if params.CartSyncConsumer == nil {
		return nil, errors.New("cart sync consumer is required")
	}
	if params.CartView == nil {
		return nil, errors.New("cart view is required")
	}
	if params.Cron == nil {
		return nil, errors.New("cron service is required")
	}
	if params.AdminAddr == "" {
		return nil, errors.New("admin address is required")
	}

	return &Service{
		cfg:       params.Config,
		logg:      params.Logger,
		db:        params.DB,
		redis:     params.Redis,
		pubsub:    params.PubSub,
		consumer:  params.CartSyncConsumer,
		view:      params.CartView,
		cron:      params.Cron,
		adminAddr: params.AdminAddr,
	}, nil
}

func (s *Service) ensureReadiness(ctx context.Context) error {
	if err := pingDependency(ctx, s.logg, "database", s.db.Ping); err != nil {
		return err
	}
	if err := pingDependency(ctx, s.logg, "redis", s.redis.Ping); err != nil {
		return err
	}
	if err := pingDependency(ctx, s.logg, "pubsub", s.pubsub.Ping); err != nil {
		return err
	}
	s.logg.Info(ctx, "all worker dependencies are ready")
	return nil
}

func pingDependency(ctx context.Context, logg *logger.Logger, name string, fn func(context.Context) error) error {
	if err := fn(ctx); err != nil {
		logg.Error(ctx, fmt.Sprintf("%s ping failed", name), err)
		return fmt.Errorf("%s ping failed: %w", name, err)
	}
	return nil
}

func (s *Service) Run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	if err := s.ensureReadiness(ctx); err != nil {
		return err
	}

	server := &http.Server{Addr: s.adminAddr, Handler: newAdminMux(s.view, s.logg)}

	errCh := make(chan error, 3)
	go func() {
		errCh <- s.consumer.Run(ctx)
	}()
	go func() {
		errCh <- s.cron.Run(ctx)
	}()
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			s.logg.Error(ctx, "admin server shutdown failed", err)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			s.logg.Info(ctx, "worker context canceled")
			return ctx.Err()
		case err := <-errCh:
			if err != nil && !errors.Is(err, context.Canceled) {
				s.logg.Error(ctx, "worker loop stopped unexpectedly", err)
				return err
			}
			return err
		}
	}
}
