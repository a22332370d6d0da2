package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
	"golang.org/x/sync/errgroup"

	"github.com/evenup/evenup/internal/auth"
	"github.com/evenup/evenup/internal/config"
	"github.com/evenup/evenup/internal/events"
	"github.com/evenup/evenup/internal/httpapi"
	"github.com/evenup/evenup/internal/service"
	"github.com/evenup/evenup/internal/storage/sqlite"
	"github.com/evenup/evenup/pkg/logging"
)

func main() {
	logging.Setup()

	if err := run(); err != nil {
		slog.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()
	slog.Info("Database ready", "path", cfg.DBPath)

	var publisher *events.AMQPPublisher
	if cfg.AMQPURL != "" {
		publisher, err = events.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			return err
		}
		defer publisher.Close()
		slog.Info("Event publishing enabled", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	} else {
		slog.Info("Event publishing disabled, AMQP_URL not set")
	}

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenDuration)
	authSvc := service.NewAuthService(auth.NewPasswordAuthenticator(store), jwtManager)
	groupSvc := service.NewGroupService(store)
	expenseSvc := service.NewExpenseService(store, publisher)

	api := httpapi.NewServer(authSvc, groupSvc, expenseSvc, jwtManager)

	srv := &http.Server{
		Addr: ":" + cfg.Port,
		// h2c serves HTTP/2 without TLS; TLS termination happens at the edge.
		Handler:           h2c.NewHandler(api.Handler(), &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		slog.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
