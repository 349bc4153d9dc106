package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/envelope-zero/wallet/internal/config"
	"github.com/envelope-zero/wallet/pkg/controllers"
	"github.com/envelope-zero/wallet/pkg/events"
	"github.com/envelope-zero/wallet/pkg/models"
	"github.com/envelope-zero/wallet/pkg/router"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	if err := cfg.Validate(); err != nil {
		log.Fatal().Msg(err.Error())
	}

	cfg.ConfigureLogging(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatal().Msg(err.Error())
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	adapter, closeStorage, err := cfg.OpenStorage()
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStorage(); err != nil {
			log.Error().Err(err).Msg("closing storage")
		}
	}()

	hub := events.NewHub()
	notifiers := []events.Notifier{events.Log{Logger: log.Logger}, hub}

	if cfg.AMQPURL != "" {
		publisher, err := events.DialAMQP(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			return err
		}
		defer publisher.Close()

		notifiers = append(notifiers, publisher)
		log.Info().Str("exchange", cfg.AMQPExchange).Msg("publishing changes to AMQP")
	}

	session := models.NewSession(models.WithAdapter(adapter), models.WithNotifiers(notifiers...))
	if err := session.Load(ctx); err != nil {
		return err
	}
	log.Info().Str("backend", cfg.StorageBackend).Int("months", len(session.Budgets())).Msg("state loaded")

	r, teardown, err := router.Config(cfg.URL())
	if err != nil {
		return err
	}
	defer teardown()

	router.AttachRoutes(controllers.Controller{Session: session, Hub: hub}, r.Group("/"))

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("addr", server.Addr).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Info().Msg("shutting down")

		// Websocket connections are hijacked and not closed by Shutdown
		if err := hub.Close(); err != nil {
			log.Error().Err(err).Msg("closing websocket connections")
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
