package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"election-assistant-be/internal/bootstrap"
	"election-assistant-be/internal/config"
	"election-assistant-be/internal/constant"
	"election-assistant-be/internal/pkg/logger"
	"election-assistant-be/internal/server"
	"election-assistant-be/internal/tracer"

	"golang.org/x/sync/errgroup"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Load Configuration
	cfg := config.Load()
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	defer sysLogger.Sync()

	// 2. Tracing
	shutdownTracer := tracer.InitTracer(cfg.Tracing, constant.AppVersion, sysLogger)

	// 3. Bootstrap Dependencies (Container). A broken bank must not serve.
	container, err := bootstrap.NewContainer(ctx, cfg, sysLogger)
	if err != nil {
		log.Fatalf("[FATAL] %v", err)
	}
	defer container.Close()

	srv := server.New(cfg, container)

	// 4. Run server and background workers until a signal arrives
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return container.ConsumerService.Consume(gctx)
	})
	g.Go(func() error {
		container.WebSocketHub.Run(gctx)
		return nil
	})
	g.Go(func() error {
		return srv.Run()
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		sysLogger.Info("Server", "Shutting down", nil)
		err := srv.Shutdown(shutdownCtx)
		if tErr := shutdownTracer(shutdownCtx); tErr != nil {
			err = errors.Join(err, tErr)
		}
		return err
	})

	if err := g.Wait(); err != nil {
		sysLogger.Error("Server", "Stopped with error", map[string]interface{}{"error": err.Error()})
	}
}
