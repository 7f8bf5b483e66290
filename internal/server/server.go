// Package server boots the application: configuration, MongoDB, Redis,
// storage disks, optional Mongo log sink, then the HTTP listener.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lacantina/backend/config"
	"github.com/lacantina/backend/internal/kernel"
	"github.com/lacantina/backend/pkg/cache"
	"github.com/lacantina/backend/pkg/database"
	"github.com/lacantina/backend/pkg/logger"
	"github.com/lacantina/backend/pkg/storage"
)

// Start runs the server until SIGINT/SIGTERM, then drains in-flight
// requests for up to ten seconds.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}

	if err := database.Connect(); err != nil {
		return err
	}
	defer database.Disconnect()

	// Redis is optional: the cache degrades to a no-op when missing.
	if err := cache.Connect(); err != nil {
		logger.Warn("redis no disponible, cache deshabilitado", "error", err)
	}

	storage.Connect()

	if config.LogToMongo() {
		h, err := logger.EnableMongo(database.Collection(database.ColLogs))
		if err != nil {
			logger.Warn("no se pudo habilitar el log en mongo", "error", err)
		} else {
			defer h.Close()
		}
	}

	httpKernel := kernel.NewHTTPKernel()

	addr := ":" + config.AppPort()
	srv := &http.Server{
		Addr:              addr,
		Handler:           httpKernel.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("cantina escuchando", "addr", addr, "env", config.AppEnv())
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case sig := <-stop:
		logger.Info("apagando", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}
