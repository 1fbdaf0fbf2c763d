package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/afero"

	"github.com/convertly/convertly/api/handlers"
	"github.com/convertly/convertly/api/routes"
	"github.com/convertly/convertly/config"
	"github.com/convertly/convertly/internal/dispatch"
	"github.com/convertly/convertly/internal/lifecycle"
	"github.com/convertly/convertly/internal/registry"
	"github.com/convertly/convertly/pkg/logger"
	"github.com/convertly/convertly/pkg/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	// init logger
	log, err := logger.NewLogger(
		logger.WithLevel(cfg.LogLevel),
		logger.WithEncoding(cfg.LogEncoding),
		logger.WithOutputPaths([]string{"stdout", "logs/app.log"}),
	)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	store := storage.NewLayout(afero.NewOsFs(), cfg.UploadsDir, cfg.OutputDir, cfg.MaxUploadBytes, log)

	life := lifecycle.New(cfg.RetentionWindow, store.Remove, log.Named("lifecycle"))
	defer life.Stop()

	reg := registry.New(store, log.Named("tools"))
	router := dispatch.NewRouter(reg, store, life, log.Named("dispatch"))

	h := handlers.NewHandlers(reg, router, store, cfg, log.Named("http"))

	r := gin.New()
	// A panic anywhere still yields the uniform JSON envelope, never the
	// default error page.
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Error("panic recovered", logger.Any("panic", recovered))
		c.AbortWithStatusJSON(http.StatusInternalServerError,
			handlers.Envelope{Success: false, Error: "Internal server error"})
	}))
	routes.SetupRoutes(r, h, cfg.AllowedOrigins)

	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: r,
	}

	// start server
	go func() {
		log.Info("Server starting",
			logger.String("addr", cfg.ListenAddr),
			logger.Int("tools", reg.Len()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server error:", logger.Error(err))
		}
	}()

	// wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown:", logger.Error(err))
	}
}
