package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wandaazhar007/backend-kansha-2026/internal/auth"
	"github.com/wandaazhar007/backend-kansha-2026/internal/config"
	httpAPI "github.com/wandaazhar007/backend-kansha-2026/internal/http"
	"github.com/wandaazhar007/backend-kansha-2026/internal/http/controller"
	"github.com/wandaazhar007/backend-kansha-2026/internal/logger"
	"github.com/wandaazhar007/backend-kansha-2026/internal/metrics"
	"github.com/wandaazhar007/backend-kansha-2026/internal/store"
)

func main() {
	conf, err := config.LoadFromEnv()
	handleErr("loading config", err)

	logger.InitJSONLogger(conf.DebugMode)

	ctx := context.Background()
	st, err := store.StartMongo(ctx, conf.Mongo)
	handleErr("starting document store", err)

	verifier := auth.NewProviderClient(conf.Auth)

	ctr := controller.New()
	categoryCtr := controller.NewCategoryController(st)
	productCtr := controller.NewProductController(st)

	if !conf.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}
	server := gin.New()
	server = httpAPI.InitRouter(conf, server, verifier, ctr, categoryCtr, productCtr)

	httpServer := &http.Server{
		Addr:              ":" + conf.HTTPServer.Port,
		Handler:           server,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Printf("BACKEND-KANSHA running on port %s", conf.HTTPServer.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			handleErr("listening to HTTP requests", err)
		}
	}()

	metrics.StartMetricsServer(conf.MetricsServer.Port)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	log.Println("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("error while shutting down HTTP server: %v", err)
	}
}

func handleErr(msg string, err error) {
	if err != nil {
		log.Fatalf("error while %s: %v", msg, err)
	}
}
