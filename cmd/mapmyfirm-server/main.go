package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"mapmyfirm/internal/adapters/httpapi"
	"mapmyfirm/internal/adapters/sqlite"
	"mapmyfirm/internal/config"
	"mapmyfirm/internal/logging"
)

func main() {
	addr := flag.String("addr", config.Addr(), "listen address")
	dbURL := flag.String("db", config.DatabaseURL(), "project database path or libsql:// URL")
	origins := flag.String("origins", "", "comma-separated CORS origins (default localhost dev servers)")
	flag.Parse()

	logger := logging.New(os.Stdout, logging.ParseLevel(config.LogLevel()), true)
	log := logger.System()

	store, err := sqlite.Open(context.Background(), *dbURL, logger.Store())
	if err != nil {
		log.Error("failed to open project store", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	gin.SetMode(gin.ReleaseMode)
	opts := httpapi.Options{Log: logger.HTTP()}
	if *origins != "" {
		opts.AllowOrigins = strings.Split(*origins, ",")
	}

	srv := &http.Server{
		Addr:              *addr,
		Handler:           httpapi.NewRouter(store, opts),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("listening", "addr", *addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown failed", "error", err)
	}
	log.Info("stopped")
}
