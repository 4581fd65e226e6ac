package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/noespetshop/storefront/config"
	"github.com/noespetshop/storefront/internal/adminapi"
	"github.com/noespetshop/storefront/internal/app"
	"github.com/noespetshop/storefront/internal/webserver"
)

var (
	cfile   = flag.String("c", "petshop.yml", "config yaml file")
	debug   = flag.Bool("x", false, "debug mode")
	version = flag.Bool("v", false, "print version and exit")
)

// Filled in by the build.
var (
	buildVersion = "dev"
	buildTime    = "unknown"
)

func main() {
	flag.Parse()

	if *version {
		fmt.Printf("petshopd %s (built %s)\n", buildVersion, buildTime)
		return
	}

	_ = godotenv.Load()

	cfg := config.LoadConfig(*cfile)
	if *debug {
		cfg.System.Debug = true
		cfg.Logger.Mode = "development"
	}

	application := app.NewApplication(cfg)
	application.Init(cfg)
	defer application.Release()

	ws := webserver.Init(application)
	adminapi.Register(ws)

	errCh := make(chan error, 1)
	go func() {
		errCh <- ws.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			zap.S().Errorf("web server stopped: %v", err)
		}
	case sig := <-sigCh:
		zap.S().Infof("received signal %s, shutting down", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := ws.Shutdown(ctx); err != nil {
			zap.S().Errorf("shutdown error: %v", err)
		}
	}
}
