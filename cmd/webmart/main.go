package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/lumenlabs/webmart/config"
	"github.com/lumenlabs/webmart/internal/adminapi"
	"github.com/lumenlabs/webmart/internal/app"
	"github.com/lumenlabs/webmart/internal/catalogapi"
	"github.com/lumenlabs/webmart/internal/webserver"
)

var (
	BuildVersion = "dev"

	cfile   = flag.String("c", "webmart.yml", "config file")
	showVer = flag.Bool("v", false, "print version and exit")
)

func main() {
	flag.Parse()
	if *showVer {
		fmt.Println("webmart", BuildVersion)
		os.Exit(0)
	}

	cfg := config.LoadConfig(*cfile)
	application := app.NewApplication(cfg)
	application.Init(cfg)
	defer application.Release()

	webserver.Init(application)
	adminapi.InitRouter()
	catalogapi.InitRouter()

	errCh := make(chan error, 1)
	go func() {
		errCh <- webserver.Listen()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		if err != nil {
			zap.S().Errorf("web server error: %v", err)
		}
	case <-ctx.Done():
		zap.S().Info("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := webserver.Shutdown(shutdownCtx); err != nil {
			zap.S().Errorf("web server shutdown error: %v", err)
		}
	}
}
