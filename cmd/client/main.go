package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/jobtrack/internal/client/cli"
	"github.com/dmitrijs2005/jobtrack/internal/client/client"
	"github.com/dmitrijs2005/jobtrack/internal/client/config"
	"github.com/dmitrijs2005/jobtrack/internal/client/services"
	"github.com/dmitrijs2005/jobtrack/internal/flagx"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()

	api := client.NewHTTPClient(cfg.ServerURL, cfg.RequestTimeout)
	auth := services.NewAuthService(api, services.NewTokenStore(cfg.TokenFile))
	app := cli.NewApp(api, auth, os.Stdin, os.Stdout)

	if err := app.Run(ctx, flagx.RemoveArgs(os.Args[1:], config.Flags)); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
