package main

import (
	"context"
	"log"

	"github.com/dmitrijs2005/jobtrack/internal/server"
	"github.com/dmitrijs2005/jobtrack/internal/server/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := server.NewApp(ctx, cfg)

	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)

}
