package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/accountstore/internal/app"
	"github.com/dmitrijs2005/accountstore/internal/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("%v", err)
	}

	a, err := app.NewStdApp(ctx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	runErr := a.Run(ctx)
	if err := a.Close(context.Background()); err != nil {
		log.Printf("%v", err)
	}
	if runErr != nil {
		log.Printf("%v", runErr)
		os.Exit(1)
	}
}
