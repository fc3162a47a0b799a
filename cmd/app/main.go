package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/callkeeper/internal/app"
	"github.com/dmitrijs2005/callkeeper/internal/cli"
	"github.com/dmitrijs2005/callkeeper/internal/config"
)

func initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func main() {

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	initSignalHandler(cancelFunc)

	cfg := config.LoadConfig()

	a, err := app.NewApp(cfg)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	if err := cli.NewCLI(a).Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}
}
