package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/erkineren/pipeline-notify/internal/cli"
	log "github.com/sirupsen/logrus"
)

func main() {
	// Interrupts cancel in-flight requests and kubectl.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	err := cli.Execute(ctx)
	stop()
	if err != nil {
		log.Errorf("Error: %v", err)
		os.Exit(1)
	}
}
