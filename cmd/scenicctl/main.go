package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/cx-tal-miterani/scenic-airways/internal/app"
	"github.com/cx-tal-miterani/scenic-airways/internal/cli"
	"github.com/cx-tal-miterani/scenic-airways/internal/config"
	"github.com/cx-tal-miterani/scenic-airways/internal/logger"
)

func main() {
	log := logger.Init(os.Stderr)

	open := func(ctx context.Context) (*cli.Session, func(), error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, nil, err
		}
		a, err := app.New(ctx, cfg, log)
		if err != nil {
			return nil, nil, err
		}
		return &cli.Session{Auth: a.Auth, Workflow: a.Workflow, Catalog: a.Catalog}, a.Close, nil
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := cli.Execute(ctx, open); err != nil {
		fmt.Fprintln(os.Stderr, err)
		cancel()
		os.Exit(1)
	}
}
