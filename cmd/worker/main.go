package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ChristianMLux/cml25-backend/config"
	"github.com/ChristianMLux/cml25-backend/internal/bootstrap"
	"github.com/ChristianMLux/cml25-backend/internal/platform/logging"
)

const usage = "usage: worker <sync|migrate [--confirm]|schedule [cron]>"

func main() {
	if len(os.Args) < 2 {
		log.Fatal(usage)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := logging.New(cfg.App.Environment, cfg.App.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("bootstrap: %v", err)
	}
	defer app.Close()

	switch os.Args[1] {
	case "sync":
		err = RunSync(ctx, app, os.Stdout)
	case "migrate":
		err = RunMigrate(ctx, app, os.Args[2:], os.Stdout)
	case "schedule":
		err = RunSchedule(ctx, app, os.Args[2:])
	default:
		log.Fatalf("unknown command: %s\n%s", os.Args[1], usage)
	}
	if err != nil {
		log.Fatalf("%s: %v", os.Args[1], err)
	}
}
