package main

import (
	"context"
	"flag"
	"os"

	"github.com/fitpass/gym-checkin-system/config"
	_ "github.com/fitpass/gym-checkin-system/docs"
	"github.com/fitpass/gym-checkin-system/internal/app"
	"github.com/fitpass/gym-checkin-system/pkg/logger"
)

var (
	helpFlag   = flag.Bool("help", false, "Show help message")
	configPath = flag.String("config-path", "config.yaml", "Path to the config yaml file")
)

func main() {
	flag.Parse()
	if *helpFlag {
		config.PrintHelp()
		return
	}

	ctx := context.Background()
	log := logger.InitLogger("gym-checkin", logger.LevelDebug)

	cfg, err := config.NewConfig(*configPath)
	if err != nil {
		log.Error(ctx, "failed to configure application", err)
		config.PrintHelp()
		return
	}

	config.PrintConfig(cfg)

	if logger.ValidateLogLevel(cfg.Server.LogLevel) {
		log = logger.InitLogger("gym-checkin", cfg.Server.LogLevel)
	}

	application, err := app.NewApplication(ctx, *cfg, log)
	if err != nil {
		log.Error(ctx, "failed to init application", err)
		os.Exit(1)
	}

	if err = application.Run(ctx); err != nil {
		log.Error(ctx, "failed to run application", err)
		os.Exit(1)
	}
}
