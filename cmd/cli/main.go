package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/mpetrovs/pricewatch/internal/client/cli"
	"github.com/mpetrovs/pricewatch/internal/client/config"
	"github.com/mpetrovs/pricewatch/internal/logging"
)

func main() {

	cfg := config.LoadConfig()
	logger := logging.NewTextLogger(os.Stderr, slog.LevelInfo)

	app, err := cli.NewApp(cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(context.Background())
}
