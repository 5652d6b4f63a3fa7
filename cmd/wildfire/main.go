// cmd/wildfire/main.go
package main

import (
	"io"
	"log"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"

	"github.com/morganrivers/DisasterGame/internal/config"
	"github.com/morganrivers/DisasterGame/internal/ui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := logrus.New()
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatalf("bad log level %q: %v", cfg.LogLevel, err)
	}
	logger.SetLevel(level)

	// The alternate screen owns the terminal, so logs go to a file or
	// nowhere at all.
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatalf("open log file: %v", err)
		}
		defer f.Close()
		logger.SetOutput(f)
	} else {
		logger.SetOutput(io.Discard)
	}

	app := ui.NewApp(ui.AppConfig{Seed: cfg.Seed, Logger: logger})
	if err := app.Run(); err != nil {
		log.Fatalf("wildfire exited: %v", err)
	}
}
