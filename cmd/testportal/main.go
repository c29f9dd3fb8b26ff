package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/IT-Nick/testportal/internal/app"
	"github.com/IT-Nick/testportal/internal/domain/authoring"
	"github.com/IT-Nick/testportal/internal/domain/tests/definition"
	"github.com/IT-Nick/testportal/internal/infra/config"
	"github.com/IT-Nick/testportal/internal/infra/logger"
)

var (
	serveCmd    = kingpin.Command("serve", "Run the HTTP API and the Telegram bot")
	serveConfig = serveCmd.Flag("config", "Path to the YAML config").Default("configs/config.yaml").Envar("CONFIG_PATH").String()
	checkCmd    = kingpin.Command("check", "Validate a test definition file")
	checkFile   = checkCmd.Flag("file", "Path to the YAML test definition").Required().ExistingFile()
)

func main() {
	kingpin.UsageTemplate(kingpin.CompactUsageTemplate).Version("0.1")
	kingpin.CommandLine.Help = "University test portal"
	switch kingpin.Parse() {
	case "serve":
		serve(*serveConfig)
	case "check":
		check(*checkFile)
	}
}

func serve(path string) {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("app starting")
	portal, err := app.NewApp(ctx, cfg, log)
	if err != nil {
		log.WithError(err).Fatal("failed to create app")
	}
	if err := portal.ListenAndServe(ctx); err != nil {
		log.WithError(err).Fatal("app stopped with error")
	}
	log.Info("app stopped")
}

func check(path string) {
	test, err := definition.LoadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
		os.Exit(1)
	}
	if err := authoring.Validate(test); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
		os.Exit(2)
	}
	fmt.Printf("%s: ok (%d questions)\n", path, len(test.Questions))
}
