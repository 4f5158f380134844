package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/hackmd-tools/hackmd-cli/internal/client"
	"github.com/hackmd-tools/hackmd-cli/internal/logger"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	log := logger.NewCLILogger("hackmd-cli")
	log.Info().
		Str("version", orNA(buildVersion)).
		Str("date", orNA(buildDate)).
		Str("commit", orNA(buildCommit)).
		Msg("starting")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := client.NewApp(log)
	code := app.Run(ctx, os.Args[1:])

	stop()
	os.Exit(code)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
