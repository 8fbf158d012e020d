package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-backup-vault/internal/app"
	"github.com/MKhiriev/go-backup-vault/internal/config"
	"github.com/MKhiriev/go-backup-vault/internal/logger"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

const usage = `usage: backup-vault <command> [flags] [args]

commands:
  init [passphrase]              store the encryption passphrase
  backup                         run one backup now
  restore <artifact-id> <dest>   restore an artifact into a directory
  list                           list local backup artifacts
  sweep                          delete artifacts older than the retention window
  watch                          run scheduled backups until interrupted
`

func main() {
	printBuildInfo()

	args := os.Args[1:]
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	command := args[0]

	// the command name is stripped so the config layer can parse the
	// remaining flags; positionals stay in flag.Args()
	os.Args = append(os.Args[:1], args[1:]...)

	log := logger.NewLogger("backup-vault")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init app error")
	}
	defer func() { _ = application.Close() }()

	if err = application.Run(ctx, command, flag.Args()); err != nil {
		log.Err(err).Str("command", command).Msg("command failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
