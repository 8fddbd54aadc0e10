package main

import (
	"context"
	"os"

	"github.com/google/uuid"

	"spendbook/internal/account"
	"spendbook/internal/cli"
	"spendbook/internal/log"
	"spendbook/internal/shell"
)

func main() {
	cli.LoadEnvFile()
	cfg := cli.LoadAndValidateConfig()
	logger := cli.SetupLogger(cfg).With(log.FieldSessionID, uuid.NewString())

	result := cli.InitSnapshotStore(logger, cfg)
	defer func() {
		if result.Cleanup != nil {
			if err := result.Cleanup(); err != nil {
				logger.Error("Snapshot store cleanup failed", log.FieldError, err)
			}
		}
	}()

	tax := cli.LoadTaxonomy(logger, cfg)

	logger.Info("Starting spendbook",
		log.FieldOperation, log.OpStartup,
		log.FieldBackend, cfg.SnapshotBackend)

	dir := account.NewDirectory()
	sh := shell.New(os.Stdin, os.Stdout, dir, result.Store, tax, logger)

	if err := sh.Run(context.Background()); err != nil {
		logger.Error("Shell terminated with error", log.FieldError, err)
		os.Exit(1)
	}

	logger.Info("Spendbook stopped", log.FieldOperation, log.OpShutdown)
}
