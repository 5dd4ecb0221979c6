package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"option-pricer/internal/cli"
	"option-pricer/internal/config"
)

func main() {
	// .env is optional; PRICER_* variables may also come from the shell.
	_ = godotenv.Load()

	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger := cli.NewLogger(cfg)

	if err := cli.Execute(cfg, logger); err != nil {
		logger.Debug().Err(err).Msg("Command failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
