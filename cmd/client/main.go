package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"InfoVault/internal/cli/commands"
	"InfoVault/internal/config"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	cfg := config.NewConfig()

	if cfg.Version {
		printVersion()
		return
	}

	// Ctrl+C прерывает текущую команду (в том числе вывод ключа)
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	os.Exit(commands.Dispatch(ctx, cfg, flag.Args()))
}

func printVersion() {
	fmt.Printf("InfoVault CLI\nVersion: %s\nBuild date: %s\n", version, buildDate)
}
