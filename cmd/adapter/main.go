// Package main runs the enemy adapter walkthrough, or a Lua scenario when one
// is configured.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	adaptercmd "github.com/louisbranch/adapter.pattern/internal/cmd/adapter"
	"github.com/louisbranch/adapter.pattern/internal/platform/config"
)

func main() {
	cfg, err := adaptercmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("Error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := adaptercmd.Run(ctx, cfg, os.Stdout, os.Stderr); err != nil {
		config.Exitf("%s", adaptercmd.Describe(err, cfg.Locale))
	}
}
