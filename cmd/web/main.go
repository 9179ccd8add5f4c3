// Package main starts the web shell service and handles termination.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	webcmd "github.com/rpominov/reason-next/internal/cmd/web"
	entrypoint "github.com/rpominov/reason-next/internal/platform/cmd"
	"github.com/rpominov/reason-next/internal/platform/config"
)

func main() {
	cfg, err := webcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	log.SetPrefix("[WEB] ")

	ctx, stop := entrypoint.SignalContext(context.Background())
	defer stop()

	if err := webcmd.Run(ctx, cfg); err != nil {
		log.Fatalf("failed to serve: %v", err)
	}
}
