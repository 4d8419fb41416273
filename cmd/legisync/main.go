// Package main provides the entry point for the legisync CLI tool.
package main

import (
	"context"
	"os"

	"github.com/capitolworks/legisync/cmd/legisync/app"
)

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	application, err := app.New(version, commit, date)
	if err != nil {
		app.ExitOnError(err)
	}

	// Cancel the run on interrupt; ingestion stops between documents.
	ctx, cancel := app.ContextWithSignals(context.Background())
	defer cancel()

	if err := application.Execute(ctx, os.Args[1:]); err != nil {
		application.Close()
		app.ExitOnError(err)
	}
	application.Close()
}
