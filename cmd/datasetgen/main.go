package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/zarlcorp/core/pkg/zapp"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	app := zapp.New(zapp.WithName("datasetgen"))

	ctx, cancel := zapp.SignalContext(context.Background())
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		slog.Error("datasetgen", "err", err)
		_ = app.Close()
		os.Exit(1)
	}

	if err := app.Close(); err != nil {
		slog.Error("shutdown", "err", err)
		os.Exit(1)
	}
}
