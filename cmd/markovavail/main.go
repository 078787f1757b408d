package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/vk/markovavail/internal/app"
	"github.com/vk/markovavail/internal/cli"
	"github.com/vk/markovavail/internal/dot_adapter"
)

// main is the entrypoint for the markovavail application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	// The real main function handles errors and exit codes.
	if err := run(context.Background(), os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.ExitCode(err))
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(ctx context.Context, outW, errW io.Writer, args []string) error {
	inv, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	if inv.Rates != nil {
		return app.RunRates(ctx, outW, errW, inv.Rates)
	}

	// Instantiate the concrete DOT loader to pass to the app.
	loader := dot_adapter.NewLoader()
	return app.NewApp(outW, errW, inv.Solve, loader).Run(ctx)
}
