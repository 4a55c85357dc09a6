package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/desertthunder/ytcopy/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)
	runner := NewRunner(RunnerOpts{Logger: logger})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newApp(runner).Run(ctx, os.Args); err != nil {
		switch {
		case shared.KindOf(err) == shared.KindUserInput:
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(2)
		case shared.KindOf(err) == shared.KindCanceled:
			logger.Warn("interrupted", "error", err)
			os.Exit(130)
		default:
			logger.Fatalf("application error: %v", err)
		}
	}
}

func newApp(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "ytcopy",
		Usage:   "Copy Spotify playlists to YouTube Music",
		Version: "0.1.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
		},
		Before:   r.Before,
		Commands: r.register(),
	}
}
