// submodule cmd contains command definitions
package main

import (
	"strings"

	"github.com/desertthunder/ytcopy/internal/formatter"
	"github.com/urfave/cli/v3"
)

func urlFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "url",
		Aliases:  []string{"u"},
		Usage:    "Spotify playlist URL (https://open.spotify.com/playlist/...)",
		Required: true,
	}
}

func formatFlag(usage string, formats []string) cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   usage + " (" + strings.Join(formats, ", ") + ")",
	}
}

func reportFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "report",
		Usage: "Also write the run report to this file (format from --format, default txt)",
	}
}

// loadCommand fetches a Spotify playlist and prints its tracks
func loadCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "load",
		Usage: "Load a Spotify playlist and list its tracks",
		Flags: []cli.Flag{
			urlFlag(),
			formatFlag("Output format for the track list", formatter.PlaylistFormats),
		},
		Action: r.Load,
	}
}

// exportCommand copies a Spotify playlist into a new YouTube Music playlist
func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Copy a Spotify playlist into a new YouTube Music playlist",
		Flags: []cli.Flag{
			urlFlag(),
			&cli.StringFlag{
				Name:    "name",
				Aliases: []string{"n"},
				Usage:   "Name of the YouTube Music playlist to create",
			},
			formatFlag("Print the run report in this format instead of the summary", formatter.Formats),
			reportFlag(),
		},
		Action: r.Export,
	}
}

// mergeCommand copies a Spotify playlist into an existing YouTube Music playlist, skipping songs already present
func mergeCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "merge",
		Usage: "Add a Spotify playlist's songs to an existing YouTube Music playlist",
		Flags: []cli.Flag{
			urlFlag(),
			&cli.StringFlag{
				Name:    "playlist",
				Aliases: []string{"p"},
				Usage:   "Destination playlist ID or exact title (see 'ytcopy playlists')",
			},
			formatFlag("Print the run report in this format instead of the summary", formatter.Formats),
			reportFlag(),
		},
		Action: r.Merge,
	}
}

// playlistsCommand lists the YouTube Music library playlists available to merge into
func playlistsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "playlists",
		Usage: "List YouTube Music library playlists",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of playlists to return (default: transfer.playlist_limit)",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.Playlists,
	}
}

// setupCommand handles setup operations
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "config",
				Usage: "Write the example configuration file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Path of the file to create (default: --config)",
					},
				},
				Action: r.SetupConfig,
			},
			{
				Name:  "youtube",
				Usage: "Store YouTube Music browser headers from a copied cURL request",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "curl",
						Usage: "cURL command copied from a signed-in music.youtube.com tab",
					},
					&cli.StringFlag{
						Name:  "curl-file",
						Usage: "File containing the cURL command",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Path of browser.json (default: credentials.youtube.headers_path)",
					},
				},
				Action: r.SetupYouTube,
			},
		},
	}
}
