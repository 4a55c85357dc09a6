package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/ytcopy/internal/formatter"
	"github.com/desertthunder/ytcopy/internal/models"
	"github.com/desertthunder/ytcopy/internal/shared"
	"github.com/desertthunder/ytcopy/internal/tasks"
	"github.com/desertthunder/ytcopy/internal/ui"
	"github.com/urfave/cli/v3"
)

// Load fetches the Spotify playlist and prints its tracks.
func (r *Runner) Load(ctx context.Context, cmd *cli.Command) error {
	format := cmd.String("format")
	if err := formatter.CheckFormat(format, formatter.PlaylistFormats); err != nil {
		return shared.NewError(shared.KindUserInput, "load", err)
	}

	playlist, err := r.loadPlaylist(ctx, cmd.String("url"))
	if err != nil {
		return err
	}
	r.logger.Info("loaded playlist", "id", playlist.SourceID, "tracks", playlist.Len())

	switch format {
	case formatter.FormatText, "":
		_, err = r.output.Write(formatter.PlaylistToText(playlist))
	case formatter.FormatCSV:
		var data []byte
		if data, err = formatter.PlaylistToCSV(playlist); err == nil {
			_, err = r.output.Write(data)
		}
	case formatter.FormatJSON:
		err = r.writeJSON(playlist, true)
	}
	if err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// Export loads the Spotify playlist and copies every track into a new YouTube Music playlist.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	if err := checkReportFormat(cmd, "export"); err != nil {
		return err
	}
	name := cmd.String("name")
	if name == "" {
		return shared.NewError(shared.KindUserInput, "export", fmt.Errorf("%w: --name", shared.ErrMissingArgument))
	}

	playlist, err := r.loadPlaylist(ctx, cmd.String("url"))
	if err != nil {
		return err
	}

	result, err := r.runTransfer(cmd, "Exporting to new playlist: "+name, func(progress chan<- tasks.ProgressUpdate) (*tasks.TransferResult, error) {
		return r.transferEngine().ExportAll(ctx, progress, playlist, name)
	})
	return r.finishTransfer(cmd, result, err)
}

// Merge loads the Spotify playlist and adds the songs missing from an existing YouTube Music playlist.
func (r *Runner) Merge(ctx context.Context, cmd *cli.Command) error {
	if err := checkReportFormat(cmd, "merge"); err != nil {
		return err
	}
	target := cmd.String("playlist")
	if target == "" {
		return shared.NewError(shared.KindUserInput, "merge", fmt.Errorf("%w: --playlist", shared.ErrNoPlaylistChosen))
	}

	engine := r.transferEngine()
	summary, err := engine.ResolvePlaylist(ctx, target, r.config.Transfer.PlaylistLimit)
	if err != nil {
		return err
	}

	playlist, err := r.loadPlaylist(ctx, cmd.String("url"))
	if err != nil {
		return err
	}

	title := fmt.Sprintf("Merging into: %s (%d tracks)", summary.Title, summary.Count)
	result, err := r.runTransfer(cmd, title, func(progress chan<- tasks.ProgressUpdate) (*tasks.TransferResult, error) {
		return engine.MergeInto(ctx, progress, playlist, summary.ID)
	})
	return r.finishTransfer(cmd, result, err)
}

// Playlists lists the YouTube Music library playlists that merge can target.
func (r *Runner) Playlists(ctx context.Context, cmd *cli.Command) error {
	limit := cmd.Int("limit")
	if limit <= 0 {
		limit = r.config.Transfer.PlaylistLimit
	}

	playlists, err := r.transferEngine().ListPlaylists(ctx, limit)
	if err != nil {
		return err
	}
	r.logger.Debug("listed playlists", "count", len(playlists))

	if cmd.Bool("json") {
		if playlists == nil {
			playlists = []models.PlaylistSummary{}
		}
		return r.writeJSON(playlists, true)
	}
	return r.writePlain("%s", ui.RenderPlaylists(playlists))
}

// checkReportFormat rejects an unknown --format before anything is written to the destination.
func checkReportFormat(cmd *cli.Command, op string) error {
	if err := formatter.CheckFormat(cmd.String("format"), formatter.Formats); err != nil {
		return shared.NewError(shared.KindUserInput, op, err)
	}
	return nil
}

func (r *Runner) loadPlaylist(ctx context.Context, url string) (*models.LoadedPlaylist, error) {
	if _, err := shared.ExtractPlaylistID(url); err != nil {
		return nil, err
	}

	src, err := r.sourceCatalog(ctx)
	if err != nil {
		return nil, shared.NewError(shared.KindPrecondition, "load playlist", err)
	}

	progress := make(chan tasks.ProgressUpdate, 4)
	playlist, err := tasks.LoadPlaylist(ctx, progress, src, url, r.config.Transfer.PageSize)
	close(progress)
	for update := range progress {
		r.logger.Debug(update.Message, "phase", update.Phase)
	}
	return playlist, err
}

// runTransfer prints a header and progress lines while fn runs. With --format set, progress goes to the debug log so
// the output holds only the report. Output is only written by the progress goroutine until it drains.
func (r *Runner) runTransfer(
	cmd *cli.Command,
	title string,
	fn func(chan<- tasks.ProgressUpdate) (*tasks.TransferResult, error),
) (*tasks.TransferResult, error) {
	quiet := cmd.String("format") != ""
	if !quiet {
		r.writePlainHeader(title)
	}

	progress := make(chan tasks.ProgressUpdate, 64)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progress {
			if quiet {
				r.logger.Debug(update.Message, "phase", update.Phase, "step", update.Step)
				continue
			}
			r.writePlain("%s\n", ui.RenderProgress(update))
		}
	}()

	result, err := fn(progress)
	close(progress)
	<-done
	return result, err
}

// finishTransfer prints the report for result and writes --report. The engine error is returned last so a partial
// result is still shown.
func (r *Runner) finishTransfer(cmd *cli.Command, result *tasks.TransferResult, runErr error) error {
	if result == nil {
		return runErr
	}

	format := cmd.String("format")
	if format == "" {
		r.writePlainln("%s", ui.RenderResult(result))
	} else {
		data, err := formatter.RenderReport(result, format)
		if err != nil {
			return err
		}
		if _, err := r.output.Write(data); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}

	if path := cmd.String("report"); path != "" {
		if err := formatter.WriteReport(result, format, path); err != nil {
			return err
		}
		r.logger.Info("report written", "path", path)
	}

	r.logger.Info(formatter.Summary(result), "run", result.RunID, "state", result.State)
	return runErr
}
