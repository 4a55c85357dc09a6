package tasks

import (
	"context"

	"github.com/desertthunder/ytcopy/internal/models"
	"github.com/desertthunder/ytcopy/internal/services"
	"github.com/desertthunder/ytcopy/internal/shared"
)

// LoadPlaylist reads every track of the source playlist referenced by playlistURL.
//
// A URL without a playlist segment is a [shared.KindUserInput] error. A source failure is a [shared.KindPrecondition]
// error. An empty playlist loads fine; ExportAll and MergeInto reject it.
func LoadPlaylist(
	ctx context.Context,
	progress chan<- ProgressUpdate,
	src services.SourceCatalog,
	playlistURL string,
	pageSize int,
) (*models.LoadedPlaylist, error) {
	playlistID, err := shared.ExtractPlaylistID(playlistURL)
	if err != nil {
		return nil, err
	}
	if src == nil {
		return nil, shared.NewError(shared.KindPrecondition, "load playlist", shared.ErrServiceUnavailable)
	}

	send(progress, fetchSourceUpdate(playlistID))
	tracks, err := src.FetchPlaylistTracks(ctx, playlistID, pageSize)
	if err != nil {
		if ctx.Err() != nil {
			return nil, shared.NewError(shared.KindCanceled, "load playlist", err)
		}
		return nil, shared.NewError(shared.KindPrecondition, "load playlist", err)
	}

	send(progress, loadedSourceUpdate(playlistID, len(tracks)))
	return &models.LoadedPlaylist{SourceID: playlistID, Tracks: tracks}, nil
}

// send delivers update unless the channel is nil or full.
func send(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}
