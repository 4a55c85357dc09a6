package tasks

import (
	"fmt"

	"github.com/desertthunder/ytcopy/internal/matcher"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	State   State  // Run state at the time of the update
	Step    int    // Tracks processed so far
	Total   int    // Tracks in the source list
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data ([TrackOutcome] or [*TransferResult])
}

// Operation phase enumeration
type Phase int

const (
	FetchSource Phase = iota
	FetchDest
	CreatePlaylist
	TransferTracks
	Finished
)

func (p Phase) String() string {
	switch p {
	case FetchSource:
		return "fetch_source"
	case FetchDest:
		return "fetch_dest"
	case CreatePlaylist:
		return "create_playlist"
	case TransferTracks:
		return "transfer_tracks"
	case Finished:
		return "finished"
	default:
		return ""
	}
}

func fetchSourceUpdate(playlistID string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchSource,
		State:   StateIdle,
		Message: fmt.Sprintf("Fetching source playlist (%s)...", playlistID),
	}
}

func loadedSourceUpdate(playlistID string, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchSource,
		State:   StateIdle,
		Step:    total,
		Total:   total,
		Message: fmt.Sprintf("Loaded playlist %s (%d tracks)", playlistID, total),
	}
}

func fetchDestUpdate(r *TransferResult, playlistID string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchDest,
		State:   r.State,
		Total:   r.Total,
		Message: fmt.Sprintf("Fetching destination playlist (%s)...", playlistID),
	}
}

func createPlaylistUpdate(r *TransferResult, name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   CreatePlaylist,
		State:   r.State,
		Total:   r.Total,
		Message: fmt.Sprintf("Creating playlist %q on YouTube Music...", name),
	}
}

func trackUpdate(r *TransferResult, out TrackOutcome) ProgressUpdate {
	return ProgressUpdate{
		Phase:   TransferTracks,
		State:   r.State,
		Step:    r.Attempted,
		Total:   r.Total,
		Message: fmt.Sprintf("[%d/%d] %s: %s", r.Attempted, r.Total, matcher.Describe(out.Track), out.Outcome),
		Data:    out,
	}
}

func finishedUpdate(r *TransferResult) ProgressUpdate {
	msg := fmt.Sprintf("Done: %d of %d tracks added", r.Added, r.Total)
	if r.State == StateAborted {
		msg = fmt.Sprintf("Aborted after %d of %d tracks: %v", r.Attempted, r.Total, r.AbortErr)
	}
	return ProgressUpdate{
		Phase:   Finished,
		State:   r.State,
		Step:    r.Attempted,
		Total:   r.Total,
		Message: msg,
		Data:    r,
	}
}
