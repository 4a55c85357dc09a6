// Package tasks orchestrates playlist copies from Spotify to YouTube Music with real-time progress reporting.
//
// # Core Operations
//
//  1. [LoadPlaylist] : Resolve a Spotify playlist URL and read all of its tracks
//     - Extracts the playlist id from the URL
//     - Pages through the source until an empty page
//
//  2. [TransferEngine.ExportAll] : Copy into a brand-new playlist
//     - Creates the destination playlist (failure aborts the run)
//     - Searches each track, picks a candidate, adds it
//
//  3. [TransferEngine.MergeInto] : Copy into an existing playlist
//     - Reads the playlist's current contents into an identity key set
//     - Skips candidates whose key is already present
//
// Both walk the source list strictly in order and return a [TransferResult] whose Outcomes match the input positions.
//
// # Failure Handling
//
// A failed search or add only marks that track; the run continues. Playlist-level failures (create, fetch contents,
// list) and a destination that rejects further writes abort the run, keeping whatever was processed. Context
// cancellation is observed between tracks.
//
// # Progress Reporting
//
// All operations use non-blocking channels for progress updates.
//
// The [ProgressUpdate] struct contains phase, run state, step counters, messages, and optional data.
// Updates use select with default to prevent blocking.
package tasks
