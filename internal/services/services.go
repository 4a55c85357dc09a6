// package services defines the catalog interfaces used by transfers and implements them over HTTP APIs
//
// Spotify (source, read-only), YouTube Music (destination, via proxy)
package services

import (
	"context"

	"github.com/desertthunder/ytcopy/internal/models"
)

// SourceCatalog reads tracks from the playlist being copied.
type SourceCatalog interface {
	// FetchPlaylistTracks returns every track of the playlist in stored order, paging pageSize tracks at a time until an empty page.
	FetchPlaylistTracks(ctx context.Context, playlistID string, pageSize int) ([]models.Track, error)

	// Name returns the name of the service (e.g., "Spotify")
	Name() string
}

// DestinationCatalog is the service tracks are copied into.
type DestinationCatalog interface {
	// Search returns results for query ordered by the service's relevance ranking; index 0 is best.
	Search(ctx context.Context, query, filter string) ([]models.SearchCandidate, error)

	// CreatePlaylist creates an empty playlist and returns its id.
	CreatePlaylist(ctx context.Context, name, description string) (string, error)

	// AddItems appends itemIDs to the playlist.
	AddItems(ctx context.Context, playlistID string, itemIDs []string) error

	// ListLibraryPlaylists returns up to limit playlists from the user's library.
	ListLibraryPlaylists(ctx context.Context, limit int) ([]models.PlaylistSummary, error)

	// GetPlaylistContents returns up to limit tracks currently in the playlist.
	GetPlaylistContents(ctx context.Context, playlistID string, limit int) ([]models.PlaylistItem, error)

	// Name returns the name of the service (e.g., "YouTube Music")
	Name() string
}
