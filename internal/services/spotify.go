// Spotify Web API implementation of [SourceCatalog]
//
// Uses the client-credentials grant, so only public (and shared) playlists can be read.
package services

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ytcopy/internal/models"
	"github.com/desertthunder/ytcopy/internal/shared"
	"github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2/clientcredentials"
)

const maxSpotifyPageSize = 100

// playlistPager is the slice of [spotify.Client] used to read playlists.
type playlistPager interface {
	GetPlaylistItems(ctx context.Context, playlistID spotify.ID, opts ...spotify.RequestOption) (*spotify.PlaylistItemPage, error)
}

// SpotifyService implements [SourceCatalog] on top of [spotify.Client].
type SpotifyService struct {
	client playlistPager
	logger *log.Logger
}

// NewSpotifyService creates a Spotify client authenticated with client credentials.
//
// The returned client refreshes its token automatically through [clientcredentials.Config].
func NewSpotifyService(ctx context.Context, clientID, clientSecret string, logger *log.Logger, opts ...spotify.ClientOption) (*SpotifyService, error) {
	if clientID == "" {
		return nil, fmt.Errorf("%w: missing client_id", shared.ErrMissingCredentials)
	}
	if clientSecret == "" {
		return nil, fmt.Errorf("%w: missing client_secret", shared.ErrMissingCredentials)
	}

	config := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     spotifyauth.TokenURL,
	}

	return newSpotifyService(spotify.New(config.Client(ctx), opts...), logger), nil
}

func newSpotifyService(client playlistPager, logger *log.Logger) *SpotifyService {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &SpotifyService{client: client, logger: logger}
}

func (s *SpotifyService) Name() string {
	return "Spotify"
}

// FetchPlaylistTracks reads the playlist page by page until an empty page comes back.
//
// Episodes and unavailable (null) items are skipped; track order is preserved.
func (s *SpotifyService) FetchPlaylistTracks(ctx context.Context, playlistID string, pageSize int) ([]models.Track, error) {
	if playlistID == "" {
		return nil, shared.NewError(shared.KindUserInput, "fetch playlist", shared.ErrMissingArgument)
	}
	if pageSize <= 0 || pageSize > maxSpotifyPageSize {
		pageSize = maxSpotifyPageSize
	}

	var tracks []models.Track
	offset := 0

	for {
		page, err := s.client.GetPlaylistItems(ctx, spotify.ID(playlistID), spotify.Limit(pageSize), spotify.Offset(offset))
		if err != nil {
			return nil, fmt.Errorf("%w: failed to get playlist items: %w", shared.ErrAPIRequest, err)
		}
		if page == nil || len(page.Items) == 0 {
			break
		}

		for i := range page.Items {
			full := page.Items[i].Track.Track
			if full == nil {
				continue
			}
			artists := make([]string, 0, len(full.Artists))
			for _, a := range full.Artists {
				artists = append(artists, a.Name)
			}
			tracks = append(tracks, models.Track{Title: full.Name, Artists: artists})
		}

		offset += len(page.Items)
	}

	s.logger.Debug("fetched playlist tracks", "playlist", playlistID, "count", len(tracks))
	return tracks, nil
}
