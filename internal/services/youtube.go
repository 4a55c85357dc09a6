// YouTube Music [DestinationCatalog] implementation
//
// Communicates with the FastAPI proxy server (music/) running on port 8080.
// The proxy wraps ytmusicapi Python library for YouTube Music operations.
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/desertthunder/ytcopy/internal/models"
	"github.com/desertthunder/ytcopy/internal/shared"
	"golang.org/x/time/rate"
)

const defaultYTBaseURL string = "http://localhost:8080"

// YouTubeArtist represents an artist in YouTube Music responses.
type YouTubeArtist struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// YouTubeTrack represents a song in search results and playlist contents.
type YouTubeTrack struct {
	VideoID string          `json:"videoId"`
	Title   string          `json:"title"`
	Artists []YouTubeArtist `json:"artists"`
}

// YouTubeLibraryPlaylist is an entry of GET /api/library/playlists.
type YouTubeLibraryPlaylist struct {
	PlaylistID string `json:"playlistId"`
	Title      string `json:"title"`
	Count      int    `json:"count"`
}

// APIError is a non-2xx response from the proxy.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("youtube music API error (status %d): %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("youtube music API error: status %d", e.StatusCode)
}

func (e *APIError) Unwrap() error {
	return shared.ErrAPIRequest
}

// YouTubeService implements [DestinationCatalog] for YouTube Music via proxy.
type YouTubeService struct {
	baseURL    string
	authFile   string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// YouTubeOption configures a [YouTubeService].
type YouTubeOption func(*YouTubeService)

// WithHTTPClient replaces [http.DefaultClient].
func WithHTTPClient(c *http.Client) YouTubeOption {
	return func(y *YouTubeService) {
		if c != nil {
			y.httpClient = c
		}
	}
}

// WithRateLimit caps proxy requests per second. Zero or less means unlimited.
func WithRateLimit(rps float64) YouTubeOption {
	return func(y *YouTubeService) {
		if rps > 0 {
			y.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

// WithAuthFile sets the browser.json / oauth.json path forwarded to the proxy.
func WithAuthFile(path string) YouTubeOption {
	return func(y *YouTubeService) {
		y.authFile = path
	}
}

// NewYouTubeService creates a new YouTube Music service instance.
func NewYouTubeService(baseURL string, opts ...YouTubeOption) *YouTubeService {
	if baseURL == "" {
		baseURL = defaultYTBaseURL
	}

	y := &YouTubeService{
		baseURL:    baseURL,
		httpClient: http.DefaultClient,
		limiter:    rate.NewLimiter(rate.Inf, 1),
	}
	for _, opt := range opts {
		opt(y)
	}
	return y
}

// Name returns the service name.
func (y *YouTubeService) Name() string {
	return "YouTube Music"
}

func (y *YouTubeService) doRequest(ctx context.Context, method, endpoint string, body, result any) error {
	if err := y.limiter.Wait(ctx); err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, y.baseURL+endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if y.authFile != "" {
		req.Header.Set("X-Auth-File", y.authFile)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := y.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var errResp struct {
			Detail string `json:"detail"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil {
			apiErr.Detail = errResp.Detail
		}
		return apiErr
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// Search returns ranked results for query.
//
// Calls GET /api/search?q={query}&filter={filter} on the proxy.
func (y *YouTubeService) Search(ctx context.Context, query, filter string) ([]models.SearchCandidate, error) {
	params := url.Values{}
	params.Set("q", query)
	if filter != "" {
		params.Set("filter", filter)
	}

	var results []YouTubeTrack
	if err := y.doRequest(ctx, http.MethodGet, "/api/search?"+params.Encode(), nil, &results); err != nil {
		return nil, err
	}

	candidates := make([]models.SearchCandidate, len(results))
	for i, r := range results {
		candidates[i] = models.SearchCandidate{
			ID:      r.VideoID,
			Title:   r.Title,
			Artists: artistNames(r.Artists),
			Rank:    i,
		}
	}
	return candidates, nil
}

// CreatePlaylist creates a private playlist.
//
// Calls POST /api/playlists on the proxy.
func (y *YouTubeService) CreatePlaylist(ctx context.Context, name, description string) (string, error) {
	createReq := struct {
		Title         string `json:"title"`
		Description   string `json:"description"`
		PrivacyStatus string `json:"privacy_status"`
	}{
		Title:         name,
		Description:   description,
		PrivacyStatus: "PRIVATE",
	}

	var createResp struct {
		PlaylistID string `json:"playlist_id"`
	}
	if err := y.doRequest(ctx, http.MethodPost, "/api/playlists", createReq, &createResp); err != nil {
		return "", fmt.Errorf("failed to create playlist: %w", err)
	}
	if createResp.PlaylistID == "" {
		return "", fmt.Errorf("%w: create playlist returned no id", shared.ErrAPIRequest)
	}

	return createResp.PlaylistID, nil
}

// AddItems appends videos to a playlist.
//
// Calls POST /api/playlists/{id}/items on the proxy. Authorization and quota failures wrap [shared.ErrWritesRejected]
// because every later write would fail the same way.
func (y *YouTubeService) AddItems(ctx context.Context, playlistID string, itemIDs []string) error {
	if len(itemIDs) == 0 {
		return nil
	}

	addReq := struct {
		VideoIDs []string `json:"video_ids"`
	}{
		VideoIDs: itemIDs,
	}

	endpoint := fmt.Sprintf("/api/playlists/%s/items", url.PathEscape(playlistID))
	err := y.doRequest(ctx, http.MethodPost, endpoint, addReq, nil)
	if err == nil {
		return nil
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden, http.StatusTooManyRequests:
			return fmt.Errorf("%w: %v", shared.ErrWritesRejected, err)
		}
	}
	return fmt.Errorf("failed to add items: %w", err)
}

// ListLibraryPlaylists retrieves playlists for the authenticated user.
//
// Calls GET /api/library/playlists?limit={limit} on the proxy.
func (y *YouTubeService) ListLibraryPlaylists(ctx context.Context, limit int) ([]models.PlaylistSummary, error) {
	endpoint := "/api/library/playlists?limit=" + strconv.Itoa(limit)

	var ytPlaylists []YouTubeLibraryPlaylist
	if err := y.doRequest(ctx, http.MethodGet, endpoint, nil, &ytPlaylists); err != nil {
		return nil, err
	}

	playlists := make([]models.PlaylistSummary, len(ytPlaylists))
	for i, p := range ytPlaylists {
		playlists[i] = models.PlaylistSummary{ID: p.PlaylistID, Title: p.Title, Count: p.Count}
	}
	return playlists, nil
}

// GetPlaylistContents retrieves the tracks of a playlist.
//
// Calls GET /api/playlists/{id}?limit={limit} on the proxy.
func (y *YouTubeService) GetPlaylistContents(ctx context.Context, playlistID string, limit int) ([]models.PlaylistItem, error) {
	endpoint := fmt.Sprintf("/api/playlists/%s?limit=%d", url.PathEscape(playlistID), limit)

	var ytPlaylist struct {
		Tracks []YouTubeTrack `json:"tracks"`
	}
	if err := y.doRequest(ctx, http.MethodGet, endpoint, nil, &ytPlaylist); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, playlistID)
		}
		return nil, err
	}

	items := make([]models.PlaylistItem, len(ytPlaylist.Tracks))
	for i, t := range ytPlaylist.Tracks {
		refs := make([]models.ArtistRef, len(t.Artists))
		for j, a := range t.Artists {
			refs[j] = models.ArtistRef{Name: a.Name}
		}
		items[i] = models.PlaylistItem{Title: t.Title, Artists: refs}
	}
	return items, nil
}

func artistNames(artists []YouTubeArtist) []string {
	names := make([]string, 0, len(artists))
	for _, a := range artists {
		names = append(names, a.Name)
	}
	return names
}
