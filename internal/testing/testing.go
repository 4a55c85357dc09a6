// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"testing"

	"github.com/desertthunder/ytcopy/internal/models"
)

// FakeSource is an in-memory source catalog keyed by playlist id.
type FakeSource struct {
	Playlists map[string][]models.Track
	Err       error
	Calls     int
}

func (f *FakeSource) FetchPlaylistTracks(_ context.Context, playlistID string, _ int) ([]models.Track, error) {
	f.Calls++
	if f.Err != nil {
		return nil, f.Err
	}
	tracks, ok := f.Playlists[playlistID]
	if !ok {
		return nil, fmt.Errorf("playlist %s not found", playlistID)
	}
	return tracks, nil
}

func (f *FakeSource) Name() string { return "fake-source" }

// FakeDestination is an in-memory destination catalog.
//
// Search answers come from Results keyed by exact query; SearchErrs makes a query fail.
// AddItems appends to Playlists and records each call; AddErrs fails specific item ids,
// and RejectAfter (when > 0) fails every add after that many successful ones with RejectErr.
type FakeDestination struct {
	mu sync.Mutex

	Results    map[string][]models.SearchCandidate
	SearchErrs map[string]error
	Playlists  map[string][]models.PlaylistItem
	Library    []models.PlaylistSummary

	CreateErr   error
	ListErr     error
	ContentsErr error
	AddErrs     map[string]error
	RejectAfter int
	RejectErr   error

	Searches    []string
	Added       []string
	Created     []string
	nextID      int
	successAdds int
}

// NewFakeDestination returns an empty destination with initialised maps.
func NewFakeDestination() *FakeDestination {
	return &FakeDestination{
		Results:    map[string][]models.SearchCandidate{},
		SearchErrs: map[string]error{},
		Playlists:  map[string][]models.PlaylistItem{},
		AddErrs:    map[string]error{},
	}
}

// Candidate registers a search answer for query, assigning ranks in order.
func (f *FakeDestination) Candidate(query string, candidates ...models.SearchCandidate) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range candidates {
		candidates[i].Rank = i
	}
	f.Results[query] = candidates
}

func (f *FakeDestination) Search(_ context.Context, query, _ string) ([]models.SearchCandidate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Searches = append(f.Searches, query)
	if err, ok := f.SearchErrs[query]; ok {
		return nil, err
	}
	return append([]models.SearchCandidate(nil), f.Results[query]...), nil
}

func (f *FakeDestination) CreatePlaylist(_ context.Context, name, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.CreateErr != nil {
		return "", f.CreateErr
	}
	f.nextID++
	id := fmt.Sprintf("PL%d", f.nextID)
	f.Playlists[id] = nil
	f.Library = append(f.Library, models.PlaylistSummary{ID: id, Title: name})
	f.Created = append(f.Created, name)
	return id, nil
}

func (f *FakeDestination) AddItems(_ context.Context, playlistID string, itemIDs []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, id := range itemIDs {
		if f.RejectAfter > 0 && f.successAdds >= f.RejectAfter {
			return f.RejectErr
		}
		if err, ok := f.AddErrs[id]; ok {
			return err
		}
		title, artists := f.lookup(id)
		f.Playlists[playlistID] = append(f.Playlists[playlistID], models.PlaylistItem{Title: title, Artists: artists})
		f.Added = append(f.Added, id)
		f.successAdds++
	}
	return nil
}

func (f *FakeDestination) ListLibraryPlaylists(_ context.Context, limit int) ([]models.PlaylistSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	if limit > 0 && len(f.Library) > limit {
		return append([]models.PlaylistSummary(nil), f.Library[:limit]...), nil
	}
	return append([]models.PlaylistSummary(nil), f.Library...), nil
}

func (f *FakeDestination) GetPlaylistContents(_ context.Context, playlistID string, limit int) ([]models.PlaylistItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ContentsErr != nil {
		return nil, f.ContentsErr
	}
	items, ok := f.Playlists[playlistID]
	if !ok {
		return nil, fmt.Errorf("playlist %s not found", playlistID)
	}
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return append([]models.PlaylistItem(nil), items...), nil
}

func (f *FakeDestination) Name() string { return "fake-destination" }

// SearchCount returns how many searches were issued.
func (f *FakeDestination) SearchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Searches)
}

// lookup finds the title and artists registered for an item id in any search answer.
func (f *FakeDestination) lookup(id string) (string, []models.ArtistRef) {
	for _, cands := range f.Results {
		for _, c := range cands {
			if c.ID != id {
				continue
			}
			refs := make([]models.ArtistRef, len(c.Artists))
			for i, a := range c.Artists {
				refs[i] = models.ArtistRef{Name: a}
			}
			return c.Title, refs
		}
	}
	return id, nil
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
