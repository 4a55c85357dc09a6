package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/desertthunder/ytcopy/internal/models"
	"github.com/desertthunder/ytcopy/internal/shared"
	tu "github.com/desertthunder/ytcopy/internal/testing"
	"github.com/zmb3/spotify/v2"
)

// fakePager serves pre-built pages indexed by call order and records requested ids.
type fakePager struct {
	pages [][]spotify.PlaylistItem
	calls int
	ids   []spotify.ID
	err   error
	errAt int
}

func (f *fakePager) GetPlaylistItems(_ context.Context, id spotify.ID, _ ...spotify.RequestOption) (*spotify.PlaylistItemPage, error) {
	f.ids = append(f.ids, id)
	call := f.calls
	f.calls++

	if f.err != nil && call == f.errAt {
		return nil, f.err
	}
	if call >= len(f.pages) {
		return &spotify.PlaylistItemPage{}, nil
	}
	return &spotify.PlaylistItemPage{Items: f.pages[call]}, nil
}

func trackItem(name string, artists ...string) spotify.PlaylistItem {
	simple := make([]spotify.SimpleArtist, len(artists))
	for i, a := range artists {
		simple[i] = spotify.SimpleArtist{Name: a}
	}
	full := &spotify.FullTrack{SimpleTrack: spotify.SimpleTrack{Name: name, Artists: simple}}
	return spotify.PlaylistItem{Track: spotify.PlaylistItemTrack{Track: full}}
}

func TestSpotifyService(t *testing.T) {
	t.Run("NewSpotifyService", func(t *testing.T) {
		t.Run("With Valid Credentials", func(t *testing.T) {
			srv, err := NewSpotifyService(context.Background(), "test_client_id", "test_client_secret", nil)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if srv.Name() != "Spotify" {
				t.Errorf("expected service name 'Spotify', got %s", srv.Name())
			}
		})

		t.Run("Missing Client ID", func(t *testing.T) {
			if _, err := NewSpotifyService(context.Background(), "", "secret", nil); !errors.Is(err, shared.ErrMissingCredentials) {
				t.Errorf("expected ErrMissingCredentials, got %v", err)
			}
		})

		t.Run("Missing Client Secret", func(t *testing.T) {
			if _, err := NewSpotifyService(context.Background(), "id", "", nil); !errors.Is(err, shared.ErrMissingCredentials) {
				t.Errorf("expected ErrMissingCredentials, got %v", err)
			}
		})
	})

	t.Run("FetchPlaylistTracks", func(t *testing.T) {
		t.Run("pages until empty and keeps order", func(t *testing.T) {
			pager := &fakePager{pages: [][]spotify.PlaylistItem{
				{trackItem("A", "X"), trackItem("B", "Y", "Z")},
				{trackItem("C", "W")},
			}}
			svc := newSpotifyService(pager, nil)

			tracks, err := svc.FetchPlaylistTracks(context.Background(), "PL1", 2)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if pager.calls != 3 {
				t.Errorf("expected 3 page requests (last one empty), got %d", pager.calls)
			}
			if len(tracks) != 3 {
				t.Fatalf("expected 3 tracks, got %d", len(tracks))
			}
			for i, want := range []string{"A", "B", "C"} {
				if tracks[i].Title != want {
					t.Errorf("track %d: expected %s, got %s", i, want, tracks[i].Title)
				}
			}
			if tracks[1].ArtistLine() != "Y, Z" {
				t.Errorf("expected artists preserved, got %v", tracks[1].Artists)
			}
			if pager.ids[0] != "PL1" {
				t.Errorf("expected PL1, got %s", pager.ids[0])
			}
		})

		t.Run("skips episodes and null tracks", func(t *testing.T) {
			pager := &fakePager{pages: [][]spotify.PlaylistItem{
				{trackItem("A", "X"), {Track: spotify.PlaylistItemTrack{Episode: &spotify.EpisodePage{Name: "Pod"}}}, {}},
			}}
			tracks, err := newSpotifyService(pager, nil).FetchPlaylistTracks(context.Background(), "PL1", 100)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(tracks) != 1 || tracks[0].Title != "A" {
				t.Errorf("expected only track A, got %+v", tracks)
			}
		})

		t.Run("empty playlist", func(t *testing.T) {
			tracks, err := newSpotifyService(&fakePager{}, nil).FetchPlaylistTracks(context.Background(), "PL1", 50)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(tracks) != 0 {
				t.Errorf("expected no tracks, got %d", len(tracks))
			}
		})

		t.Run("API failure on later page", func(t *testing.T) {
			pager := &fakePager{
				pages: [][]spotify.PlaylistItem{{trackItem("A", "X")}},
				err:   fmt.Errorf("status 502"),
				errAt: 1,
			}
			_, err := newSpotifyService(pager, nil).FetchPlaylistTracks(context.Background(), "PL1", 1)
			if !errors.Is(err, shared.ErrAPIRequest) {
				t.Errorf("expected ErrAPIRequest, got %v", err)
			}
		})

		t.Run("keeps the pager error in the chain", func(t *testing.T) {
			pager := &fakePager{err: context.DeadlineExceeded}
			_, err := newSpotifyService(pager, nil).FetchPlaylistTracks(context.Background(), "PL1", 10)
			if !errors.Is(err, shared.ErrAPIRequest) || !errors.Is(err, context.DeadlineExceeded) {
				t.Errorf("expected ErrAPIRequest wrapping the deadline, got %v", err)
			}
		})

		t.Run("missing playlist id", func(t *testing.T) {
			_, err := newSpotifyService(&fakePager{}, nil).FetchPlaylistTracks(context.Background(), "", 10)
			if shared.KindOf(err) != shared.KindUserInput {
				t.Errorf("expected KindUserInput, got %v", err)
			}
		})
	})
}

func TestCachedSearch(t *testing.T) {
	t.Run("size zero returns the wrapped catalog", func(t *testing.T) {
		yt := NewYouTubeService("")
		if got := NewCachedSearch(yt, 0); got != DestinationCatalog(yt) {
			t.Error("expected unwrapped catalog")
		}
	})

	t.Run("repeat query is served from cache", func(t *testing.T) {
		dest := tu.NewFakeDestination()
		dest.Candidate("song artist", models.SearchCandidate{ID: "v1", Title: "Song"})
		cached := NewCachedSearch(dest, 4)

		for range 3 {
			got, err := cached.Search(context.Background(), "song artist", "songs")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(got) != 1 || got[0].ID != "v1" {
				t.Fatalf("unexpected results %+v", got)
			}
		}
		if dest.SearchCount() != 1 {
			t.Errorf("expected 1 upstream search, got %d", dest.SearchCount())
		}
		if cached.(*CachedSearch).Len() != 1 {
			t.Errorf("expected 1 cached query, got %d", cached.(*CachedSearch).Len())
		}
	})

	t.Run("filter is part of the key", func(t *testing.T) {
		dest := tu.NewFakeDestination()
		cached := NewCachedSearch(dest, 4)
		_, _ = cached.Search(context.Background(), "q", "songs")
		_, _ = cached.Search(context.Background(), "q", "videos")
		if dest.SearchCount() != 2 {
			t.Errorf("expected 2 upstream searches, got %d", dest.SearchCount())
		}
	})

	t.Run("failures are not cached", func(t *testing.T) {
		dest := tu.NewFakeDestination()
		dest.SearchErrs["q"] = errors.New("boom")
		cached := NewCachedSearch(dest, 4)

		if _, err := cached.Search(context.Background(), "q", "songs"); err == nil {
			t.Fatal("expected error")
		}
		delete(dest.SearchErrs, "q")
		if _, err := cached.Search(context.Background(), "q", "songs"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if dest.SearchCount() != 2 {
			t.Errorf("expected 2 upstream searches, got %d", dest.SearchCount())
		}
	})

	t.Run("callers cannot mutate cached results", func(t *testing.T) {
		dest := tu.NewFakeDestination()
		dest.Candidate("q", models.SearchCandidate{ID: "v1"})
		cached := NewCachedSearch(dest, 4)

		first, _ := cached.Search(context.Background(), "q", "songs")
		first[0].ID = "mutated"
		second, _ := cached.Search(context.Background(), "q", "songs")
		if second[0].ID != "v1" {
			t.Errorf("expected cached v1, got %s", second[0].ID)
		}
	})
}
