package shared

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestExtractPlaylistID(t *testing.T) {
	tc := []struct {
		name    string
		url     string
		want    string
		wantErr bool
	}{
		{
			name: "plain playlist url",
			url:  "https://open.example/playlist/37i9dQZF1",
			want: "37i9dQZF1",
		},
		{
			name: "stops at query string",
			url:  "https://open.spotify.com/playlist/37i9dQZF1DXcBWIGoYBM5M?si=abc123",
			want: "37i9dQZF1DXcBWIGoYBM5M",
		},
		{
			name: "stops at trailing slash",
			url:  "https://open.spotify.com/user/x/playlist/AbC123/",
			want: "AbC123",
		},
		{
			name:    "no playlist segment",
			url:     "https://open.spotify.com/album/37i9dQZF1",
			wantErr: true,
		},
		{
			name:    "empty input",
			url:     "",
			wantErr: true,
		},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractPlaylistID(tt.url)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got id %q", got)
				}
				if KindOf(err) != KindUserInput {
					t.Errorf("expected KindUserInput, got %v", KindOf(err))
				}
				if !errors.Is(err, ErrInvalidURL) {
					t.Errorf("expected ErrInvalidURL in chain, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ExtractPlaylistID() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestError(t *testing.T) {
	t.Run("message includes track and cause", func(t *testing.T) {
		err := NewTrackError(KindPerTrackSearch, "search", "Song - Artist", fmt.Errorf("status 500"))
		msg := err.Error()
		if !strings.Contains(msg, `"Song - Artist"`) || !strings.Contains(msg, "status 500") {
			t.Errorf("unexpected message %q", msg)
		}
	})

	t.Run("KindOf through wrapping", func(t *testing.T) {
		err := fmt.Errorf("outer: %w", NewError(KindPrecondition, "create playlist", ErrAPIRequest))
		if KindOf(err) != KindPrecondition {
			t.Errorf("expected KindPrecondition, got %v", KindOf(err))
		}
		if !errors.Is(err, ErrAPIRequest) {
			t.Error("expected cause to be reachable via errors.Is")
		}
	})

	t.Run("KindOf for foreign error", func(t *testing.T) {
		if KindOf(errors.New("boom")) != KindUnknown {
			t.Error("expected KindUnknown")
		}
	})

	t.Run("IsFatal", func(t *testing.T) {
		tc := []struct {
			err  error
			want bool
		}{
			{err: nil, want: false},
			{err: NewError(KindUserInput, "op", nil), want: true},
			{err: NewError(KindPrecondition, "op", nil), want: true},
			{err: NewError(KindCanceled, "op", nil), want: true},
			{err: NewError(KindPerTrackSearch, "op", nil), want: false},
			{err: NewError(KindPerTrackAdd, "op", nil), want: false},
		}
		for _, tt := range tc {
			if got := IsFatal(tt.err); got != tt.want {
				t.Errorf("IsFatal(%v) = %v, want %v", tt.err, got, tt.want)
			}
		}
	})

	t.Run("kind names", func(t *testing.T) {
		if KindPerTrackAdd.String() != "add_failed" {
			t.Errorf("unexpected name %s", KindPerTrackAdd)
		}
		if ErrorKind(99).String() != "unknown" {
			t.Errorf("unexpected name %s", ErrorKind(99))
		}
	})
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf)
	SetLogLevel(logger, log.DebugLevel)

	child := WithLogger(logger, "run", "abc")
	child.Debug("hello")

	if !strings.Contains(buf.String(), "run=abc") {
		t.Errorf("expected child logger fields in output, got %q", buf.String())
	}
}

func TestGenerateID(t *testing.T) {
	a, b := GenerateID(), GenerateID()
	if a == b {
		t.Error("expected unique ids")
	}
	if len(a) != 36 {
		t.Errorf("expected uuid string, got %q", a)
	}
}
