// package models defines the data model for playlist copying
package models

import "strings"

// Track is a song read from the source playlist. Artists are kept in display order; the first one is the primary artist.
type Track struct {
	Title   string   `json:"title"`
	Artists []string `json:"artists"`
}

// PrimaryArtist returns the first listed artist, or "" when there is none.
func (t Track) PrimaryArtist() string {
	if len(t.Artists) == 0 {
		return ""
	}
	return t.Artists[0]
}

// ArtistLine joins all artists for display, e.g. "Daft Punk, Pharrell Williams".
func (t Track) ArtistLine() string {
	return strings.Join(t.Artists, ", ")
}

// SearchCandidate is a single destination search result. Rank 0 is the service's best match.
type SearchCandidate struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Artists []string `json:"artists"`
	Rank    int      `json:"rank"`
}

// PrimaryArtist returns the candidate's first artist, or "".
func (c SearchCandidate) PrimaryArtist() string {
	if len(c.Artists) == 0 {
		return ""
	}
	return c.Artists[0]
}

// PlaylistSummary is an entry in the destination user's playlist library.
type PlaylistSummary struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Count int    `json:"count"`
}

// ArtistRef is an artist as returned inside destination playlist contents.
type ArtistRef struct {
	Name string `json:"name"`
}

// PlaylistItem is one track already present in a destination playlist.
type PlaylistItem struct {
	Title   string      `json:"title"`
	Artists []ArtistRef `json:"artists"`
}

// PrimaryArtist returns the first artist name on the item, or "".
func (p PlaylistItem) PrimaryArtist() string {
	if len(p.Artists) == 0 {
		return ""
	}
	return p.Artists[0].Name
}

// LoadedPlaylist is a source playlist held by the caller between "load" and "export"/"merge".
//
// The transfer engine only reads it, so the same value can be exported or merged any number of times.
type LoadedPlaylist struct {
	SourceID string  `json:"source_id"`
	Tracks   []Track `json:"tracks"`
}

// Len returns the number of loaded tracks; a nil playlist has none.
func (p *LoadedPlaylist) Len() int {
	if p == nil {
		return 0
	}
	return len(p.Tracks)
}
