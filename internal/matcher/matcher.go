package matcher

import (
	"context"
	"fmt"

	"github.com/desertthunder/ytcopy/internal/models"
	"github.com/desertthunder/ytcopy/internal/shared"
)

// FilterSongs restricts destination searches to songs.
const FilterSongs = "songs"

// SearchFunc runs a destination search for query.
type SearchFunc func(ctx context.Context, query string) ([]models.SearchCandidate, error)

// Picker chooses the best candidate for track from a ranked result list.
type Picker interface {
	Pick(track models.Track, candidates []models.SearchCandidate) (models.SearchCandidate, bool)
}

// MatchResult is the outcome of matching one track.
type MatchResult struct {
	Query     string
	Candidate *models.SearchCandidate // nil when nothing matched
	Err       error                   // set when the search call failed
}

// Found reports whether a candidate was chosen.
func (r MatchResult) Found() bool {
	return r.Candidate != nil
}

// Matcher combines query building, searching and candidate selection.
type Matcher struct {
	picker Picker
}

// New returns a Matcher using picker, or [FirstResult] when picker is nil.
func New(picker Picker) *Matcher {
	if picker == nil {
		picker = FirstResult{}
	}
	return &Matcher{picker: picker}
}

// BuildQuery returns "title artist1, artist2".
func BuildQuery(track models.Track) string {
	return track.Title + " " + track.ArtistLine()
}

// Search runs search for track's query and returns the raw candidates.
func (m *Matcher) Search(ctx context.Context, track models.Track, search SearchFunc) ([]models.SearchCandidate, error) {
	return search(ctx, BuildQuery(track))
}

// Resolve turns a search response into a [MatchResult]. searchErr is the error returned by the search call, if any.
func (m *Matcher) Resolve(track models.Track, candidates []models.SearchCandidate, searchErr error) MatchResult {
	result := MatchResult{Query: BuildQuery(track)}
	if searchErr != nil {
		result.Err = shared.NewTrackError(shared.KindPerTrackSearch, "search", Describe(track), searchErr)
		return result
	}

	if best, ok := m.picker.Pick(track, candidates); ok {
		result.Candidate = &best
	}
	return result
}

// Match searches for track and picks the best candidate.
func (m *Matcher) Match(ctx context.Context, track models.Track, search SearchFunc) MatchResult {
	candidates, err := m.Search(ctx, track, search)
	return m.Resolve(track, candidates, err)
}

// Describe formats a track as "title - artists" for messages.
func Describe(track models.Track) string {
	if len(track.Artists) == 0 {
		return track.Title
	}
	return fmt.Sprintf("%s - %s", track.Title, track.ArtistLine())
}

// FirstResult takes the first candidate as-is. A first candidate without an item id counts as no match.
type FirstResult struct{}

func (FirstResult) Pick(_ models.Track, candidates []models.SearchCandidate) (models.SearchCandidate, bool) {
	if len(candidates) == 0 || candidates[0].ID == "" {
		return models.SearchCandidate{}, false
	}
	return candidates[0], true
}
