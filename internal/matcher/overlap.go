package matcher

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/desertthunder/ytcopy/internal/models"
	"golang.org/x/text/unicode/norm"
)

var nonWord = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// TokenOverlap picks the candidate whose title and primary artist share the most tokens with the source track.
//
// Scores are Jaccard similarities in [0, 1] over accent-folded, lower-cased word tokens.
// Candidates scoring below MinScore are rejected; ties go to the better-ranked candidate.
type TokenOverlap struct {
	MinScore float64
}

func (p TokenOverlap) Pick(track models.Track, candidates []models.SearchCandidate) (models.SearchCandidate, bool) {
	source := tokenSet(track.Title + " " + track.PrimaryArtist())

	var best models.SearchCandidate
	bestScore := -1.0
	for _, c := range candidates {
		if c.ID == "" {
			continue
		}
		score := jaccard(source, tokenSet(c.Title+" "+c.PrimaryArtist()))
		if score > bestScore {
			best, bestScore = c, score
		}
	}

	if bestScore < 0 || bestScore < p.MinScore {
		return models.SearchCandidate{}, false
	}
	return best, true
}

// Score exposes the similarity used by [TokenOverlap] between a track and a candidate.
func Score(track models.Track, candidate models.SearchCandidate) float64 {
	return jaccard(tokenSet(track.Title+" "+track.PrimaryArtist()), tokenSet(candidate.Title+" "+candidate.PrimaryArtist()))
}

func fold(text string) string {
	var b strings.Builder
	for _, r := range norm.NFKD.String(text) {
		if !unicode.IsMark(r) {
			b.WriteRune(r)
		}
	}
	return strings.ToLower(b.String())
}

func tokenSet(text string) map[string]struct{} {
	set := map[string]struct{}{}
	for _, tok := range nonWord.Split(fold(text), -1) {
		if tok != "" {
			set[tok] = struct{}{}
		}
	}
	return set
}

func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	shared := 0
	for tok := range a {
		if _, ok := b[tok]; ok {
			shared++
		}
	}
	union := len(a) + len(b) - shared
	return float64(shared) / float64(union)
}
