// Package identity builds the normalized "title - primary artist" keys used to decide whether two tracks are the same song.
//
// Normalization only trims surrounding whitespace and lower-cases the text.
// There is no Unicode folding, punctuation stripping or fuzzy comparison, so "Song (Live)" and "Song" are different keys.
package identity

import "strings"

// Key is a normalized track identity. It is only used for set membership, never for display.
type Key string

// Normalize trims leading and trailing whitespace and lower-cases text.
func Normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// KeyOf returns the identity key for a title and its primary artist. An empty artist yields an empty artist segment.
func KeyOf(title, primaryArtist string) Key {
	return Key(Normalize(title) + " - " + Normalize(primaryArtist))
}
