// Package matcher maps a source track to at most one destination [models.SearchCandidate].
//
// # Query
//
// [BuildQuery] concatenates the title and the comma-joined artist line with a single space, without quoting.
//
// # Strategies
//
// Candidate selection is a [Picker]:
//   - [FirstResult] : trust the destination's ranking and take rank 0, or nothing
//   - [TokenOverlap] : score candidates by token overlap with the source title and primary artist
//
// # Failures
//
// A failed search is reported in [MatchResult.Err] as a [shared.KindPerTrackSearch] error.
// It never aborts a transfer run.
package matcher
