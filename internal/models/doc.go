// Package models defines the value types that flow between the source catalog, the matcher and the transfer engine.
//
// Types are grouped by where they come from:
//   - [Track] and [LoadedPlaylist] : tracks read from the source playlist, in stored order
//   - [SearchCandidate] : one ranked search result from the destination service
//   - [PlaylistSummary] and [PlaylistItem] : destination library listings and playlist contents
//
// None of these types carry persistence; they live for a single command invocation.
package models
