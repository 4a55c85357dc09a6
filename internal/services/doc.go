// Package services defines the [SourceCatalog] and [DestinationCatalog] interfaces and implements them for Spotify and YouTube Music.
//
// # Spotify Implementation
//
// [SpotifyService] reads playlists through [spotify.Client] authenticated with the client-credentials grant.
// Pages are requested with Limit/Offset until Spotify returns an empty page.
//
// # YouTube Music Implementation
//
// [YouTubeService] communicates with the FastAPI proxy server (music/) wrapping ytmusicapi.
//
// The proxy handles YouTube Music authentication complexities.
// The auth_file path is sent via X-Auth-File header on each request.
// All YouTube operations are synchronous HTTP calls to the proxy endpoints, optionally throttled by a [rate.Limiter].
//
// # Search Cache
//
// [CachedSearch] decorates any [DestinationCatalog] with an LRU of successful search responses,
// so exporting and then merging the same loaded playlist does not repeat every search.
//
// # Error Handling
//
// Services wrap typed errors from the shared package:
//   - [shared.ErrAPIRequest] : non-2xx proxy or Spotify response
//   - [shared.ErrWritesRejected] : the proxy refused an add (401, 403, 429); later writes would fail too
//   - [shared.ErrPlaylistNotFound] : playlist id not found
//   - [shared.ErrMissingCredentials] : client id, secret or auth file missing
package services
