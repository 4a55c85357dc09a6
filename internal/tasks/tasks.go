// package tasks implements playlist transfer operations between music services.
//
// The core abstraction is TransferEngine, which drives an export (new playlist) or merge (existing playlist) over a
// loaded track list. Operations emit progress updates via channels for non-blocking status reporting to the CLI.
package tasks

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ytcopy/internal/identity"
	"github.com/desertthunder/ytcopy/internal/matcher"
	"github.com/desertthunder/ytcopy/internal/models"
	"github.com/desertthunder/ytcopy/internal/services"
	"github.com/desertthunder/ytcopy/internal/shared"
	"golang.org/x/sync/errgroup"
)

const (
	defaultDescription   = "Created from Spotify playlist"
	defaultContentsLimit = 5000
)

// Mode is the kind of transfer a run performs.
type Mode int

const (
	ModeExport Mode = iota
	ModeMerge
)

func (m Mode) String() string {
	switch m {
	case ModeExport:
		return "export"
	case ModeMerge:
		return "merge"
	default:
		return ""
	}
}

// State is the lifecycle position of a run: Idle -> Running -> Completed | Aborted.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateCompleted
	StateAborted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	case StateAborted:
		return "aborted"
	default:
		return ""
	}
}

// Outcome is what happened to a single source track.
type Outcome int

const (
	Added Outcome = iota
	NoMatch
	DuplicateSkipped
	SearchFailed
	AddFailed // a candidate was found but adding it failed
)

func (o Outcome) String() string {
	switch o {
	case Added:
		return "added"
	case NoMatch:
		return "no_match"
	case DuplicateSkipped:
		return "duplicate_skipped"
	case SearchFailed:
		return "search_failed"
	case AddFailed:
		return "add_failed"
	default:
		return ""
	}
}

// TrackOutcome records the result for the track at Index in the source list.
type TrackOutcome struct {
	Index     int
	Track     models.Track
	Outcome   Outcome
	Candidate *models.SearchCandidate // chosen candidate, nil for NoMatch and SearchFailed
	Err       error                   // set for SearchFailed and AddFailed
}

// TransferResult is the per-run report. Outcomes are in source order.
type TransferResult struct {
	RunID            string
	Mode             Mode
	PlaylistID       string
	State            State
	Total            int
	Attempted        int
	Added            int
	SkippedDuplicate int
	Outcomes         []TrackOutcome
	AbortErr         error
}

// Count returns the number of tracks with outcome o.
func (r *TransferResult) Count(o Outcome) int {
	n := 0
	for _, out := range r.Outcomes {
		if out.Outcome == o {
			n++
		}
	}
	return n
}

// Unmatched counts tracks that did not end up in the playlist for lack of a usable match:
// no candidate at all or a candidate whose add failed.
func (r *TransferResult) Unmatched() int {
	return r.Count(NoMatch) + r.Count(AddFailed)
}

func (r *TransferResult) record(out TrackOutcome) {
	r.Outcomes = append(r.Outcomes, out)
	r.Attempted++
	switch out.Outcome {
	case Added:
		r.Added++
	case DuplicateSkipped:
		r.SkippedDuplicate++
	}
}

// TransferEngine drives export and merge runs against a destination catalog.
//
// An engine holds no per-run state, so one instance may serve many runs, including repeated runs over the same
// [models.LoadedPlaylist].
type TransferEngine struct {
	dest          services.DestinationCatalog
	matcher       *matcher.Matcher
	description   string
	contentsLimit int
	searchWorkers int
	logger        *log.Logger
}

// Option configures a [TransferEngine].
type Option func(*TransferEngine)

// WithPicker replaces the default first-result candidate selection.
func WithPicker(p matcher.Picker) Option {
	return func(e *TransferEngine) {
		e.matcher = matcher.New(p)
	}
}

// WithDescription sets the description of playlists created by ExportAll.
func WithDescription(d string) Option {
	return func(e *TransferEngine) {
		if d != "" {
			e.description = d
		}
	}
}

// WithContentsLimit caps how many existing tracks MergeInto reads from the destination playlist.
func WithContentsLimit(n int) Option {
	return func(e *TransferEngine) {
		if n > 0 {
			e.contentsLimit = n
		}
	}
}

// WithSearchWorkers lets up to n searches run ahead of the add loop. Additions stay sequential.
func WithSearchWorkers(n int) Option {
	return func(e *TransferEngine) {
		if n > 0 {
			e.searchWorkers = n
		}
	}
}

// WithEngineLogger sets the logger used for run diagnostics.
func WithEngineLogger(l *log.Logger) Option {
	return func(e *TransferEngine) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewTransferEngine creates an engine writing to dest.
func NewTransferEngine(dest services.DestinationCatalog, opts ...Option) *TransferEngine {
	e := &TransferEngine{
		dest:          dest,
		matcher:       matcher.New(nil),
		description:   defaultDescription,
		contentsLimit: defaultContentsLimit,
		searchWorkers: 1,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = shared.NewLogger(nil)
	}
	return e
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *TransferEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	send(progress, update)
}

// addFunc places candidate in the destination playlist and reports the resulting outcome.
type addFunc func(ctx context.Context, candidate models.SearchCandidate) (Outcome, error)

// ExportAll creates a playlist called name and adds the best match for every track of playlist, in order.
//
// An empty track list or name is a [shared.KindUserInput] error and no run starts. A create-playlist failure
// aborts before any track is processed. The returned error is non-nil exactly when the run did not complete.
func (e *TransferEngine) ExportAll(ctx context.Context, progress chan<- ProgressUpdate, playlist *models.LoadedPlaylist, name string) (*TransferResult, error) {
	const op = "export"
	if playlist.Len() == 0 {
		return nil, shared.NewError(shared.KindUserInput, op, shared.ErrEmptyTrackList)
	}
	if name == "" {
		return nil, shared.NewError(shared.KindUserInput, op, shared.ErrMissingArgument)
	}
	if e.dest == nil {
		return nil, shared.NewError(shared.KindPrecondition, op, shared.ErrServiceUnavailable)
	}

	result, logger := e.begin(ModeExport, playlist)
	if err := ctx.Err(); err != nil {
		return e.abort(progress, logger, result, shared.NewError(shared.KindCanceled, op, err))
	}
	e.sendProgress(progress, createPlaylistUpdate(result, name))

	playlistID, err := e.dest.CreatePlaylist(ctx, name, e.description)
	if err != nil {
		return e.abort(progress, logger, result, shared.NewError(shared.KindPrecondition, "create playlist", err))
	}
	result.PlaylistID = playlistID
	logger.Info("created playlist", "name", name, "playlist", playlistID)

	add := func(ctx context.Context, c models.SearchCandidate) (Outcome, error) {
		if err := e.dest.AddItems(ctx, playlistID, []string{c.ID}); err != nil {
			return AddFailed, err
		}
		return Added, nil
	}
	return e.process(ctx, progress, logger, result, playlist.Tracks, add)
}

// MergeInto adds the best match for every track of playlist to the existing destination playlist playlistID,
// skipping candidates whose identity key is already present.
//
// Keys are computed from the candidate's own title and primary artist. Every successful add inserts its key
// immediately, so a repeat within the same source list is skipped too.
func (e *TransferEngine) MergeInto(ctx context.Context, progress chan<- ProgressUpdate, playlist *models.LoadedPlaylist, playlistID string) (*TransferResult, error) {
	const op = "merge"
	if playlist.Len() == 0 {
		return nil, shared.NewError(shared.KindUserInput, op, shared.ErrEmptyTrackList)
	}
	if playlistID == "" {
		return nil, shared.NewError(shared.KindUserInput, op, shared.ErrNoPlaylistChosen)
	}
	if e.dest == nil {
		return nil, shared.NewError(shared.KindPrecondition, op, shared.ErrServiceUnavailable)
	}

	result, logger := e.begin(ModeMerge, playlist)
	result.PlaylistID = playlistID
	if err := ctx.Err(); err != nil {
		return e.abort(progress, logger, result, shared.NewError(shared.KindCanceled, op, err))
	}
	e.sendProgress(progress, fetchDestUpdate(result, playlistID))

	existing, err := e.dest.GetPlaylistContents(ctx, playlistID, e.contentsLimit)
	if err != nil {
		return e.abort(progress, logger, result, shared.NewError(shared.KindPrecondition, "get playlist contents", err))
	}

	keys := identity.NewKeySet(len(existing) + playlist.Len())
	for _, item := range existing {
		keys.Insert(identity.KeyOf(item.Title, item.PrimaryArtist()))
	}
	logger.Debug("seeded existing keys", "existing", len(existing), "keys", keys.Len())

	add := func(ctx context.Context, c models.SearchCandidate) (Outcome, error) {
		key := identity.KeyOf(c.Title, c.PrimaryArtist())
		duplicate, err := keys.TryAdd(key, func() error {
			return e.dest.AddItems(ctx, playlistID, []string{c.ID})
		})
		switch {
		case err != nil:
			return AddFailed, err
		case duplicate:
			return DuplicateSkipped, nil
		default:
			return Added, nil
		}
	}
	return e.process(ctx, progress, logger, result, playlist.Tracks, add)
}

// begin moves a new run from Idle to Running.
func (e *TransferEngine) begin(mode Mode, playlist *models.LoadedPlaylist) (*TransferResult, *log.Logger) {
	result := &TransferResult{
		RunID:    shared.GenerateID(),
		Mode:     mode,
		State:    StateRunning,
		Total:    playlist.Len(),
		Outcomes: make([]TrackOutcome, 0, playlist.Len()),
	}
	logger := shared.WithLogger(e.logger, "run", result.RunID, "mode", mode.String())
	logger.Debug("starting run", "source", playlist.SourceID, "tracks", result.Total)
	return result, logger
}

func (e *TransferEngine) abort(progress chan<- ProgressUpdate, logger *log.Logger, result *TransferResult, err error) (*TransferResult, error) {
	result.State = StateAborted
	result.AbortErr = err
	logger.Warn("run aborted", "attempted", result.Attempted, "added", result.Added, "err", err)
	e.sendProgress(progress, finishedUpdate(result))
	return result, err
}

// process walks tracks in order. State only changes between tracks, which is where cancellation is observed.
func (e *TransferEngine) process(
	ctx context.Context,
	progress chan<- ProgressUpdate,
	logger *log.Logger,
	result *TransferResult,
	tracks []models.Track,
	add addFunc,
) (*TransferResult, error) {
	op := result.Mode.String()
	fetch, stop := e.searchAhead(ctx, tracks)
	defer stop()

	for i, track := range tracks {
		if err := ctx.Err(); err != nil {
			return e.abort(progress, logger, result, shared.NewError(shared.KindCanceled, op, err))
		}

		candidates, searchErr := fetch(i)
		if err := ctx.Err(); err != nil {
			return e.abort(progress, logger, result, shared.NewError(shared.KindCanceled, op, err))
		}

		match := e.matcher.Resolve(track, candidates, searchErr)
		out := TrackOutcome{Index: i, Track: track, Candidate: match.Candidate}

		switch {
		case match.Err != nil:
			out.Outcome = SearchFailed
			out.Err = match.Err
		case !match.Found():
			out.Outcome = NoMatch
		default:
			outcome, err := add(ctx, *match.Candidate)
			if err != nil {
				if errors.Is(err, shared.ErrWritesRejected) {
					return e.abort(progress, logger, result,
						shared.NewTrackError(shared.KindPrecondition, "add items", matcher.Describe(track), err))
				}
				if ctxErr := ctx.Err(); ctxErr != nil {
					return e.abort(progress, logger, result, shared.NewError(shared.KindCanceled, op, ctxErr))
				}
				out.Err = shared.NewTrackError(shared.KindPerTrackAdd, "add items", matcher.Describe(track), err)
			}
			out.Outcome = outcome
		}

		result.record(out)
		logger.Debug("processed track", "index", i, "track", matcher.Describe(track), "outcome", out.Outcome.String())
		e.sendProgress(progress, trackUpdate(result, out))
	}

	result.State = StateCompleted
	logger.Info("run completed",
		"attempted", result.Attempted,
		"added", result.Added,
		"skipped", result.SkippedDuplicate,
		"unmatched", result.Unmatched(),
		"search_failed", result.Count(SearchFailed),
	)
	e.sendProgress(progress, finishedUpdate(result))
	return result, nil
}

func (e *TransferEngine) search(ctx context.Context, query string) ([]models.SearchCandidate, error) {
	return e.dest.Search(ctx, query, matcher.FilterSongs)
}

// searchSlot holds the search response for one source index. done is closed once the response is set.
type searchSlot struct {
	done       chan struct{}
	candidates []models.SearchCandidate
	err        error
}

// searchAhead returns a fetch function yielding the raw search response for track i, and a stop function that
// must be called once the caller is done.
//
// With a single worker every fetch searches inline. With more, searches are dispatched on an errgroup in source
// order and fetch waits for the slot of i.
func (e *TransferEngine) searchAhead(ctx context.Context, tracks []models.Track) (func(int) ([]models.SearchCandidate, error), func()) {
	if e.searchWorkers <= 1 {
		fetch := func(i int) ([]models.SearchCandidate, error) {
			return e.matcher.Search(ctx, tracks[i], e.search)
		}
		return fetch, func() {}
	}

	ctx, cancel := context.WithCancel(ctx)
	slots := make([]searchSlot, len(tracks))
	for i := range slots {
		slots[i].done = make(chan struct{})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.searchWorkers)

	dispatched := make(chan struct{})
	go func() {
		defer close(dispatched)
		for i := range tracks {
			if gctx.Err() != nil {
				return
			}
			g.Go(func() error {
				defer close(slots[i].done)
				slots[i].candidates, slots[i].err = e.matcher.Search(gctx, tracks[i], e.search)
				return nil
			})
		}
	}()

	fetch := func(i int) ([]models.SearchCandidate, error) {
		select {
		case <-slots[i].done:
			return slots[i].candidates, slots[i].err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	stop := func() {
		cancel()
		<-dispatched
		_ = g.Wait()
	}
	return fetch, stop
}

// ListPlaylists returns the user's destination library playlists. Failure is a [shared.KindPrecondition] error.
func (e *TransferEngine) ListPlaylists(ctx context.Context, limit int) ([]models.PlaylistSummary, error) {
	if e.dest == nil {
		return nil, shared.NewError(shared.KindPrecondition, "list playlists", shared.ErrServiceUnavailable)
	}
	playlists, err := e.dest.ListLibraryPlaylists(ctx, limit)
	if err != nil {
		return nil, shared.NewError(shared.KindPrecondition, "list playlists", err)
	}
	return playlists, nil
}

// ResolvePlaylist finds a library playlist by id, falling back to an exact title match.
func (e *TransferEngine) ResolvePlaylist(ctx context.Context, idOrTitle string, limit int) (*models.PlaylistSummary, error) {
	if idOrTitle == "" {
		return nil, shared.NewError(shared.KindUserInput, "resolve playlist", shared.ErrNoPlaylistChosen)
	}

	playlists, err := e.ListPlaylists(ctx, limit)
	if err != nil {
		return nil, err
	}

	for i := range playlists {
		if playlists[i].ID == idOrTitle {
			return &playlists[i], nil
		}
	}
	for i := range playlists {
		if playlists[i].Title == idOrTitle {
			return &playlists[i], nil
		}
	}
	return nil, shared.NewError(shared.KindUserInput, "resolve playlist", fmt.Errorf("%w: %q", shared.ErrPlaylistNotFound, idOrTitle))
}
