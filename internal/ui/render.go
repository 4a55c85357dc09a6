package ui

import (
	"fmt"
	"strings"

	"github.com/desertthunder/ytcopy/internal/matcher"
	"github.com/desertthunder/ytcopy/internal/models"
	"github.com/desertthunder/ytcopy/internal/tasks"
)

// RenderProgress formats one progress update as a single line.
func RenderProgress(u tasks.ProgressUpdate) string {
	switch u.Phase {
	case tasks.TransferTracks:
		out, ok := u.Data.(tasks.TrackOutcome)
		if !ok {
			return fmt.Sprintf("[%d/%d] %s", u.Step, u.Total, u.Message)
		}
		return fmt.Sprintf("[%d/%d] %s %s", u.Step, u.Total, matcher.Describe(out.Track), RenderOutcome(out.Outcome))
	case tasks.Finished:
		if u.State == tasks.StateAborted {
			return styles.Error(u.Message)
		}
		return styles.OK(u.Message)
	default:
		return styles.Help(u.Message)
	}
}

// RenderOutcome colors an outcome label.
func RenderOutcome(o tasks.Outcome) string {
	label := strings.ReplaceAll(o.String(), "_", " ")
	switch o {
	case tasks.Added:
		return styles.OK(label)
	case tasks.DuplicateSkipped:
		return styles.Help(label)
	case tasks.NoMatch:
		return styles.Warning(label)
	default:
		return styles.Error(label)
	}
}

// RenderResult builds the end-of-run report: a headline, counts, and the tracks that did not make it.
func RenderResult(r *tasks.TransferResult) string {
	var b strings.Builder

	title := "Transfer Complete!"
	if r.State == tasks.StateAborted {
		title = "Transfer Aborted"
	}
	if r.Mode == tasks.ModeMerge {
		title = strings.Replace(title, "Transfer", "Merge", 1)
	}
	if r.State == tasks.StateAborted {
		b.WriteString(styles.Error(title))
	} else {
		b.WriteString(styles.Title(title))
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "Playlist: %s\n", r.PlaylistID)
	fmt.Fprintf(&b, "YouTube Music playlist updated: %d songs added (%d/%d processed)\n", r.Added, r.Attempted, r.Total)
	if r.Mode == tasks.ModeMerge {
		fmt.Fprintf(&b, "Already present: %d\n", r.SkippedDuplicate)
	}

	var missed []tasks.TrackOutcome
	for _, out := range r.Outcomes {
		switch out.Outcome {
		case tasks.Added, tasks.DuplicateSkipped:
		default:
			missed = append(missed, out)
		}
	}
	if len(missed) > 0 {
		b.WriteString("\n")
		b.WriteString(styles.Warning(fmt.Sprintf("Failed to copy %d tracks:", len(missed))))
		for _, out := range missed {
			fmt.Fprintf(&b, "\n  • %d. %s (%s)", out.Index+1, matcher.Describe(out.Track), RenderOutcome(out.Outcome))
		}
		b.WriteString("\n")
	}

	if r.AbortErr != nil {
		b.WriteString("\n")
		b.WriteString(styles.Error(fmt.Sprintf("Error: %v", r.AbortErr)))
		b.WriteString("\n")
	}
	return b.String()
}

// RenderPlaylists lists library playlists as "id  title (count)".
func RenderPlaylists(playlists []models.PlaylistSummary) string {
	if len(playlists) == 0 {
		return styles.Help("No playlists found")
	}
	var b strings.Builder
	for i, p := range playlists {
		fmt.Fprintf(&b, "%d. %s  %s (%d tracks)\n", i+1, styles.Help(p.ID), p.Title, p.Count)
	}
	return b.String()
}
