// package formatter renders loaded playlists and transfer reports to various formats (CSV, Markdown, plain text, JSON)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/desertthunder/ytcopy/internal/matcher"
	"github.com/desertthunder/ytcopy/internal/models"
	"github.com/desertthunder/ytcopy/internal/shared"
	"github.com/desertthunder/ytcopy/internal/tasks"
)

// Supported output formats
const (
	FormatText     = "txt"
	FormatCSV      = "csv"
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
)

// Formats lists the accepted --format values.
var Formats = []string{FormatText, FormatCSV, FormatMarkdown, FormatJSON}

// PlaylistFormats lists the formats a loaded playlist can be rendered in.
var PlaylistFormats = []string{FormatText, FormatCSV, FormatJSON}

// CheckFormat returns an [shared.ErrInvalidInput] error unless format is empty or one of allowed.
func CheckFormat(format string, allowed []string) error {
	if format == "" || slices.Contains(allowed, format) {
		return nil
	}
	return fmt.Errorf("%w: unknown format %q (want one of %s)", shared.ErrInvalidInput, format, strings.Join(allowed, ", "))
}

// PlaylistToText lists tracks as "1. title - artists", one per line.
func PlaylistToText(p *models.LoadedPlaylist) []byte {
	if p == nil {
		return nil
	}
	var buf bytes.Buffer
	for i, track := range p.Tracks {
		buf.WriteString(fmt.Sprintf("%d. %s - %s\n", i+1, track.Title, track.ArtistLine()))
	}
	return buf.Bytes()
}

// PlaylistToCSV converts a loaded playlist to CSV with columns: Position, Title, Artists
func PlaylistToCSV(p *models.LoadedPlaylist) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{"Position", "Title", "Artists"}); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}
	for i, track := range tracksOf(p) {
		if err := writer.Write([]string{strconv.Itoa(i + 1), track.Title, track.ArtistLine()}); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}
	return buf.Bytes(), nil
}

// Summary is the one-line headline of a run.
func Summary(r *tasks.TransferResult) string {
	var parts []string
	if r.Mode == tasks.ModeMerge {
		parts = append(parts, fmt.Sprintf("%d already present", r.SkippedDuplicate))
	}
	parts = append(parts, fmt.Sprintf("%d not found", r.Unmatched()))
	if n := r.Count(tasks.SearchFailed); n > 0 {
		parts = append(parts, fmt.Sprintf("%d search failures", n))
	}

	line := fmt.Sprintf("%d of %d songs added (%s)", r.Added, r.Total, strings.Join(parts, ", "))
	if r.State == tasks.StateAborted {
		line = fmt.Sprintf("aborted after %d tracks: %s", r.Attempted, line)
	}
	return line
}

// ReportToText converts a transfer result to plain text
func ReportToText(r *tasks.TransferResult) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Run: %s (%s)\n", r.RunID, r.Mode))
	if r.PlaylistID != "" {
		buf.WriteString(fmt.Sprintf("Playlist: %s\n", r.PlaylistID))
	}
	buf.WriteString(fmt.Sprintf("State: %s\n", r.State))
	buf.WriteString(Summary(r) + "\n\n")

	for _, out := range r.Outcomes {
		buf.WriteString(fmt.Sprintf("%d. %s [%s]", out.Index+1, matcher.Describe(out.Track), out.Outcome))
		if out.Err != nil {
			buf.WriteString(fmt.Sprintf(": %v", out.Err))
		}
		buf.WriteString("\n")
	}
	if r.AbortErr != nil {
		buf.WriteString(fmt.Sprintf("\nError: %v\n", r.AbortErr))
	}
	return buf.Bytes()
}

// ReportToCSV converts per-track outcomes to CSV with columns: Position, Title, Artists, Outcome, VideoID, Error
func ReportToCSV(r *tasks.TransferResult) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Position", "Title", "Artists", "Outcome", "VideoID", "Error"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, out := range r.Outcomes {
		record := []string{
			strconv.Itoa(out.Index + 1),
			out.Track.Title,
			out.Track.ArtistLine(),
			out.Outcome.String(),
			candidateID(out),
			errString(out.Err),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}
	return buf.Bytes(), nil
}

// ReportToMarkdown converts a transfer result to a Markdown document with a per-track table
func ReportToMarkdown(r *tasks.TransferResult) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# Transfer report (%s)\n\n", r.Mode))
	buf.WriteString(fmt.Sprintf("**Run**: %s\n", r.RunID))
	if r.PlaylistID != "" {
		buf.WriteString(fmt.Sprintf("**Playlist**: %s\n", r.PlaylistID))
	}
	buf.WriteString(fmt.Sprintf("**State**: %s\n", r.State))
	buf.WriteString(fmt.Sprintf("**Summary**: %s\n\n", Summary(r)))

	buf.WriteString("## Tracks\n\n")
	buf.WriteString("| # | Track | Outcome | Video |\n")
	buf.WriteString("|---|-------|---------|-------|\n")
	for _, out := range r.Outcomes {
		buf.WriteString(fmt.Sprintf("| %d | %s | %s | %s |\n",
			out.Index+1, escapeCell(matcher.Describe(out.Track)), out.Outcome, candidateID(out)))
	}

	if r.AbortErr != nil {
		buf.WriteString(fmt.Sprintf("\n**Error**: %s\n", escapeCell(r.AbortErr.Error())))
	}
	return buf.Bytes()
}

type reportJSON struct {
	RunID            string        `json:"run_id"`
	Mode             string        `json:"mode"`
	PlaylistID       string        `json:"playlist_id,omitempty"`
	State            string        `json:"state"`
	Total            int           `json:"total"`
	Attempted        int           `json:"attempted"`
	Added            int           `json:"added"`
	SkippedDuplicate int           `json:"skipped_duplicate"`
	Unmatched        int           `json:"unmatched"`
	SearchFailed     int           `json:"search_failed"`
	Error            string        `json:"error,omitempty"`
	Tracks           []outcomeJSON `json:"tracks"`
}

type outcomeJSON struct {
	Position int      `json:"position"`
	Title    string   `json:"title"`
	Artists  []string `json:"artists"`
	Outcome  string   `json:"outcome"`
	VideoID  string   `json:"video_id,omitempty"`
	Error    string   `json:"error,omitempty"`
}

// ReportToJSON converts a transfer result to indented JSON
func ReportToJSON(r *tasks.TransferResult) ([]byte, error) {
	doc := reportJSON{
		RunID:            r.RunID,
		Mode:             r.Mode.String(),
		PlaylistID:       r.PlaylistID,
		State:            r.State.String(),
		Total:            r.Total,
		Attempted:        r.Attempted,
		Added:            r.Added,
		SkippedDuplicate: r.SkippedDuplicate,
		Unmatched:        r.Unmatched(),
		SearchFailed:     r.Count(tasks.SearchFailed),
		Error:            errString(r.AbortErr),
		Tracks:           make([]outcomeJSON, 0, len(r.Outcomes)),
	}
	for _, out := range r.Outcomes {
		doc.Tracks = append(doc.Tracks, outcomeJSON{
			Position: out.Index + 1,
			Title:    out.Track.Title,
			Artists:  out.Track.Artists,
			Outcome:  out.Outcome.String(),
			VideoID:  candidateID(out),
			Error:    errString(out.Err),
		})
	}
	return shared.MarshalJSON(doc, true)
}

// RenderReport renders r in format. An unknown format is an [shared.ErrInvalidInput] error.
func RenderReport(r *tasks.TransferResult, format string) ([]byte, error) {
	switch format {
	case FormatText, "":
		return ReportToText(r), nil
	case FormatCSV:
		return ReportToCSV(r)
	case FormatMarkdown:
		return ReportToMarkdown(r), nil
	case FormatJSON:
		return ReportToJSON(r)
	default:
		return nil, CheckFormat(format, Formats)
	}
}

// WriteReport renders r in format and writes it to path.
func WriteReport(r *tasks.TransferResult, format, path string) error {
	data, err := RenderReport(r, format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

func tracksOf(p *models.LoadedPlaylist) []models.Track {
	if p == nil {
		return nil
	}
	return p.Tracks
}

func candidateID(out tasks.TrackOutcome) string {
	if out.Candidate == nil {
		return ""
	}
	return out.Candidate.ID
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
