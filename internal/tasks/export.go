package tasks

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/desertthunder/tunescout/internal/formatter"
	"github.com/desertthunder/tunescout/internal/models"
	"github.com/desertthunder/tunescout/internal/shared"
)

// HistoryExportOpts contains configuration for rating history exports.
type HistoryExportOpts struct {
	Format string // Export format: json, csv, markdown, txt
	Output string // Base output path (default: rating_history_{epoch})
}

// HistoryExportResult contains the paths of files created by ExportHistory.
type HistoryExportResult struct {
	HistoryFile  string
	MetadataFile string
	Total        int
}

// historyRow is the JSON row shape for history exports.
type historyRow struct {
	SongID   string `json:"song_id"`
	Song     string `json:"song"`
	Artist   string `json:"artist"`
	Album    string `json:"album,omitempty"`
	Rating   string `json:"rating"`
	Duration int    `json:"duration_ms"`
	RatedAt  string `json:"rated_at"`
}

func exportRows(ratings []*models.Rating) []historyRow {
	rows := make([]historyRow, 0, len(ratings))
	for _, rating := range ratings {
		rows = append(rows, historyRow{
			SongID:   rating.SongID(),
			Song:     rating.SongName(),
			Artist:   rating.Artist(),
			Album:    rating.Album(),
			Rating:   string(rating.Value()),
			Duration: rating.Duration(),
			RatedAt:  rating.SortKey().Format(time.RFC3339),
		})
	}
	return rows
}

// ExportHistory writes the user's rating history to disk in the requested
// format, with a metadata JSON summary alongside it.
func (e *DiscoveryEngine) ExportHistory(userID, email string, opts HistoryExportOpts) (*HistoryExportResult, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: sign in to export rating history", shared.ErrNotAuthenticated)
	}

	ratings, err := e.ratings.ListRatings(userID, nil)
	if err != nil {
		return nil, err
	}

	export := &formatter.HistoryExport{
		Email:       email,
		GeneratedAt: time.Now(),
		Ratings:     ratings,
	}

	base := opts.Output
	if base == "" {
		base = fmt.Sprintf("rating_history_%d", time.Now().Unix())
	}

	var data []byte
	var ext string

	switch opts.Format {
	case "", "json":
		ext = ".json"
		data, err = shared.MarshalJSON(exportRows(ratings), true)
	case "csv":
		ext = ".csv"
		data, err = formatter.ExportToCSV(export)
	case "markdown", "md":
		ext = ".md"
		data, err = formatter.ExportToMarkdown(export)
	case "txt", "text":
		ext = ".txt"
		data, err = formatter.ExportToText(export)
	default:
		return nil, fmt.Errorf("%w: unsupported format %q", shared.ErrInvalidArgument, opts.Format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to render export: %w", err)
	}

	if dir := filepath.Dir(base); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	historyFile := base + ext
	if err := os.WriteFile(historyFile, data, 0644); err != nil {
		return nil, fmt.Errorf("failed to write export file: %w", err)
	}

	metadata, err := formatter.ToMetadataJSON(export)
	if err != nil {
		return nil, fmt.Errorf("failed to generate metadata: %w", err)
	}

	metadataFile := base + "_metadata.json"
	if err := os.WriteFile(metadataFile, metadata, 0644); err != nil {
		return nil, fmt.Errorf("failed to write metadata file: %w", err)
	}

	e.logger.Info("exported rating history", "file", historyFile, "songs", len(ratings))

	return &HistoryExportResult{
		HistoryFile:  historyFile,
		MetadataFile: metadataFile,
		Total:        len(ratings),
	}, nil
}
