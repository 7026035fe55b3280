// package formatter provides functions to export rating history to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/desertthunder/tunescout/internal/models"
	"github.com/desertthunder/tunescout/internal/shared"
)

// HistoryExport bundles a user's rating history with export metadata.
type HistoryExport struct {
	Email       string
	GeneratedAt time.Time
	Ratings     []*models.Rating
}

// historySummary is the metadata JSON shape written alongside exports.
type historySummary struct {
	Email       string    `json:"email"`
	GeneratedAt time.Time `json:"generated_at"`
	Total       int       `json:"total"`
	Likes       int       `json:"likes"`
	Dislikes    int       `json:"dislikes"`
}

// ExportToCSV converts a HistoryExport to CSV format with columns: Song ID, Song, Artist, Album, Rating, Duration, Rated At
func ExportToCSV(export *HistoryExport) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Song ID", "Song", "Artist", "Album", "Rating", "Duration", "Rated At"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, rating := range export.Ratings {
		record := []string{
			rating.SongID(),
			rating.SongName(),
			rating.Artist(),
			rating.Album(),
			string(rating.Value()),
			strconv.Itoa(rating.Duration()),
			rating.SortKey().Format(time.RFC3339),
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

// ExportToMarkdown converts a HistoryExport to Markdown format, grouping liked and disliked songs
func ExportToMarkdown(export *HistoryExport) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Rating History\n\n")
	if export.Email != "" {
		buf.WriteString(fmt.Sprintf("**Account**: %s\n", export.Email))
	}
	buf.WriteString(fmt.Sprintf("**Generated**: %s\n", export.GeneratedAt.Format(time.RFC1123)))
	buf.WriteString(fmt.Sprintf("**Songs**: %d\n\n", len(export.Ratings)))

	for _, section := range []struct {
		title string
		value models.RatingValue
	}{
		{"Liked", models.RatingLike},
		{"Disliked", models.RatingDislike},
	} {
		matched := filterByValue(export.Ratings, section.value)
		if len(matched) == 0 {
			continue
		}

		buf.WriteString(fmt.Sprintf("## %s\n\n", section.title))
		for i, rating := range matched {
			duration := shared.FormatDuration(rating.Duration())
			albumPart := ""
			if rating.Album() != "" {
				albumPart = fmt.Sprintf(" (%s)", rating.Album())
			}
			buf.WriteString(fmt.Sprintf("%d. %s - %s%s [%s]\n", i+1, rating.Artist(), rating.SongName(), albumPart, duration))
		}
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}

// ExportToText converts a HistoryExport to plain text format
func ExportToText(export *HistoryExport) ([]byte, error) {
	var buf bytes.Buffer

	if export.Email != "" {
		buf.WriteString(fmt.Sprintf("Account: %s\n", export.Email))
	}
	buf.WriteString(fmt.Sprintf("Songs: %d\n\n", len(export.Ratings)))

	for i, rating := range export.Ratings {
		marker := "+"
		if rating.Value() == models.RatingDislike {
			marker = "-"
		}
		buf.WriteString(fmt.Sprintf("%d. [%s] %s - %s\n", i+1, marker, rating.Artist(), rating.SongName()))
	}

	return buf.Bytes(), nil
}

// ToMetadataJSON generates a JSON summary of the export (counts, not songs)
func ToMetadataJSON(export *HistoryExport) ([]byte, error) {
	summary := historySummary{
		Email:       export.Email,
		GeneratedAt: export.GeneratedAt,
		Total:       len(export.Ratings),
		Likes:       len(filterByValue(export.Ratings, models.RatingLike)),
		Dislikes:    len(filterByValue(export.Ratings, models.RatingDislike)),
	}
	return shared.MarshalJSON(summary, true)
}

func filterByValue(ratings []*models.Rating, value models.RatingValue) []*models.Rating {
	var matched []*models.Rating
	for _, rating := range ratings {
		if rating.Value() == value {
			matched = append(matched, rating)
		}
	}
	return matched
}
