package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/tunescout/internal/models"
	"github.com/desertthunder/tunescout/internal/shared"
)

var (
	_ list.Item = genreItem{}
	_ list.Item = songItem{}
	_ list.Item = historyItem{}
)

// genreItem wraps a genre name to implement [list.Item].
type genreItem struct {
	name string
}

func (i genreItem) FilterValue() string { return i.name }
func (i genreItem) Title() string       { return i.name }
func (i genreItem) Description() string { return "browse " + i.name + " songs" }

// songItem wraps [models.Song] to implement [list.Item].
//
// The description reads the displayed rating through the reconciler at render
// time, so optimistic updates repaint without rebuilding the list.
type songItem struct {
	song       models.Song
	reconciler *Reconciler
}

func (i songItem) FilterValue() string { return i.song.Name }
func (i songItem) Title() string       { return i.song.Name }
func (i songItem) Description() string {
	desc := i.song.Artist
	if i.song.Album != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.song.Album)
	}
	desc = fmt.Sprintf("%s • %s", desc, shared.FormatDuration(i.song.DurationMS))

	if i.reconciler != nil {
		if value := i.reconciler.Displayed(i.song.ID); value != nil {
			marker := "♥"
			if *value == models.RatingDislike {
				marker = "✗"
			}
			desc = fmt.Sprintf("%s %s", marker, desc)
		}
	}

	return desc
}

// historyItem wraps [models.Rating] to implement [list.Item].
type historyItem struct {
	rating *models.Rating
}

func (i historyItem) FilterValue() string { return i.rating.SongName() }
func (i historyItem) Title() string       { return i.rating.SongName() }
func (i historyItem) Description() string {
	marker := "♥"
	if i.rating.Value() == models.RatingDislike {
		marker = "✗"
	}
	desc := fmt.Sprintf("%s %s", marker, i.rating.Artist())
	if i.rating.Album() != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.rating.Album())
	}
	return desc
}
