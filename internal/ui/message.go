package ui

import (
	"github.com/desertthunder/tunescout/internal/models"
	"github.com/desertthunder/tunescout/internal/tasks"
)

// songsFetchedMsg carries a genre's recommendation feed into the model.
type songsFetchedMsg struct {
	genre string
	songs []tasks.AnnotatedSong
	err   error
}

// rateResolvedMsg carries the outcome of one rating write.
type rateResolvedMsg struct {
	op  Op
	err error
}

// ratingsSyncedMsg carries the authoritative rating map fetched on focus.
type ratingsSyncedMsg struct {
	songIDs []string
	ratings map[string]models.RatingValue
	err     error
}

// historyFetchedMsg carries the user's rating history into the history view.
type historyFetchedMsg struct {
	ratings []*models.Rating
	err     error
}
