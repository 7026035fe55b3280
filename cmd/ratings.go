package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/tunescout/internal/models"
	"github.com/desertthunder/tunescout/internal/repositories"
	"github.com/desertthunder/tunescout/internal/shared"
	"github.com/desertthunder/tunescout/internal/tasks"
	"github.com/urfave/cli/v3"
)

// requireUser bootstraps the runner and returns the signed-in user ID.
func (r *Runner) requireUser(cmd *cli.Command) (string, error) {
	if err := r.bootstrap(cmd); err != nil {
		return "", err
	}

	userID := r.session.UserID()
	if userID == "" {
		return "", fmt.Errorf("%w: run 'tunescout auth signin' first", shared.ErrNotAuthenticated)
	}

	return userID, nil
}

// RatingsList prints the user's rating history, newest feedback first.
func (r *Runner) RatingsList(ctx context.Context, cmd *cli.Command) error {
	userID, err := r.requireUser(cmd)
	if err != nil {
		return err
	}
	defer r.db.Close()

	var filter *models.RatingValue
	if raw := cmd.String("filter"); raw != "" {
		value, err := models.ParseRatingValue(raw)
		if err != nil {
			return err
		}
		filter = &value
	}

	ratings, err := r.store.ListRatings(userID, filter)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		rows := make([]map[string]any, 0, len(ratings))
		for _, rating := range ratings {
			rows = append(rows, map[string]any{
				"song_id": rating.SongID(),
				"song":    rating.SongName(),
				"artist":  rating.Artist(),
				"album":   rating.Album(),
				"rating":  string(rating.Value()),
			})
		}
		return r.writeJSON(rows, cmd.Bool("pretty"))
	}

	if len(ratings) == 0 {
		return r.writePlain("No ratings yet\n")
	}

	for i, rating := range ratings {
		marker := "♥"
		if rating.Value() == models.RatingDislike {
			marker = "✗"
		}
		r.writePlain("%2d. %s %s - %s\n", i+1, marker, rating.Artist(), rating.SongName())
	}

	return nil
}

// RatingsAdd fetches a song from the catalog and rates it.
func (r *Runner) RatingsAdd(ctx context.Context, cmd *cli.Command) error {
	songID := cmd.StringArg("song")
	if songID == "" {
		return fmt.Errorf("%w: song id", shared.ErrMissingArgument)
	}

	value, err := models.ParseRatingValue(cmd.String("value"))
	if err != nil {
		return err
	}

	userID, err := r.requireUser(cmd)
	if err != nil {
		return err
	}
	defer r.db.Close()

	if r.catalog == nil {
		return fmt.Errorf("%w: add Spotify credentials to %s", shared.ErrMissingCredentials, r.configPath)
	}

	song, err := r.catalog.Track(ctx, songID)
	if err != nil {
		return err
	}

	action, err := r.store.Rate(userID, *song, value)
	if err != nil {
		return err
	}

	verb := "Rated"
	if action == repositories.RatingUpdated {
		verb = "Re-rated"
	}
	return r.writePlain("✓ %s %s - %s as %s\n", verb, song.Artist, song.Name, value)
}

// RatingsRemove removes a song's rating.
func (r *Runner) RatingsRemove(ctx context.Context, cmd *cli.Command) error {
	songID := cmd.StringArg("song")
	if songID == "" {
		return fmt.Errorf("%w: song id", shared.ErrMissingArgument)
	}

	userID, err := r.requireUser(cmd)
	if err != nil {
		return err
	}
	defer r.db.Close()

	removed, err := r.store.Unrate(userID, songID)
	if err != nil {
		return err
	}

	if !removed {
		return r.writePlain("No rating found for %s\n", songID)
	}
	return r.writePlain("✓ Rating removed\n")
}

// RatingsExport writes the rating history to disk.
func (r *Runner) RatingsExport(ctx context.Context, cmd *cli.Command) error {
	userID, err := r.requireUser(cmd)
	if err != nil {
		return err
	}
	defer r.db.Close()

	result, err := r.engine.ExportHistory(userID, r.config.Session.Email, tasks.HistoryExportOpts{
		Format: cmd.String("format"),
		Output: cmd.String("output"),
	})
	if err != nil {
		return err
	}

	r.writePlain("✓ Exported %d ratings\n", result.Total)
	r.writePlain("History: %s\n", result.HistoryFile)
	r.writePlain("Metadata: %s\n", result.MetadataFile)
	return nil
}
