package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/tunescout/internal/models"
	"github.com/desertthunder/tunescout/internal/services"
	"github.com/desertthunder/tunescout/internal/shared"
	"github.com/urfave/cli/v3"
)

// Discover fetches genre recommendations, annotated with the signed-in
// user's ratings.
func (r *Runner) Discover(ctx context.Context, cmd *cli.Command) error {
	if cmd.Bool("list-genres") {
		genres := services.Genres()
		if cmd.Bool("json") {
			return r.writeJSON(genres, cmd.Bool("pretty"))
		}
		for _, genre := range genres {
			r.writePlain("%s\n", genre)
		}
		return nil
	}

	genre := cmd.StringArg("genre")
	if genre == "" {
		return fmt.Errorf("%w: genre", shared.ErrMissingArgument)
	}

	if err := r.bootstrap(cmd); err != nil {
		return err
	}
	defer r.db.Close()

	if r.catalog == nil {
		return fmt.Errorf("%w: add Spotify credentials to %s", shared.ErrMissingCredentials, r.configPath)
	}

	limit := int(cmd.Int("limit"))
	if limit <= 0 {
		limit = r.config.Catalog.DefaultLimit
	}

	r.logger.Info("fetching recommendations", "genre", genre, "limit", limit)

	songs, err := r.engine.Recommendations(ctx, r.session.UserID(), genre, limit)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(songs, cmd.Bool("pretty"))
	}

	if len(songs) == 0 {
		return r.writePlain("No songs found for %q\n", genre)
	}

	r.writePlain("%s songs:\n\n", genre)
	for i, song := range songs {
		marker := " "
		if song.Rating != nil {
			switch *song.Rating {
			case models.RatingLike:
				marker = "♥"
			case models.RatingDislike:
				marker = "✗"
			}
		}
		r.writePlain("%2d. %s %s - %s [%s]\n", i+1, marker, song.Artist, song.Name, shared.FormatDuration(song.DurationMS))
		r.writePlain("      id: %s\n", song.ID)
	}

	return nil
}
