package tasks

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tunescout/internal/models"
	"github.com/desertthunder/tunescout/internal/repositories"
	"github.com/desertthunder/tunescout/internal/services"
	"github.com/desertthunder/tunescout/internal/shared"
)

// AnnotatedSong is a catalog song joined with the user's rating, if any.
type AnnotatedSong struct {
	models.Song
	Rating *models.RatingValue `json:"rating,omitempty"`
}

// DiscoveryEngine assembles recommendation feeds and history exports.
// Contains dependencies on the catalog adapter and the rating store.
type DiscoveryEngine struct {
	catalog services.Catalog
	ratings *repositories.RatingStore
	logger  *log.Logger
}

// NewDiscoveryEngine creates a DiscoveryEngine with the provided catalog and store.
func NewDiscoveryEngine(catalog services.Catalog, ratings *repositories.RatingStore, logger *log.Logger) *DiscoveryEngine {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &DiscoveryEngine{
		catalog: catalog,
		ratings: ratings,
		logger:  logger,
	}
}

// Recommendations fetches songs for a genre and annotates them with the
// user's ratings.
//
// The user identity never changes which songs come back, only the annotation:
// an empty userID skips the rating lookup, and a failed lookup degrades to an
// unannotated feed with a logged warning.
func (e *DiscoveryEngine) Recommendations(ctx context.Context, userID, genre string, limit int) ([]AnnotatedSong, error) {
	if e.catalog == nil {
		return nil, fmt.Errorf("%w: catalog not configured", shared.ErrMissingConfig)
	}

	songs, err := e.catalog.SearchByGenre(ctx, genre, limit)
	if err != nil {
		return nil, err
	}

	annotated := make([]AnnotatedSong, 0, len(songs))
	for _, song := range songs {
		annotated = append(annotated, AnnotatedSong{Song: song})
	}

	if userID == "" || len(annotated) == 0 {
		return annotated, nil
	}

	ids := make([]string, 0, len(songs))
	for _, song := range songs {
		ids = append(ids, song.ID)
	}

	ratings, err := e.ratings.RatingsForSongs(userID, ids)
	if err != nil {
		e.logger.Warn("rating lookup failed, rendering unannotated", "genre", genre, "error", err)
		return annotated, nil
	}

	for i := range annotated {
		if value, ok := ratings[annotated[i].ID]; ok {
			v := value
			annotated[i].Rating = &v
		}
	}

	return annotated, nil
}
