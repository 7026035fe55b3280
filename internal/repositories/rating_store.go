package repositories

import (
	"errors"
	"fmt"
	"sort"

	"github.com/desertthunder/tunescout/internal/models"
	"github.com/desertthunder/tunescout/internal/shared"
)

// RateAction reports whether a rate call created or updated a document.
type RateAction string

const (
	RatingCreated RateAction = "created"
	RatingUpdated RateAction = "updated"
)

// RatingStore implements the application's rating semantics on top of
// [RatingRepository].
//
// One rating per (user, song) is enforced by querying for an
// existing document before every write rather than by a unique index; the
// query-then-write pair is not atomic, so two sessions racing on the same
// song can still produce duplicate rows. Bulk lookups tolerate that.
type RatingStore struct {
	repo *RatingRepository
}

// NewRatingStore creates a RatingStore backed by the given repository
func NewRatingStore(repo *RatingRepository) *RatingStore {
	return &RatingStore{repo: repo}
}

// Rate records or replaces the user's judgment on a song.
//
// An existing rating has its value, popularity/duration and updated timestamp
// refreshed; otherwise a new document is inserted with matching created and
// updated timestamps. Repeated calls with the same value are idempotent in
// end state. Callers must not retry on failure; rollback policy lives in the
// view layer.
func (s *RatingStore) Rate(userID string, song models.Song, value models.RatingValue) (RateAction, error) {
	if !value.Valid() {
		return "", fmt.Errorf("%w: rating value %q", shared.ErrInvalidArgument, value)
	}

	existing, err := s.repo.GetBySongID(userID, song.ID)
	switch {
	case err == nil:
		existing.Refresh(song, value)
		if err := s.repo.Update(existing); err != nil {
			return "", fmt.Errorf("%w: %v", shared.ErrStore, err)
		}
		return RatingUpdated, nil

	case errors.Is(err, shared.ErrRatingNotFound):
		rating := models.NewRating(0, userID, song, value)
		if err := s.repo.Create(rating); err != nil {
			return "", fmt.Errorf("%w: %v", shared.ErrStore, err)
		}
		return RatingCreated, nil

	default:
		return "", fmt.Errorf("%w: %v", shared.ErrStore, err)
	}
}

// Unrate removes the user's rating for a song.
//
// Returns false with a nil error when no rating exists: double-unrate is an
// expected race during optimistic toggling, not a failure.
func (s *RatingStore) Unrate(userID, songID string) (bool, error) {
	existing, err := s.repo.GetBySongID(userID, songID)
	if errors.Is(err, shared.ErrRatingNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: %v", shared.ErrStore, err)
	}

	if err := s.repo.Delete(existing.ID()); err != nil {
		if errors.Is(err, shared.ErrRatingNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("%w: %v", shared.ErrStore, err)
	}

	return true, nil
}

// Rating returns the user's current judgment on a song, with found=false
// when the song is unrated.
func (s *RatingStore) Rating(userID, songID string) (models.RatingValue, bool, error) {
	existing, err := s.repo.GetBySongID(userID, songID)
	if errors.Is(err, shared.ErrRatingNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%w: %v", shared.ErrStore, err)
	}

	return existing.Value(), true, nil
}

// ListRatings returns the user's rating history, optionally filtered by
// value, sorted newest-feedback-first.
//
// Ordering is applied here rather than in SQL because the filtered and
// unfiltered query paths do not share an order guarantee; the sort key is
// updatedAt, falling back to createdAt, falling back to the epoch.
func (s *RatingStore) ListRatings(userID string, filter *models.RatingValue) ([]*models.Rating, error) {
	criteria := map[string]any{"user_id": userID}
	if filter != nil {
		if !filter.Valid() {
			return nil, fmt.Errorf("%w: rating filter %q", shared.ErrInvalidArgument, *filter)
		}
		criteria["rating"] = string(*filter)
	}

	ratings, err := s.repo.List(criteria)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrStore, err)
	}

	sort.SliceStable(ratings, func(i, j int) bool {
		return ratings[i].SortKey().After(ratings[j].SortKey())
	})

	return ratings, nil
}

// RatingsForSongs builds the songId → value map for a visible song list.
//
// Fetches the user's full rating list once and filters client-side: one
// round trip for an entire screen beats a per-song lookup fan-out, and the
// store has no usefully-sized "where id in set" query.
func (s *RatingStore) RatingsForSongs(userID string, songIDs []string) (map[string]models.RatingValue, error) {
	result := map[string]models.RatingValue{}
	if userID == "" || len(songIDs) == 0 {
		return result, nil
	}

	ratings, err := s.ListRatings(userID, nil)
	if err != nil {
		return nil, err
	}

	wanted := make(map[string]bool, len(songIDs))
	for _, id := range songIDs {
		wanted[id] = true
	}

	for _, rating := range ratings {
		if wanted[rating.SongID()] {
			result[rating.SongID()] = rating.Value()
		}
	}

	return result, nil
}
