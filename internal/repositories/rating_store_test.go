package repositories

import (
	"errors"
	"testing"
	"time"

	"github.com/desertthunder/tunescout/internal/models"
	"github.com/desertthunder/tunescout/internal/shared"
)

func TestRatingStore(t *testing.T) {
	t.Run("RateCreatesThenUpdates", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		store := NewRatingStore(NewRatingRepository(db))
		song := testSong("track-1")

		action, err := store.Rate("user-1", song, models.RatingLike)
		if err != nil {
			t.Fatalf("failed to rate song: %v", err)
		}
		if action != RatingCreated {
			t.Errorf("expected created, got %s", action)
		}

		action, err = store.Rate("user-1", song, models.RatingDislike)
		if err != nil {
			t.Fatalf("failed to re-rate song: %v", err)
		}
		if action != RatingUpdated {
			t.Errorf("expected updated, got %s", action)
		}

		value, found, err := store.Rating("user-1", song.ID)
		if err != nil {
			t.Fatalf("failed to read rating: %v", err)
		}
		if !found || value != models.RatingDislike {
			t.Errorf("expected dislike after re-rate, got %s (found=%v)", value, found)
		}

		ratings, err := store.ListRatings("user-1", nil)
		if err != nil {
			t.Fatalf("failed to list ratings: %v", err)
		}
		if len(ratings) != 1 {
			t.Errorf("re-rating the same song should not add a row, got %d", len(ratings))
		}
	})

	t.Run("RateRejectsInvalidValue", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		store := NewRatingStore(NewRatingRepository(db))

		if _, err := store.Rate("user-1", testSong("track-1"), "love"); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("UnrateRemovesAndTolerateAbsence", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		store := NewRatingStore(NewRatingRepository(db))
		song := testSong("track-1")

		if _, err := store.Rate("user-1", song, models.RatingLike); err != nil {
			t.Fatalf("failed to rate song: %v", err)
		}

		removed, err := store.Unrate("user-1", song.ID)
		if err != nil {
			t.Fatalf("failed to unrate song: %v", err)
		}
		if !removed {
			t.Error("expected first unrate to remove a rating")
		}

		_, found, err := store.Rating("user-1", song.ID)
		if err != nil {
			t.Fatalf("failed to read rating: %v", err)
		}
		if found {
			t.Error("rating should be absent after unrate")
		}

		removed, err = store.Unrate("user-1", song.ID)
		if err != nil {
			t.Fatalf("unrate on absent rating should not fail: %v", err)
		}
		if removed {
			t.Error("second unrate should report nothing removed")
		}
	})

	t.Run("ListRatingsNewestFirst", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		store := NewRatingStore(NewRatingRepository(db))

		for _, id := range []string{"track-1", "track-2", "track-3"} {
			if _, err := store.Rate("user-1", testSong(id), models.RatingLike); err != nil {
				t.Fatalf("failed to rate %s: %v", id, err)
			}
			time.Sleep(2 * time.Millisecond)
		}

		// Re-rating track-1 bumps it back to the top.
		if _, err := store.Rate("user-1", testSong("track-1"), models.RatingDislike); err != nil {
			t.Fatalf("failed to re-rate track-1: %v", err)
		}

		ratings, err := store.ListRatings("user-1", nil)
		if err != nil {
			t.Fatalf("failed to list ratings: %v", err)
		}

		if len(ratings) != 3 {
			t.Fatalf("expected 3 ratings, got %d", len(ratings))
		}

		want := []string{"track-1", "track-3", "track-2"}
		for i, songID := range want {
			if ratings[i].SongID() != songID {
				t.Errorf("position %d: expected %s, got %s", i, songID, ratings[i].SongID())
			}
		}
	})

	t.Run("ListRatingsFilter", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		store := NewRatingStore(NewRatingRepository(db))

		if _, err := store.Rate("user-1", testSong("track-1"), models.RatingLike); err != nil {
			t.Fatalf("failed to rate track-1: %v", err)
		}
		if _, err := store.Rate("user-1", testSong("track-2"), models.RatingDislike); err != nil {
			t.Fatalf("failed to rate track-2: %v", err)
		}

		filter := models.RatingDislike
		ratings, err := store.ListRatings("user-1", &filter)
		if err != nil {
			t.Fatalf("failed to list filtered ratings: %v", err)
		}

		if len(ratings) != 1 || ratings[0].SongID() != "track-2" {
			t.Errorf("expected only the dislike on track-2, got %d rows", len(ratings))
		}

		bad := models.RatingValue("meh")
		if _, err := store.ListRatings("user-1", &bad); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument for bad filter, got %v", err)
		}
	})

	t.Run("RatingsForSongs", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		store := NewRatingStore(NewRatingRepository(db))

		if _, err := store.Rate("user-1", testSong("track-1"), models.RatingLike); err != nil {
			t.Fatalf("failed to rate track-1: %v", err)
		}
		if _, err := store.Rate("user-1", testSong("track-2"), models.RatingDislike); err != nil {
			t.Fatalf("failed to rate track-2: %v", err)
		}
		if _, err := store.Rate("user-2", testSong("track-3"), models.RatingLike); err != nil {
			t.Fatalf("failed to rate track-3: %v", err)
		}

		result, err := store.RatingsForSongs("user-1", []string{"track-1", "track-3", "track-9"})
		if err != nil {
			t.Fatalf("failed to look up ratings: %v", err)
		}

		if len(result) != 1 {
			t.Errorf("expected 1 entry, got %d", len(result))
		}
		if result["track-1"] != models.RatingLike {
			t.Errorf("expected like on track-1, got %s", result["track-1"])
		}
		if _, ok := result["track-3"]; ok {
			t.Error("another user's rating should not appear")
		}

		empty, err := store.RatingsForSongs("user-1", nil)
		if err != nil {
			t.Fatalf("empty lookup should not fail: %v", err)
		}
		if len(empty) != 0 {
			t.Errorf("expected empty map, got %d entries", len(empty))
		}

		anon, err := store.RatingsForSongs("", []string{"track-1"})
		if err != nil {
			t.Fatalf("anonymous lookup should not fail: %v", err)
		}
		if len(anon) != 0 {
			t.Errorf("expected empty map for anonymous user, got %d entries", len(anon))
		}
	})
}
