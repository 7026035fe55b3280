package ui

import (
	"errors"
	"testing"

	"github.com/desertthunder/tunescout/internal/models"
)

func TestReconciler(t *testing.T) {
	t.Run("TapDisplaysImmediately", func(t *testing.T) {
		r := NewReconciler()

		op := r.Tap("track-1", models.RatingLike)

		if op.Target == nil || *op.Target != models.RatingLike {
			t.Error("tap should target a like write")
		}
		if displayed := r.Displayed("track-1"); displayed == nil || *displayed != models.RatingLike {
			t.Error("row should repaint before the write lands")
		}
		if !r.Pending("track-1") {
			t.Error("write should be in flight")
		}
	})

	t.Run("TapSameValueTogglesOff", func(t *testing.T) {
		r := NewReconciler()

		r.Resolve(r.Tap("track-1", models.RatingLike), nil)

		op := r.Tap("track-1", models.RatingLike)
		if op.Target != nil {
			t.Error("second tap of the same value should unrate")
		}
		if r.Displayed("track-1") != nil {
			t.Error("row should display unrated immediately")
		}
	})

	t.Run("TapOtherValueSwitches", func(t *testing.T) {
		r := NewReconciler()

		r.Resolve(r.Tap("track-1", models.RatingLike), nil)

		op := r.Tap("track-1", models.RatingDislike)
		if op.Target == nil || *op.Target != models.RatingDislike {
			t.Error("tap should switch to dislike")
		}
	})

	t.Run("FailureRollsBack", func(t *testing.T) {
		r := NewReconciler()

		r.Resolve(r.Tap("track-1", models.RatingLike), nil)

		op := r.Tap("track-1", models.RatingDislike)
		r.Resolve(op, errors.New("write failed"))

		if displayed := r.Displayed("track-1"); displayed == nil || *displayed != models.RatingLike {
			t.Error("failed write should roll back to the pre-tap value")
		}
		if r.Pending("track-1") {
			t.Error("resolved write should not stay pending")
		}
	})

	t.Run("StaleResolutionIsDropped", func(t *testing.T) {
		r := NewReconciler()

		first := r.Tap("track-1", models.RatingLike)
		second := r.Tap("track-1", models.RatingLike) // toggle off while first is in flight

		// The first write fails after the second tap; its rollback must not
		// overwrite the newer displayed value.
		r.Resolve(first, errors.New("write failed"))

		if r.Displayed("track-1") != nil {
			t.Error("stale failure should not clobber the newer tap")
		}

		r.Resolve(second, nil)
		if r.Displayed("track-1") != nil {
			t.Error("toggle-off should stay displayed after its write lands")
		}
	})

	t.Run("ResyncOverwritesSettledRows", func(t *testing.T) {
		r := NewReconciler()

		r.Resolve(r.Tap("track-1", models.RatingLike), nil)
		r.Resolve(r.Tap("track-2", models.RatingDislike), nil)

		r.Resync([]string{"track-1", "track-2", "track-3"}, map[string]models.RatingValue{
			"track-1": models.RatingDislike,
		})

		if displayed := r.Displayed("track-1"); displayed == nil || *displayed != models.RatingDislike {
			t.Error("resync should adopt the authoritative value")
		}
		if r.Displayed("track-2") != nil {
			t.Error("songs absent from the authoritative map should reset to unrated")
		}
		if r.Displayed("track-3") != nil {
			t.Error("never-rated song should stay unrated")
		}
	})

	t.Run("ResyncSkipsInFlightRows", func(t *testing.T) {
		r := NewReconciler()

		op := r.Tap("track-1", models.RatingLike)

		// A focus resync lands while the write is still in flight; its
		// snapshot predates the tap.
		r.Resync([]string{"track-1"}, map[string]models.RatingValue{})

		if displayed := r.Displayed("track-1"); displayed == nil || *displayed != models.RatingLike {
			t.Error("resync must not clobber an optimistic value with a write in flight")
		}

		r.Resolve(op, nil)
		if displayed := r.Displayed("track-1"); displayed == nil || *displayed != models.RatingLike {
			t.Error("value should persist once the write lands")
		}
	})
}
