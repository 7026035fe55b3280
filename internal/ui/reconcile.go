package ui

import (
	"github.com/desertthunder/tunescout/internal/models"
)

// Reconciler tracks the displayed rating for each visible song against the
// store's confirmed state.
//
// Taps apply optimistically: the row repaints before the write lands, and a
// failed write rolls the row back to what was displayed before the tap. Each
// row carries a generation counter so that when taps overlap, only the
// outcome of the newest write may touch the row; stale resolutions are
// dropped instead of clobbering a later tap.
type Reconciler struct {
	rows map[string]*row
}

type row struct {
	displayed  *models.RatingValue
	confirmed  *models.RatingValue
	pending    int
	generation int
}

// Op is the handle for one in-flight rating write. The caller passes it back
// to [Reconciler.Resolve] when the write completes.
type Op struct {
	SongID     string
	Generation int
	Target     *models.RatingValue // nil means unrate
	Previous   *models.RatingValue // displayed value before the tap, for rollback
}

// NewReconciler creates an empty Reconciler.
func NewReconciler() *Reconciler {
	return &Reconciler{rows: map[string]*row{}}
}

func (r *Reconciler) row(songID string) *row {
	rw := r.rows[songID]
	if rw == nil {
		rw = &row{}
		r.rows[songID] = rw
	}
	return rw
}

// Tap registers a like or dislike tap and returns the write to perform.
//
// Tapping the value already displayed toggles it off (Target nil); tapping
// the other value switches to it. The displayed value updates immediately.
func (r *Reconciler) Tap(songID string, tapped models.RatingValue) Op {
	rw := r.row(songID)

	previous := rw.displayed

	var target *models.RatingValue
	if previous == nil || *previous != tapped {
		v := tapped
		target = &v
	}

	rw.displayed = target
	rw.pending++
	rw.generation++

	return Op{
		SongID:     songID,
		Generation: rw.generation,
		Target:     target,
		Previous:   previous,
	}
}

// Resolve applies the outcome of a write started by [Reconciler.Tap].
//
// A failure rolls the row back to the pre-tap value; a success promotes the
// target to the confirmed value. Either way the outcome is ignored when a
// newer tap has superseded the op.
func (r *Reconciler) Resolve(op Op, err error) {
	rw := r.rows[op.SongID]
	if rw == nil {
		return
	}

	if rw.pending > 0 {
		rw.pending--
	}

	if op.Generation != rw.generation {
		return
	}

	if err != nil {
		rw.displayed = op.Previous
		return
	}

	rw.confirmed = op.Target
}

// Resync overwrites rows with the store's authoritative ratings, as fetched
// when a screen regains focus.
//
// Rows with writes still in flight are left alone; the optimistic value is
// newer than the snapshot the fetch saw. Visible songs absent from the map
// reset to unrated.
func (r *Reconciler) Resync(songIDs []string, authoritative map[string]models.RatingValue) {
	for _, id := range songIDs {
		rw := r.row(id)
		if rw.pending > 0 {
			continue
		}

		if value, ok := authoritative[id]; ok {
			v := value
			rw.displayed = &v
			rw.confirmed = &v
		} else {
			rw.displayed = nil
			rw.confirmed = nil
		}
	}
}

// Displayed returns the rating currently shown for a song, nil when unrated.
func (r *Reconciler) Displayed(songID string) *models.RatingValue {
	rw := r.rows[songID]
	if rw == nil {
		return nil
	}
	return rw.displayed
}

// Pending reports whether a write is still in flight for a song.
func (r *Reconciler) Pending(songID string) bool {
	rw := r.rows[songID]
	return rw != nil && rw.pending > 0
}
