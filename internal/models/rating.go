package models

import (
	"fmt"
	"time"
)

// Rating records one user's like/dislike of one song.
//
// Display fields are denormalized from the [Song] at rating time so that
// history views need no second catalog fetch. At most one Rating exists per
// (user, song) pair; the repositories layer enforces this by querying before
// every write.
type Rating struct {
	id          string
	sequence    int
	userID      string
	songID      string
	songName    string
	artist      string
	album       string
	albumImage  string
	externalURL string
	value       RatingValue
	popularity  int
	duration    int
	createdAt   time.Time
	updatedAt   time.Time
}

// NewRating creates a Rating for (userID, song) with created and updated
// timestamps set to now.
func NewRating(sequence int, userID string, song Song, value RatingValue) *Rating {
	now := time.Now()
	return &Rating{
		sequence:    sequence,
		userID:      userID,
		songID:      song.ID,
		songName:    song.Name,
		artist:      song.Artist,
		album:       song.Album,
		albumImage:  song.AlbumImageURL,
		externalURL: song.ExternalURL,
		value:       value,
		popularity:  song.Popularity,
		duration:    song.DurationMS,
		createdAt:   now,
		updatedAt:   now,
	}
}

func (r *Rating) ID() string           { return r.id }
func (r *Rating) Sequence() int        { return r.sequence }
func (r *Rating) UserID() string       { return r.userID }
func (r *Rating) SongID() string       { return r.songID }
func (r *Rating) SongName() string     { return r.songName }
func (r *Rating) Artist() string       { return r.artist }
func (r *Rating) Album() string        { return r.album }
func (r *Rating) AlbumImage() string   { return r.albumImage }
func (r *Rating) ExternalURL() string  { return r.externalURL }
func (r *Rating) Value() RatingValue   { return r.value }
func (r *Rating) Popularity() int      { return r.popularity }
func (r *Rating) Duration() int        { return r.duration }
func (r *Rating) CreatedAt() time.Time { return r.createdAt }
func (r *Rating) UpdatedAt() time.Time { return r.updatedAt }

func (r *Rating) SetID(id string)            { r.id = id }
func (r *Rating) SetCreatedAt(t time.Time)   { r.createdAt = t }
func (r *Rating) SetUpdatedAt(t time.Time)   { r.updatedAt = t }
func (r *Rating) SetValue(value RatingValue) { r.value = value }

// Refresh applies a new judgment along with the song's current
// popularity/duration and bumps the updated timestamp.
func (r *Rating) Refresh(song Song, value RatingValue) {
	r.value = value
	r.popularity = song.Popularity
	r.duration = song.DurationMS
	r.updatedAt = time.Now()
}

// SortKey returns the timestamp used for newest-first history ordering:
// updatedAt, falling back to createdAt, falling back to the epoch.
func (r *Rating) SortKey() time.Time {
	if !r.updatedAt.IsZero() {
		return r.updatedAt
	}
	if !r.createdAt.IsZero() {
		return r.createdAt
	}
	return time.Unix(0, 0)
}

// Validate checks required fields and the rating value.
func (r *Rating) Validate() error {
	if r.userID == "" {
		return fmt.Errorf("rating requires a user id")
	}
	if r.songID == "" {
		return fmt.Errorf("rating requires a song id")
	}
	if !r.value.Valid() {
		return fmt.Errorf("invalid rating value %q", r.value)
	}
	return nil
}
