package models

import (
	"fmt"
	"strings"
)

// RatingValue is a user's judgment on one song.
type RatingValue string

const (
	RatingLike    RatingValue = "like"
	RatingDislike RatingValue = "dislike"
)

// Valid reports whether the value is one of the two supported judgments.
func (v RatingValue) Valid() bool {
	return v == RatingLike || v == RatingDislike
}

// ParseRatingValue converts user input into a [RatingValue].
func ParseRatingValue(s string) (RatingValue, error) {
	v := RatingValue(strings.ToLower(strings.TrimSpace(s)))
	if !v.Valid() {
		return "", fmt.Errorf("invalid rating value %q (want like or dislike)", s)
	}
	return v, nil
}

// Song is the canonical, immutable track representation produced by the
// catalog adapter's normalization step.
//
// AlbumImageURL and PreviewURL may be empty; the catalog does not guarantee
// either. DurationMS is non-negative, Popularity uses the catalog's scale.
type Song struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Artist        string `json:"artist"` // display name joined from all contributors
	Album         string `json:"album"`
	AlbumImageURL string `json:"album_image_url,omitempty"`
	PreviewURL    string `json:"preview_url,omitempty"`
	ExternalURL   string `json:"external_url"`
	DurationMS    int    `json:"duration_ms"`
	Popularity    int    `json:"popularity"`
}
