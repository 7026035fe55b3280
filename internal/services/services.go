package services

import (
	"context"
	"sort"
	"strings"

	"github.com/desertthunder/tunescout/internal/models"
)

// Catalog defines the operations the application needs from a music catalog.
type Catalog interface {
	// AccessToken performs (or reuses) a client-credentials token exchange.
	AccessToken(ctx context.Context) (string, error)

	// SearchByGenre returns up to limit tracks for an application genre,
	// walking fallback query formulations until one yields results.
	SearchByGenre(ctx context.Context, genre string, limit int) ([]models.Song, error)

	// Track fetches a single track by its catalog id.
	Track(ctx context.Context, id string) (*models.Song, error)

	// Name returns the catalog's display name.
	Name() string
}

// genreVocabulary maps application genre names to the catalog's query terms.
var genreVocabulary = map[string]string{
	"Pop":         "pop",
	"Rock":        "rock",
	"Hip Hop":     "hip-hop",
	"Jazz":        "jazz",
	"Classical":   "classical",
	"Electronic":  "electronic",
	"R&B":         "r-n-b",
	"Country":     "country",
	"Reggae":      "reggae",
	"Blues":       "blues",
	"Folk":        "folk",
	"Metal":       "metal",
	"Latin":       "latin",
	"Indie":       "indie",
	"Alternative": "alternative",
	"Dance":       "dance",
	"Soul":        "soul",
	"Funk":        "funk",
}

// MapGenre translates an application genre to the catalog vocabulary, falling
// back to the lower-cased raw name when unmapped.
func MapGenre(genre string) string {
	if mapped, ok := genreVocabulary[genre]; ok {
		return mapped
	}
	return strings.ToLower(genre)
}

// Genres returns the browsable application genres in display order.
func Genres() []string {
	genres := make([]string, 0, len(genreVocabulary))
	for g := range genreVocabulary {
		genres = append(genres, g)
	}
	sort.Strings(genres)
	return genres
}
