// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"net/http"
	"os"
	"testing"

	"github.com/desertthunder/tunescout/internal/models"
)

// MockCatalog is a test double for [services.Catalog].
//
// Songs and Err configure SearchByGenre; Queries records each genre it was
// asked for.
type MockCatalog struct {
	Songs   []models.Song
	Err     error
	Queries []string
}

func (m *MockCatalog) AccessToken(ctx context.Context) (string, error) {
	return "mock-token", nil
}

func (m *MockCatalog) SearchByGenre(ctx context.Context, genre string, limit int) ([]models.Song, error) {
	m.Queries = append(m.Queries, genre)
	if m.Err != nil {
		return nil, m.Err
	}
	if limit > 0 && limit < len(m.Songs) {
		return m.Songs[:limit], nil
	}
	return m.Songs, nil
}

func (m *MockCatalog) Track(ctx context.Context, id string) (*models.Song, error) {
	for _, song := range m.Songs {
		if song.ID == id {
			return &song, nil
		}
	}
	return nil, errors.New("track not found")
}

func (m *MockCatalog) Name() string { return "mock" }

// SongFixtures builds n catalog songs with predictable IDs.
func SongFixtures(n int) []models.Song {
	songs := make([]models.Song, 0, n)
	for i := 0; i < n; i++ {
		id := string(rune('a' + i))
		songs = append(songs, models.Song{
			ID:         "track-" + id,
			Name:       "Song " + id,
			Artist:     "Artist " + id,
			Album:      "Album " + id,
			DurationMS: 200000 + i*1000,
			Popularity: 50 + i,
		})
	}
	return songs
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}
