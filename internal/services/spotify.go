// Spotify API implementation of [Catalog]
//
// Response types based on https://developer.spotify.com/documentation/web-api/reference/
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/desertthunder/tunescout/internal/models"
	"github.com/desertthunder/tunescout/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/time/rate"
)

const (
	spotifyTokenURL = "https://accounts.spotify.com/api/token"
	spotifyBaseURL  = "https://api.spotify.com/v1"

	// popularFallbackQuery is the last-resort search when every
	// genre-specific formulation comes back empty.
	popularFallbackQuery = "year:2020-2024"
)

// spotifyImage represents an image resource. Images arrive ordered by
// resolution, largest first.
type spotifyImage struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

type spotifyArtist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type spotifyAlbum struct {
	ID     string         `json:"id"`
	Name   string         `json:"name"`
	Images []spotifyImage `json:"images"`
}

type externalURLs struct {
	Spotify string `json:"spotify"`
}

// spotifyTrack is the raw track record returned by the search endpoint.
type spotifyTrack struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Artists      []spotifyArtist `json:"artists"`
	Album        spotifyAlbum    `json:"album"`
	DurationMS   int             `json:"duration_ms"`
	Popularity   int             `json:"popularity"`
	PreviewURL   string          `json:"preview_url"`
	ExternalURLs externalURLs    `json:"external_urls"`
}

type searchResponse struct {
	Tracks struct {
		Items []spotifyTrack `json:"items"`
	} `json:"tracks"`
}

// SpotifyCatalog implements [Catalog] against the Spotify Web API.
//
// Authentication uses the OAuth2 client-credentials grant via
// [clientcredentials.Config]; no user authorization leg is involved. A
// [rate.Limiter] paces outgoing requests since one genre search can fan out
// to several fallback queries.
type SpotifyCatalog struct {
	creds      *clientcredentials.Config
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
	market     string

	mu    sync.Mutex
	token *oauth2.Token
}

// SpotifyOption customizes a [SpotifyCatalog].
type SpotifyOption func(*SpotifyCatalog)

// WithMarket sets the market query parameter for searches.
func WithMarket(market string) SpotifyOption {
	return func(s *SpotifyCatalog) {
		if market != "" {
			s.market = market
		}
	}
}

// WithRequestRate sets the maximum request rate against the catalog.
func WithRequestRate(perSecond float64) SpotifyOption {
	return func(s *SpotifyCatalog) {
		if perSecond > 0 {
			s.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
		}
	}
}

// NewSpotifyCatalog creates a catalog client from the given credentials map.
// Requires "client_id" and "client_secret" keys.
func NewSpotifyCatalog(credentials map[string]string, opts ...SpotifyOption) (*SpotifyCatalog, error) {
	clientID, ok := credentials["client_id"]
	if !ok || clientID == "" {
		return nil, fmt.Errorf("%w: missing client_id", shared.ErrMissingCredentials)
	}

	clientSecret, ok := credentials["client_secret"]
	if !ok || clientSecret == "" {
		return nil, fmt.Errorf("%w: missing client_secret", shared.ErrMissingCredentials)
	}

	s := &SpotifyCatalog{
		creds: &clientcredentials.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			TokenURL:     spotifyTokenURL,
			AuthStyle:    oauth2.AuthStyleInHeader,
		},
		httpClient: http.DefaultClient,
		limiter:    rate.NewLimiter(rate.Limit(5), 1),
		baseURL:    spotifyBaseURL,
		market:     "US",
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

func (s *SpotifyCatalog) Name() string {
	return "Spotify"
}

// AccessToken returns a valid bearer token, exchanging client credentials
// when the cached token is missing or expired.
func (s *SpotifyCatalog) AccessToken(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token.Valid() {
		return s.token.AccessToken, nil
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, s.httpClient)
	token, err := s.creds.Token(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}

	s.token = token
	return token.AccessToken, nil
}

// SearchByGenre walks the fallback query tiers for a genre and returns the
// first non-empty result set.
//
// Tiers: quoted genre-field match, quoted tag-field match, bare mapped term,
// bare raw genre, then a generic recent-popular query. A tier that fails with
// a transport or status error is skipped; the error surfaces only if every
// tier fails. All tiers succeeding but returning nothing yields an empty,
// error-free result.
func (s *SpotifyCatalog) SearchByGenre(ctx context.Context, genre string, limit int) ([]models.Song, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 50 {
		limit = 50
	}

	mapped := MapGenre(genre)
	tiers := []string{
		fmt.Sprintf("genre:%q", mapped),
		fmt.Sprintf("tag:%q", mapped),
		mapped,
		strings.ToLower(genre),
		popularFallbackQuery,
	}

	var lastErr error
	succeeded := false
	seen := map[string]bool{}

	for _, query := range tiers {
		if seen[query] {
			continue
		}
		seen[query] = true

		songs, err := s.search(ctx, query, limit)
		if err != nil {
			lastErr = err
			continue
		}
		succeeded = true
		if len(songs) > 0 {
			return songs, nil
		}
	}

	// Partial tier failures degrade to "no results" as long as at least one
	// tier answered; the adapter fails only when every tier did.
	if !succeeded {
		return nil, fmt.Errorf("%w: %v", shared.ErrCatalogSearch, lastErr)
	}

	return []models.Song{}, nil
}

// Track fetches and normalizes a single track by catalog id.
func (s *SpotifyCatalog) Track(ctx context.Context, id string) (*models.Song, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: empty track id", shared.ErrInvalidArgument)
	}

	var raw spotifyTrack
	status, err := s.doRequest(ctx, "/tracks/"+url.PathEscape(id), nil, &raw)
	if err != nil {
		if status == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s", shared.ErrTrackNotFound, id)
		}
		return nil, err
	}

	song := normalizeTrack(raw)
	return &song, nil
}

// search performs one search request for the given query formulation.
func (s *SpotifyCatalog) search(ctx context.Context, query string, limit int) ([]models.Song, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("type", "track")
	params.Set("limit", strconv.Itoa(limit))
	params.Set("market", s.market)

	var response searchResponse
	if _, err := s.doRequest(ctx, "/search?"+params.Encode(), nil, &response); err != nil {
		return nil, err
	}

	songs := make([]models.Song, 0, len(response.Tracks.Items))
	for _, item := range response.Tracks.Items {
		songs = append(songs, normalizeTrack(item))
	}

	return songs, nil
}

// doRequest performs an authenticated, rate-limited GET against the catalog.
// Returns the response status code alongside any error so callers can map
// specific statuses to sentinel errors.
func (s *SpotifyCatalog) doRequest(ctx context.Context, endpoint string, body any, result any) (int, error) {
	if body != nil {
		return 0, fmt.Errorf("%w: request body", shared.ErrNotImplemented)
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return 0, fmt.Errorf("request cancelled: %w", err)
	}

	token, err := s.AccessToken(ctx)
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+endpoint, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp.StatusCode, fmt.Errorf("spotify API error: status %d", resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return resp.StatusCode, fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return resp.StatusCode, nil
}

// normalizeTrack builds the canonical [models.Song] from a raw catalog record.
//
// Contributors join with ", "; the album image picks the first non-empty of
// the two highest resolutions; missing optional fields degrade to "". Records
// missing display fields pass through as-is rather than being rejected.
func normalizeTrack(t spotifyTrack) models.Song {
	names := make([]string, 0, len(t.Artists))
	for _, artist := range t.Artists {
		names = append(names, artist.Name)
	}

	duration := t.DurationMS
	if duration < 0 {
		duration = 0
	}

	return models.Song{
		ID:            t.ID,
		Name:          t.Name,
		Artist:        strings.Join(names, ", "),
		Album:         t.Album.Name,
		AlbumImageURL: pickImage(t.Album.Images),
		PreviewURL:    t.PreviewURL,
		ExternalURL:   t.ExternalURLs.Spotify,
		DurationMS:    duration,
		Popularity:    t.Popularity,
	}
}

// pickImage selects the first available of the two largest album images.
func pickImage(images []spotifyImage) string {
	for i, img := range images {
		if i > 1 {
			break
		}
		if img.URL != "" {
			return img.URL
		}
	}
	return ""
}
