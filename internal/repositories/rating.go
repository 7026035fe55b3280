package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/tunescout/internal/models"
	"github.com/desertthunder/tunescout/internal/shared"
)

const ratingColumns = `id, sequence, user_id, song_id, song_name, artist, album,
	album_image, external_url, rating, popularity, duration, created_at, updated_at`

// RatingRepository implements models.Repository[*models.Rating] over SQLite.
//
// Rows are hard-deleted on unrate; rating history keeps no tombstones.
type RatingRepository struct {
	db *sql.DB
}

// NewRatingRepository creates a new RatingRepository with the given database connection
func NewRatingRepository(db *sql.DB) *RatingRepository {
	return &RatingRepository{db: db}
}

// Create inserts a new [models.Rating] with generated ID and sequence
func (r *RatingRepository) Create(rating *models.Rating) error {
	sequence, err := NextSequence(r.db, "ratings")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	rating.SetID(shared.GenerateID())

	if err := rating.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO ratings (` + ratingColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		rating.ID(),
		sequence,
		rating.UserID(),
		rating.SongID(),
		rating.SongName(),
		rating.Artist(),
		rating.Album(),
		rating.AlbumImage(),
		rating.ExternalURL(),
		string(rating.Value()),
		rating.Popularity(),
		rating.Duration(),
		rating.CreatedAt(),
		rating.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert rating: %w", err)
	}

	return nil
}

// Get retrieves a rating by document ID
func (r *RatingRepository) Get(id string) (*models.Rating, error) {
	query := `SELECT ` + ratingColumns + ` FROM ratings WHERE id = ?`
	return scanRating(r.db.QueryRow(query, id))
}

// GetBySongID retrieves a user's rating for one song, if any.
// Returns [shared.ErrRatingNotFound] when no row exists.
func (r *RatingRepository) GetBySongID(userID, songID string) (*models.Rating, error) {
	query := `SELECT ` + ratingColumns + ` FROM ratings WHERE user_id = ? AND song_id = ? LIMIT 1`
	return scanRating(r.db.QueryRow(query, userID, songID))
}

// Update modifies an existing rating's value and refreshed denormalized fields
func (r *RatingRepository) Update(rating *models.Rating) error {
	if err := rating.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		UPDATE ratings
		SET rating = ?, popularity = ?, duration = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.Exec(query,
		string(rating.Value()),
		rating.Popularity(),
		rating.Duration(),
		rating.UpdatedAt(),
		rating.ID(),
	)
	if err != nil {
		return fmt.Errorf("failed to update rating: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrRatingNotFound, rating.ID())
	}

	return nil
}

// Delete removes a rating by document ID
func (r *RatingRepository) Delete(id string) error {
	result, err := r.db.Exec("DELETE FROM ratings WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete rating: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrRatingNotFound, id)
	}

	return nil
}

// List retrieves all ratings matching the given criteria.
//
// Supported criteria: "user_id" (string), "rating" (string). No ORDER BY:
// history ordering is applied client-side by the caller because the filtered
// and unfiltered query paths do not share an order guarantee.
func (r *RatingRepository) List(criteria map[string]any) ([]*models.Rating, error) {
	query := `SELECT ` + ratingColumns + ` FROM ratings WHERE 1=1`
	args := []any{}

	if userID, ok := criteria["user_id"].(string); ok && userID != "" {
		query += " AND user_id = ?"
		args = append(args, userID)
	}

	if value, ok := criteria["rating"].(string); ok && value != "" {
		query += " AND rating = ?"
		args = append(args, value)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query ratings: %w", err)
	}
	defer rows.Close()

	var ratings []*models.Rating
	for rows.Next() {
		rating, err := scanRatingRow(rows)
		if err != nil {
			return nil, err
		}
		ratings = append(ratings, rating)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return ratings, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFields(row rowScanner) (*models.Rating, error) {
	var (
		id          string
		sequence    int
		userID      string
		songID      string
		songName    string
		artist      string
		album       string
		albumImage  string
		externalURL string
		value       string
		popularity  int
		duration    int
		createdAt   time.Time
		updatedAt   time.Time
	)

	err := row.Scan(&id, &sequence, &userID, &songID, &songName, &artist, &album,
		&albumImage, &externalURL, &value, &popularity, &duration, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	song := models.Song{
		ID:            songID,
		Name:          songName,
		Artist:        artist,
		Album:         album,
		AlbumImageURL: albumImage,
		ExternalURL:   externalURL,
		DurationMS:    duration,
		Popularity:    popularity,
	}

	rating := models.NewRating(sequence, userID, song, models.RatingValue(value))
	rating.SetID(id)
	rating.SetCreatedAt(createdAt)
	rating.SetUpdatedAt(updatedAt)

	return rating, nil
}

// scanRating scans a single [sql.Row] into a [models.Rating]
func scanRating(row *sql.Row) (*models.Rating, error) {
	rating, err := scanFields(row)
	if err == sql.ErrNoRows {
		return nil, shared.ErrRatingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan rating: %w", err)
	}
	return rating, nil
}

// scanRatingRow scans a row from [sql.Rows] into a [models.Rating]
func scanRatingRow(rows *sql.Rows) (*models.Rating, error) {
	rating, err := scanFields(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan rating: %w", err)
	}
	return rating, nil
}
