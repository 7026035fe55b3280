package tasks

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/tunescout/internal/models"
	"github.com/desertthunder/tunescout/internal/repositories"
	"github.com/desertthunder/tunescout/internal/shared"
	internaltesting "github.com/desertthunder/tunescout/internal/testing"
)

func setupStore(t *testing.T) (*repositories.RatingStore, *sql.DB) {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	return repositories.NewRatingStore(repositories.NewRatingRepository(db)), db
}

func TestRecommendations(t *testing.T) {
	t.Run("AnnotatesRatedSongs", func(t *testing.T) {
		store, db := setupStore(t)
		defer db.Close()

		songs := internaltesting.SongFixtures(3)
		catalog := &internaltesting.MockCatalog{Songs: songs}
		engine := NewDiscoveryEngine(catalog, store, nil)

		if _, err := store.Rate("user-1", songs[1], models.RatingLike); err != nil {
			t.Fatalf("failed to seed rating: %v", err)
		}

		feed, err := engine.Recommendations(context.Background(), "user-1", "jazz", 20)
		if err != nil {
			t.Fatalf("failed to assemble recommendations: %v", err)
		}

		if len(feed) != 3 {
			t.Fatalf("expected 3 songs, got %d", len(feed))
		}

		if feed[0].Rating != nil {
			t.Errorf("unrated song should carry no annotation, got %s", *feed[0].Rating)
		}
		if feed[1].Rating == nil || *feed[1].Rating != models.RatingLike {
			t.Error("rated song should carry its rating")
		}
	})

	t.Run("AnonymousSkipsAnnotation", func(t *testing.T) {
		store, db := setupStore(t)
		defer db.Close()

		catalog := &internaltesting.MockCatalog{Songs: internaltesting.SongFixtures(2)}
		engine := NewDiscoveryEngine(catalog, store, nil)

		feed, err := engine.Recommendations(context.Background(), "", "jazz", 20)
		if err != nil {
			t.Fatalf("failed to assemble recommendations: %v", err)
		}

		for _, song := range feed {
			if song.Rating != nil {
				t.Error("anonymous feed should be unannotated")
			}
		}
	})

	t.Run("CatalogErrorPropagates", func(t *testing.T) {
		store, db := setupStore(t)
		defer db.Close()

		catalog := &internaltesting.MockCatalog{Err: shared.ErrCatalogSearch}
		engine := NewDiscoveryEngine(catalog, store, nil)

		if _, err := engine.Recommendations(context.Background(), "user-1", "jazz", 20); !errors.Is(err, shared.ErrCatalogSearch) {
			t.Errorf("expected ErrCatalogSearch, got %v", err)
		}
	})

	t.Run("RatingLookupFailureDegrades", func(t *testing.T) {
		store, db := setupStore(t)
		db.Close() // force the rating lookup to fail

		catalog := &internaltesting.MockCatalog{Songs: internaltesting.SongFixtures(2)}
		engine := NewDiscoveryEngine(catalog, store, nil)

		feed, err := engine.Recommendations(context.Background(), "user-1", "jazz", 20)
		if err != nil {
			t.Fatalf("annotation failure should not fail the feed: %v", err)
		}

		if len(feed) != 2 {
			t.Errorf("expected 2 unannotated songs, got %d", len(feed))
		}
	})
}

func TestExportHistory(t *testing.T) {
	t.Run("RequiresAuthentication", func(t *testing.T) {
		store, db := setupStore(t)
		defer db.Close()

		engine := NewDiscoveryEngine(&internaltesting.MockCatalog{}, store, nil)

		if _, err := engine.ExportHistory("", "", HistoryExportOpts{}); !errors.Is(err, shared.ErrNotAuthenticated) {
			t.Errorf("expected ErrNotAuthenticated, got %v", err)
		}
	})

	t.Run("RejectsUnknownFormat", func(t *testing.T) {
		store, db := setupStore(t)
		defer db.Close()

		engine := NewDiscoveryEngine(&internaltesting.MockCatalog{}, store, nil)

		if _, err := engine.ExportHistory("user-1", "", HistoryExportOpts{Format: "xml"}); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("WritesHistoryAndMetadata", func(t *testing.T) {
		store, db := setupStore(t)
		defer db.Close()

		songs := internaltesting.SongFixtures(2)
		for _, song := range songs {
			if _, err := store.Rate("user-1", song, models.RatingLike); err != nil {
				t.Fatalf("failed to seed rating: %v", err)
			}
		}

		engine := NewDiscoveryEngine(&internaltesting.MockCatalog{}, store, nil)
		base := filepath.Join(t.TempDir(), "history")

		result, err := engine.ExportHistory("user-1", "listener@example.com", HistoryExportOpts{Format: "csv", Output: base})
		if err != nil {
			t.Fatalf("failed to export history: %v", err)
		}

		if result.Total != 2 {
			t.Errorf("expected 2 exported ratings, got %d", result.Total)
		}

		internaltesting.AssertFileExists(t, result.HistoryFile)
		internaltesting.AssertFileExists(t, result.MetadataFile)

		data, err := os.ReadFile(result.HistoryFile)
		if err != nil {
			t.Fatalf("failed to read export: %v", err)
		}
		if !strings.Contains(string(data), "Song a") {
			t.Errorf("export missing song row:\n%s", data)
		}
	})

	t.Run("DefaultsToJSON", func(t *testing.T) {
		store, db := setupStore(t)
		defer db.Close()

		if _, err := store.Rate("user-1", internaltesting.SongFixtures(1)[0], models.RatingDislike); err != nil {
			t.Fatalf("failed to seed rating: %v", err)
		}

		engine := NewDiscoveryEngine(&internaltesting.MockCatalog{}, store, nil)
		base := filepath.Join(t.TempDir(), "history")

		result, err := engine.ExportHistory("user-1", "", HistoryExportOpts{Output: base})
		if err != nil {
			t.Fatalf("failed to export history: %v", err)
		}

		if !strings.HasSuffix(result.HistoryFile, ".json") {
			t.Errorf("expected .json export, got %s", result.HistoryFile)
		}
	})
}
