package catalog

import (
	"context"
	"errors"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mrlokans/locallibrary/internal/database"
	"github.com/mrlokans/locallibrary/internal/database/authors"
	"github.com/mrlokans/locallibrary/internal/database/books"
	"github.com/mrlokans/locallibrary/internal/database/genres"
	"github.com/mrlokans/locallibrary/internal/entities"
)

type testCatalog struct {
	db       *database.Database
	genres   *genres.Repository
	authors  *authors.Repository
	books    *books.Repository
	recorder *recordingRecorder
}

func setupTestCatalog(t *testing.T) (*testCatalog, func()) {
	t.Helper()
	dbPath := "./test_catalog_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"

	db, err := database.NewDatabase(dbPath, "silent")
	require.NoError(t, err)

	tc := &testCatalog{
		db:       db,
		genres:   genres.NewRepository(db.DB),
		authors:  authors.NewRepository(db.DB),
		books:    books.NewRepository(db.DB),
		recorder: &recordingRecorder{},
	}
	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return tc, cleanup
}

func (tc *testCatalog) genreController() *GenreController {
	return NewGenreController(tc.genres, tc.books, DefaultGenreRules(), tc.recorder)
}

func (tc *testCatalog) seedGenre(t *testing.T, name string) *entities.Genre {
	t.Helper()
	genre := &entities.Genre{Name: name}
	require.NoError(t, tc.genres.CreateGenre(context.Background(), genre))
	return genre
}

func (tc *testCatalog) seedAuthor(t *testing.T, first, family string) *entities.Author {
	t.Helper()
	author := &entities.Author{FirstName: first, FamilyName: family}
	require.NoError(t, tc.authors.CreateAuthor(context.Background(), author))
	return author
}

func (tc *testCatalog) seedBook(t *testing.T, title string, author *entities.Author, genre *entities.Genre) *entities.Book {
	t.Helper()
	book := &entities.Book{Title: title, AuthorID: author.ID}
	if genre != nil {
		book.GenreID = &genre.ID
	}
	require.NoError(t, tc.books.CreateBook(context.Background(), book))
	return book
}

type recordedEvent struct {
	EventType  entities.AuditEventType
	EntityType string
	EntityID   uint
}

type recordingRecorder struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (r *recordingRecorder) Record(_ context.Context, eventType entities.AuditEventType, entityType string, entityID uint, _ string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, recordedEvent{EventType: eventType, EntityType: entityType, EntityID: entityID})
}

func (r *recordingRecorder) Events() []recordedEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]recordedEvent(nil), r.events...)
}

var errStoreDown = errors.New("store unavailable")

// failingBooks fails every reference lookup.
type failingBooks struct{}

func (failingBooks) FindBooksByGenre(context.Context, uint) ([]entities.Book, error) {
	return nil, errStoreDown
}

func (failingBooks) FindBooksByAuthor(context.Context, uint) ([]entities.Book, error) {
	return nil, errStoreDown
}

// failingGenres wraps a real store and fails the selected calls.
type failingGenres struct {
	GenreStore
	failGet  bool
	failList bool
}

func (f failingGenres) GetGenreByID(ctx context.Context, id uint) (*entities.Genre, error) {
	if f.failGet {
		return nil, errStoreDown
	}
	return f.GenreStore.GetGenreByID(ctx, id)
}

func (f failingGenres) ListGenres(ctx context.Context) ([]entities.Genre, error) {
	if f.failList {
		return nil, errStoreDown
	}
	return f.GenreStore.ListGenres(ctx)
}

type staticStats struct {
	stats database.Stats
	err   error
}

func (s staticStats) GetStats(context.Context) (database.Stats, error) {
	return s.stats, s.err
}
