package catalog

import (
	"context"

	"github.com/mrlokans/locallibrary/internal/entities"
)

// Single-record lookups return database.ErrNotFound when nothing matches.
// Removing a record that does not exist is not an error.

// GenreStore defines database operations for genre management.
type GenreStore interface {
	ListGenres(ctx context.Context) ([]entities.Genre, error)
	GetGenreByID(ctx context.Context, id uint) (*entities.Genre, error)
	FindGenreByName(ctx context.Context, name string) (*entities.Genre, error)
	CreateGenre(ctx context.Context, genre *entities.Genre) error
	UpdateGenre(ctx context.Context, id uint, name string) (*entities.Genre, error)
	DeleteGenre(ctx context.Context, id uint) error
}

// AuthorStore defines database operations for author management.
type AuthorStore interface {
	ListAuthors(ctx context.Context) ([]entities.Author, error)
	GetAuthorByID(ctx context.Context, id uint) (*entities.Author, error)
	CreateAuthor(ctx context.Context, author *entities.Author) error
	UpdateAuthor(ctx context.Context, author *entities.Author) error
	DeleteAuthor(ctx context.Context, id uint) error
}

// BookReferences finds the books that point at a genre or an author. The
// returned books carry their title and author name only.
type BookReferences interface {
	FindBooksByGenre(ctx context.Context, genreID uint) ([]entities.Book, error)
	FindBooksByAuthor(ctx context.Context, authorID uint) ([]entities.Book, error)
}

// BookStore defines database operations for book management.
type BookStore interface {
	BookReferences
	ListBooks(ctx context.Context) ([]entities.Book, error)
	GetBookByID(ctx context.Context, id uint) (*entities.Book, error)
	CreateBook(ctx context.Context, book *entities.Book) error
	DeleteBook(ctx context.Context, id uint) error
}

// Recorder receives lifecycle events for the audit trail.
type Recorder interface {
	Record(ctx context.Context, eventType entities.AuditEventType, entityType string, entityID uint, description string)
}

type nopRecorder struct{}

func (nopRecorder) Record(context.Context, entities.AuditEventType, string, uint, string) {}

func recorderOrNop(r Recorder) Recorder {
	if r == nil {
		return nopRecorder{}
	}
	return r
}
