// Package books provides database operations for book management.
//
// This package implements the BookStore interface defined in
// internal/catalog/store.go and the GenreReferenceRepairer used by the
// reconcile task.
//
// # Usage
//
//	repo := books.NewRepository(db)
//	refs, err := repo.FindBooksByGenre(ctx, genreID)
package books

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/locallibrary/internal/database"
	"github.com/mrlokans/locallibrary/internal/entities"
)

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListBooks returns every book ordered by title with its author loaded.
func (r *Repository) ListBooks(ctx context.Context) ([]entities.Book, error) {
	books := []entities.Book{}
	err := r.db.WithContext(ctx).Preload("Author").Order("title ASC").Find(&books).Error
	return books, err
}

// GetBookByID retrieves a book with its author and genre.
func (r *Repository) GetBookByID(ctx context.Context, id uint) (*entities.Book, error) {
	var book entities.Book
	err := r.db.WithContext(ctx).Preload("Author").Preload("Genre").First(&book, id).Error
	if err != nil {
		return nil, database.Translate(err)
	}
	return &book, nil
}

// CreateBook inserts a book without touching its associations.
func (r *Repository) CreateBook(ctx context.Context, book *entities.Book) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(book).Error
}

// DeleteBook removes a book. Deleting a missing book is not an error.
func (r *Repository) DeleteBook(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entities.Book{}, id).Error
}

// FindBooksByGenre returns the title and author of every book that
// references the genre.
func (r *Repository) FindBooksByGenre(ctx context.Context, genreID uint) ([]entities.Book, error) {
	return r.findReferencing(ctx, sq.Eq{"b.genre_id": genreID})
}

// FindBooksByAuthor returns the title and author of every book written by
// the author.
func (r *Repository) FindBooksByAuthor(ctx context.Context, authorID uint) ([]entities.Book, error) {
	return r.findReferencing(ctx, sq.Eq{"b.author_id": authorID})
}

// findReferencing projects books onto (title, author) and expands the
// author reference into the full name fields.
func (r *Repository) findReferencing(ctx context.Context, where sq.Sqlizer) ([]entities.Book, error) {
	query, args, err := sq.
		Select("b.id", "b.title", "b.summary", "b.author_id", "b.genre_id", "a.first_name", "a.family_name").
		From("books b").
		LeftJoin("authors a ON a.id = b.author_id").
		Where(where).
		OrderBy("b.title ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build reference query: %w", err)
	}

	rows, err := r.db.WithContext(ctx).Raw(query, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	books := []entities.Book{}
	for rows.Next() {
		var (
			book       entities.Book
			summary    sql.NullString
			genreID    sql.NullInt64
			firstName  sql.NullString
			familyName sql.NullString
		)
		if err := rows.Scan(&book.ID, &book.Title, &summary, &book.AuthorID, &genreID, &firstName, &familyName); err != nil {
			return nil, err
		}
		book.Summary = summary.String
		if genreID.Valid {
			id := uint(genreID.Int64)
			book.GenreID = &id
		}
		book.Author = entities.Author{
			ID:         book.AuthorID,
			FirstName:  firstName.String,
			FamilyName: familyName.String,
		}
		books = append(books, book)
	}
	return books, rows.Err()
}

// FindDanglingGenreReferences returns the IDs of books whose genre no longer exists.
func (r *Repository) FindDanglingGenreReferences(ctx context.Context) ([]uint, error) {
	query, args, err := sq.
		Select("b.id").
		From("books b").
		LeftJoin("genres g ON g.id = b.genre_id").
		Where(sq.And{sq.NotEq{"b.genre_id": nil}, sq.Eq{"g.id": nil}}).
		OrderBy("b.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build dangling query: %w", err)
	}

	ids := []uint{}
	err = r.db.WithContext(ctx).Raw(query, args...).Scan(&ids).Error
	return ids, err
}

// ClearGenreReferences nulls the genre of the given books.
func (r *Repository) ClearGenreReferences(ctx context.Context, bookIDs []uint) (int64, error) {
	if len(bookIDs) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).Model(&entities.Book{}).
		Where("id IN ?", bookIDs).
		Update("genre_id", nil)
	return result.RowsAffected, result.Error
}
