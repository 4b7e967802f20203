// Package genres provides database operations for genre management.
//
// This package implements the GenreStore interface defined in
// internal/catalog/store.go.
//
// # Usage
//
//	repo := genres.NewRepository(db)
//	genre, err := repo.FindGenreByName(ctx, "Fantasy")
package genres

import (
	"context"

	"gorm.io/gorm"

	"github.com/mrlokans/locallibrary/internal/database"
	"github.com/mrlokans/locallibrary/internal/entities"
)

// Repository handles all genre database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new genres repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListGenres returns every genre ordered by name ascending.
func (r *Repository) ListGenres(ctx context.Context) ([]entities.Genre, error) {
	genres := []entities.Genre{}
	err := r.db.WithContext(ctx).Order("name ASC").Find(&genres).Error
	return genres, err
}

// GetGenreByID retrieves a genre by ID.
func (r *Repository) GetGenreByID(ctx context.Context, id uint) (*entities.Genre, error) {
	var genre entities.Genre
	if err := r.db.WithContext(ctx).First(&genre, id).Error; err != nil {
		return nil, database.Translate(err)
	}
	return &genre, nil
}

// FindGenreByName retrieves a genre by its exact name.
func (r *Repository) FindGenreByName(ctx context.Context, name string) (*entities.Genre, error) {
	var genre entities.Genre
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&genre).Error; err != nil {
		return nil, database.Translate(err)
	}
	return &genre, nil
}

// CreateGenre inserts a new genre and fills in its ID.
func (r *Repository) CreateGenre(ctx context.Context, genre *entities.Genre) error {
	return r.db.WithContext(ctx).Create(genre).Error
}

// UpdateGenre overwrites the name of the genre with the given ID.
func (r *Repository) UpdateGenre(ctx context.Context, id uint, name string) (*entities.Genre, error) {
	result := r.db.WithContext(ctx).Model(&entities.Genre{}).Where("id = ?", id).Update("name", name)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, database.ErrNotFound
	}
	return r.GetGenreByID(ctx, id)
}

// DeleteGenre removes a genre. Deleting a missing genre is not an error.
func (r *Repository) DeleteGenre(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entities.Genre{}, id).Error
}
