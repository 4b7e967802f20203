package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/mrlokans/locallibrary/internal/database"
	"github.com/mrlokans/locallibrary/internal/entities"
)

// GenreListURL is where a deleted (or already missing) genre redirects to.
const GenreListURL = "/catalog/genres"

const (
	viewGenreList   = "genre_list"
	viewGenreDetail = "genre_detail"
	viewGenreForm   = "genre_form"
	viewGenreDelete = "genre_delete"
)

// GenreController runs the genre lifecycle: list, detail, create, update
// and the guarded delete.
//
// The duplicate-name check on create and the reference check on delete
// are read-then-act against the store with no isolation. Two concurrent
// creates can both persist the same name, and a book attached between the
// check and the removal is left pointing at a removed genre. The reconcile
// task repairs the latter after the fact.
type GenreController struct {
	genres   GenreStore
	books    BookReferences
	rules    GenreRules
	recorder Recorder
}

func NewGenreController(genres GenreStore, books BookReferences, rules GenreRules, recorder Recorder) *GenreController {
	return &GenreController{
		genres:   genres,
		books:    books,
		rules:    rules,
		recorder: recorderOrNop(recorder),
	}
}

// List renders every genre ordered by name.
func (gc *GenreController) List(ctx context.Context) (Outcome, error) {
	genres, err := gc.genres.ListGenres(ctx)
	if err != nil {
		return Outcome{}, storeFailure("list genres", err)
	}
	return render(viewGenreList, Context{
		"title":      "Genre List",
		"genre_list": genres,
	}), nil
}

// Detail renders a genre with the books in it. A failing books query
// degrades to an empty list; a missing genre is NotFound.
func (gc *GenreController) Detail(ctx context.Context, id uint) (Outcome, error) {
	genre, books, err := join(ctx,
		optional(func(ctx context.Context) (*entities.Genre, error) {
			return gc.genres.GetGenreByID(ctx, id)
		}),
		func(ctx context.Context) ([]entities.Book, error) {
			books, err := gc.books.FindBooksByGenre(ctx, id)
			if err != nil {
				log.Warn().Err(err).Uint("genre_id", id).Msg("genre books lookup failed, rendering without books")
				return []entities.Book{}, nil
			}
			return books, nil
		},
	)
	if err != nil {
		return Outcome{}, storeFailure("genre detail", err)
	}
	if genre == nil {
		return Outcome{}, notFound("genre", id)
	}

	return render(viewGenreDetail, Context{
		"title":       "Genre Detail",
		"genre":       genre,
		"genre_books": books,
	}), nil
}

// CreateGet renders the empty create form.
func (gc *GenreController) CreateGet(ctx context.Context) (Outcome, error) {
	return render(viewGenreForm, Context{"title": "Create Genre"}), nil
}

// CreatePost validates the form and persists a new genre, unless a genre
// with the same normalized name exists, in which case it redirects there.
func (gc *GenreController) CreatePost(ctx context.Context, form GenreForm) (Outcome, error) {
	result := ValidateGenre(form, gc.rules.Create)
	if result.Input == nil {
		out := render(viewGenreForm, Context{
			"title":  "Create Genre",
			"genre":  entities.Genre{Name: result.Form.Name},
			"errors": result.Errors,
		})
		out.Recovered = KindValidationFailed
		return out, nil
	}

	existing, err := gc.genres.FindGenreByName(ctx, result.Input.Name)
	switch {
	case err == nil:
		return redirect(existing.URL(), ""), nil
	case !errors.Is(err, database.ErrNotFound):
		return Outcome{}, storeFailure("find genre by name", err)
	}

	genre := &entities.Genre{Name: result.Input.Name}
	if err := gc.genres.CreateGenre(ctx, genre); err != nil {
		return Outcome{}, storeFailure("create genre", err)
	}

	gc.recorder.Record(ctx, entities.AuditEventCreate, "genre", genre.ID, "Created genre "+genre.Name)
	return redirect(genre.URL(), fmt.Sprintf("Genre %q created", genre.Name)), nil
}

// DeleteGet renders the delete confirmation with the books that would
// block it. A missing genre redirects to the list.
func (gc *GenreController) DeleteGet(ctx context.Context, id uint) (Outcome, error) {
	genre, books, err := gc.fetchWithBooks(ctx, id)
	if err != nil {
		return Outcome{}, err
	}
	if genre == nil {
		return redirect(GenreListURL, ""), nil
	}

	return render(viewGenreDelete, Context{
		"title": "Delete Genre",
		"genre": genre,
		"books": books,
	}), nil
}

// DeletePost removes the genre when no book references it. Otherwise the
// confirmation view is rendered again with the blocking books and nothing
// is changed.
func (gc *GenreController) DeletePost(ctx context.Context, id uint) (Outcome, error) {
	genre, books, err := gc.fetchWithBooks(ctx, id)
	if err != nil {
		return Outcome{}, err
	}

	if len(books) > 0 {
		if genre != nil {
			gc.recorder.Record(ctx, entities.AuditEventDeleteGuard, "genre", id,
				fmt.Sprintf("Refused to delete genre %s: %d books reference it", genre.Name, len(books)))
		}
		out := render(viewGenreDelete, Context{
			"title": "Delete Genre",
			"genre": genre,
			"books": books,
		})
		out.Recovered = KindIntegrityGuard
		return out, nil
	}

	if genre == nil {
		return redirect(GenreListURL, ""), nil
	}

	if err := gc.genres.DeleteGenre(ctx, id); err != nil {
		return Outcome{}, storeFailure("delete genre", err)
	}

	gc.recorder.Record(ctx, entities.AuditEventDelete, "genre", id, "Deleted genre "+genre.Name)
	return redirect(GenreListURL, fmt.Sprintf("Genre %q deleted", genre.Name)), nil
}

// UpdateGet renders the edit form pre-filled with the stored genre.
func (gc *GenreController) UpdateGet(ctx context.Context, id uint) (Outcome, error) {
	genre, err := gc.genres.GetGenreByID(ctx, id)
	if err != nil {
		return Outcome{}, lookupFailure("genre", id, err)
	}
	return render(viewGenreForm, Context{
		"title": "Update Genre",
		"genre": genre,
	}), nil
}

// UpdatePost validates the form and overwrites the stored name. Unlike
// create, it does not look for another genre with the same name.
func (gc *GenreController) UpdatePost(ctx context.Context, id uint, form GenreForm) (Outcome, error) {
	result := ValidateGenre(form, gc.rules.Update)
	if result.Input == nil {
		out := render(viewGenreForm, Context{
			"title":  "Update Genre",
			"genre":  entities.Genre{ID: id, Name: result.Form.Name},
			"errors": result.Errors,
		})
		out.Recovered = KindValidationFailed
		return out, nil
	}

	genre, err := gc.genres.UpdateGenre(ctx, id, result.Input.Name)
	if err != nil {
		return Outcome{}, lookupFailure("genre", id, err)
	}

	gc.recorder.Record(ctx, entities.AuditEventUpdate, "genre", id, "Renamed genre to "+genre.Name)
	return redirect(genre.URL(), fmt.Sprintf("Genre %q updated", genre.Name)), nil
}

// fetchWithBooks loads the genre (nil when missing) and its referencing
// books concurrently. Either lookup failing fails the whole call.
func (gc *GenreController) fetchWithBooks(ctx context.Context, id uint) (*entities.Genre, []entities.Book, error) {
	genre, books, err := join(ctx,
		optional(func(ctx context.Context) (*entities.Genre, error) {
			return gc.genres.GetGenreByID(ctx, id)
		}),
		func(ctx context.Context) ([]entities.Book, error) {
			return gc.books.FindBooksByGenre(ctx, id)
		},
	)
	if err != nil {
		return nil, nil, storeFailure("load genre and books", err)
	}
	return genre, books, nil
}
