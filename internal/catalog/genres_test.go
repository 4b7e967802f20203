package catalog

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/locallibrary/internal/database"
	"github.com/mrlokans/locallibrary/internal/entities"
)

func TestGenreController_List(t *testing.T) {
	tc, cleanup := setupTestCatalog(t)
	defer cleanup()

	tc.seedGenre(t, "Poetry")
	tc.seedGenre(t, "Fantasy")

	out, err := tc.genreController().List(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "genre_list", out.View)
	assert.Equal(t, "Genre List", out.Context["title"])
	list := out.Context["genre_list"].([]entities.Genre)
	require.Len(t, list, 2)
	assert.Equal(t, "Fantasy", list[0].Name)
	assert.Equal(t, "Poetry", list[1].Name)
}

func TestGenreController_List_StoreFailure(t *testing.T) {
	tc, cleanup := setupTestCatalog(t)
	defer cleanup()

	gc := NewGenreController(failingGenres{GenreStore: tc.genres, failList: true}, tc.books, DefaultGenreRules(), nil)
	_, err := gc.List(context.Background())
	require.Error(t, err)
	assert.Equal(t, KindStoreFailure, KindOf(err))
	assert.ErrorIs(t, err, errStoreDown)
}

func TestGenreController_Detail(t *testing.T) {
	tc, cleanup := setupTestCatalog(t)
	defer cleanup()
	ctx := context.Background()

	fantasy := tc.seedGenre(t, "Fantasy")
	poetry := tc.seedGenre(t, "Poetry")
	author := tc.seedAuthor(t, "Patrick", "Rothfuss")
	tc.seedBook(t, "The Wise Man's Fear", author, fantasy)
	tc.seedBook(t, "The Name of the Wind", author, fantasy)
	tc.seedBook(t, "Odes", author, poetry)

	t.Run("renders genre with its books", func(t *testing.T) {
		out, err := tc.genreController().Detail(ctx, fantasy.ID)
		require.NoError(t, err)

		assert.Equal(t, "genre_detail", out.View)
		assert.Equal(t, "Genre Detail", out.Context["title"])
		assert.Equal(t, "Fantasy", out.Context["genre"].(*entities.Genre).Name)

		books := out.Context["genre_books"].([]entities.Book)
		require.Len(t, books, 2)
		assert.Equal(t, "The Name of the Wind", books[0].Title)
		assert.Equal(t, "Rothfuss, Patrick", books[0].Author.Name())
	})

	t.Run("missing genre is not found", func(t *testing.T) {
		_, err := tc.genreController().Detail(ctx, 9999)
		require.Error(t, err)
		assert.Equal(t, KindNotFound, KindOf(err))
		assert.ErrorIs(t, err, database.ErrNotFound)
	})

	t.Run("failing books lookup renders an empty list", func(t *testing.T) {
		gc := NewGenreController(tc.genres, failingBooks{}, DefaultGenreRules(), nil)
		out, err := gc.Detail(ctx, fantasy.ID)
		require.NoError(t, err)
		assert.Empty(t, out.Context["genre_books"])
		assert.NotNil(t, out.Context["genre_books"])
	})

	t.Run("failing genre lookup is a store failure", func(t *testing.T) {
		gc := NewGenreController(failingGenres{GenreStore: tc.genres, failGet: true}, tc.books, DefaultGenreRules(), nil)
		_, err := gc.Detail(ctx, fantasy.ID)
		require.Error(t, err)
		assert.Equal(t, KindStoreFailure, KindOf(err))
	})
}

func TestGenreController_CreateGet(t *testing.T) {
	tc, cleanup := setupTestCatalog(t)
	defer cleanup()

	out, err := tc.genreController().CreateGet(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "genre_form", out.View)
	assert.Equal(t, "Create Genre", out.Context["title"])
	assert.False(t, out.IsRedirect())
}

func TestGenreController_CreatePost(t *testing.T) {
	t.Run("trims the name and redirects to the new genre", func(t *testing.T) {
		tc, cleanup := setupTestCatalog(t)
		defer cleanup()
		ctx := context.Background()

		out, err := tc.genreController().CreatePost(ctx, GenreForm{Name: " Fantasy "})
		require.NoError(t, err)
		require.True(t, out.IsRedirect())

		stored, err := tc.genres.FindGenreByName(ctx, "Fantasy")
		require.NoError(t, err)
		assert.Equal(t, stored.URL(), out.Redirect)
		assert.NotEmpty(t, out.Flash)

		events := tc.recorder.Events()
		require.Len(t, events, 1)
		assert.Equal(t, entities.AuditEventCreate, events[0].EventType)
		assert.Equal(t, stored.ID, events[0].EntityID)
	})

	t.Run("duplicate name redirects to the existing genre", func(t *testing.T) {
		tc, cleanup := setupTestCatalog(t)
		defer cleanup()
		ctx := context.Background()
		gc := tc.genreController()

		first, err := gc.CreatePost(ctx, GenreForm{Name: " Fantasy "})
		require.NoError(t, err)
		second, err := gc.CreatePost(ctx, GenreForm{Name: "Fantasy"})
		require.NoError(t, err)

		assert.Equal(t, first.Redirect, second.Redirect)
		assert.Empty(t, second.Flash)

		list, err := tc.genres.ListGenres(ctx)
		require.NoError(t, err)
		assert.Len(t, list, 1)
		assert.Len(t, tc.recorder.Events(), 1)
	})

	t.Run("blank name re-renders the form with errors", func(t *testing.T) {
		tc, cleanup := setupTestCatalog(t)
		defer cleanup()
		ctx := context.Background()

		out, err := tc.genreController().CreatePost(ctx, GenreForm{Name: "   "})
		require.NoError(t, err)

		assert.Equal(t, "genre_form", out.View)
		assert.Equal(t, KindValidationFailed, out.Recovered)
		assert.Equal(t, "Create Genre", out.Context["title"])
		assert.Equal(t, entities.Genre{Name: ""}, out.Context["genre"])

		want := []FieldError{{Msg: "Genre name required", Param: "name", Value: ""}}
		if diff := cmp.Diff(want, out.Context["errors"]); diff != "" {
			t.Errorf("errors mismatch (-want +got):\n%s", diff)
		}

		list, err := tc.genres.ListGenres(ctx)
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("markup in the name is escaped before storing", func(t *testing.T) {
		tc, cleanup := setupTestCatalog(t)
		defer cleanup()
		ctx := context.Background()

		_, err := tc.genreController().CreatePost(ctx, GenreForm{Name: "<b>Sci</b> & Fi"})
		require.NoError(t, err)

		list, err := tc.genres.ListGenres(ctx)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "&lt;b&gt;Sci&lt;&#x2F;b&gt; &amp; Fi", list[0].Name)
	})
}

func TestGenreController_DeleteGet(t *testing.T) {
	tc, cleanup := setupTestCatalog(t)
	defer cleanup()
	ctx := context.Background()

	genre := tc.seedGenre(t, "Horror")
	author := tc.seedAuthor(t, "Mary", "Shelley")
	tc.seedBook(t, "Frankenstein", author, genre)

	t.Run("renders confirmation with books", func(t *testing.T) {
		out, err := tc.genreController().DeleteGet(ctx, genre.ID)
		require.NoError(t, err)
		assert.Equal(t, "genre_delete", out.View)
		assert.Equal(t, "Delete Genre", out.Context["title"])
		assert.Len(t, out.Context["books"], 1)
	})

	t.Run("missing genre redirects to the list", func(t *testing.T) {
		out, err := tc.genreController().DeleteGet(ctx, 9999)
		require.NoError(t, err)
		assert.Equal(t, GenreListURL, out.Redirect)
	})

	t.Run("failing books lookup aborts", func(t *testing.T) {
		gc := NewGenreController(tc.genres, failingBooks{}, DefaultGenreRules(), nil)
		_, err := gc.DeleteGet(ctx, genre.ID)
		require.Error(t, err)
		assert.Equal(t, KindStoreFailure, KindOf(err))
		assert.ErrorIs(t, err, errStoreDown)
	})
}

func TestGenreController_DeletePost(t *testing.T) {
	t.Run("referenced genre is kept and the blocking books are shown", func(t *testing.T) {
		tc, cleanup := setupTestCatalog(t)
		defer cleanup()
		ctx := context.Background()

		genre := tc.seedGenre(t, "Horror")
		author := tc.seedAuthor(t, "Mary", "Shelley")
		book := tc.seedBook(t, "Frankenstein", author, genre)

		out, err := tc.genreController().DeletePost(ctx, genre.ID)
		require.NoError(t, err)

		assert.Equal(t, "genre_delete", out.View)
		assert.Equal(t, KindIntegrityGuard, out.Recovered)
		blocking := out.Context["books"].([]entities.Book)
		require.Len(t, blocking, 1)
		assert.Equal(t, "Frankenstein", blocking[0].Title)

		_, err = tc.genres.GetGenreByID(ctx, genre.ID)
		require.NoError(t, err)
		stored, err := tc.books.GetBookByID(ctx, book.ID)
		require.NoError(t, err)
		require.NotNil(t, stored.GenreID)
		assert.Equal(t, genre.ID, *stored.GenreID)

		events := tc.recorder.Events()
		require.Len(t, events, 1)
		assert.Equal(t, entities.AuditEventDeleteGuard, events[0].EventType)
	})

	t.Run("unreferenced genre is removed", func(t *testing.T) {
		tc, cleanup := setupTestCatalog(t)
		defer cleanup()
		ctx := context.Background()

		genre := tc.seedGenre(t, "Horror")

		out, err := tc.genreController().DeletePost(ctx, genre.ID)
		require.NoError(t, err)
		assert.Equal(t, GenreListURL, out.Redirect)

		_, err = tc.genres.GetGenreByID(ctx, genre.ID)
		assert.ErrorIs(t, err, database.ErrNotFound)
	})

	t.Run("missing genre redirects to the list", func(t *testing.T) {
		tc, cleanup := setupTestCatalog(t)
		defer cleanup()

		out, err := tc.genreController().DeletePost(context.Background(), 9999)
		require.NoError(t, err)
		assert.Equal(t, GenreListURL, out.Redirect)
		assert.Empty(t, tc.recorder.Events())
	})

	t.Run("failing genre lookup aborts without deleting", func(t *testing.T) {
		tc, cleanup := setupTestCatalog(t)
		defer cleanup()
		ctx := context.Background()

		genre := tc.seedGenre(t, "Horror")
		gc := NewGenreController(failingGenres{GenreStore: tc.genres, failGet: true}, tc.books, DefaultGenreRules(), nil)

		_, err := gc.DeletePost(ctx, genre.ID)
		require.Error(t, err)
		assert.Equal(t, KindStoreFailure, KindOf(err))

		_, err = tc.genres.GetGenreByID(ctx, genre.ID)
		assert.NoError(t, err)
	})
}

func TestGenreController_UpdateGet(t *testing.T) {
	tc, cleanup := setupTestCatalog(t)
	defer cleanup()
	ctx := context.Background()

	genre := tc.seedGenre(t, "Fantasy")

	out, err := tc.genreController().UpdateGet(ctx, genre.ID)
	require.NoError(t, err)
	assert.Equal(t, "genre_form", out.View)
	assert.Equal(t, "Update Genre", out.Context["title"])
	assert.Equal(t, "Fantasy", out.Context["genre"].(*entities.Genre).Name)

	_, err = tc.genreController().UpdateGet(ctx, 9999)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestGenreController_UpdatePost(t *testing.T) {
	t.Run("renames and redirects", func(t *testing.T) {
		tc, cleanup := setupTestCatalog(t)
		defer cleanup()
		ctx := context.Background()

		genre := tc.seedGenre(t, "Fantasy")

		out, err := tc.genreController().UpdatePost(ctx, genre.ID, GenreForm{Name: " High Fantasy "})
		require.NoError(t, err)
		assert.Equal(t, genre.URL(), out.Redirect)

		stored, err := tc.genres.GetGenreByID(ctx, genre.ID)
		require.NoError(t, err)
		assert.Equal(t, "High Fantasy", stored.Name)
	})

	t.Run("short name fails the update threshold", func(t *testing.T) {
		tc, cleanup := setupTestCatalog(t)
		defer cleanup()
		ctx := context.Background()

		genre := tc.seedGenre(t, "Fantasy")

		out, err := tc.genreController().UpdatePost(ctx, genre.ID, GenreForm{Name: "SF"})
		require.NoError(t, err)
		assert.Equal(t, KindValidationFailed, out.Recovered)
		assert.Equal(t, entities.Genre{ID: genre.ID, Name: "SF"}, out.Context["genre"])

		want := []FieldError{{Msg: "Name must not be empty", Param: "name", Value: "SF"}}
		if diff := cmp.Diff(want, out.Context["errors"]); diff != "" {
			t.Errorf("errors mismatch (-want +got):\n%s", diff)
		}

		stored, err := tc.genres.GetGenreByID(ctx, genre.ID)
		require.NoError(t, err)
		assert.Equal(t, "Fantasy", stored.Name)
	})

	t.Run("same short name is accepted on create", func(t *testing.T) {
		tc, cleanup := setupTestCatalog(t)
		defer cleanup()

		out, err := tc.genreController().CreatePost(context.Background(), GenreForm{Name: "SF"})
		require.NoError(t, err)
		assert.True(t, out.IsRedirect())
	})

	t.Run("existing name is not rejected", func(t *testing.T) {
		tc, cleanup := setupTestCatalog(t)
		defer cleanup()
		ctx := context.Background()

		tc.seedGenre(t, "Fantasy")
		other := tc.seedGenre(t, "Horror")

		_, err := tc.genreController().UpdatePost(ctx, other.ID, GenreForm{Name: "Fantasy"})
		require.NoError(t, err)

		list, err := tc.genres.ListGenres(ctx)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "Fantasy", list[0].Name)
		assert.Equal(t, "Fantasy", list[1].Name)
	})

	t.Run("missing genre is not found", func(t *testing.T) {
		tc, cleanup := setupTestCatalog(t)
		defer cleanup()

		_, err := tc.genreController().UpdatePost(context.Background(), 9999, GenreForm{Name: "Fantasy"})
		require.Error(t, err)
		assert.Equal(t, KindNotFound, KindOf(err))
	})

	t.Run("configured thresholds apply", func(t *testing.T) {
		tc, cleanup := setupTestCatalog(t)
		defer cleanup()
		ctx := context.Background()

		genre := tc.seedGenre(t, "Fantasy")
		gc := NewGenreController(tc.genres, tc.books, DefaultGenreRules().WithMinLengths(1, 1), nil)

		out, err := gc.UpdatePost(ctx, genre.ID, GenreForm{Name: "SF"})
		require.NoError(t, err)
		assert.True(t, out.IsRedirect())
	})
}
