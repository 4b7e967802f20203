package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/locallibrary/internal/database"
	"github.com/mrlokans/locallibrary/internal/entities"
)

func TestAuthorController_CreateAndDetail(t *testing.T) {
	tc, cleanup := setupTestCatalog(t)
	defer cleanup()
	ctx := context.Background()
	ac := NewAuthorController(tc.authors, tc.books, tc.recorder)

	out, err := ac.CreatePost(ctx, AuthorForm{
		FirstName:   "Jane",
		FamilyName:  "Austen",
		DateOfBirth: "1775-12-16",
	})
	require.NoError(t, err)
	require.True(t, out.IsRedirect())

	list, err := tc.authors.ListAuthors(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, list[0].URL(), out.Redirect)

	detail, err := ac.Detail(ctx, list[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "author_detail", detail.View)
	author := detail.Context["author"].(*entities.Author)
	assert.Equal(t, "Austen, Jane", author.Name())
	assert.Equal(t, "Dec 16, 1775 - ", author.Lifespan())
	assert.Empty(t, detail.Context["author_books"])

	_, err = ac.Detail(ctx, 9999)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestAuthorController_CreatePost_Invalid(t *testing.T) {
	tc, cleanup := setupTestCatalog(t)
	defer cleanup()
	ctx := context.Background()
	ac := NewAuthorController(tc.authors, tc.books, nil)

	out, err := ac.CreatePost(ctx, AuthorForm{FirstName: "Jane"})
	require.NoError(t, err)
	assert.Equal(t, "author_form", out.View)
	assert.Equal(t, KindValidationFailed, out.Recovered)
	assert.Equal(t, "Jane", out.Context["author"].(entities.Author).FirstName)

	list, err := tc.authors.ListAuthors(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestAuthorController_UpdatePost(t *testing.T) {
	tc, cleanup := setupTestCatalog(t)
	defer cleanup()
	ctx := context.Background()
	ac := NewAuthorController(tc.authors, tc.books, nil)

	author := tc.seedAuthor(t, "Jane", "Austin")

	get, err := ac.UpdateGet(ctx, author.ID)
	require.NoError(t, err)
	assert.Equal(t, "Update Author", get.Context["title"])

	out, err := ac.UpdatePost(ctx, author.ID, AuthorForm{
		FirstName:   "Jane",
		FamilyName:  "Austen",
		DateOfDeath: "1817-07-18",
	})
	require.NoError(t, err)
	assert.Equal(t, author.URL(), out.Redirect)

	stored, err := tc.authors.GetAuthorByID(ctx, author.ID)
	require.NoError(t, err)
	assert.Equal(t, "Austen", stored.FamilyName)
	assert.Equal(t, "1817-07-18", stored.DateOfDeathISO())

	_, err = ac.UpdatePost(ctx, 9999, AuthorForm{FirstName: "A", FamilyName: "B"})
	assert.Equal(t, KindNotFound, KindOf(err))

	_, err = ac.UpdateGet(ctx, 9999)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestAuthorController_DeletePost(t *testing.T) {
	t.Run("author with books is kept", func(t *testing.T) {
		tc, cleanup := setupTestCatalog(t)
		defer cleanup()
		ctx := context.Background()
		ac := NewAuthorController(tc.authors, tc.books, tc.recorder)

		author := tc.seedAuthor(t, "Mary", "Shelley")
		tc.seedBook(t, "Frankenstein", author, nil)

		out, err := ac.DeletePost(ctx, author.ID)
		require.NoError(t, err)
		assert.Equal(t, "author_delete", out.View)
		assert.Equal(t, KindIntegrityGuard, out.Recovered)
		assert.Len(t, out.Context["author_books"], 1)

		_, err = tc.authors.GetAuthorByID(ctx, author.ID)
		assert.NoError(t, err)
	})

	t.Run("author without books is removed", func(t *testing.T) {
		tc, cleanup := setupTestCatalog(t)
		defer cleanup()
		ctx := context.Background()
		ac := NewAuthorController(tc.authors, tc.books, tc.recorder)

		author := tc.seedAuthor(t, "Mary", "Shelley")

		get, err := ac.DeleteGet(ctx, author.ID)
		require.NoError(t, err)
		assert.Equal(t, "Delete Author", get.Context["title"])

		out, err := ac.DeletePost(ctx, author.ID)
		require.NoError(t, err)
		assert.Equal(t, AuthorListURL, out.Redirect)

		_, err = tc.authors.GetAuthorByID(ctx, author.ID)
		assert.ErrorIs(t, err, database.ErrNotFound)

		events := tc.recorder.Events()
		require.Len(t, events, 1)
		assert.Equal(t, entities.AuditEventDelete, events[0].EventType)
	})

	t.Run("missing author redirects", func(t *testing.T) {
		tc, cleanup := setupTestCatalog(t)
		defer cleanup()
		ac := NewAuthorController(tc.authors, tc.books, nil)

		out, err := ac.DeleteGet(context.Background(), 9999)
		require.NoError(t, err)
		assert.Equal(t, AuthorListURL, out.Redirect)

		out, err = ac.DeletePost(context.Background(), 9999)
		require.NoError(t, err)
		assert.Equal(t, AuthorListURL, out.Redirect)
	})

	t.Run("failing books lookup aborts", func(t *testing.T) {
		tc, cleanup := setupTestCatalog(t)
		defer cleanup()
		author := tc.seedAuthor(t, "Mary", "Shelley")
		ac := NewAuthorController(tc.authors, failingBooks{}, nil)

		_, err := ac.DeletePost(context.Background(), author.ID)
		assert.Equal(t, KindStoreFailure, KindOf(err))
	})
}

func TestAuthorController_List(t *testing.T) {
	tc, cleanup := setupTestCatalog(t)
	defer cleanup()

	tc.seedAuthor(t, "Mary", "Shelley")
	tc.seedAuthor(t, "Jane", "Austen")

	out, err := NewAuthorController(tc.authors, tc.books, nil).List(context.Background())
	require.NoError(t, err)
	list := out.Context["author_list"].([]entities.Author)
	require.Len(t, list, 2)
	assert.Equal(t, "Austen", list[0].FamilyName)
}
