package catalog

import (
	"context"
	"fmt"

	"github.com/mrlokans/locallibrary/internal/entities"
)

// AuthorListURL is where a deleted (or already missing) author redirects to.
const AuthorListURL = "/catalog/authors"

const (
	viewAuthorList   = "author_list"
	viewAuthorDetail = "author_detail"
	viewAuthorForm   = "author_form"
	viewAuthorDelete = "author_delete"
)

// AuthorController manages authors. Deletion is refused while books
// reference the author, the same way genres are guarded.
type AuthorController struct {
	authors  AuthorStore
	books    BookReferences
	recorder Recorder
}

func NewAuthorController(authors AuthorStore, books BookReferences, recorder Recorder) *AuthorController {
	return &AuthorController{
		authors:  authors,
		books:    books,
		recorder: recorderOrNop(recorder),
	}
}

func (ac *AuthorController) List(ctx context.Context) (Outcome, error) {
	authors, err := ac.authors.ListAuthors(ctx)
	if err != nil {
		return Outcome{}, storeFailure("list authors", err)
	}
	return render(viewAuthorList, Context{
		"title":       "Author List",
		"author_list": authors,
	}), nil
}

// Detail renders an author with their books.
func (ac *AuthorController) Detail(ctx context.Context, id uint) (Outcome, error) {
	author, books, err := ac.fetchWithBooks(ctx, id)
	if err != nil {
		return Outcome{}, err
	}
	if author == nil {
		return Outcome{}, notFound("author", id)
	}
	return render(viewAuthorDetail, Context{
		"title":        "Author Detail",
		"author":       author,
		"author_books": books,
	}), nil
}

func (ac *AuthorController) CreateGet(ctx context.Context) (Outcome, error) {
	return render(viewAuthorForm, Context{"title": "Create Author"}), nil
}

// CreatePost persists a new author. Authors are not deduplicated.
func (ac *AuthorController) CreatePost(ctx context.Context, form AuthorForm) (Outcome, error) {
	result := ValidateAuthor(form)
	if result.Input == nil {
		out := render(viewAuthorForm, Context{
			"title":  "Create Author",
			"author": result.Form.Author(0),
			"errors": result.Errors,
		})
		out.Recovered = KindValidationFailed
		return out, nil
	}

	author := &entities.Author{
		FirstName:   result.Input.FirstName,
		FamilyName:  result.Input.FamilyName,
		DateOfBirth: result.Input.DateOfBirth,
		DateOfDeath: result.Input.DateOfDeath,
	}
	if err := ac.authors.CreateAuthor(ctx, author); err != nil {
		return Outcome{}, storeFailure("create author", err)
	}

	ac.recorder.Record(ctx, entities.AuditEventCreate, "author", author.ID, "Created author "+author.Name())
	return redirect(author.URL(), fmt.Sprintf("Author %q created", author.Name())), nil
}

func (ac *AuthorController) UpdateGet(ctx context.Context, id uint) (Outcome, error) {
	author, err := ac.authors.GetAuthorByID(ctx, id)
	if err != nil {
		return Outcome{}, lookupFailure("author", id, err)
	}
	return render(viewAuthorForm, Context{
		"title":  "Update Author",
		"author": author,
	}), nil
}

func (ac *AuthorController) UpdatePost(ctx context.Context, id uint, form AuthorForm) (Outcome, error) {
	result := ValidateAuthor(form)
	if result.Input == nil {
		out := render(viewAuthorForm, Context{
			"title":  "Update Author",
			"author": result.Form.Author(id),
			"errors": result.Errors,
		})
		out.Recovered = KindValidationFailed
		return out, nil
	}

	author := &entities.Author{
		ID:          id,
		FirstName:   result.Input.FirstName,
		FamilyName:  result.Input.FamilyName,
		DateOfBirth: result.Input.DateOfBirth,
		DateOfDeath: result.Input.DateOfDeath,
	}
	if err := ac.authors.UpdateAuthor(ctx, author); err != nil {
		return Outcome{}, lookupFailure("author", id, err)
	}

	ac.recorder.Record(ctx, entities.AuditEventUpdate, "author", id, "Updated author "+author.Name())
	return redirect(author.URL(), fmt.Sprintf("Author %q updated", author.Name())), nil
}

func (ac *AuthorController) DeleteGet(ctx context.Context, id uint) (Outcome, error) {
	author, books, err := ac.fetchWithBooks(ctx, id)
	if err != nil {
		return Outcome{}, err
	}
	if author == nil {
		return redirect(AuthorListURL, ""), nil
	}
	return render(viewAuthorDelete, Context{
		"title":        "Delete Author",
		"author":       author,
		"author_books": books,
	}), nil
}

// DeletePost removes the author unless books still reference them.
func (ac *AuthorController) DeletePost(ctx context.Context, id uint) (Outcome, error) {
	author, books, err := ac.fetchWithBooks(ctx, id)
	if err != nil {
		return Outcome{}, err
	}

	if len(books) > 0 {
		if author != nil {
			ac.recorder.Record(ctx, entities.AuditEventDeleteGuard, "author", id,
				fmt.Sprintf("Refused to delete author %s: %d books reference them", author.Name(), len(books)))
		}
		out := render(viewAuthorDelete, Context{
			"title":        "Delete Author",
			"author":       author,
			"author_books": books,
		})
		out.Recovered = KindIntegrityGuard
		return out, nil
	}

	if author == nil {
		return redirect(AuthorListURL, ""), nil
	}

	if err := ac.authors.DeleteAuthor(ctx, id); err != nil {
		return Outcome{}, storeFailure("delete author", err)
	}

	ac.recorder.Record(ctx, entities.AuditEventDelete, "author", id, "Deleted author "+author.Name())
	return redirect(AuthorListURL, fmt.Sprintf("Author %q deleted", author.Name())), nil
}

func (ac *AuthorController) fetchWithBooks(ctx context.Context, id uint) (*entities.Author, []entities.Book, error) {
	author, books, err := join(ctx,
		optional(func(ctx context.Context) (*entities.Author, error) {
			return ac.authors.GetAuthorByID(ctx, id)
		}),
		func(ctx context.Context) ([]entities.Book, error) {
			return ac.books.FindBooksByAuthor(ctx, id)
		},
	)
	if err != nil {
		return nil, nil, storeFailure("load author and books", err)
	}
	return author, books, nil
}
