package catalog

import (
	"context"
	"fmt"

	"github.com/mrlokans/locallibrary/internal/entities"
)

// BookListURL is where a deleted book redirects to.
const BookListURL = "/catalog/books"

const (
	viewBookList   = "book_list"
	viewBookDetail = "book_detail"
	viewBookForm   = "book_form"
	viewBookDelete = "book_delete"
)

// BookController manages books. Books are leaves of the reference graph,
// so their deletion is never guarded.
type BookController struct {
	books    BookStore
	authors  AuthorStore
	genres   GenreStore
	recorder Recorder
}

func NewBookController(books BookStore, authors AuthorStore, genres GenreStore, recorder Recorder) *BookController {
	return &BookController{
		books:    books,
		authors:  authors,
		genres:   genres,
		recorder: recorderOrNop(recorder),
	}
}

func (bc *BookController) List(ctx context.Context) (Outcome, error) {
	books, err := bc.books.ListBooks(ctx)
	if err != nil {
		return Outcome{}, storeFailure("list books", err)
	}
	return render(viewBookList, Context{
		"title":     "Book List",
		"book_list": books,
	}), nil
}

func (bc *BookController) Detail(ctx context.Context, id uint) (Outcome, error) {
	book, err := bc.books.GetBookByID(ctx, id)
	if err != nil {
		return Outcome{}, lookupFailure("book", id, err)
	}
	return render(viewBookDetail, Context{
		"title": book.Title,
		"book":  book,
	}), nil
}

// CreateGet renders the create form with the author and genre choices.
func (bc *BookController) CreateGet(ctx context.Context) (Outcome, error) {
	authors, genres, err := bc.options(ctx)
	if err != nil {
		return Outcome{}, err
	}
	return render(viewBookForm, Context{
		"title":   "Create Book",
		"authors": authors,
		"genres":  genres,
	}), nil
}

// CreatePost validates the form, checks that the chosen author and genre
// exist, and persists the book.
func (bc *BookController) CreatePost(ctx context.Context, form BookForm) (Outcome, error) {
	result := ValidateBook(form)
	if result.Input != nil {
		refErrors, err := bc.checkReferences(ctx, result.Input)
		if err != nil {
			return Outcome{}, err
		}
		if len(refErrors) > 0 {
			result.Errors = refErrors
			result.Input = nil
		}
	}

	if result.Input == nil {
		authors, genres, err := bc.options(ctx)
		if err != nil {
			return Outcome{}, err
		}
		out := render(viewBookForm, Context{
			"title":   "Create Book",
			"book":    result.Form,
			"authors": authors,
			"genres":  genres,
			"errors":  result.Errors,
		})
		out.Recovered = KindValidationFailed
		return out, nil
	}

	book := &entities.Book{
		Title:    result.Input.Title,
		Summary:  result.Input.Summary,
		ISBN:     result.Input.ISBN,
		AuthorID: result.Input.AuthorID,
		GenreID:  result.Input.GenreID,
	}
	if err := bc.books.CreateBook(ctx, book); err != nil {
		return Outcome{}, storeFailure("create book", err)
	}

	bc.recorder.Record(ctx, entities.AuditEventCreate, "book", book.ID, "Created book "+book.Title)
	return redirect(book.URL(), fmt.Sprintf("Book %q created", book.Title)), nil
}

// DeleteGet renders the delete confirmation. A missing book redirects to the list.
func (bc *BookController) DeleteGet(ctx context.Context, id uint) (Outcome, error) {
	book, err := optional(func(ctx context.Context) (*entities.Book, error) {
		return bc.books.GetBookByID(ctx, id)
	})(ctx)
	if err != nil {
		return Outcome{}, storeFailure("find book", err)
	}
	if book == nil {
		return redirect(BookListURL, ""), nil
	}
	return render(viewBookDelete, Context{
		"title": "Delete Book",
		"book":  book,
	}), nil
}

// DeletePost removes the book. Removing a missing book still redirects to the list.
func (bc *BookController) DeletePost(ctx context.Context, id uint) (Outcome, error) {
	if err := bc.books.DeleteBook(ctx, id); err != nil {
		return Outcome{}, storeFailure("delete book", err)
	}
	bc.recorder.Record(ctx, entities.AuditEventDelete, "book", id, fmt.Sprintf("Deleted book %d", id))
	return redirect(BookListURL, "Book deleted"), nil
}

func (bc *BookController) options(ctx context.Context) ([]entities.Author, []entities.Genre, error) {
	authors, genres, err := join(ctx, bc.authors.ListAuthors, bc.genres.ListGenres)
	if err != nil {
		return nil, nil, storeFailure("load book form options", err)
	}
	return authors, genres, nil
}

// checkReferences looks up the chosen author and genre concurrently and
// reports the ones that do not exist as field errors.
func (bc *BookController) checkReferences(ctx context.Context, input *BookInput) ([]FieldError, error) {
	author, genre, err := join(ctx,
		optional(func(ctx context.Context) (*entities.Author, error) {
			return bc.authors.GetAuthorByID(ctx, input.AuthorID)
		}),
		optional(func(ctx context.Context) (*entities.Genre, error) {
			if input.GenreID == nil {
				return nil, nil
			}
			return bc.genres.GetGenreByID(ctx, *input.GenreID)
		}),
	)
	if err != nil {
		return nil, storeFailure("check book references", err)
	}

	var errs []FieldError
	if author == nil {
		errs = append(errs, FieldError{Msg: "Author does not exist.", Param: "author", Value: fmt.Sprint(input.AuthorID)})
	}
	if input.GenreID != nil && genre == nil {
		errs = append(errs, FieldError{Msg: "Genre does not exist.", Param: "genre", Value: fmt.Sprint(*input.GenreID)})
	}
	return errs, nil
}
