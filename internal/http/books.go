package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/locallibrary/internal/catalog"
)

type BooksController struct {
	responder
	books *catalog.BookController
}

func NewBooksController(books *catalog.BookController, r responder) *BooksController {
	return &BooksController{responder: r, books: books}
}

func (bc *BooksController) List(c *gin.Context) {
	out, err := bc.books.List(c.Request.Context())
	bc.respond(c, out, err)
}

func (bc *BooksController) Detail(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		bc.notFound(c)
		return
	}
	out, err := bc.books.Detail(c.Request.Context(), id)
	bc.respond(c, out, err)
}

func (bc *BooksController) CreateGet(c *gin.Context) {
	out, err := bc.books.CreateGet(c.Request.Context())
	bc.respond(c, out, err)
}

func (bc *BooksController) CreatePost(c *gin.Context) {
	var form catalog.BookForm
	_ = c.ShouldBind(&form)
	out, err := bc.books.CreatePost(c.Request.Context(), form)
	bc.respond(c, out, err)
}

func (bc *BooksController) DeleteGet(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		bc.notFound(c)
		return
	}
	out, err := bc.books.DeleteGet(c.Request.Context(), id)
	bc.respond(c, out, err)
}

func (bc *BooksController) DeletePost(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		bc.notFound(c)
		return
	}
	out, err := bc.books.DeletePost(c.Request.Context(), id)
	bc.respond(c, out, err)
}
