package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/locallibrary/internal/catalog"
)

type AuthorsController struct {
	responder
	authors *catalog.AuthorController
}

func NewAuthorsController(authors *catalog.AuthorController, r responder) *AuthorsController {
	return &AuthorsController{responder: r, authors: authors}
}

func (ac *AuthorsController) List(c *gin.Context) {
	out, err := ac.authors.List(c.Request.Context())
	ac.respond(c, out, err)
}

func (ac *AuthorsController) Detail(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		ac.notFound(c)
		return
	}
	out, err := ac.authors.Detail(c.Request.Context(), id)
	ac.respond(c, out, err)
}

func (ac *AuthorsController) CreateGet(c *gin.Context) {
	out, err := ac.authors.CreateGet(c.Request.Context())
	ac.respond(c, out, err)
}

func (ac *AuthorsController) CreatePost(c *gin.Context) {
	var form catalog.AuthorForm
	_ = c.ShouldBind(&form)
	out, err := ac.authors.CreatePost(c.Request.Context(), form)
	ac.respond(c, out, err)
}

func (ac *AuthorsController) UpdateGet(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		ac.notFound(c)
		return
	}
	out, err := ac.authors.UpdateGet(c.Request.Context(), id)
	ac.respond(c, out, err)
}

func (ac *AuthorsController) UpdatePost(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		ac.notFound(c)
		return
	}
	var form catalog.AuthorForm
	_ = c.ShouldBind(&form)
	out, err := ac.authors.UpdatePost(c.Request.Context(), id, form)
	ac.respond(c, out, err)
}

func (ac *AuthorsController) DeleteGet(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		ac.notFound(c)
		return
	}
	out, err := ac.authors.DeleteGet(c.Request.Context(), id)
	ac.respond(c, out, err)
}

func (ac *AuthorsController) DeletePost(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		ac.notFound(c)
		return
	}
	out, err := ac.authors.DeletePost(c.Request.Context(), id)
	ac.respond(c, out, err)
}
