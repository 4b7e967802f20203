package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/locallibrary/internal/catalog"
)

// GenresController exposes the genre lifecycle over HTTP.
type GenresController struct {
	responder
	genres *catalog.GenreController
}

func NewGenresController(genres *catalog.GenreController, r responder) *GenresController {
	return &GenresController{responder: r, genres: genres}
}

func (gc *GenresController) List(c *gin.Context) {
	out, err := gc.genres.List(c.Request.Context())
	gc.respond(c, out, err)
}

func (gc *GenresController) Detail(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		gc.notFound(c)
		return
	}
	out, err := gc.genres.Detail(c.Request.Context(), id)
	gc.respond(c, out, err)
}

func (gc *GenresController) CreateGet(c *gin.Context) {
	out, err := gc.genres.CreateGet(c.Request.Context())
	gc.respond(c, out, err)
}

func (gc *GenresController) CreatePost(c *gin.Context) {
	var form catalog.GenreForm
	// Missing fields stay empty and are reported by validation.
	_ = c.ShouldBind(&form)
	out, err := gc.genres.CreatePost(c.Request.Context(), form)
	gc.respond(c, out, err)
}

func (gc *GenresController) DeleteGet(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		gc.notFound(c)
		return
	}
	out, err := gc.genres.DeleteGet(c.Request.Context(), id)
	gc.respond(c, out, err)
}

// DeletePost acts on the id in the path. The confirmation form also posts
// the id as genreid; it is not consulted.
func (gc *GenresController) DeletePost(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		gc.notFound(c)
		return
	}
	out, err := gc.genres.DeletePost(c.Request.Context(), id)
	gc.respond(c, out, err)
}

func (gc *GenresController) UpdateGet(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		gc.notFound(c)
		return
	}
	out, err := gc.genres.UpdateGet(c.Request.Context(), id)
	gc.respond(c, out, err)
}

func (gc *GenresController) UpdatePost(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		gc.notFound(c)
		return
	}
	var form catalog.GenreForm
	_ = c.ShouldBind(&form)
	out, err := gc.genres.UpdatePost(c.Request.Context(), id, form)
	gc.respond(c, out, err)
}
