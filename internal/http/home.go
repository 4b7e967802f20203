package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/locallibrary/internal/catalog"
)

type HomeController struct {
	responder
	home *catalog.HomeController
}

func NewHomeController(home *catalog.HomeController, r responder) *HomeController {
	return &HomeController{responder: r, home: home}
}

func (hc *HomeController) Index(c *gin.Context) {
	out, err := hc.home.Index(c.Request.Context())
	hc.respond(c, out, err)
}
