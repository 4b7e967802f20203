package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/mrlokans/locallibrary/internal/catalog"
	"github.com/mrlokans/locallibrary/internal/web"
)

const viewError = "error"

// responder turns catalog outcomes and errors into HTTP responses. It is
// the only place that maps an error kind to a status code.
type responder struct {
	sessions *web.SessionManager
}

func (r responder) respond(c *gin.Context, out catalog.Outcome, err error) {
	if err != nil {
		r.fail(c, err)
		return
	}

	if out.IsRedirect() {
		if r.sessions != nil {
			r.sessions.PutFlash(c.Request, out.Flash)
		}
		c.Redirect(http.StatusFound, out.Redirect)
		return
	}

	if out.Recovered != catalog.KindNone {
		log.Debug().
			Str("request_id", c.GetString(web.RequestIDKey)).
			Str("view", out.View).
			Stringer("kind", out.Recovered).
			Msg("operation recovered by re-rendering")
	}
	c.HTML(http.StatusOK, out.View, r.viewData(c, out.Context))
}

// fail renders the error page. NotFound is a 404, everything else a 500.
func (r responder) fail(c *gin.Context, err error) {
	status := statusFor(catalog.KindOf(err))

	var message string
	if status == http.StatusNotFound {
		message = "Not Found"
		var catalogErr *catalog.Error
		if errors.As(err, &catalogErr) && catalogErr.Entity != "" {
			message = catalogErr.Error()
		}
	} else {
		message = "Internal Server Error"
		log.Error().
			Err(err).
			Str("request_id", c.GetString(web.RequestIDKey)).
			Str("path", c.Request.URL.Path).
			Msg("catalog operation failed")
	}

	c.HTML(status, viewError, r.viewData(c, catalog.Context{
		"title":   message,
		"message": message,
		"status":  status,
	}))
}

func (r responder) notFound(c *gin.Context) {
	r.fail(c, &catalog.Error{Kind: catalog.KindNotFound})
}

func statusFor(kind catalog.Kind) int {
	if kind == catalog.KindNotFound {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// viewData adds the page chrome every template expects to the operation's
// own context.
func (r responder) viewData(c *gin.Context, ctx catalog.Context) gin.H {
	data := gin.H{}
	for k, v := range ctx {
		data[k] = v
	}
	data["csrf_field"] = web.CSRFField(c)
	if r.sessions != nil {
		data["flash"] = r.sessions.PopFlash(c.Request)
	}
	return data
}
