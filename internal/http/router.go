package http

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/locallibrary/internal/catalog"
	"github.com/mrlokans/locallibrary/internal/web"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) (*gin.Engine, error) {
	tmpl, err := LoadTemplates(cfg.TemplatesPath)
	if err != nil {
		return nil, err
	}
	return newRouter(cfg, tmpl), nil
}

func newRouter(cfg RouterConfig, tmpl *template.Template) *gin.Engine {
	router := gin.New()
	router.Use(web.RequestID())
	router.Use(web.RequestLogger())
	router.Use(web.Recovery())
	router.Use(web.SecurityHeadersMiddleware())

	// CSRF must run before session so that session context is preserved
	if len(cfg.CSRFKey) > 0 {
		router.Use(web.CSRFMiddleware(cfg.CSRFKey, cfg.SecureCookies))
	}
	if cfg.Sessions != nil {
		router.Use(cfg.Sessions.SessionLoadSave())
	}

	router.SetHTMLTemplate(tmpl)
	if cfg.StaticPath != "" {
		router.Static("/static", cfg.StaticPath)
	}

	r := responder{sessions: cfg.Sessions}
	rules := cfg.GenreRules
	if rules == (catalog.GenreRules{}) {
		rules = catalog.DefaultGenreRules()
	}

	health := NewHealthController(cfg.Version)
	var stats catalog.StatsReader
	if cfg.Database != nil {
		stats = cfg.Database
		health.Register("database", cfg.Database)
	}
	for name, check := range cfg.HealthChecks {
		health.Register(name, check)
	}

	home := NewHomeController(catalog.NewHomeController(stats), r)
	genres := NewGenresController(catalog.NewGenreController(cfg.Genres, cfg.Books, rules, cfg.Recorder), r)
	authors := NewAuthorsController(catalog.NewAuthorController(cfg.Authors, cfg.Books, cfg.Recorder), r)
	books := NewBooksController(catalog.NewBookController(cfg.Books, cfg.Authors, cfg.Genres, cfg.Recorder), r)

	// Health endpoint
	router.GET("/health", health.Status)

	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/catalog")
	})

	cat := router.Group("/catalog")
	cat.GET("", home.Index)

	// Genre routes
	cat.GET("/genres", genres.List)
	cat.GET("/genre/create", genres.CreateGet)
	cat.POST("/genre/create", genres.CreatePost)
	cat.GET("/genre/:id", genres.Detail)
	cat.GET("/genre/:id/delete", genres.DeleteGet)
	cat.POST("/genre/:id/delete", genres.DeletePost)
	cat.GET("/genre/:id/update", genres.UpdateGet)
	cat.POST("/genre/:id/update", genres.UpdatePost)

	// Author routes
	cat.GET("/authors", authors.List)
	cat.GET("/author/create", authors.CreateGet)
	cat.POST("/author/create", authors.CreatePost)
	cat.GET("/author/:id", authors.Detail)
	cat.GET("/author/:id/delete", authors.DeleteGet)
	cat.POST("/author/:id/delete", authors.DeletePost)
	cat.GET("/author/:id/update", authors.UpdateGet)
	cat.POST("/author/:id/update", authors.UpdatePost)

	// Book routes
	cat.GET("/books", books.List)
	cat.GET("/book/create", books.CreateGet)
	cat.POST("/book/create", books.CreatePost)
	cat.GET("/book/:id", books.Detail)
	cat.GET("/book/:id/delete", books.DeleteGet)
	cat.POST("/book/:id/delete", books.DeletePost)

	router.NoRoute(r.notFound)

	return router
}
