package catalog

import (
	"context"

	"github.com/mrlokans/locallibrary/internal/database"
)

// StatsReader reports record counts for the catalog index.
type StatsReader interface {
	GetStats(ctx context.Context) (database.Stats, error)
}

type HomeController struct {
	stats StatsReader
}

func NewHomeController(stats StatsReader) *HomeController {
	return &HomeController{stats: stats}
}

// Index renders the catalog home page with the number of genres, authors
// and books.
func (hc *HomeController) Index(ctx context.Context) (Outcome, error) {
	var stats database.Stats
	if hc.stats != nil {
		var err error
		if stats, err = hc.stats.GetStats(ctx); err != nil {
			return Outcome{}, storeFailure("catalog stats", err)
		}
	}
	return render("index", Context{
		"title": "Local Library Home",
		"stats": stats,
	}), nil
}
