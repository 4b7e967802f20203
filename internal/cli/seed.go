package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/mrlokans/locallibrary/internal/database"
	"github.com/mrlokans/locallibrary/internal/database/authors"
	"github.com/mrlokans/locallibrary/internal/database/books"
	"github.com/mrlokans/locallibrary/internal/database/genres"
	"github.com/mrlokans/locallibrary/internal/entities"
)

type seedAuthor struct {
	first, family string
	born, died    string
	books         []seedBook
}

type seedBook struct {
	title, isbn, genre, summary string
}

var demoGenres = []string{"Fantasy", "Science Fiction", "Gothic", "Romance"}

var demoAuthors = []seedAuthor{
	{
		first: "Jane", family: "Austen", born: "1775-12-16", died: "1817-07-18",
		books: []seedBook{
			{title: "Pride and Prejudice", isbn: "9780141439518", genre: "Romance", summary: "Elizabeth Bennet meets Mr Darcy."},
			{title: "Emma", isbn: "9780141439587", genre: "Romance"},
		},
	},
	{
		first: "Mary", family: "Shelley", born: "1797-08-30", died: "1851-02-01",
		books: []seedBook{
			{title: "Frankenstein", isbn: "9780141439471", genre: "Gothic", summary: "A scientist creates life and regrets it."},
		},
	},
	{
		first: "Ursula", family: "Le Guin", born: "1929-10-21", died: "2018-01-22",
		books: []seedBook{
			{title: "A Wizard of Earthsea", isbn: "9780547773742", genre: "Fantasy"},
			{title: "The Left Hand of Darkness", isbn: "9780441478125", genre: "Science Fiction"},
		},
	},
	{
		first: "Isaac", family: "Asimov", born: "1920-01-02",
		books: []seedBook{
			{title: "Foundation", isbn: "9780553293357", genre: "Science Fiction"},
		},
	},
}

func newSeedCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Populate an empty catalog with demo genres, authors and books",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := database.NewDatabase(opts.cfg.Database.Path, opts.cfg.Database.LogLevel)
			if err != nil {
				return err
			}
			defer db.Close()

			return seed(cmd.Context(), db, cmd.OutOrStdout())
		},
	}
}

func seed(ctx context.Context, db *database.Database, out io.Writer) error {
	stats, err := db.GetStats(ctx)
	if err != nil {
		return err
	}
	if stats.Genres+stats.Authors+stats.Books > 0 {
		fmt.Fprintln(out, "Catalog is not empty, skipping seed")
		return nil
	}

	genreRepo := genres.NewRepository(db.DB)
	authorRepo := authors.NewRepository(db.DB)
	bookRepo := books.NewRepository(db.DB)

	created := make([]entities.Genre, 0, len(demoGenres))
	for _, name := range demoGenres {
		genre := entities.Genre{Name: name}
		if err := genreRepo.CreateGenre(ctx, &genre); err != nil {
			return fmt.Errorf("create genre %q: %w", name, err)
		}
		created = append(created, genre)
	}
	genreIDs := lo.SliceToMap(created, func(g entities.Genre) (string, uint) { return g.Name, g.ID })

	var bookCount int
	for _, a := range demoAuthors {
		author := entities.Author{
			FirstName:   a.first,
			FamilyName:  a.family,
			DateOfBirth: seedDate(a.born),
			DateOfDeath: seedDate(a.died),
		}
		if err := authorRepo.CreateAuthor(ctx, &author); err != nil {
			return fmt.Errorf("create author %q: %w", a.family, err)
		}

		for _, b := range a.books {
			book := entities.Book{
				Title:    b.title,
				ISBN:     b.isbn,
				Summary:  b.summary,
				AuthorID: author.ID,
			}
			if id, ok := genreIDs[b.genre]; ok {
				book.GenreID = lo.ToPtr(id)
			}
			if err := bookRepo.CreateBook(ctx, &book); err != nil {
				return fmt.Errorf("create book %q: %w", b.title, err)
			}
			bookCount++
		}
	}

	fmt.Fprintf(out, "Seeded %d genres, %d authors, %d books\n", len(created), len(demoAuthors), bookCount)
	return nil
}

func seedDate(value string) *time.Time {
	if value == "" {
		return nil
	}
	t, err := time.Parse(entities.ISODateLayout, value)
	if err != nil {
		return nil
	}
	return &t
}
