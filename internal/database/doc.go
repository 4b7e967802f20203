// Package database provides the data access layer for the catalog.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup, migrations, stats, ErrNotFound
//	├── genres/          # Genre CRUD
//	├── authors/         # Author CRUD
//	├── books/           # Book CRUD, reference lookups, dangling-reference repair
//	└── audit/           # Audit event log
//
// # Using Sub-packages
//
//	db, err := database.NewDatabase("./catalog.db", "warn")
//
//	genresRepo := genres.NewRepository(db.DB)
//	booksRepo := books.NewRepository(db.DB)
//
//	genre, err := genresRepo.GetGenreByID(ctx, 3)
//	refs, err := booksRepo.FindBooksByGenre(ctx, 3)
//
// Lookups of a single record return ErrNotFound when nothing matches. List
// queries return an empty slice instead.
//
// # Interface Implementations
//
//   - genres.Repository: implements catalog.GenreStore
//   - authors.Repository: implements catalog.AuthorStore
//   - books.Repository: implements catalog.BookStore and tasks.GenreReferenceRepairer
//   - audit.Repository: backs audit.Service, which implements tasks.AuditPruner
//
// # Integrity
//
// Migrations run with foreign key constraints disabled. Uniqueness of genre
// names and the "no books reference it" delete rule are enforced by the
// catalog controllers with read-then-act checks.
package database
