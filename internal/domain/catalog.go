package domain

import "context"

// CatalogService is the full client-side contract with the movie catalogue
// backend. Reads are idempotent; CreateMovie is not; UpdateMovie is
// idempotent by value; DeleteMovies is idempotent by set-membership and may
// partially succeed when some codes do not exist.
type CatalogService interface {
	ListMovies(ctx context.Context, filter MovieFilter) (*MovieTable, error)
	GetMovie(ctx context.Context, eidrCode string) (*MovieDetails, error)
	CreateMovie(ctx context.Context, movie Movie) (*Movie, error)
	UpdateMovie(ctx context.Context, movie Movie) (*Movie, error)
	DeleteMovies(ctx context.Context, eidrCodes []string) error
	ListCategories(ctx context.Context) ([]Category, error)
}
