package mocks

import (
	"context"

	"github.com/metinatakli/movie-catalog-admin/internal/domain"
)

type MockCatalog struct {
	domain.CatalogService
	ListMoviesFunc     func(ctx context.Context, filter domain.MovieFilter) (*domain.MovieTable, error)
	GetMovieFunc       func(ctx context.Context, eidrCode string) (*domain.MovieDetails, error)
	CreateMovieFunc    func(ctx context.Context, movie domain.Movie) (*domain.Movie, error)
	UpdateMovieFunc    func(ctx context.Context, movie domain.Movie) (*domain.Movie, error)
	DeleteMoviesFunc   func(ctx context.Context, eidrCodes []string) error
	ListCategoriesFunc func(ctx context.Context) ([]domain.Category, error)
}

func (m *MockCatalog) ListMovies(ctx context.Context, filter domain.MovieFilter) (*domain.MovieTable, error) {
	return m.ListMoviesFunc(ctx, filter)
}

func (m *MockCatalog) GetMovie(ctx context.Context, eidrCode string) (*domain.MovieDetails, error) {
	return m.GetMovieFunc(ctx, eidrCode)
}

func (m *MockCatalog) CreateMovie(ctx context.Context, movie domain.Movie) (*domain.Movie, error) {
	return m.CreateMovieFunc(ctx, movie)
}

func (m *MockCatalog) UpdateMovie(ctx context.Context, movie domain.Movie) (*domain.Movie, error) {
	return m.UpdateMovieFunc(ctx, movie)
}

func (m *MockCatalog) DeleteMovies(ctx context.Context, eidrCodes []string) error {
	return m.DeleteMoviesFunc(ctx, eidrCodes)
}

func (m *MockCatalog) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return m.ListCategoriesFunc(ctx)
}
