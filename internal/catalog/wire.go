package catalog

import "github.com/metinatakli/movie-catalog-admin/internal/domain"

// Wire shapes of the backend contract. Field names follow the backend's JSON
// exactly; mapping to and from domain types happens here and nowhere else.

type movieRequest struct {
	EidrCode   string  `json:"eidrCode"`
	Name       string  `json:"name"`
	Rating     float64 `json:"rating"`
	Year       int     `json:"year"`
	Status     string  `json:"status"`
	Categories []int   `json:"categories"`
}

type movieResponse struct {
	EidrCode   string  `json:"eidrCode"`
	Name       string  `json:"name"`
	Rating     float64 `json:"rating"`
	Year       int     `json:"year"`
	Status     string  `json:"status"`
	Categories []int   `json:"categories"`
}

type categoryResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type moviesFilterRequest struct {
	CategoryIDs []int  `json:"categoryIds,omitempty"`
	Name        string `json:"name,omitempty"`
	EidrCode    string `json:"eidrCode,omitempty"`
	Page        int    `json:"page"`
	PageSize    int    `json:"pageSize"`
	OrderBy     string `json:"orderBy"`
	Direction   string `json:"direction"`
}

type movieTableResult struct {
	Movies     []movieResponse `json:"movies"`
	Page       int             `json:"page"`
	PageSize   int             `json:"pageSize"`
	TotalItems int             `json:"totalItems"`
	TotalPages int             `json:"totalPages"`
}

type getMovieResponse struct {
	Movie      movieResponse      `json:"movie"`
	Categories []categoryResponse `json:"categories"`
}

type deleteMoviesRequest struct {
	EidrCodes []string `json:"eidrCodes"`
}

func toMovieRequest(movie domain.Movie) movieRequest {
	categories := movie.Categories
	if categories == nil {
		categories = []int{}
	}

	return movieRequest{
		EidrCode:   movie.EidrCode,
		Name:       movie.Name,
		Rating:     movie.Rating,
		Year:       movie.Year,
		Status:     string(movie.Status),
		Categories: categories,
	}
}

func toMovie(resp movieResponse) domain.Movie {
	return domain.Movie{
		EidrCode:   resp.EidrCode,
		Name:       resp.Name,
		Rating:     resp.Rating,
		Year:       resp.Year,
		Status:     domain.MovieStatus(resp.Status),
		Categories: resp.Categories,
	}
}

func toCategories(resps []categoryResponse) []domain.Category {
	categories := make([]domain.Category, len(resps))
	for i, resp := range resps {
		categories[i] = domain.Category{ID: resp.ID, Name: resp.Name}
	}

	return categories
}

func toMoviesFilterRequest(filter domain.MovieFilter) moviesFilterRequest {
	return moviesFilterRequest{
		CategoryIDs: filter.CategoryIDs,
		Name:        filter.Name,
		EidrCode:    filter.EidrCode,
		Page:        filter.Page,
		PageSize:    filter.PageSize,
		OrderBy:     string(filter.OrderBy),
		Direction:   string(filter.Direction),
	}
}

func toMovieTable(result movieTableResult) *domain.MovieTable {
	movies := make([]domain.Movie, len(result.Movies))
	for i, m := range result.Movies {
		movies[i] = toMovie(m)
	}

	return &domain.MovieTable{
		Movies: movies,
		Metadata: domain.Metadata{
			CurrentPage: result.Page,
			PageSize:    result.PageSize,
			TotalItems:  result.TotalItems,
			TotalPages:  result.TotalPages,
		},
	}
}
