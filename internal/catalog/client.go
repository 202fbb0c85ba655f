// Package catalog implements the HTTP client for the movie catalogue
// backend. The client is an explicitly constructed instance so that views
// and tests inject their own; there is no package-level singleton.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/metinatakli/movie-catalog-admin/internal/domain"
)

const (
	createMoviePath    = "/api/movie/create-movie"
	updateMoviePath    = "/api/movie/update-movie"
	deleteMoviesPath   = "/api/movie/delete-movies"
	getMoviesTablePath = "/api/movie/get-movies-table"
	getMoviePath       = "/api/movie/get-movie"
	getCategoriesPath  = "/api/movie/get-categories"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient returns a catalogue client for the given base URL. The timeout
// applies to every call and is surfaced through the same error path as a
// transport failure.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

var _ domain.CatalogService = (*Client)(nil)

func (c *Client) ListMovies(ctx context.Context, filter domain.MovieFilter) (*domain.MovieTable, error) {
	var result movieTableResult

	err := c.do(ctx, http.MethodPost, getMoviesTablePath, nil, toMoviesFilterRequest(filter), &result)
	if err != nil {
		return nil, err
	}

	return toMovieTable(result), nil
}

func (c *Client) GetMovie(ctx context.Context, eidrCode string) (*domain.MovieDetails, error) {
	query := url.Values{"eidrCode": []string{eidrCode}}

	var result getMovieResponse

	err := c.do(ctx, http.MethodGet, getMoviePath, query, nil, &result)
	if err != nil {
		return nil, err
	}

	details := &domain.MovieDetails{
		Movie:      toMovie(result.Movie),
		Categories: toCategories(result.Categories),
	}

	return details, nil
}

func (c *Client) CreateMovie(ctx context.Context, movie domain.Movie) (*domain.Movie, error) {
	var result movieResponse

	err := c.do(ctx, http.MethodPost, createMoviePath, nil, toMovieRequest(movie), &result)
	if err != nil {
		return nil, err
	}

	created := toMovie(result)

	return &created, nil
}

func (c *Client) UpdateMovie(ctx context.Context, movie domain.Movie) (*domain.Movie, error) {
	var result movieResponse

	err := c.do(ctx, http.MethodPut, updateMoviePath, nil, toMovieRequest(movie), &result)
	if err != nil {
		return nil, err
	}

	updated := toMovie(result)

	return &updated, nil
}

// DeleteMovies removes every listed code in one call. The backend may
// partially succeed when some codes do not exist; a 2xx response is treated
// as success for the codes that did.
func (c *Client) DeleteMovies(ctx context.Context, eidrCodes []string) error {
	body := deleteMoviesRequest{EidrCodes: eidrCodes}

	return c.do(ctx, http.MethodPost, deleteMoviesPath, nil, body, nil)
}

func (c *Client) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var result []categoryResponse

	err := c.do(ctx, http.MethodGet, getCategoriesPath, nil, nil, &result)
	if err != nil {
		return nil, err
	}

	return toCategories(result), nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, dst any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(data)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return errorFromResponse(resp)
	}

	if dst == nil {
		return nil
	}

	err = json.NewDecoder(resp.Body).Decode(dst)
	if err != nil {
		return fmt.Errorf("%w: decoding response: %v", domain.ErrUpstream, err)
	}

	return nil
}

// errorFromResponse maps backend status codes onto the domain error
// taxonomy. The backend is expected to report failures as {"message": ...};
// the status text is used when it does not.
func errorFromResponse(resp *http.Response) error {
	var body struct {
		Message string `json:"message"`
	}

	message := http.StatusText(resp.StatusCode)
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Message != "" {
		message = body.Message
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return domain.ErrMovieNotFound
	case resp.StatusCode == http.StatusConflict:
		return domain.ErrDuplicateMovie
	case resp.StatusCode >= 500:
		return fmt.Errorf("%w: %s", domain.ErrUpstream, message)
	default:
		return fmt.Errorf("catalogue rejected the request: %s", message)
	}
}
