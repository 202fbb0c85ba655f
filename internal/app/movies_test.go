package app

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/metinatakli/movie-catalog-admin/internal/domain"
	"github.com/metinatakli/movie-catalog-admin/internal/mocks"
)

func TestListMovies(t *testing.T) {
	tests := []struct {
		name          string
		target        string
		listFunc      func(ctx context.Context, filter domain.MovieFilter) (*domain.MovieTable, error)
		wantFilter    *domain.MovieFilter
		wantInBody    []string
		wantNotInBody []string
	}{
		{
			name:   "default listing",
			target: "/",
			listFunc: func(ctx context.Context, filter domain.MovieFilter) (*domain.MovieTable, error) {
				return singleMovieTable(
					domain.Movie{EidrCode: "10.5240/AAAA", Name: "The Matrix", Rating: 8.7, Year: 1999, Status: domain.MovieStatusActive},
				), nil
			},
			wantFilter: &domain.MovieFilter{Page: 1, PageSize: 5, OrderBy: domain.SortByRating, Direction: domain.SortDesc},
			wantInBody: []string{"The Matrix", "Page 1 of 1", "/movies/10.5240%2FAAAA/edit"},
		},
		{
			name:   "filters and page are taken from the query string",
			target: "/?name=matrix&eidrCode=10.5240&category=1&category=2&page=2&sort=NAME&dir=ASC",
			listFunc: func(ctx context.Context, filter domain.MovieFilter) (*domain.MovieTable, error) {
				return &domain.MovieTable{
					Movies:   []domain.Movie{{EidrCode: "10.5240/AAAA", Name: "The Matrix"}},
					Metadata: domain.Metadata{CurrentPage: 2, PageSize: 5, TotalItems: 6, TotalPages: 2},
				}, nil
			},
			wantFilter: &domain.MovieFilter{
				CategoryIDs: []int{1, 2},
				Name:        "matrix",
				EidrCode:    "10.5240",
				Page:        2,
				PageSize:    5,
				OrderBy:     domain.SortByName,
				Direction:   domain.SortAsc,
			},
			wantInBody: []string{"Page 2 of 2"},
		},
		{
			name:   "empty result set",
			target: "/",
			listFunc: func(ctx context.Context, filter domain.MovieFilter) (*domain.MovieTable, error) {
				return &domain.MovieTable{
					Metadata: domain.Metadata{CurrentPage: 1, PageSize: 5},
				}, nil
			},
			wantInBody: []string{"No movies match the current filters.", "Page 1 of 0"},
			wantNotInBody: []string{
				`<a href="/?dir=DESC&amp;sort=RATING">Next</a>`,
				`<a href="/?dir=DESC&amp;sort=RATING">Previous</a>`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotFilter domain.MovieFilter

			catalogMock := &mocks.MockCatalog{
				ListMoviesFunc: func(ctx context.Context, filter domain.MovieFilter) (*domain.MovieTable, error) {
					gotFilter = filter
					return tt.listFunc(ctx, filter)
				},
			}

			app := newTestApplication(t, catalogMock)

			w, r := getRequest(t, app, tt.target)
			app.listMovies(w, r)

			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
			}

			if tt.wantFilter != nil {
				if diff := cmp.Diff(*tt.wantFilter, gotFilter); diff != "" {
					t.Errorf("filter mismatch (-want +got):\n%s", diff)
				}
			}

			body := w.Body.String()
			for _, want := range tt.wantInBody {
				if !strings.Contains(body, want) {
					t.Errorf("body does not contain %q", want)
				}
			}
			for _, notWant := range tt.wantNotInBody {
				if strings.Contains(body, notWant) {
					t.Errorf("body unexpectedly contains %q", notWant)
				}
			}
		})
	}
}

func TestListMoviesSortLinks(t *testing.T) {
	catalogMock := &mocks.MockCatalog{
		ListMoviesFunc: func(ctx context.Context, filter domain.MovieFilter) (*domain.MovieTable, error) {
			return singleMovieTable(domain.Movie{EidrCode: "10.5240/AAAA", Name: "The Matrix"}), nil
		},
	}

	app := newTestApplication(t, catalogMock)

	// Sorted by rating ascending: the rating header must link to the flipped
	// direction, the name header to its ascending default.
	w, r := getRequest(t, app, "/?sort=RATING&dir=ASC")
	app.listMovies(w, r)

	body := w.Body.String()

	ratingLink := "/?" + hrefQuery(url.Values{"sort": {"RATING"}, "dir": {"DESC"}})
	nameLink := "/?" + hrefQuery(url.Values{"sort": {"NAME"}, "dir": {"ASC"}})

	if !strings.Contains(body, ratingLink) {
		t.Errorf("body does not contain rating sort link %q", ratingLink)
	}
	if !strings.Contains(body, nameLink) {
		t.Errorf("body does not contain name sort link %q", nameLink)
	}
}

// hrefQuery renders url.Values the way they appear inside an href attribute.
func hrefQuery(values url.Values) string {
	return strings.ReplaceAll(values.Encode(), "&", "&amp;")
}

// The listing links carry pre-encoded query strings; this guards against the
// autoescaper percent-encoding them a second time, which would make every
// sort and pagination click silently reset the listing state.
func TestListMoviesNavigationLinks(t *testing.T) {
	catalogMock := &mocks.MockCatalog{
		ListMoviesFunc: func(ctx context.Context, filter domain.MovieFilter) (*domain.MovieTable, error) {
			return &domain.MovieTable{
				Movies:   []domain.Movie{{EidrCode: "10.5240/AAAA", Name: "The Matrix"}},
				Metadata: domain.Metadata{CurrentPage: 2, PageSize: 5, TotalItems: 12, TotalPages: 3},
			}, nil
		},
	}

	app := newTestApplication(t, catalogMock)

	w, r := getRequest(t, app, "/?page=2&sort=NAME&dir=ASC")
	app.listMovies(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	body := w.Body.String()

	wantLinks := map[string]string{
		"previous page": `<a href="/?` + hrefQuery(url.Values{"sort": {"NAME"}, "dir": {"ASC"}}) + `">Previous</a>`,
		"next page":     `<a href="/?` + hrefQuery(url.Values{"sort": {"NAME"}, "dir": {"ASC"}, "page": {"3"}}) + `">Next</a>`,
		"unselect all":  `<a href="/?` + hrefQuery(url.Values{"sort": {"NAME"}, "dir": {"ASC"}}) + `">Unselect all</a>`,
		"bulk delete":   `action="/movies/delete?` + hrefQuery(url.Values{"sort": {"NAME"}, "dir": {"ASC"}, "page": {"2"}}) + `"`,
	}

	for name, want := range wantLinks {
		if !strings.Contains(body, want) {
			t.Errorf("body does not contain the %s link %q", name, want)
		}
	}

	if strings.Contains(body, "%3d") || strings.Contains(body, "%26") {
		t.Errorf("listing links are double-escaped")
	}
}

func TestListMoviesBackendFailure(t *testing.T) {
	fail := false

	catalogMock := &mocks.MockCatalog{
		ListMoviesFunc: func(ctx context.Context, filter domain.MovieFilter) (*domain.MovieTable, error) {
			if fail {
				return nil, domain.ErrUpstream
			}
			return singleMovieTable(domain.Movie{EidrCode: "10.5240/AAAA", Name: "The Matrix"}), nil
		},
	}

	app := newTestApplication(t, catalogMock)

	w, r := getRequest(t, app, "/")
	app.listMovies(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	// The follow-up fetch fails; the previous table stays on screen with an
	// inline error instead of a crash.
	fail = true

	w, r = getRequest(t, app, "/?name=broken")
	app.listMovies(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	body := w.Body.String()

	if !strings.Contains(body, "Could not load movies") {
		t.Errorf("body does not contain the load error banner")
	}
	if !strings.Contains(body, "The Matrix") {
		t.Errorf("body does not contain the previously loaded table")
	}
}

func TestDeleteMovies(t *testing.T) {
	var deleted []string

	catalogMock := &mocks.MockCatalog{
		ListMoviesFunc: func(ctx context.Context, filter domain.MovieFilter) (*domain.MovieTable, error) {
			return singleMovieTable(
				domain.Movie{EidrCode: "10.5240/AAAA", Name: "The Matrix"},
				domain.Movie{EidrCode: "10.5240/BBBB", Name: "Arrival"},
			), nil
		},
		DeleteMoviesFunc: func(ctx context.Context, eidrCodes []string) error {
			deleted = eidrCodes
			return nil
		},
	}

	app := newTestApplication(t, catalogMock)

	// Seed the loader's cached table, as browsing the listing would.
	w, r := getRequest(t, app, "/")
	app.listMovies(w, r)

	// Delete one existing and one missing code; partial success is fine.
	form := url.Values{"eidrCodes": {"10.5240/AAAA", "10.5240/GONE"}}

	w, r = postFormRequest(t, app, "/movies/delete", form)
	app.deleteMovies(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	if diff := cmp.Diff([]string{"10.5240/AAAA", "10.5240/GONE"}, deleted); diff != "" {
		t.Errorf("deleted codes mismatch (-want +got):\n%s", diff)
	}

	body := w.Body.String()

	if strings.Contains(body, "The Matrix") {
		t.Errorf("deleted movie still rendered")
	}
	if !strings.Contains(body, "Arrival") {
		t.Errorf("remaining movie not rendered")
	}
	if !strings.Contains(body, "Deleted 2 movie(s).") {
		t.Errorf("body does not contain the delete confirmation")
	}
}

func TestDeleteMoviesWithoutSelection(t *testing.T) {
	catalogMock := &mocks.MockCatalog{
		DeleteMoviesFunc: func(ctx context.Context, eidrCodes []string) error {
			t.Fatal("DeleteMovies must not be called without a selection")
			return nil
		},
	}

	app := newTestApplication(t, catalogMock)

	w, r := postFormRequest(t, app, "/movies/delete", url.Values{})
	app.deleteMovies(w, r)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusSeeOther)
	}

	if got := app.popFlash(r); got != "Select at least one movie to delete." {
		t.Errorf("flash = %q, want selection prompt", got)
	}
}

func TestDeleteMoviesBackendFailure(t *testing.T) {
	catalogMock := &mocks.MockCatalog{
		DeleteMoviesFunc: func(ctx context.Context, eidrCodes []string) error {
			return domain.ErrUpstream
		},
	}

	app := newTestApplication(t, catalogMock)

	form := url.Values{"eidrCodes": {"10.5240/AAAA"}}

	w, r := postFormRequest(t, app, "/movies/delete", form)
	app.deleteMovies(w, r)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusSeeOther)
	}

	if got := app.popFlash(r); got != "Error deleting movies. Please try again." {
		t.Errorf("flash = %q, want delete error message", got)
	}
}
