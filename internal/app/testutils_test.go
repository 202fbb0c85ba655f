package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	"github.com/metinatakli/movie-catalog-admin/internal/domain"
	"github.com/metinatakli/movie-catalog-admin/internal/listing"
	"github.com/metinatakli/movie-catalog-admin/internal/mocks"
	"github.com/metinatakli/movie-catalog-admin/internal/validator"
)

func newTestApplication(t *testing.T, catalogMock *mocks.MockCatalog, opts ...func(*application)) *application {
	t.Helper()

	templates, err := newTemplateCache()
	if err != nil {
		t.Fatalf("building template cache: %v", err)
	}

	if catalogMock.ListCategoriesFunc == nil {
		catalogMock.ListCategoriesFunc = func(ctx context.Context) ([]domain.Category, error) {
			return []domain.Category{{ID: 1, Name: "Action"}, {ID: 2, Name: "Drama"}}, nil
		}
	}

	app := &application{
		config:         config{pageSize: 5},
		logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		validator:      validator.NewValidator(),
		sessionManager: scs.New(),
		catalog:        catalogMock,
		loader:         listing.NewLoader(catalogMock),
		templates:      templates,
	}

	for _, opt := range opts {
		opt(app)
	}

	return app
}

// withSession loads a fresh session into the request context so handlers can
// put and pop flash messages without going through the middleware stack.
func withSession(t *testing.T, app *application, r *http.Request) *http.Request {
	t.Helper()

	ctx, err := app.sessionManager.Load(r.Context(), "")
	if err != nil {
		t.Fatalf("loading session: %v", err)
	}

	return r.WithContext(ctx)
}

// withEidrCodeParam injects a chi route parameter, matching what the router
// does for /movies/{eidrCode}/... paths.
func withEidrCodeParam(r *http.Request, raw string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("eidrCode", raw)

	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func getRequest(t *testing.T, app *application, target string) (*httptest.ResponseRecorder, *http.Request) {
	t.Helper()

	r := httptest.NewRequest(http.MethodGet, target, nil)
	r = withSession(t, app, r)

	return httptest.NewRecorder(), r
}

func postFormRequest(t *testing.T, app *application, target string, form url.Values) (*httptest.ResponseRecorder, *http.Request) {
	t.Helper()

	r := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r = withSession(t, app, r)

	return httptest.NewRecorder(), r
}

func singleMovieTable(movies ...domain.Movie) *domain.MovieTable {
	return &domain.MovieTable{
		Movies: movies,
		Metadata: domain.Metadata{
			CurrentPage: 1,
			PageSize:    5,
			TotalItems:  len(movies),
			TotalPages:  1,
		},
	}
}
