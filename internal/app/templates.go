package app

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"net/url"
	"path/filepath"
	"slices"

	"github.com/metinatakli/movie-catalog-admin/internal/domain"
	"github.com/metinatakli/movie-catalog-admin/ui"
)

type listingPage struct {
	Filter     domain.MovieFilter
	Categories []domain.Category
	Table      *domain.MovieTable
	Flash      string
	Error      string
}

type formPage struct {
	Title        string
	Action       string
	DeleteAction string
	IsEdit       bool
	Form         movieForm
	FieldErrors  map[string]string
	Categories   []domain.Category
	Flash        string
	Error        string
}

type errorPage struct {
	Title     string
	Message   string
	RequestID string
	Flash     string
	Error     string
}

// The template functions lean on the MovieFilter transitions, so every link
// in the listing is derived from the same rules the handlers use. They
// return template.URL because the query strings are already encoded; handing
// them over as plain strings would make the autoescaper percent-encode them
// a second time and break every listing link.
var functions = template.FuncMap{
	"sortURL": func(f domain.MovieFilter, column string) template.URL {
		return listingHref(f.WithSort(domain.SortColumn(column)))
	},
	"sortIndicator": func(f domain.MovieFilter, column string) string {
		if f.OrderBy != domain.SortColumn(column) {
			return ""
		}
		if f.Direction == domain.SortAsc {
			return " ▲"
		}
		return " ▼"
	},
	"prevURL": func(f domain.MovieFilter) template.URL {
		return listingHref(f.PrevPage())
	},
	"nextURL": func(f domain.MovieFilter, meta domain.Metadata) template.URL {
		return listingHref(f.NextPage(meta))
	},
	"clearCategoriesURL": func(f domain.MovieFilter) template.URL {
		return listingHref(f.WithCategories(nil))
	},
	"bulkDeleteURL": func(f domain.MovieFilter) template.URL {
		return template.URL("/movies/delete?" + f.Values().Encode())
	},
	"categorySelected": func(f domain.MovieFilter, id int) bool {
		return slices.Contains(f.CategoryIDs, id)
	},
	"hasCategory": func(ids []int, id int) bool {
		return slices.Contains(ids, id)
	},
	"rowIndex": func(meta domain.Metadata, i int) int {
		return (meta.CurrentPage-1)*meta.PageSize + i + 1
	},
	"pathEscape": url.PathEscape,
	"statusIs": func(status domain.MovieStatus, value string) bool {
		return string(status) == value
	},
}

func listingHref(f domain.MovieFilter) template.URL {
	return template.URL("/?" + f.Values().Encode())
}

func newTemplateCache() (map[string]*template.Template, error) {
	cache := map[string]*template.Template{}

	pages, err := fs.Glob(ui.Files, "html/pages/*.tmpl")
	if err != nil {
		return nil, err
	}

	for _, page := range pages {
		name := filepath.Base(page)

		ts, err := template.New(name).Funcs(functions).ParseFS(ui.Files, "html/base.tmpl", page)
		if err != nil {
			return nil, err
		}

		cache[name] = ts
	}

	return cache, nil
}

// render writes a page through a buffer so a template failure can still
// produce a clean 500 instead of a half-written body.
func (app *application) render(w http.ResponseWriter, r *http.Request, status int, page string, data any) {
	ts, ok := app.templates[page]
	if !ok {
		app.logError(r, fmt.Errorf("template %s does not exist", page))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	buf := new(bytes.Buffer)

	err := ts.ExecuteTemplate(buf, "base", data)
	if err != nil {
		app.logError(r, err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}
