package app

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/metinatakli/movie-catalog-admin/internal/domain"
	"github.com/metinatakli/movie-catalog-admin/internal/listing"
)

// listMovies renders the movie table. The whole listing state (filters,
// sort, page) lives in the query string; the handler only rebuilds it and
// asks the loader for the matching table.
func (app *application) listMovies(w http.ResponseWriter, r *http.Request) {
	filter := domain.ParseMovieFilter(r.URL.Query(), app.config.pageSize)

	data := listingPage{
		Filter: filter,
		Flash:  app.popFlash(r),
	}

	categories, err := app.catalog.ListCategories(r.Context())
	if err != nil {
		app.logError(r, err)
	}
	data.Categories = categories

	table, err := app.loader.Load(r.Context(), filter)
	switch {
	case errors.Is(err, listing.ErrSuperseded):
		// A newer query was issued while this one was in flight; its result
		// is the one to show.
		table = app.loader.Table()
	case err != nil:
		app.logError(r, err)
		table = app.loader.Table()
		data.Error = "Could not load movies from the catalogue. Showing the last known results."
	}

	if table == nil {
		table = &domain.MovieTable{
			Metadata: domain.Metadata{CurrentPage: 1, PageSize: filter.PageSize},
		}
	}

	// The loader may have clamped the page after a filter narrowed the
	// result set; links must build on the page actually rendered.
	if table.Metadata.CurrentPage >= 1 {
		data.Filter = filter.GotoPage(table.Metadata.CurrentPage)
	}
	data.Table = table

	app.render(w, r, http.StatusOK, "movies.tmpl", data)
}

// deleteMovies handles the bulk delete of the rows selected in the listing.
// On success the deleted codes are removed from the cached table and the
// listing is rendered directly from it, without a re-query; the next page
// navigation or filter change fetches authoritative state again.
func (app *application) deleteMovies(w http.ResponseWriter, r *http.Request) {
	err := r.ParseForm()
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	filter := domain.ParseMovieFilter(r.URL.Query(), app.config.pageSize)
	eidrCodes := r.PostForm["eidrCodes"]

	if len(eidrCodes) == 0 {
		app.flash(r, "Select at least one movie to delete.")
		http.Redirect(w, r, listingURL(filter), http.StatusSeeOther)
		return
	}

	err = app.catalog.DeleteMovies(r.Context(), eidrCodes)
	if err != nil {
		app.logError(r, err)
		app.flash(r, "Error deleting movies. Please try again.")
		http.Redirect(w, r, listingURL(filter), http.StatusSeeOther)
		return
	}

	table := app.loader.Reconcile(eidrCodes)
	if table == nil {
		app.flash(r, "Deleted the selected movies.")
		http.Redirect(w, r, listingURL(filter), http.StatusSeeOther)
		return
	}

	categories, err := app.catalog.ListCategories(r.Context())
	if err != nil {
		app.logError(r, err)
	}

	data := listingPage{
		Filter:     filter,
		Categories: categories,
		Table:      table,
		Flash:      fmt.Sprintf("Deleted %d movie(s).", len(eidrCodes)),
	}

	app.render(w, r, http.StatusOK, "movies.tmpl", data)
}

func listingURL(filter domain.MovieFilter) string {
	return "/?" + filter.Values().Encode()
}
