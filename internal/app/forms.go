package app

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/metinatakli/movie-catalog-admin/internal/domain"
	appvalidator "github.com/metinatakli/movie-catalog-admin/internal/validator"
)

type movieForm struct {
	EidrCode   string             `validate:"required,max=120"`
	Name       string             `validate:"required,max=255"`
	Rating     float64            `validate:"gte=0,lte=10"`
	Year       int                `validate:"release_year"`
	Status     domain.MovieStatus `validate:"movie_status"`
	Categories []int              `validate:"-"`
}

func newMovieForm() movieForm {
	return movieForm{
		Rating: 0,
		Year:   time.Now().Year(),
		Status: domain.MovieStatusActive,
	}
}

func (f movieForm) toMovie() domain.Movie {
	return domain.Movie{
		EidrCode:   f.EidrCode,
		Name:       f.Name,
		Rating:     f.Rating,
		Year:       f.Year,
		Status:     f.Status,
		Categories: f.Categories,
	}
}

func (app *application) createMovieForm(w http.ResponseWriter, r *http.Request) {
	data := formPage{
		Title:  "Create Movie",
		Action: "/movies/new",
		Form:   newMovieForm(),
		Flash:  app.popFlash(r),
	}

	categories, err := app.catalog.ListCategories(r.Context())
	if err != nil {
		app.logError(r, err)
	}
	data.Categories = categories

	app.render(w, r, http.StatusOK, "movie_form.tmpl", data)
}

func (app *application) createMovie(w http.ResponseWriter, r *http.Request) {
	form, fieldErrors, err := app.decodeMovieForm(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	data := formPage{
		Title:       "Create Movie",
		Action:      "/movies/new",
		Form:        form,
		FieldErrors: fieldErrors,
	}

	if len(fieldErrors) > 0 {
		app.renderFormPage(w, r, http.StatusUnprocessableEntity, data)
		return
	}

	_, err = app.catalog.CreateMovie(r.Context(), form.toMovie())
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateMovie):
			data.Error = "A movie with EIDR code " + form.EidrCode + " already exists."
			app.renderFormPage(w, r, http.StatusUnprocessableEntity, data)
		default:
			app.logError(r, err)
			data.Error = "Error creating movie. Please try again."
			app.renderFormPage(w, r, http.StatusOK, data)
		}
		return
	}

	app.flash(r, "Movie created successfully!")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (app *application) editMovieForm(w http.ResponseWriter, r *http.Request) {
	eidrCode, err := pathEidrCode(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	details, err := app.catalog.GetMovie(r.Context(), eidrCode)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMovieNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	selected := make([]int, len(details.Categories))
	for i, category := range details.Categories {
		selected[i] = category.ID
	}

	form := movieForm{
		EidrCode:   details.Movie.EidrCode,
		Name:       details.Movie.Name,
		Rating:     details.Movie.Rating,
		Year:       details.Movie.Year,
		Status:     details.Movie.Status,
		Categories: selected,
	}

	data := formPage{
		Title:        "Edit Movie",
		Action:       editActionURL(eidrCode),
		DeleteAction: deleteActionURL(eidrCode),
		IsEdit:       true,
		Form:         form,
		Flash:        app.popFlash(r),
	}

	categories, err := app.catalog.ListCategories(r.Context())
	if err != nil {
		app.logError(r, err)
	}
	data.Categories = categories

	app.render(w, r, http.StatusOK, "movie_form.tmpl", data)
}

func (app *application) updateMovie(w http.ResponseWriter, r *http.Request) {
	eidrCode, err := pathEidrCode(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	form, fieldErrors, err := app.decodeMovieForm(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	// The EIDR code is the lookup key and is not editable on the edit form;
	// it always comes from the path.
	form.EidrCode = eidrCode
	delete(fieldErrors, "eidrCode")

	data := formPage{
		Title:        "Edit Movie",
		Action:       editActionURL(eidrCode),
		DeleteAction: deleteActionURL(eidrCode),
		IsEdit:       true,
		Form:         form,
		FieldErrors:  fieldErrors,
	}

	if len(fieldErrors) > 0 {
		app.renderFormPage(w, r, http.StatusUnprocessableEntity, data)
		return
	}

	_, err = app.catalog.UpdateMovie(r.Context(), form.toMovie())
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMovieNotFound):
			app.notFoundResponse(w, r)
		default:
			app.logError(r, err)
			data.Error = "Error updating movie. Please try again."
			app.renderFormPage(w, r, http.StatusOK, data)
		}
		return
	}

	app.flash(r, "Movie updated successfully!")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// deleteMovie removes a single movie from the edit view, expressed as a
// one-element bulk delete.
func (app *application) deleteMovie(w http.ResponseWriter, r *http.Request) {
	eidrCode, err := pathEidrCode(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.catalog.DeleteMovies(r.Context(), []string{eidrCode})
	if err != nil {
		app.logError(r, err)
		app.flash(r, "Error deleting movie. Please try again.")
		http.Redirect(w, r, editActionURL(eidrCode), http.StatusSeeOther)
		return
	}

	app.flash(r, "Movie deleted successfully!")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// decodeMovieForm parses the submitted form and validates it. Unparseable
// numeric fields and validation failures are reported per field so the form
// can re-render with the user's input intact.
func (app *application) decodeMovieForm(r *http.Request) (movieForm, map[string]string, error) {
	err := r.ParseForm()
	if err != nil {
		return movieForm{}, nil, err
	}

	form := movieForm{
		EidrCode: strings.TrimSpace(r.PostForm.Get("eidrCode")),
		Name:     strings.TrimSpace(r.PostForm.Get("name")),
		Status:   domain.MovieStatus(r.PostForm.Get("status")),
	}

	fieldErrors := map[string]string{}

	if raw := r.PostForm.Get("rating"); raw != "" {
		form.Rating, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			fieldErrors["rating"] = "must be a number"
		}
	}

	if raw := r.PostForm.Get("year"); raw != "" {
		form.Year, err = strconv.Atoi(raw)
		if err != nil {
			fieldErrors["year"] = "must be a whole number"
		}
	}

	for _, raw := range r.PostForm["categories"] {
		id, err := strconv.Atoi(raw)
		if err != nil {
			fieldErrors["categories"] = "must be category IDs"
			continue
		}
		form.Categories = append(form.Categories, id)
	}

	err = app.validator.Struct(form)
	if err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return form, fieldErrors, err
		}

		for _, fieldError := range validationErrors {
			name := lowerFirst(fieldError.Field())
			if _, ok := fieldErrors[name]; !ok {
				fieldErrors[name] = appvalidator.ValidationMessage(fieldError)
			}
		}
	}

	return form, fieldErrors, nil
}

// renderFormPage re-renders the form with the user's values; the categories
// multi-select needs the full category list on every render.
func (app *application) renderFormPage(w http.ResponseWriter, r *http.Request, status int, data formPage) {
	categories, err := app.catalog.ListCategories(r.Context())
	if err != nil {
		app.logError(r, err)
	}
	data.Categories = categories

	app.render(w, r, status, "movie_form.tmpl", data)
}

func pathEidrCode(r *http.Request) (string, error) {
	return url.PathUnescape(chi.URLParam(r, "eidrCode"))
}

func editActionURL(eidrCode string) string {
	return "/movies/" + url.PathEscape(eidrCode) + "/edit"
}

func deleteActionURL(eidrCode string) string {
	return "/movies/" + url.PathEscape(eidrCode) + "/delete"
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}

	return string(unicode.ToLower(r)) + s[size:]
}
