package app

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
)

func (app *application) logError(r *http.Request, err error) {
	var (
		method = r.Method
		uri    = r.URL.RequestURI()
	)

	app.logger.Error(err.Error(), "method", method, "uri", uri)
}

// The errorResponse() method is a generic helper for rendering the error
// page with a given status code and message.
func (app *application) errorResponse(w http.ResponseWriter, r *http.Request, status int, message string) {
	data := errorPage{
		Title:     http.StatusText(status),
		Message:   message,
		RequestID: middleware.GetReqID(r.Context()),
	}

	app.render(w, r, status, "error.tmpl", data)
}

func (app *application) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)

	message := "The server encountered a problem and could not process your request"
	app.errorResponse(w, r, http.StatusInternalServerError, message)
}

func (app *application) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	message := "The requested resource not found"
	app.errorResponse(w, r, http.StatusNotFound, message)
}

func (app *application) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.errorResponse(w, r, http.StatusBadRequest, err.Error())
}
