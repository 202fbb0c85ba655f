package app

import "net/http"

type sessionKey string

const (
	SessionKeyFlash = sessionKey("flash")
)

func (s sessionKey) String() string {
	return string(s)
}

func (app *application) flash(r *http.Request, message string) {
	app.sessionManager.Put(r.Context(), SessionKeyFlash.String(), message)
}

func (app *application) popFlash(r *http.Request) string {
	return app.sessionManager.PopString(r.Context(), SessionKeyFlash.String())
}
