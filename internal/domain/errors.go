package domain

import "errors"

var (
	ErrMovieNotFound  = errors.New("movie not found")
	ErrDuplicateMovie = errors.New("movie already exists with this EIDR code")
	ErrUpstream       = errors.New("catalogue backend unavailable")
)
