package validator

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/metinatakli/movie-catalog-admin/internal/domain"
)

const earliestReleaseYear = 1888

func NewValidator() *validator.Validate {
	validator := validator.New(validator.WithRequiredStructEnabled())

	validator.RegisterValidation("movie_status", validateMovieStatus)
	validator.RegisterValidation("release_year", validateReleaseYear)

	return validator
}

func validateMovieStatus(fl validator.FieldLevel) bool {
	return domain.MovieStatus(fl.Field().String()).Valid()
}

// Release years run from the first film ever registered up to five years
// ahead, which covers announced productions.
func validateReleaseYear(fl validator.FieldLevel) bool {
	year := int(fl.Field().Int())

	return year >= earliestReleaseYear && year <= time.Now().Year()+5
}

// ValidationMessage converts validator errors into readable messages
func ValidationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters long", err.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters long", err.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", err.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", err.Param())
	case "movie_status":
		return "must be either ACTIVE or INACTIVE"
	case "release_year":
		return fmt.Sprintf("must be between %d and %d", earliestReleaseYear, time.Now().Year()+5)
	default:
		return "is invalid"
	}
}
