package domain

import (
	"net/url"
	"slices"
	"strconv"
)

type SortColumn string

const (
	SortByName   SortColumn = "NAME"
	SortByRating SortColumn = "RATING"
)

type SortDirection string

const (
	SortAsc  SortDirection = "ASC"
	SortDesc SortDirection = "DESC"
)

// MovieFilter is the listing query state: filters, sort and page. It is an
// immutable value; every transition returns a new filter with the page-reset
// rule applied, so the "filter or sort change resets to page 1" invariant
// cannot be skipped at a call site.
type MovieFilter struct {
	CategoryIDs []int
	Name        string
	EidrCode    string
	Page        int
	PageSize    int
	OrderBy     SortColumn
	Direction   SortDirection
}

// NewMovieFilter returns the initial listing state: first page, sorted by
// rating descending (the default the listing loads with).
func NewMovieFilter(pageSize int) MovieFilter {
	return MovieFilter{
		Page:      1,
		PageSize:  pageSize,
		OrderBy:   SortByRating,
		Direction: SortDesc,
	}
}

func (f MovieFilter) WithName(name string) MovieFilter {
	f.Name = name
	f.Page = 1
	return f
}

func (f MovieFilter) WithEidrCode(code string) MovieFilter {
	f.EidrCode = code
	f.Page = 1
	return f
}

func (f MovieFilter) WithCategories(ids []int) MovieFilter {
	f.CategoryIDs = slices.Clone(ids)
	f.Page = 1
	return f
}

// WithSort activates a sort column. Re-selecting the active column flips the
// direction; selecting a different column starts it ascending.
func (f MovieFilter) WithSort(column SortColumn) MovieFilter {
	if f.OrderBy == column {
		if f.Direction == SortAsc {
			f.Direction = SortDesc
		} else {
			f.Direction = SortAsc
		}
	} else {
		f.OrderBy = column
		f.Direction = SortAsc
	}

	f.Page = 1

	return f
}

// NextPage advances one page, or returns the filter unchanged when the
// current page is already the last one the server reported.
func (f MovieFilter) NextPage(meta Metadata) MovieFilter {
	if f.Page >= meta.TotalPages {
		return f
	}

	f.Page++

	return f
}

func (f MovieFilter) PrevPage() MovieFilter {
	if f.Page <= 1 {
		return f
	}

	f.Page--

	return f
}

func (f MovieFilter) GotoPage(page int) MovieFilter {
	if page < 1 {
		page = 1
	}

	f.Page = page

	return f
}

// Values encodes the filter as URL query parameters, the inverse of
// ParseMovieFilter. The whole listing state lives in the query string so
// that every table link is a plain GET.
func (f MovieFilter) Values() url.Values {
	values := url.Values{}

	if f.Name != "" {
		values.Set("name", f.Name)
	}
	if f.EidrCode != "" {
		values.Set("eidrCode", f.EidrCode)
	}
	for _, id := range f.CategoryIDs {
		values.Add("category", strconv.Itoa(id))
	}
	if f.Page > 1 {
		values.Set("page", strconv.Itoa(f.Page))
	}

	values.Set("sort", string(f.OrderBy))
	values.Set("dir", string(f.Direction))

	return values
}

// ParseMovieFilter rebuilds a filter from URL query parameters. Unknown or
// malformed values fall back to the defaults of NewMovieFilter.
func ParseMovieFilter(values url.Values, pageSize int) MovieFilter {
	f := NewMovieFilter(pageSize)

	f.Name = values.Get("name")
	f.EidrCode = values.Get("eidrCode")

	for _, raw := range values["category"] {
		if id, err := strconv.Atoi(raw); err == nil {
			f.CategoryIDs = append(f.CategoryIDs, id)
		}
	}

	if page, err := strconv.Atoi(values.Get("page")); err == nil && page >= 1 {
		f.Page = page
	}

	switch SortColumn(values.Get("sort")) {
	case SortByName:
		f.OrderBy = SortByName
	case SortByRating:
		f.OrderBy = SortByRating
	}

	switch SortDirection(values.Get("dir")) {
	case SortAsc:
		f.Direction = SortAsc
	case SortDesc:
		f.Direction = SortDesc
	}

	return f
}
