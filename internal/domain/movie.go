package domain

type MovieStatus string

const (
	MovieStatusActive   MovieStatus = "ACTIVE"
	MovieStatusInactive MovieStatus = "INACTIVE"
)

func (s MovieStatus) Valid() bool {
	return s == MovieStatusActive || s == MovieStatusInactive
}

// Movie is the client-side copy of a catalogue record. The EIDR code is the
// primary key and is immutable once the record exists; Categories holds
// category IDs with set semantics.
type Movie struct {
	EidrCode   string
	Name       string
	Rating     float64
	Year       int
	Status     MovieStatus
	Categories []int
}

type Category struct {
	ID   int
	Name string
}

// MovieDetails is a single movie together with its category IDs resolved to
// full Category values.
type MovieDetails struct {
	Movie      Movie
	Categories []Category
}

// Metadata carries the server-reported pagination state of a listing
// response. TotalPages is authoritative; it is recomputed by the backend on
// every query.
type Metadata struct {
	CurrentPage int
	PageSize    int
	TotalItems  int
	TotalPages  int
}

func (m Metadata) HasNext() bool {
	return m.CurrentPage < m.TotalPages
}

func (m Metadata) HasPrevious() bool {
	return m.CurrentPage > 1
}

type MovieTable struct {
	Movies   []Movie
	Metadata Metadata
}
