// Package listing owns the read side of the movie table: it issues listing
// queries and guarantees that the table rendered is always the result of the
// most recently issued query, never a slower, older one.
package listing

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/metinatakli/movie-catalog-admin/internal/domain"
)

// ErrSuperseded reports that a newer query was issued while this one was in
// flight. The caller should render the loader's current table instead.
var ErrSuperseded = errors.New("listing query superseded by a newer one")

type MovieLister interface {
	ListMovies(ctx context.Context, filter domain.MovieFilter) (*domain.MovieTable, error)
}

// Loader serializes listing queries against the catalogue. Each Load gets a
// monotonic sequence number and cancels the previous in-flight query; a
// response whose sequence number is no longer the latest is discarded. The
// last successful table is cached so a failed or superseded load can degrade
// to the previous view, and so Reconcile can adjust the display after a bulk
// delete without a re-query.
type Loader struct {
	lister MovieLister

	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
	table  *domain.MovieTable
}

func NewLoader(lister MovieLister) *Loader {
	return &Loader{lister: lister}
}

// Load fetches the table for the given filter. When the server reports fewer
// pages than the filter asks for, the query is re-issued clamped to the last
// page, keeping the rendered page inside [1, max(1, totalPages)].
func (l *Loader) Load(ctx context.Context, filter domain.MovieFilter) (*domain.MovieTable, error) {
	l.mu.Lock()
	l.seq++
	seq := l.seq

	if l.cancel != nil {
		l.cancel()
	}

	queryCtx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.mu.Unlock()

	table, err := l.lister.ListMovies(queryCtx, filter)

	l.mu.Lock()
	if seq != l.seq {
		l.mu.Unlock()
		return nil, ErrSuperseded
	}

	if err != nil {
		l.mu.Unlock()
		return nil, err
	}

	l.table = table
	l.mu.Unlock()

	// The requested page never exceeds the last available one; an empty
	// result set clamps back to page one.
	if pages := table.Metadata.TotalPages; filter.Page > max(pages, 1) {
		return l.Load(ctx, filter.GotoPage(max(pages, 1)))
	}

	return table, nil
}

// Table returns the most recently loaded (or reconciled) table, or nil when
// nothing has been loaded yet.
func (l *Loader) Table() *domain.MovieTable {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.table
}

// Reconcile removes the given EIDR codes from the cached table without
// re-querying. This is a display-only adjustment after a bulk delete; the
// pagination metadata beyond the item count is left as reported, and the
// next Load is the source of truth.
func (l *Loader) Reconcile(eidrCodes []string) *domain.MovieTable {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.table == nil {
		return nil
	}

	kept := slices.DeleteFunc(slices.Clone(l.table.Movies), func(m domain.Movie) bool {
		return slices.Contains(eidrCodes, m.EidrCode)
	})

	removed := len(l.table.Movies) - len(kept)

	table := &domain.MovieTable{
		Movies:   kept,
		Metadata: l.table.Metadata,
	}

	if table.Metadata.TotalItems >= removed {
		table.Metadata.TotalItems -= removed
	}

	l.table = table

	return table
}
