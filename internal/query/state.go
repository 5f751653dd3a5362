// Package query holds the filter/sort/pagination state that governs a
// transaction list view, plus its two serializations: the shareable
// address-bar form and the API request form. The two formats are deliberately
// separate and must not be conflated.
package query

// SortOrder is a sort direction.
type SortOrder string

// Sort directions.
const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Default values for a freshly opened view.
const (
	DefaultLimit     = 10
	DefaultSortBy    = "payment_time"
	DefaultSortOrder = SortDesc
)

// State is the canonical query state for one list view. Exactly one copy
// exists per view; mutations go through the methods below so page-reset
// semantics stay consistent.
type State struct {
	Page      int
	Limit     int
	SortBy    string
	SortOrder SortOrder
	Statuses  []string
	SchoolIDs []string
	Search    string
	DateFrom  string
	DateTo    string
}

// Filter carries a partial filter update. Nil fields are left untouched by
// SetFilter; non-nil fields replace the corresponding state field.
type Filter struct {
	Statuses  *[]string
	SchoolIDs *[]string
	Search    *string
	DateFrom  *string
	DateTo    *string
}

// DefaultState returns the state of a view with nothing applied.
func DefaultState() State {
	return State{
		Page:      1,
		Limit:     DefaultLimit,
		SortBy:    DefaultSortBy,
		SortOrder: DefaultSortOrder,
	}
}

// SetFilter merges the given filter fields into the state. Any filter change
// invalidates the current page position, so the page always resets to 1.
func (s *State) SetFilter(f Filter) {
	if f.Statuses != nil {
		s.Statuses = normalizeList(*f.Statuses)
	}
	if f.SchoolIDs != nil {
		s.SchoolIDs = normalizeList(*f.SchoolIDs)
	}
	if f.Search != nil {
		s.Search = *f.Search
	}
	if f.DateFrom != nil {
		s.DateFrom = *f.DateFrom
	}
	if f.DateTo != nil {
		s.DateTo = *f.DateTo
	}
	s.Page = 1
}

// SetSort selects a sort field. Selecting the current field flips the
// direction; selecting a new field starts ascending. The page is not reset:
// reordering does not invalidate the page position.
func (s *State) SetSort(field string) {
	if field == s.SortBy {
		if s.SortOrder == SortAsc {
			s.SortOrder = SortDesc
		} else {
			s.SortOrder = SortAsc
		}
		return
	}
	s.SortBy = field
	s.SortOrder = SortAsc
}

// SetPage moves to page n. No bounds are checked here; prev/next controls are
// enabled from the server-reported pagination flags instead.
func (s *State) SetPage(n int) {
	s.Page = n
}

// Clear drops all filters and returns to page 1, keeping sort and page size.
func (s *State) Clear() {
	s.Statuses = nil
	s.SchoolIDs = nil
	s.Search = ""
	s.DateFrom = ""
	s.DateTo = ""
	s.Page = 1
}

// HasFilters reports whether any filter field is set.
func (s State) HasFilters() bool {
	return len(s.Statuses) > 0 || len(s.SchoolIDs) > 0 ||
		s.Search != "" || s.DateFrom != "" || s.DateTo != ""
}

// normalizeList drops empty entries and returns nil for an empty result so
// cleared filters compare equal to never-set ones.
func normalizeList(values []string) []string {
	var out []string
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
