package query

import (
	"net/url"
	"strconv"
)

// APIQuery serializes a state into the parameter form the server expects.
// Unlike Encode, page/limit/sort are always present, and multi-valued filters
// repeat the key once per value. The two encodings target different
// consumers and are kept as separate functions on purpose.
func APIQuery(s State) url.Values {
	params := url.Values{}

	page := s.Page
	if page < 1 {
		page = 1
	}
	limit := s.Limit
	if limit < 1 {
		limit = DefaultLimit
	}

	params.Set(paramPage, strconv.Itoa(page))
	params.Set(paramLimit, strconv.Itoa(limit))
	params.Set(paramSortBy, s.SortBy)
	params.Set(paramSortOrder, string(s.SortOrder))

	for _, status := range s.Statuses {
		params.Add(paramStatus, status)
	}
	for _, id := range s.SchoolIDs {
		params.Add(paramSchoolID, id)
	}
	if s.Search != "" {
		params.Set(paramSearch, s.Search)
	}
	if s.DateFrom != "" {
		params.Set(paramDateFrom, s.DateFrom)
	}
	if s.DateTo != "" {
		params.Set(paramDateTo, s.DateTo)
	}

	return params
}

// ScopedAPIQuery is APIQuery for the per-school endpoint, where the school is
// part of the path and must not also appear as a filter parameter.
func ScopedAPIQuery(s State) url.Values {
	scoped := s
	scoped.SchoolIDs = nil
	return APIQuery(scoped)
}
