package query

import (
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Address-bar parameter names. Multi-valued fields are comma-joined into a
// single key to keep shared URLs short; this differs from the API request
// encoding in request.go, which repeats keys.
const (
	paramPage      = "page"
	paramLimit     = "limit"
	paramSortBy    = "sortBy"
	paramSortOrder = "sortOrder"
	paramStatus    = "status"
	paramSchoolID  = "school_id"
	paramSearch    = "search"
	paramDateFrom  = "dateFrom"
	paramDateTo    = "dateTo"

	listSeparator = ","

	dateLayout = "2006-01-02"
)

// Encode serializes a state into address-bar parameters, omitting every field
// that still holds its default so an unfiltered view produces a clean URL.
func Encode(s State) url.Values {
	params := url.Values{}

	if s.Page > 1 {
		params.Set(paramPage, strconv.Itoa(s.Page))
	}
	if s.Limit != DefaultLimit && s.Limit > 0 {
		params.Set(paramLimit, strconv.Itoa(s.Limit))
	}
	if s.SortBy != DefaultSortBy {
		params.Set(paramSortBy, s.SortBy)
	}
	if s.SortOrder != DefaultSortOrder {
		params.Set(paramSortOrder, string(s.SortOrder))
	}
	if len(s.Statuses) > 0 {
		params.Set(paramStatus, strings.Join(s.Statuses, listSeparator))
	}
	if len(s.SchoolIDs) > 0 {
		params.Set(paramSchoolID, strings.Join(s.SchoolIDs, listSeparator))
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

// Decode hydrates a state from address-bar parameters. Decoding never fails:
// malformed numbers fall back to their defaults, malformed dates are dropped,
// and unrecognized keys are ignored. For any in-domain state s,
// Decode(Encode(s)) == s.
func Decode(params url.Values) State {
	s := DefaultState()

	if page := parsePositiveInt(params.Get(paramPage)); page > 0 {
		s.Page = page
	}
	if limit := parsePositiveInt(params.Get(paramLimit)); limit > 0 {
		s.Limit = limit
	}
	if sortBy := params.Get(paramSortBy); sortBy != "" {
		s.SortBy = sortBy
	}
	switch SortOrder(params.Get(paramSortOrder)) {
	case SortAsc:
		s.SortOrder = SortAsc
	case SortDesc:
		s.SortOrder = SortDesc
	}
	s.Statuses = splitList(params.Get(paramStatus))
	s.SchoolIDs = splitList(params.Get(paramSchoolID))
	s.Search = params.Get(paramSearch)
	s.DateFrom = parseDate(params.Get(paramDateFrom))
	s.DateTo = parseDate(params.Get(paramDateTo))

	return s
}

func parsePositiveInt(raw string) int {
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0
	}
	return n
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	return normalizeList(strings.Split(raw, listSeparator))
}

func parseDate(raw string) string {
	if raw == "" {
		return ""
	}
	if _, err := time.Parse(dateLayout, raw); err != nil {
		return ""
	}
	return raw
}
