package query

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAPIQueryAlwaysCarriesPagingAndSort(t *testing.T) {
	state := DefaultState()
	state.Search = "abc"

	raw := APIQuery(state).Encode()

	for _, pair := range []string{
		"page=1", "limit=10", "sortBy=payment_time", "sortOrder=desc", "search=abc",
	} {
		assert.Contains(t, raw, pair)
	}
}

func TestAPIQueryRepeatsMultiValuedKeys(t *testing.T) {
	state := DefaultState()
	state.Statuses = []string{"success", "failed"}
	state.SchoolIDs = []string{"sch-1", "sch-2"}

	params := APIQuery(state)

	// Repeated keys, one occurrence per value: the server's convention, not
	// the address bar's comma-join.
	assert.Equal(t, []string{"success", "failed"}, params["status"])
	assert.Equal(t, []string{"sch-1", "sch-2"}, params["school_id"])
	assert.Equal(t, 2, strings.Count(params.Encode(), "status="))
}

func TestAPIQueryClampsInvalidPaging(t *testing.T) {
	state := State{Page: 0, Limit: -5, SortBy: DefaultSortBy, SortOrder: DefaultSortOrder}

	params := APIQuery(state)

	assert.Equal(t, "1", params.Get("page"))
	assert.Equal(t, "10", params.Get("limit"))
}

func TestAPIQueryOmitsEmptyOptionalFilters(t *testing.T) {
	params := APIQuery(DefaultState())

	for _, key := range []string{"search", "dateFrom", "dateTo", "status", "school_id"} {
		assert.NotContains(t, params, key)
	}
}

func TestScopedAPIQueryDropsSchoolFilter(t *testing.T) {
	state := DefaultState()
	state.SchoolIDs = []string{"sch-1"}
	state.Statuses = []string{"pending"}

	params := ScopedAPIQuery(state)

	assert.NotContains(t, params, "school_id")
	assert.Equal(t, []string{"pending"}, params["status"])
}
