package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func listPtr(values ...string) *[]string { return &values }

func TestSetFilterResetsPage(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
	}{
		{name: "status change", filter: Filter{Statuses: listPtr("success")}},
		{name: "school change", filter: Filter{SchoolIDs: listPtr("sch-1", "sch-2")}},
		{name: "search change", filter: Filter{Search: strPtr("abc")}},
		{name: "date change", filter: Filter{DateFrom: strPtr("2025-01-01")}},
		{name: "empty partial still resets", filter: Filter{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultState()
			s.Page = 7

			s.SetFilter(tt.filter)

			assert.Equal(t, 1, s.Page)
		})
	}
}

func TestSetFilterMergesPartially(t *testing.T) {
	s := DefaultState()
	s.SetFilter(Filter{Statuses: listPtr("pending"), Search: strPtr("fee")})

	// A later partial update must not clobber untouched fields.
	s.SetFilter(Filter{SchoolIDs: listPtr("sch-9")})

	assert.Equal(t, []string{"pending"}, s.Statuses)
	assert.Equal(t, "fee", s.Search)
	assert.Equal(t, []string{"sch-9"}, s.SchoolIDs)
}

func TestSetFilterDropsEmptyValues(t *testing.T) {
	s := DefaultState()
	s.SetFilter(Filter{Statuses: listPtr("", "failed", "")})
	assert.Equal(t, []string{"failed"}, s.Statuses)

	s.SetFilter(Filter{Statuses: listPtr()})
	assert.Nil(t, s.Statuses)
}

func TestSetSort(t *testing.T) {
	t.Run("same field toggles direction", func(t *testing.T) {
		s := DefaultState()
		s.SetSort("order_amount")
		assert.Equal(t, "order_amount", s.SortBy)
		assert.Equal(t, SortAsc, s.SortOrder)

		s.SetSort("order_amount")
		assert.Equal(t, SortDesc, s.SortOrder)

		s.SetSort("order_amount")
		assert.Equal(t, SortAsc, s.SortOrder)
	})

	t.Run("new field starts ascending", func(t *testing.T) {
		s := DefaultState()
		assert.Equal(t, SortDesc, s.SortOrder)

		s.SetSort("status")

		assert.Equal(t, "status", s.SortBy)
		assert.Equal(t, SortAsc, s.SortOrder)
	})

	t.Run("does not reset page", func(t *testing.T) {
		s := DefaultState()
		s.Page = 4
		s.SetSort("gateway")
		assert.Equal(t, 4, s.Page)
	})
}

func TestClear(t *testing.T) {
	s := DefaultState()
	s.Limit = 25
	s.SetSort("status")
	s.SetFilter(Filter{
		Statuses: listPtr("failed", "cancelled"),
		Search:   strPtr("bus fee"),
		DateFrom: strPtr("2025-01-01"),
		DateTo:   strPtr("2025-03-31"),
	})
	s.SetPage(3)

	s.Clear()

	assert.False(t, s.HasFilters())
	assert.Equal(t, 1, s.Page)
	// Sort and page size survive a clear.
	assert.Equal(t, "status", s.SortBy)
	assert.Equal(t, 25, s.Limit)
}

func TestStoreSequencesChanges(t *testing.T) {
	store := NewStore(DefaultState())

	var gotStates []State
	var gotSeqs []uint64
	store.Subscribe(func(s State, seq uint64) {
		gotStates = append(gotStates, s)
		gotSeqs = append(gotSeqs, seq)
	})

	store.SetFilter(Filter{Search: strPtr("abc")})
	store.SetPage(2)
	store.SetSort("status")

	// Exactly one notification per mutation, strictly increasing sequence.
	assert.Equal(t, []uint64{1, 2, 3}, gotSeqs)
	assert.Len(t, gotStates, 3)
	assert.Equal(t, "abc", gotStates[0].Search)
	assert.Equal(t, 2, gotStates[1].Page)

	assert.True(t, store.Stale(1))
	assert.True(t, store.Stale(2))
	assert.False(t, store.Stale(3))
}

func TestStoreReloadBumpsSequence(t *testing.T) {
	store := NewStore(DefaultState())
	before := store.Seq()

	var notified int
	store.Subscribe(func(State, uint64) { notified++ })
	store.Reload()

	assert.Equal(t, before+1, store.Seq())
	assert.Equal(t, 1, notified)
	assert.Equal(t, DefaultState(), store.State())
}
