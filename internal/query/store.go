package query

// ChangeFunc receives the state after a mutation together with the sequence
// number assigned to that mutation.
type ChangeFunc func(s State, seq uint64)

// Store owns the single query state for a view and notifies a subscriber
// after every mutation. Each mutation gets a monotonically increasing
// sequence number; a fetch triggered by a mutation carries that number, so a
// response arriving after a newer mutation can be recognized as stale and
// discarded. The store is owned by one event loop and is not safe for
// concurrent use.
type Store struct {
	onChange ChangeFunc
	state    State
	seq      uint64
}

// NewStore creates a store holding the given initial state at sequence 0.
func NewStore(initial State) *Store {
	return &Store{state: initial}
}

// Subscribe registers the single change subscriber. A later call replaces an
// earlier one.
func (st *Store) Subscribe(fn ChangeFunc) {
	st.onChange = fn
}

// State returns a copy of the current state.
func (st *Store) State() State {
	return st.state
}

// Seq returns the sequence number of the most recent mutation.
func (st *Store) Seq() uint64 {
	return st.seq
}

// Stale reports whether a response tagged with seq no longer matches the
// current state.
func (st *Store) Stale(seq uint64) bool {
	return seq != st.seq
}

// SetFilter applies a partial filter update. See State.SetFilter.
func (st *Store) SetFilter(f Filter) {
	st.state.SetFilter(f)
	st.notify()
}

// SetSort selects a sort field. See State.SetSort.
func (st *Store) SetSort(field string) {
	st.state.SetSort(field)
	st.notify()
}

// SetPage moves to page n. See State.SetPage.
func (st *Store) SetPage(n int) {
	st.state.SetPage(n)
	st.notify()
}

// Clear drops all filters. See State.Clear.
func (st *Store) Clear() {
	st.state.Clear()
	st.notify()
}

// Reload bumps the sequence without changing state, forcing the subscriber to
// fetch again. Used for manual refresh after a failed load.
func (st *Store) Reload() {
	st.notify()
}

func (st *Store) notify() {
	st.seq++
	if st.onChange != nil {
		st.onChange(st.state, st.seq)
	}
}
