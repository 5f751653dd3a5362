package tui

import (
	"github.com/harlow-hs/paydash/internal/model"
	"github.com/harlow-hs/paydash/internal/query"
)

// fetchRequest is one pending list fetch, recorded by the store subscriber
// and turned into exactly one command per state change.
type fetchRequest struct {
	state query.State
	seq   uint64
}

// Data loading messages.
type transactionsLoadedMsg struct {
	err          error
	transactions []model.Transaction
	meta         model.PaginationMeta
	seq          uint64
}

type lookupResultMsg struct {
	err     error
	orderID string
	txn     model.Transaction
}
