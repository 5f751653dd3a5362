package viewmodel

import "github.com/harlow-hs/paydash/internal/model"

// StatusStat aggregates the loaded page for one status.
type StatusStat struct {
	Count  int
	Amount float64
}

// Stats is the data behind the stat cards. Counts and amounts cover the
// currently loaded page; TotalCount is the server-wide total.
type Stats struct {
	ByStatus   map[model.Status]StatusStat
	PageCount  int
	PageAmount float64
	TotalCount int
}

// BuildStats aggregates one page of transactions into stat-card data.
func BuildStats(txns []model.Transaction, meta model.PaginationMeta) Stats {
	stats := Stats{
		ByStatus:   make(map[model.Status]StatusStat),
		PageCount:  len(txns),
		TotalCount: meta.TotalCount,
	}

	for _, txn := range txns {
		stat := stats.ByStatus[txn.Status]
		stat.Count++
		stat.Amount += txn.TransactionAmount
		stats.ByStatus[txn.Status] = stat
		stats.PageAmount += txn.TransactionAmount
	}

	return stats
}
