package viewmodel

import (
	"fmt"

	"github.com/harlow-hs/paydash/internal/model"
)

// PageControls is the enablement state of the pagination controls. It is
// derived only from the server-reported flags; the client never computes
// page bounds itself.
type PageControls struct {
	PrevEnabled bool
	NextEnabled bool
}

// Controls derives the pagination control state from server metadata.
func Controls(meta model.PaginationMeta) PageControls {
	return PageControls{
		PrevEnabled: meta.HasPrevPage,
		NextEnabled: meta.HasNextPage,
	}
}

// PageLabel renders the pagination footer text.
func PageLabel(meta model.PaginationMeta) string {
	if meta.TotalCount == 0 {
		return "No transactions"
	}
	return fmt.Sprintf("Page %d of %d · %d transactions", meta.CurrentPage, meta.TotalPages, meta.TotalCount)
}
