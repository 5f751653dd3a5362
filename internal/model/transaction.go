// Package model defines the wire-level data types returned by the payments API.
package model

import (
	"strings"
	"time"
)

// Status is a transaction payment status as reported by the gateway.
type Status string

// Known payment statuses.
const (
	StatusSuccess   Status = "success"
	StatusPending   Status = "pending"
	StatusFailed    Status = "failed"
	StatusCancelled Status = "cancelled"
)

// KnownStatuses lists every status the API is documented to return, in
// display order.
var KnownStatuses = []Status{StatusSuccess, StatusPending, StatusFailed, StatusCancelled}

// ParseStatus normalizes a server-supplied status string. Matching is
// case-insensitive; unknown values are passed through lowercased so the UI
// can still display them.
func ParseStatus(s string) Status {
	normalized := Status(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range KnownStatuses {
		if normalized == known {
			return known
		}
	}
	return normalized
}

// IsKnown reports whether the status is one of the documented values.
func (s Status) IsKnown() bool {
	switch s {
	case StatusSuccess, StatusPending, StatusFailed, StatusCancelled:
		return true
	}
	return false
}

// Student is the optional student sub-record embedded in a transaction.
type Student struct {
	Name  string `json:"name"`
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Transaction is a single school-payment record. The server owns these; the
// client holds read-only copies for the duration of a page view.
type Transaction struct {
	CollectID         string     `json:"collect_id"`
	CustomOrderID     string     `json:"custom_order_id"`
	SchoolID          string     `json:"school_id"`
	Gateway           string     `json:"gateway"`
	OrderAmount       float64    `json:"order_amount"`
	TransactionAmount float64    `json:"transaction_amount"`
	Status            Status     `json:"status"`
	PaymentTime       *time.Time `json:"payment_time,omitempty"`
	PaymentMode       string     `json:"payment_mode"`
	BankReference     string     `json:"bank_reference"`
	ErrorMessage      string     `json:"error_message"`
	Student           *Student   `json:"student_info,omitempty"`
}

// PaginationMeta is the server-computed pagination envelope. The client never
// derives these values locally.
type PaginationMeta struct {
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	TotalCount  int  `json:"totalCount"`
	HasNextPage bool `json:"hasNextPage"`
	HasPrevPage bool `json:"hasPrevPage"`
}
