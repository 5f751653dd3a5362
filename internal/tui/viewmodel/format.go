// Package viewmodel holds pure presentation helpers: formatting and the
// derived view state that components render. Nothing here touches the
// network or the terminal, which keeps it trivially testable.
package viewmodel

import (
	"fmt"
	"strings"
	"time"

	"github.com/harlow-hs/paydash/internal/model"
)

// FormatAmount renders a rupee amount with thousands separators.
func FormatAmount(amount float64) string {
	raw := fmt.Sprintf("%.2f", amount)

	sign := ""
	if strings.HasPrefix(raw, "-") {
		sign = "-"
		raw = raw[1:]
	}

	whole, frac, _ := strings.Cut(raw, ".")
	var b strings.Builder
	for i, digit := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}

	return sign + "₹" + b.String() + "." + frac
}

// FormatTime renders an optional payment timestamp, with a placeholder for
// transactions that never reached the gateway.
func FormatTime(t *time.Time) string {
	if t == nil {
		return "—"
	}
	return t.Local().Format("2006-01-02 15:04")
}

// StatusLabel renders a status for display.
func StatusLabel(s model.Status) string {
	if s == "" {
		return "unknown"
	}
	return string(s)
}

// Truncate shortens a string to max runes, appending an ellipsis.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	return string(runes[:max-1]) + "…"
}

// Fallback returns s, or the placeholder when s is empty.
func Fallback(s, placeholder string) string {
	if strings.TrimSpace(s) == "" {
		return placeholder
	}
	return s
}
