package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Expense represents a purchase tracked by the application
type Expense struct {
	ID        int             `json:"id"`
	CreatedAt time.Time       `json:"created_at"`
	Serial    string          `json:"serial,omitempty"`
	Name      string          `json:"name"`
	URL       string          `json:"url,omitempty"`
	Shop      string          `json:"shop,omitempty"`
	Warranty  Warranty        `json:"warranty"`
	Price     decimal.Decimal `json:"price"`
	TrashedAt *time.Time      `json:"trashed_at,omitempty"`
}

// IsNew reports whether the expense has not been persisted yet.
func (e *Expense) IsNew() bool {
	return e.ID == 0
}

func (e *Expense) Trashed() bool {
	return e.TrashedAt != nil
}

// WarrantyAt is the calendar date the warranty coverage ends.
func (e *Expense) WarrantyAt() time.Time {
	return e.CreatedAt.AddDate(0, int(e.Warranty), 0)
}

func (e *Expense) WarrantyActive() bool {
	return e.WarrantyActiveAt(time.Now())
}

func (e *Expense) WarrantyActiveAt(now time.Time) bool {
	return e.WarrantyAt().After(now)
}

// Warranty is a warranty length in whole months.
type Warranty int

// ParseWarranty parses free-text warranty input. Accepted forms: empty (no
// warranty), a bare integer (years), "N year(s)"/"N an(s)" and
// "N month(s)"/"N mois".
func ParseWarranty(s string) (Warranty, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}

	fields := strings.Fields(strings.ToLower(s))
	n, err := strconv.Atoi(fields[0])
	if err != nil || n < 0 {
		return 0, fmt.Errorf("cannot parse warranty %q", s)
	}

	if len(fields) == 1 {
		return Warranty(n * 12), nil
	}
	if len(fields) > 2 {
		return 0, fmt.Errorf("cannot parse warranty %q", s)
	}

	switch fields[1] {
	case "year", "years", "an", "ans":
		return Warranty(n * 12), nil
	case "month", "months", "mois":
		return Warranty(n), nil
	default:
		return 0, fmt.Errorf("cannot parse warranty %q", s)
	}
}

func (w Warranty) String() string {
	switch {
	case w == 0:
		return ""
	case w == 12:
		return "1 year"
	case w%12 == 0:
		return fmt.Sprintf("%d years", w/12)
	case w == 1:
		return "1 month"
	default:
		return fmt.Sprintf("%d months", w)
	}
}
