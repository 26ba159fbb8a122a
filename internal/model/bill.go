package model

import (
	"fmt"
	"time"
)

const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusRefused  = "refused"
)

// DefaultPct is the VAT percentage applied when the form field is left blank
const DefaultPct = 20

// ExpenseTypes are the only categories a bill may carry
var ExpenseTypes = []string{
	"Transports",
	"Restaurants",
	"Hôtel et logement",
	"Services en ligne",
	"IT et électronique",
	"Equipement et matériel",
	"Fournitures de bureau",
}

// statusLabels maps a stored status to its display label
var statusLabels = map[string]string{
	StatusPending:  "En attente",
	StatusAccepted: "Accepté",
	StatusRefused:  "Refusé",
}

// StatusLabel returns the localized label for a status. Unknown statuses
// fall through unchanged so a bad record still renders.
func StatusLabel(status string) string {
	if label, ok := statusLabels[status]; ok {
		return label
	}
	return status
}

// ValidExpenseType reports whether t is one of the seven allowed categories
func ValidExpenseType(t string) bool {
	for _, e := range ExpenseTypes {
		if e == t {
			return true
		}
	}
	return false
}

// Bill represents an employee-submitted expense record
type Bill struct {
	ID           string  `json:"id"` // server-assigned, empty until persisted
	Email        string  `json:"email"`
	Type         string  `json:"type"`
	Name         string  `json:"name"`
	Amount       float64 `json:"amount"`
	Date         string  `json:"date"` // ISO-8601 (YYYY-MM-DD)
	VAT          string  `json:"vat"`
	Pct          int     `json:"pct"`
	Commentary   string  `json:"commentary"`
	FileURL      *string `json:"fileUrl"`
	FileName     *string `json:"fileName"`
	Status       string  `json:"status"`
	CommentAdmin string  `json:"commentAdmin,omitempty"`
}

// DisplayBill augments a Bill with display-formatted fields. The raw Date is
// kept alongside the formatted string: sort order is always derived from the
// raw date, never from the formatted form.
type DisplayBill struct {
	Bill
	FormattedDate string
	StatusLabel   string
}

// frenchMonths are the abbreviated month names used for display dates
var frenchMonths = [...]string{
	"Janv.", "Févr.", "Mars", "Avr.", "Mai", "Juin",
	"Juil.", "Août", "Sept.", "Oct.", "Nov.", "Déc.",
}

// FormatDate renders an ISO date as a localized short form ("4 Avr. 04").
// A date that fails to parse is returned unchanged so a malformed record
// never breaks the listing; the second return value reports success.
func FormatDate(iso string) (string, bool) {
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return iso, false
	}
	return fmt.Sprintf("%d %s %02d", t.Day(), frenchMonths[t.Month()-1], t.Year()%100), true
}
