package entity

import (
	"regexp"
	"time"

	"github.com/shopspring/decimal"
)

// Balance sides for the ledger opening balance.
const (
	BalanceDebit  = "Dr"
	BalanceCredit = "Cr"
)

var (
	// GSTINPattern state code, PAN, entity number, Z, checksum character.
	GSTINPattern = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][1-9A-Z]Z[0-9A-Z]$`)
	// PANPattern five letters, four digits, one letter.
	PANPattern = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)
)

// Ledger is an account (customer, supplier, expense...) placed in the group tree.
type Ledger struct {
	Code           string
	Name           string
	GroupCode      string
	Address1       string
	Address2       string
	Address3       string
	City           string
	State          string
	Pincode        string
	Phone          string
	Mobile         string
	Email          string
	GSTIN          string
	PAN            string
	CIN            string
	Route          string
	SalesmanCode   string
	DueDays        int
	OpeningBalance decimal.Decimal
	BalanceType    string // Dr | Cr
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// DueDate is the date DueDays after from, truncated to the day.
func (l *Ledger) DueDate(from time.Time) time.Time {
	y, m, d := from.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, from.Location()).AddDate(0, 0, l.DueDays)
}
