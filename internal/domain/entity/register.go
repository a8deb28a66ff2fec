package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Register identifies a report register.
type Register string

// Registers served under /api/reports/:register.
const (
	RegisterDayBook        Register = "day-book"
	RegisterSales          Register = "sales"
	RegisterPurchase       Register = "purchase"
	RegisterSalesReturn    Register = "sales-return"
	RegisterPurchaseReturn Register = "purchase-return"
)

var registerTitles = map[Register]string{
	RegisterDayBook:        "Day Book",
	RegisterSales:          "Sales Register",
	RegisterPurchase:       "Purchase Register",
	RegisterSalesReturn:    "Sales Return Register",
	RegisterPurchaseReturn: "Purchase Return Register",
}

// ParseRegister validates a register name from the URL.
func ParseRegister(s string) (Register, bool) {
	r := Register(s)
	_, ok := registerTitles[r]
	return r, ok
}

// Title is the printable register name.
func (r Register) Title() string {
	return registerTitles[r]
}

// RegisterEntry is one row of a register.
type RegisterEntry struct {
	ID       string
	Register Register
	Date     time.Time
	BillNo   string
	Party    string
	Quantity decimal.Decimal
	Amount   decimal.Decimal
	Tax      decimal.Decimal
}

// RegisterTotals sums the numeric columns of a register.
type RegisterTotals struct {
	Quantity decimal.Decimal
	Amount   decimal.Decimal
	Tax      decimal.Decimal
}

// SumRegister totals the given rows.
func SumRegister(rows []*RegisterEntry) RegisterTotals {
	t := RegisterTotals{Quantity: decimal.Zero, Amount: decimal.Zero, Tax: decimal.Zero}
	for _, r := range rows {
		t.Quantity = t.Quantity.Add(r.Quantity)
		t.Amount = t.Amount.Add(r.Amount)
		t.Tax = t.Tax.Add(r.Tax)
	}
	return t
}

// RegisterReport is a register for a date range, as printed.
type RegisterReport struct {
	Register Register
	From     time.Time // zero when open
	To       time.Time // zero when open
	Rows     []*RegisterEntry
	Totals   RegisterTotals
}
