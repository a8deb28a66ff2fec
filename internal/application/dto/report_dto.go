package dto

import "github.com/shopspring/decimal"

// RegisterRow one register line. Date is DD-MM-YYYY as the report screens show it.
type RegisterRow struct {
	ID       string          `json:"id"`
	Date     string          `json:"date"`
	BillNo   string          `json:"bill_no"`
	Party    string          `json:"party"`
	Quantity decimal.Decimal `json:"quantity"`
	Amount   decimal.Decimal `json:"amount"`
	Tax      decimal.Decimal `json:"tax"`
}

// RegisterTotals sums of the numeric columns.
type RegisterTotals struct {
	Quantity decimal.Decimal `json:"quantity"`
	Amount   decimal.Decimal `json:"amount"`
	Tax      decimal.Decimal `json:"tax"`
}

// RegisterResponse a register for the requested range.
type RegisterResponse struct {
	Register string         `json:"register"`
	Title    string         `json:"title"`
	From     string         `json:"from,omitempty"`
	To       string         `json:"to,omitempty"`
	Data     []RegisterRow  `json:"data"`
	Totals   RegisterTotals `json:"totals"`
}
