package grid

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/rsankarapandian/stores-backoffice/internal/desk/apiclient"
)

// RegisterColumns the columns every register report shows.
var RegisterColumns = []Column{
	{Key: "date", Title: "Date", Date: true},
	{Key: "bill_no", Title: "Bill No"},
	{Key: "party", Title: "Party"},
	{Key: "quantity", Title: "Quantity", Numeric: true},
	{Key: "amount", Title: "Amount", Numeric: true},
	{Key: "tax", Title: "Tax", Numeric: true},
}

// Report a register page: the grid plus the request that fills it.
type Report struct {
	Register string
	Title    string
	Grid     *Grid
	Err      string

	client *apiclient.Client
	log    zerolog.Logger
}

// NewReport builds an empty report for register.
func NewReport(client *apiclient.Client, register, title string, log zerolog.Logger) *Report {
	return &Report{
		Register: register,
		Title:    title,
		Grid:     New(RegisterColumns, nil),
		client:   client,
		log:      log.With().Str("report", register).Logger(),
	}
}

// Load fetches every row of the register; the date range is applied locally
// through Filter. A failed load leaves an empty grid.
func (r *Report) Load(ctx context.Context) bool {
	rows, err := r.client.Register(ctx, r.Register, "", "")
	if err != nil {
		r.log.Error().Err(err).Msg("register load failed")
		r.Grid = New(RegisterColumns, nil)
		r.Err = "Could not load " + r.Title + "."
		var apiErr *apiclient.APIError
		if errors.As(err, &apiErr) && apiErr.NoResponse {
			r.Err = "No response received from server."
		}
		return false
	}
	cells := make([][]string, 0, len(rows))
	for _, row := range rows {
		cells = append(cells, []string{
			row.Date, row.BillNo, row.Party,
			number(row.Quantity), number(row.Amount), number(row.Tax),
		})
	}
	r.Grid = New(RegisterColumns, cells)
	r.Err = ""
	return true
}

// PDF renders the register for the range on the server.
func (r *Report) PDF(ctx context.Context, fromISO, toISO string) ([]byte, error) {
	return r.client.RegisterPDF(ctx, r.Register, fromISO, toISO)
}

func number(d decimal.Decimal) string {
	if d.IsZero() {
		return ""
	}
	return d.String()
}
