// Package pdf renders report registers with Maroto v2.
//
// Page layout (A4):
//
//	company name                 register title
//	period                       printed on
//	Date | Bill No | Party | Qty | Amount | Tax
//	...
//	totals
package pdf

import (
	"context"
	"fmt"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/rsankarapandian/stores-backoffice/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 128, Green: 0, Blue: 32}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

const dateLayout = "02-01-2006"

// RegisterPDFGenerator prints report registers.
type RegisterPDFGenerator struct {
	company string
	now     func() time.Time
}

// NewRegisterPDFGenerator builds the generator; company heads every page.
func NewRegisterPDFGenerator(company string) *RegisterPDFGenerator {
	return &RegisterPDFGenerator{company: company, now: time.Now}
}

// GenerateRegisterPDF renders the report and returns the document bytes.
func (g *RegisterPDFGenerator) GenerateRegisterPDF(_ context.Context, r *entity.RegisterReport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(r.Register.Title(), true).
		WithAuthor(g.company, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(r.Rows)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(r.Totals))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate register: %w", err)
	}
	return doc.GetBytes(), nil
}

func (g *RegisterPDFGenerator) headerRow(r *entity.RegisterReport) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(g.company, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New("Period: "+period(r.From, r.To), props.Text{Size: 8, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New(strings.ToUpper(r.Register.Title()), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("Printed: "+g.now().Format(dateLayout), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Date", 2, align.Left),
		h("Bill No", 2, align.Left),
		h("Party", 4, align.Left),
		h("Qty", 1, align.Right),
		h("Amount", 2, align.Right),
		h("Tax", 1, align.Right),
	)
}

func tableRows(entries []*entity.RegisterEntry) []core.Row {
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
	}
	rows := make([]core.Row, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, row.New(6).Add(
			cell(e.Date.Format(dateLayout), 2, align.Left),
			cell(e.BillNo, 2, align.Left),
			cell(e.Party, 4, align.Left),
			cell(e.Quantity.String(), 1, align.Right),
			cell(FormatRupees(e.Amount), 2, align.Right),
			cell(FormatRupees(e.Tax), 1, align.Right),
		))
	}
	return rows
}

func totalsRow(t entity.RegisterTotals) core.Row {
	bold := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: a, Top: 1, Right: 1}))
	}
	return row.New(8).Add(
		bold("Total", 8, align.Right),
		bold(t.Quantity.String(), 1, align.Right),
		bold(FormatRupees(t.Amount), 2, align.Right),
		bold(FormatRupees(t.Tax), 1, align.Right),
	)
}

func period(from, to time.Time) string {
	switch {
	case from.IsZero() && to.IsZero():
		return "all dates"
	case from.IsZero():
		return "up to " + to.Format(dateLayout)
	case to.IsZero():
		return "from " + from.Format(dateLayout)
	}
	return from.Format(dateLayout) + " to " + to.Format(dateLayout)
}

// FormatRupees prints an amount with two decimals and Indian digit grouping.
// Ex: 1234567.5 -> "12,34,567.50"
func FormatRupees(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	whole, frac, _ := strings.Cut(s, ".")
	if len(whole) > 3 {
		head, tail := whole[:len(whole)-3], whole[len(whole)-3:]
		var groups []string
		for len(head) > 2 {
			groups = append([]string{head[len(head)-2:]}, groups...)
			head = head[:len(head)-2]
		}
		if head != "" {
			groups = append([]string{head}, groups...)
		}
		whole = strings.Join(groups, ",") + "," + tail
	}
	if d.IsNegative() {
		whole = "-" + whole
	}
	return whole + "." + frac
}
