package form

import (
	"context"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rsankarapandian/stores-backoffice/internal/desk/apiclient"
	"github.com/rsankarapandian/stores-backoffice/internal/desk/tree"
)

// amountPattern optional integer part with up to two decimals.
var amountPattern = regexp.MustCompile(`^\d*(\.\d{0,2})?$`)

// GroupField the required "Group Name" field backed by the tree selector.
type GroupField struct {
	View *tree.View
	Open bool
	Code string
	Name string

	onPick func()
}

func (g *GroupField) build(groups []apiclient.GroupNode, onPick func()) {
	g.onPick = onPick
	g.View = tree.NewView(tree.Build(groups), g.pick)
	if g.Code != "" {
		g.set(g.Code)
	}
}

// Show opens the tree with the cursor on the current group.
func (g *GroupField) Show() {
	if g.View == nil {
		return
	}
	g.Open = true
	if n := g.View.FindCode(g.Code); n != nil {
		g.View.Cursor = n.Key
	}
}

// Hide closes the tree without changing the group.
func (g *GroupField) Hide() { g.Open = false }

func (g *GroupField) pick(n *tree.Node) {
	g.Code, g.Name = n.Code, n.DisplayName
	g.Open = false
	if g.onPick != nil {
		g.onPick()
	}
}

func (g *GroupField) set(code string) {
	g.Code, g.Name = code, code
	if g.View == nil {
		return
	}
	if n := g.View.FindCode(code); n != nil {
		g.Name = n.DisplayName
		g.View.Selected = n.Key
	}
}

func (g *GroupField) clear() {
	g.Code, g.Name, g.Open = "", "", false
	if g.View != nil {
		g.View.Selected = ""
	}
}

// resolve finds the record for code through the list search; unknown codes come
// back without a name.
func resolve(ctx context.Context, client *apiclient.Client, ep apiclient.Endpoints, code string) (apiclient.Record, error) {
	if code == "" {
		return apiclient.Record{}, nil
	}
	list, err := client.ListRecords(ctx, ep, code, 1)
	if err != nil {
		return apiclient.Record{Code: code}, err
	}
	for _, r := range list {
		if r.Code == code {
			return r, nil
		}
	}
	return apiclient.Record{Code: code}, nil
}

// joinNonEmpty space-joins the non blank parts.
func joinNonEmpty(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " ")
}

// amount parses a validated amount field; blank is zero.
func amount(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}
