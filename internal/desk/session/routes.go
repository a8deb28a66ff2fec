package session

import (
	"strings"

	"github.com/rsankarapandian/stores-backoffice/internal/desk/apiclient"
)

// PageKind tells the shell which page type renders a route.
type PageKind int

const (
	PageLogin PageKind = iota
	PageHome
	PageMaster
	PageItem
	PageLedger
	PageReport
	PageTransaction
)

// LoginPath is where unauthenticated requests land.
const LoginPath = "/login"

// Route one entry of the page table.
type Route struct {
	Path  string
	Title string
	Kind  PageKind

	Master   apiclient.Endpoints // PageMaster
	Register string              // PageReport and PageTransaction
}

func master(path string, ep apiclient.Endpoints) Route {
	return Route{Path: path, Title: ep.Label, Kind: PageMaster, Master: ep}
}

func report(path, register, title string) Route {
	return Route{Path: path, Title: title, Kind: PageReport, Register: register}
}

// Routes the desk page table.
var Routes = []Route{
	{Path: LoginPath, Title: "Login", Kind: PageLogin},
	{Path: "/", Title: "Home", Kind: PageHome},

	master("/masters/brand", apiclient.Brand),
	master("/masters/category", apiclient.Category),
	master("/masters/product", apiclient.Product),
	master("/masters/model", apiclient.Model),
	master("/masters/size", apiclient.Size),
	master("/masters/unit", apiclient.Unit),
	master("/masters/salesman-creation", apiclient.Salesman),
	master("/masters/scrap-item", apiclient.Scrap),
	{Path: "/masters/item-creation", Title: "Item Creation", Kind: PageItem},
	{Path: "/masters/ledger-creation", Title: "Ledger Creation", Kind: PageLedger},

	{Path: "/transactions/sales", Title: "Sales", Kind: PageTransaction, Register: "sales"},
	{Path: "/transactions/purchase", Title: "Purchase", Kind: PageTransaction, Register: "purchase"},
	{Path: "/transactions/sales-return", Title: "Sales Return", Kind: PageTransaction, Register: "sales-return"},
	{Path: "/transactions/purchase-return", Title: "Purchase Return", Kind: PageTransaction, Register: "purchase-return"},

	report("/reports/day-book", "day-book", "Day Book"),
	report("/reports/sales-register", "sales", "Sales Register"),
	report("/reports/purchase-register", "purchase", "Purchase Register"),
	report("/reports/sales-return-register", "sales-return", "Sales Return Register"),
	report("/reports/purchase-return-register", "purchase-return", "Purchase Return Register"),
}

var byPath = func() map[string]Route {
	m := make(map[string]Route, len(Routes))
	for _, r := range Routes {
		m[r.Path] = r
	}
	return m
}()

// Lookup finds the route for path, ignoring a trailing slash and the query.
func Lookup(path string) (Route, bool) {
	r, ok := byPath[clean(path)]
	return r, ok
}

func clean(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	path = strings.ToLower(strings.TrimSpace(path))
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}
	if path == "" {
		return "/"
	}
	return path
}

// Resolution the outcome of Resolve: a route to render, or a redirect.
type Resolution struct {
	Route    Route
	Redirect string
	NotFound bool
}

// Resolve applies the auth gate. Without a user every path but /login
// redirects to /login; a signed in user asking for /login goes home.
func Resolve(path string, p Provider) Resolution {
	signedIn := p != nil && p.Current() != nil
	r, ok := Lookup(path)
	switch {
	case !signedIn && (!ok || r.Kind != PageLogin):
		return Resolution{Redirect: LoginPath}
	case signedIn && ok && r.Kind == PageLogin:
		return Resolution{Redirect: "/"}
	case !ok:
		return Resolution{NotFound: true}
	}
	return Resolution{Route: r}
}
