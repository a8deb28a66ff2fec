package apiclient

import (
	"net/url"
	"strconv"
	"strings"
)

// Endpoints the conventional CRUD paths of one resource. Update and Delete carry
// a {code} placeholder.
type Endpoints struct {
	Label    string // "Brand", used in messages
	Kind     string // field spelling prefix ("brand" -> brandCode)
	List     string
	NextCode string
	Create   string
	Update   string
	Delete   string
}

// ByCode fills the {code} placeholder of tmpl.
func ByCode(tmpl, code string) string {
	return strings.ReplaceAll(tmpl, "{code}", url.PathEscape(code))
}

func crud(base, label, kind string) Endpoints {
	return Endpoints{
		Label:    label,
		Kind:     kind,
		List:     base,
		NextCode: base + "/next-code",
		Create:   base,
		Update:   base + "/{code}",
		Delete:   base + "/{code}",
	}
}

// MasterEndpoints paths of a code+name master kind.
func MasterEndpoints(kind, label string) Endpoints {
	return crud("/masters/"+kind, label, kind)
}

// Master endpoint groups.
var (
	Brand    = MasterEndpoints("brand", "Brand")
	Category = MasterEndpoints("category", "Category")
	Product  = MasterEndpoints("product", "Product")
	Model    = MasterEndpoints("model", "Model")
	Size     = MasterEndpoints("size", "Size")
	Unit     = MasterEndpoints("unit", "Unit")
	Salesman = MasterEndpoints("salesman", "Salesman")
	Scrap    = MasterEndpoints("scrap", "Scrap Item")
)

// ItemEndpoints item creation paths.
type ItemEndpoints struct {
	Endpoints
	GSTRates string
	Prefix   string
}

// LedgerEndpoints ledger creation paths.
type LedgerEndpoints struct {
	Endpoints
}

// GroupEndpoints group tree paths.
type GroupEndpoints struct {
	Tree   string
	Create string
	Delete string
}

// ReportEndpoints register paths; {register} is the register name.
type ReportEndpoints struct {
	Register string
	PDF      string
}

var (
	Items = ItemEndpoints{
		Endpoints: crud("/items", "Item", "item"),
		GSTRates:  "/items/gst-rates",
		Prefix:    "/items/prefix",
	}
	Ledgers = LedgerEndpoints{Endpoints: crud("/ledgers", "Ledger", "ledger")}
	Groups  = GroupEndpoints{Tree: "/groups/tree", Create: "/groups", Delete: "/groups/{code}"}
	Reports = ReportEndpoints{Register: "/reports/{register}", PDF: "/reports/{register}/pdf"}
)

// ReportPath fills {register} and appends the from/to query when set.
func ReportPath(tmpl, register, from, to string) string {
	p := strings.ReplaceAll(tmpl, "{register}", url.PathEscape(register))
	q := url.Values{}
	if from != "" {
		q.Set("from", from)
	}
	if to != "" {
		q.Set("to", to)
	}
	if len(q) > 0 {
		p += "?" + q.Encode()
	}
	return p
}

func listPath(base, search string, page int) string {
	if page < 1 {
		page = 1
	}
	q := url.Values{}
	q.Set("limit", strconv.Itoa(PageSize))
	q.Set("offset", strconv.Itoa((page-1)*PageSize))
	if search != "" {
		q.Set("search", search)
	}
	return base + "?" + q.Encode()
}
