package apiclient

import (
	"context"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"
)

// ListRecords fetches one page of a master list filtered by search.
func (c *Client) ListRecords(ctx context.Context, ep Endpoints, search string, page int) ([]Record, error) {
	raw, err := c.raw(ctx, http.MethodGet, listPath(ep.List, search, page), nil)
	if err != nil {
		return nil, err
	}
	return decodeRecords(raw, ep.Kind)
}

// ListAllRecords walks every page of a master list.
func (c *Client) ListAllRecords(ctx context.Context, ep Endpoints) ([]Record, error) {
	var all []Record
	for page := 1; ; page++ {
		batch, err := c.ListRecords(ctx, ep, "", page)
		if err != nil {
			return nil, err
		}
		all = append(all, batch...)
		if len(batch) < PageSize {
			return all, nil
		}
	}
}

// NextCode asks the server for the code the next record of ep will get.
func (c *Client) NextCode(ctx context.Context, ep Endpoints) (string, error) {
	raw, err := c.raw(ctx, http.MethodGet, ep.NextCode, nil)
	if err != nil {
		return "", err
	}
	return decodeCode(raw)
}

// CreateRecord posts a master record.
func (c *Client) CreateRecord(ctx context.Context, ep Endpoints, rec Record) error {
	return c.Do(ctx, http.MethodPost, ep.Create, rec, nil)
}

// UpdateRecord puts a master record by code.
func (c *Client) UpdateRecord(ctx context.Context, ep Endpoints, rec Record) error {
	return c.Do(ctx, http.MethodPut, ByCode(ep.Update, rec.Code), rec, nil)
}

// DeleteByCode deletes one record of any resource.
func (c *Client) DeleteByCode(ctx context.Context, ep Endpoints, code string) error {
	return c.Do(ctx, http.MethodDelete, ByCode(ep.Delete, code), nil, nil)
}

// ListItems fetches one page of items.
func (c *Client) ListItems(ctx context.Context, search string, page int) ([]ItemRecord, error) {
	raw, err := c.raw(ctx, http.MethodGet, listPath(Items.List, search, page), nil)
	if err != nil {
		return nil, err
	}
	return decodeRows(raw, fixItem)
}

// CreateItem posts an item and returns it as stored.
func (c *Client) CreateItem(ctx context.Context, it ItemRecord) (ItemRecord, error) {
	return c.sendItem(ctx, http.MethodPost, Items.Create, it)
}

// UpdateItem puts an item by code.
func (c *Client) UpdateItem(ctx context.Context, it ItemRecord) (ItemRecord, error) {
	return c.sendItem(ctx, http.MethodPut, ByCode(Items.Update, it.Code), it)
}

func (c *Client) sendItem(ctx context.Context, method, path string, it ItemRecord) (ItemRecord, error) {
	raw, err := c.raw(ctx, method, path, it)
	if err != nil {
		return ItemRecord{}, err
	}
	rows, err := decodeRows(wrap(raw), fixItem)
	if err != nil || len(rows) == 0 {
		return it, err
	}
	return rows[0], nil
}

// GSTRates the allowed GST percentages as display strings ("0", "5", ...).
func (c *Client) GSTRates(ctx context.Context) ([]string, error) {
	var body struct {
		Rates []decimal.Decimal `json:"rates"`
	}
	if err := c.Do(ctx, http.MethodGet, Items.GSTRates, nil, &body); err != nil {
		return nil, err
	}
	out := make([]string, 0, len(body.Rates))
	for _, r := range body.Rates {
		out = append(out, r.String())
	}
	return out, nil
}

// SuggestPrefix the server's suggested manual item prefix.
func (c *Client) SuggestPrefix(ctx context.Context) (string, error) {
	raw, err := c.raw(ctx, http.MethodGet, Items.Prefix, nil)
	if err != nil {
		return "", err
	}
	return decodeCode(raw)
}

// ListLedgers fetches one page of ledgers.
func (c *Client) ListLedgers(ctx context.Context, search string, page int) ([]LedgerRecord, error) {
	raw, err := c.raw(ctx, http.MethodGet, listPath(Ledgers.List, search, page), nil)
	if err != nil {
		return nil, err
	}
	return decodeRows(raw, fixLedger)
}

// CreateLedger posts a ledger and returns it as stored.
func (c *Client) CreateLedger(ctx context.Context, l LedgerRecord) (LedgerRecord, error) {
	return c.sendLedger(ctx, http.MethodPost, Ledgers.Create, l)
}

// UpdateLedger puts a ledger by code.
func (c *Client) UpdateLedger(ctx context.Context, l LedgerRecord) (LedgerRecord, error) {
	return c.sendLedger(ctx, http.MethodPut, ByCode(Ledgers.Update, l.Code), l)
}

func (c *Client) sendLedger(ctx context.Context, method, path string, l LedgerRecord) (LedgerRecord, error) {
	raw, err := c.raw(ctx, method, path, l)
	if err != nil {
		return LedgerRecord{}, err
	}
	rows, err := decodeRows(wrap(raw), fixLedger)
	if err != nil || len(rows) == 0 {
		return l, err
	}
	return rows[0], nil
}

// GroupTree the nested group tree.
func (c *Client) GroupTree(ctx context.Context) ([]GroupNode, error) {
	raw, err := c.raw(ctx, http.MethodGet, Groups.Tree, nil)
	if err != nil {
		return nil, err
	}
	return decodeGroups(raw)
}

// Register loads register rows between from and to (YYYY-MM-DD, either may be empty).
func (c *Client) Register(ctx context.Context, register, from, to string) ([]RegisterRow, error) {
	raw, err := c.raw(ctx, http.MethodGet, ReportPath(Reports.Register, register, from, to), nil)
	if err != nil {
		return nil, err
	}
	return decodeRows[RegisterRow](raw, nil)
}

// RegisterPDF downloads the printable register.
func (c *Client) RegisterPDF(ctx context.Context, register, from, to string) ([]byte, error) {
	return c.raw(ctx, http.MethodGet, ReportPath(Reports.PDF, register, from, to), nil)
}

// LoginResult token and user returned by /auth/login.
type LoginResult struct {
	Token string   `json:"token"`
	User  UserInfo `json:"user"`
}

// Login exchanges credentials for a token. The client token is left untouched.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	var out LoginResult
	body := map[string]string{"username": strings.TrimSpace(username), "password": password}
	if err := c.Do(ctx, http.MethodPost, "/auth/login", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Me the user behind the current token.
func (c *Client) Me(ctx context.Context) (*UserInfo, error) {
	var out UserInfo
	if err := c.Do(ctx, http.MethodGet, "/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// wrap turns a single object response into a one element list.
func wrap(raw []byte) []byte {
	out := make([]byte, 0, len(raw)+2)
	out = append(out, '[')
	out = append(out, raw...)
	return append(out, ']')
}
