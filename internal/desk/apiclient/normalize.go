package apiclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Record a code+name master row.
type Record struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// GroupNode one group of the nested tree.
type GroupNode struct {
	Code     string
	Name     string
	Children []GroupNode
}

// ItemRecord an item as the item page edits it.
type ItemRecord struct {
	Code           string              `json:"code"`
	Prefix         string              `json:"prefix,omitempty"`
	Name           string              `json:"name"`
	GroupCode      string              `json:"group_code"`
	BrandCode      string              `json:"brand_code,omitempty"`
	CategoryCode   string              `json:"category_code,omitempty"`
	ProductCode    string              `json:"product_code,omitempty"`
	ModelCode      string              `json:"model_code,omitempty"`
	SizeCodes      []string            `json:"size_codes,omitempty"`
	UnitCode       string              `json:"unit_code"`
	GSTRate        decimal.NullDecimal `json:"gst_rate"`
	HSNCode        string              `json:"hsn_code,omitempty"`
	Type           string              `json:"type"`
	Cost           decimal.Decimal     `json:"cost"`
	SellingPrice   decimal.Decimal     `json:"selling_price"`
	MRP            decimal.Decimal     `json:"mrp"`
	WholesalePrice decimal.Decimal     `json:"wholesale_price"`
}

// LedgerRecord a ledger as the ledger page edits it.
type LedgerRecord struct {
	Code           string          `json:"code"`
	Name           string          `json:"name"`
	GroupCode      string          `json:"group_code"`
	Address1       string          `json:"address1"`
	Address2       string          `json:"address2"`
	Address3       string          `json:"address3"`
	City           string          `json:"city"`
	State          string          `json:"state"`
	Pincode        string          `json:"pincode"`
	Phone          string          `json:"phone"`
	Mobile         string          `json:"mobile"`
	Email          string          `json:"email"`
	GSTIN          string          `json:"gstin"`
	PAN            string          `json:"pan"`
	CIN            string          `json:"cin"`
	Route          string          `json:"route"`
	SalesmanCode   string          `json:"salesman_code"`
	DueDays        int             `json:"due_days"`
	DueDate        string          `json:"due_date,omitempty"` // YYYY-MM-DD, server computed
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	BalanceType    string          `json:"balance_type"`
	Active         bool            `json:"active"`
}

// RegisterRow one register line; Date is DD-MM-YYYY.
type RegisterRow struct {
	Date     string          `json:"date"`
	BillNo   string          `json:"bill_no"`
	Party    string          `json:"party"`
	Quantity decimal.Decimal `json:"quantity"`
	Amount   decimal.Decimal `json:"amount"`
	Tax      decimal.Decimal `json:"tax"`
}

// UserInfo the signed in operator.
type UserInfo struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

// envelopeKeys hold the list inside an object response.
var envelopeKeys = []string{"data", "items", "rows", "records", "result"}

// decodeList accepts a bare JSON array or an object wrapping one.
func decodeList(raw []byte) ([]map[string]any, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var v any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("apiclient: decode list: %w", err)
	}
	if obj, ok := v.(map[string]any); ok {
		v = nil
		for _, k := range envelopeKeys {
			if inner, ok := lookup(obj, k); ok {
				v = inner
				break
			}
		}
	}
	arr, ok := v.([]any)
	if !ok {
		if v == nil {
			return nil, nil
		}
		return nil, fmt.Errorf("apiclient: list payload is %T", v)
	}
	out := make([]map[string]any, 0, len(arr))
	for _, el := range arr {
		if m, ok := el.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out, nil
}

// lookup finds key exactly, then case-insensitively.
func lookup(m map[string]any, key string) (any, bool) {
	if v, ok := m[key]; ok && v != nil {
		return v, true
	}
	for k, v := range m {
		if v != nil && strings.EqualFold(k, key) {
			return v, true
		}
	}
	return nil, false
}

// pick returns the first non-empty scalar among keys, as a string.
func pick(m map[string]any, keys ...string) string {
	for _, k := range keys {
		v, ok := lookup(m, k)
		if !ok {
			continue
		}
		var s string
		switch t := v.(type) {
		case string:
			s = t
		case json.Number:
			s = t.String()
		case float64:
			s = strconv.FormatFloat(t, 'f', -1, 64)
		case bool:
			s = strconv.FormatBool(t)
		}
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
	}
	return ""
}

func codeKeys(kind string) []string {
	return []string{"code", "fCode", kind + "Code", kind + "_code", "id"}
}

func nameKeys(kind string) []string {
	return []string{"name", "fName", kind + "Name", kind + "_name", "displayName"}
}

func toRecord(m map[string]any, kind string) Record {
	return Record{Code: pick(m, codeKeys(kind)...), Name: pick(m, nameKeys(kind)...)}
}

// decodeRecords normalises a master list.
func decodeRecords(raw []byte, kind string) ([]Record, error) {
	list, err := decodeList(raw)
	if err != nil {
		return nil, err
	}
	out := make([]Record, 0, len(list))
	for _, m := range list {
		out = append(out, toRecord(m, kind))
	}
	return out, nil
}

// decodeRows re-decodes each element into T and fixes code/name from their spellings.
func decodeRows[T any](raw []byte, fix func(*T, map[string]any)) ([]T, error) {
	list, err := decodeList(raw)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(list))
	for _, m := range list {
		var row T
		if err := remarshal(m, &row); err != nil {
			return nil, err
		}
		if fix != nil {
			fix(&row, m)
		}
		out = append(out, row)
	}
	return out, nil
}

func remarshal(m map[string]any, out any) error {
	b, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("apiclient: re-encode row: %w", err)
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("apiclient: decode row: %w", err)
	}
	return nil
}

func fixItem(it *ItemRecord, m map[string]any) {
	it.Code = pick(m, codeKeys("item")...)
	it.Name = pick(m, nameKeys("item")...)
}

func fixLedger(l *LedgerRecord, m map[string]any) {
	l.Code = pick(m, codeKeys("ledger")...)
	l.Name = pick(m, nameKeys("ledger")...)
}

var childKeys = []string{"children", "subGroups", "sub_groups", "nodes"}

// decodeGroups normalises the nested group tree.
func decodeGroups(raw []byte) ([]GroupNode, error) {
	list, err := decodeList(raw)
	if err != nil {
		return nil, err
	}
	return toGroups(list), nil
}

func toGroups(list []map[string]any) []GroupNode {
	out := make([]GroupNode, 0, len(list))
	for _, m := range list {
		n := GroupNode{Code: pick(m, codeKeys("group")...), Name: pick(m, nameKeys("group")...)}
		for _, k := range childKeys {
			if v, ok := lookup(m, k); ok {
				if arr, ok := v.([]any); ok {
					var kids []map[string]any
					for _, el := range arr {
						if cm, ok := el.(map[string]any); ok {
							kids = append(kids, cm)
						}
					}
					n.Children = toGroups(kids)
				}
				break
			}
		}
		out = append(out, n)
	}
	return out
}

// decodeCode reads a next-code style response: a bare string or number, or an
// object carrying it under one of several names.
func decodeCode(raw []byte) (string, error) {
	raw = bytes.TrimSpace(raw)
	var v any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return "", fmt.Errorf("apiclient: decode code: %w", err)
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t), nil
	case json.Number:
		return t.String(), nil
	case map[string]any:
		if code := pick(t, "code", "nextCode", "next_code", "prefix", "data"); code != "" {
			return code, nil
		}
	}
	return "", fmt.Errorf("apiclient: no code in response")
}
