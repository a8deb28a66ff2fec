package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item types.
const (
	ItemTypeScrap    = "SC"
	ItemTypeFinished = "FG"
)

// Item is a sellable or scrap item. Every *Code field references a master record
// (GroupCode references the group tree).
type Item struct {
	Code           string
	Prefix         string // manual prefix, empty unless enabled on the form
	Name           string
	GroupCode      string
	BrandCode      string
	CategoryCode   string
	ProductCode    string
	ModelCode      string
	SizeCodes      []string
	UnitCode       string
	GSTRate        decimal.Decimal
	HSNCode        string
	Type           string // SC | FG
	Cost           decimal.Decimal
	SellingPrice   decimal.Decimal
	MRP            decimal.Decimal
	WholesalePrice decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// References returns the master references held by the item, keyed by kind.
func (i *Item) References() map[MasterKind][]string {
	refs := map[MasterKind][]string{}
	add := func(k MasterKind, code string) {
		if code != "" {
			refs[k] = append(refs[k], code)
		}
	}
	add(KindBrand, i.BrandCode)
	add(KindCategory, i.CategoryCode)
	add(KindProduct, i.ProductCode)
	add(KindModel, i.ModelCode)
	add(KindUnit, i.UnitCode)
	for _, s := range i.SizeCodes {
		add(KindSize, s)
	}
	return refs
}
