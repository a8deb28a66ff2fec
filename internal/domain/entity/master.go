package entity

import (
	"strings"
	"time"
)

// MasterKind identifies a code+name master table.
type MasterKind string

// Master kinds served under /api/masters/:kind.
const (
	KindBrand    MasterKind = "brand"
	KindCategory MasterKind = "category"
	KindProduct  MasterKind = "product"
	KindModel    MasterKind = "model"
	KindSize     MasterKind = "size"
	KindUnit     MasterKind = "unit"
	KindSalesman MasterKind = "salesman"
	KindScrap    MasterKind = "scrap"
)

var masterLabels = map[MasterKind]string{
	KindBrand:    "Brand",
	KindCategory: "Category",
	KindProduct:  "Product",
	KindModel:    "Model",
	KindSize:     "Size",
	KindUnit:     "Unit",
	KindSalesman: "Salesman",
	KindScrap:    "Scrap Item",
}

// MasterKinds lists every kind in menu order.
func MasterKinds() []MasterKind {
	return []MasterKind{KindBrand, KindCategory, KindProduct, KindModel, KindSize, KindUnit, KindSalesman, KindScrap}
}

// ParseMasterKind accepts the URL form of a kind ("Brand", "brand").
func ParseMasterKind(s string) (MasterKind, bool) {
	k := MasterKind(strings.ToLower(strings.TrimSpace(s)))
	_, ok := masterLabels[k]
	return k, ok
}

// Label is the human name used in messages ("Brand name ... already exists").
func (k MasterKind) Label() string {
	if l, ok := masterLabels[k]; ok {
		return l
	}
	return string(k)
}

// MasterRecord is a code+name master entry (brand, category, salesman, scrap item...).
// Code is server assigned, sequential and zero padded.
type MasterRecord struct {
	Kind      MasterKind
	Code      string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
