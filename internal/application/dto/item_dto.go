package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemRequest body for creating or updating an item.
type ItemRequest struct {
	Code           string           `json:"code" validate:"omitempty,max=20"`
	Prefix         string           `json:"prefix" validate:"omitempty,max=10,alphanum"`
	Name           string           `json:"name" validate:"required,max=200"`
	GroupCode      string           `json:"group_code" validate:"required"`
	BrandCode      string           `json:"brand_code"`
	CategoryCode   string           `json:"category_code"`
	ProductCode    string           `json:"product_code"`
	ModelCode      string           `json:"model_code"`
	SizeCodes      []string         `json:"size_codes" validate:"omitempty,dive,required"`
	UnitCode       string           `json:"unit_code" validate:"required"`
	GSTRate        *decimal.Decimal `json:"gst_rate"`
	HSNCode        string           `json:"hsn_code" validate:"omitempty,max=8,numeric"`
	Type           string           `json:"type" validate:"required,oneof=SC FG"`
	Cost           decimal.Decimal  `json:"cost"`
	SellingPrice   decimal.Decimal  `json:"selling_price"`
	MRP            decimal.Decimal  `json:"mrp"`
	WholesalePrice decimal.Decimal  `json:"wholesale_price"`
}

// ItemResponse an item.
type ItemResponse struct {
	Code           string          `json:"code"`
	Prefix         string          `json:"prefix"`
	Name           string          `json:"name"`
	GroupCode      string          `json:"group_code"`
	BrandCode      string          `json:"brand_code"`
	CategoryCode   string          `json:"category_code"`
	ProductCode    string          `json:"product_code"`
	ModelCode      string          `json:"model_code"`
	SizeCodes      []string        `json:"size_codes"`
	UnitCode       string          `json:"unit_code"`
	GSTRate        decimal.Decimal `json:"gst_rate"`
	HSNCode        string          `json:"hsn_code"`
	Type           string          `json:"type"`
	Cost           decimal.Decimal `json:"cost"`
	SellingPrice   decimal.Decimal `json:"selling_price"`
	MRP            decimal.Decimal `json:"mrp"`
	WholesalePrice decimal.Decimal `json:"wholesale_price"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// GSTRatesResponse the allowed GST percentages.
type GSTRatesResponse struct {
	Rates []decimal.Decimal `json:"rates"`
}
