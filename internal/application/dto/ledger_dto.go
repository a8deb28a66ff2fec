package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerRequest body for creating or updating a ledger.
type LedgerRequest struct {
	Code           string          `json:"code" validate:"omitempty,max=20"`
	Name           string          `json:"name" validate:"required,max=200"`
	GroupCode      string          `json:"group_code" validate:"required"`
	Address1       string          `json:"address1" validate:"max=120"`
	Address2       string          `json:"address2" validate:"max=120"`
	Address3       string          `json:"address3" validate:"max=120"`
	City           string          `json:"city" validate:"max=60"`
	State          string          `json:"state" validate:"max=60"`
	Pincode        string          `json:"pincode" validate:"omitempty,numeric,len=6"`
	Phone          string          `json:"phone" validate:"max=20"`
	Mobile         string          `json:"mobile" validate:"omitempty,numeric,max=15"`
	Email          string          `json:"email" validate:"omitempty,email"`
	GSTIN          string          `json:"gstin" validate:"omitempty,len=15,alphanum"`
	PAN            string          `json:"pan" validate:"omitempty,len=10,alphanum"`
	CIN            string          `json:"cin" validate:"omitempty,len=21,alphanum"`
	Route          string          `json:"route" validate:"max=60"`
	SalesmanCode   string          `json:"salesman_code"`
	DueDays        int             `json:"due_days" validate:"min=0,max=365"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	BalanceType    string          `json:"balance_type" validate:"omitempty,oneof=Dr Cr"`
	Active         *bool           `json:"active"`
}

// LedgerResponse a ledger; due_date is computed from due_days on read.
type LedgerResponse struct {
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
	DueDate        string          `json:"due_date"` // YYYY-MM-DD
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	BalanceType    string          `json:"balance_type"`
	Active         bool            `json:"active"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}
