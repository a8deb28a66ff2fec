package dto

import "time"

// MasterRequest body for creating or renaming a master record.
// Code is optional on create; the next free code is issued when empty.
type MasterRequest struct {
	Code string `json:"code" validate:"omitempty,max=20"`
	Name string `json:"name" validate:"required,max=120"`
}

// MasterResponse a master record.
type MasterResponse struct {
	Kind      string    `json:"kind"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
