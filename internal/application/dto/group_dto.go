package dto

// GroupRequest body for creating a group.
type GroupRequest struct {
	Code       string `json:"code" validate:"required,max=20,numeric"`
	Name       string `json:"name" validate:"required,max=120"`
	ParentCode string `json:"parent_code" validate:"omitempty,numeric"`
}

// GroupNode a group with its nested children.
type GroupNode struct {
	Code     string      `json:"code"`
	Name     string      `json:"name"`
	Children []GroupNode `json:"children"`
}
