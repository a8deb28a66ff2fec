package dto

// PageRequest pagination for listings.
type PageRequest struct {
	Search string `query:"search"`
	Limit  int    `query:"limit" validate:"min=0,max=100"`
	Offset int    `query:"offset" validate:"min=0"`
}

// DefaultPage applies defaults when Limit/Offset are zero or negative.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// PageResponse page metadata.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total"`
}

// ListResponse is the {data, page} envelope every listing uses.
type ListResponse[T any] struct {
	Data []T          `json:"data"`
	Page PageResponse `json:"page"`
}

// CodeResponse carries a server issued code (next code, prefix).
type CodeResponse struct {
	Code string `json:"code"`
}

// ErrorResponse HTTP error body.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
