package companies

import "strings"

// CreateRequest is the body of POST /companies.
type CreateRequest struct {
	Code        string  `json:"code" validate:"max=64"`
	Name        string  `json:"name" validate:"required,max=255"`
	Description *string `json:"description"`
}

// UpdateRequest is the body of PUT /companies/{code}. Omitted or blank fields
// keep their stored value.
type UpdateRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=255"`
	Description *string `json:"description"`
}

// Merge applies the supplied fields over existing. The primary key never changes.
func Merge(existing Company, req UpdateRequest) Company {
	merged := existing
	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		merged.Name = *req.Name
	}
	if req.Description != nil && *req.Description != "" {
		description := *req.Description
		merged.Description = &description
	}
	return merged
}
