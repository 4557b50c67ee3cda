package industries

// Industry is a row of the industries table.
type Industry struct {
	Code string  `json:"code"`
	Name *string `json:"name"`
}

// CompanyRow is a company tagged with the industry it was matched through.
type CompanyRow struct {
	Name     string  `json:"name"`
	Code     string  `json:"code"`
	Industry *string `json:"industry"`
}

// Link is a row of the industries_companies junction.
type Link struct {
	IndustryCode string `json:"industry_code"`
	CompCode     string `json:"comp_code"`
}

// CreateRequest is the body of POST /industries.
type CreateRequest struct {
	Code string  `json:"code" validate:"required,max=64"`
	Name *string `json:"name" validate:"omitempty,max=255"`
}

// AssociateRequest is the body of POST /industries/{code}/companies.
type AssociateRequest struct {
	CompCode string `json:"comp_code" validate:"required"`
}
