package dto

// CreateCompanyRequest represents a request to add a company record
type CreateCompanyRequest struct {
	Name        string `json:"name" binding:"required"`
	Location    string `json:"location" binding:"required"`
	Website     string `json:"website" binding:"omitempty,url"`
	Difficulty  string `json:"difficulty" binding:"required,oneof=EASY MODERATE HARD"`
	Description string `json:"description"`
}

// UpdateCompanyRequest represents a request to update a company record
type UpdateCompanyRequest struct {
	Name        string `json:"name" binding:"required"`
	Location    string `json:"location" binding:"required"`
	Website     string `json:"website" binding:"omitempty,url"`
	Difficulty  string `json:"difficulty" binding:"required,oneof=EASY MODERATE HARD"`
	Description string `json:"description"`
}
