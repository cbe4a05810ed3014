package models

import "time"

// Company defines the company model based on the 'companies' table
type Company struct {
	ID          int64          `json:"id" db:"id" example:"1"`
	Name        string         `json:"name" db:"name" example:"Acme Systems"`
	Location    string         `json:"location" db:"location" example:"Bengaluru"`
	Website     string         `json:"website" db:"website" example:"https://acme.example.com"`
	Difficulty  DifficultyTier `json:"difficulty" db:"difficulty" example:"MODERATE"`
	Description string         `json:"description" db:"description"`
	CreatedBy   int64          `json:"createdBy" db:"created_by"` // User ID of the staff member who added the company
	CreatedAt   time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time      `json:"updatedAt" db:"updated_at"`
}
