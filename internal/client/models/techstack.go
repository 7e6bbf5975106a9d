package models

import "github.com/dmitrijs2005/devfolio/internal/timex"

// TechStack is a catalog entry (language, framework, tool).
type TechStack struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Category    string     `json:"category,omitempty"`
	Description string     `json:"description,omitempty"`
	Color       string     `json:"color,omitempty"`
	CreatedAt   timex.Time `json:"createdAt"`
}

// TechStackInput is the create/update body.
type TechStackInput struct {
	Name        string `json:"name"`
	Category    string `json:"category,omitempty"`
	Description string `json:"description,omitempty"`
	Color       string `json:"color,omitempty"`
}

// CatalogQuery filters the tech stack and repository listings.
type CatalogQuery struct {
	Page     int
	PageSize int
	Search   string
	Category string
	UserID   string
}
