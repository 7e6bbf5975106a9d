package models

import "github.com/dmitrijs2005/devfolio/internal/timex"

// Repository is source-code repository metadata attached to a user.
type Repository struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	URL         string     `json:"url"`
	Language    string     `json:"language,omitempty"`
	Stars       int        `json:"stars"`
	Forks       int        `json:"forks"`
	IsPrivate   bool       `json:"isPrivate"`
	UserID      string     `json:"userId"`
	TechStackID *int64     `json:"techStackId,omitempty"`
	CreatedAt   timex.Time `json:"createdAt"`
}

// RepositoryInput is the create/update body.
type RepositoryInput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url"`
	Language    string `json:"language,omitempty"`
	Stars       int    `json:"stars"`
	Forks       int    `json:"forks"`
	IsPrivate   bool   `json:"isPrivate"`
	UserID      string `json:"userId,omitempty"`
	TechStackID *int64 `json:"techStackId,omitempty"`
}

// BulkDeleteResult is returned by the repository bulk delete endpoint.
type BulkDeleteResult struct {
	Deleted  int     `json:"deleted"`
	NotFound []int64 `json:"notFound,omitempty"`
}
