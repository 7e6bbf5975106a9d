package models

import "github.com/dmitrijs2005/devfolio/internal/timex"

// ProjectStatus is the lifecycle stage of a project.
type ProjectStatus string

const (
	ProjectPlanning   ProjectStatus = "Planning"
	ProjectInProgress ProjectStatus = "InProgress"
	ProjectCompleted  ProjectStatus = "Completed"
	ProjectOnHold     ProjectStatus = "OnHold"
	ProjectCancelled  ProjectStatus = "Cancelled"
)

// ProjectStatuses lists the accepted statuses.
var ProjectStatuses = []ProjectStatus{
	ProjectPlanning, ProjectInProgress, ProjectCompleted, ProjectOnHold, ProjectCancelled,
}

// Project is a portfolio entry owned by a user.
type Project struct {
	ID            int64         `json:"id"`
	Title         string        `json:"title"`
	Description   string        `json:"description,omitempty"`
	Status        ProjectStatus `json:"status"`
	StartDate     *timex.Time   `json:"startDate,omitempty"`
	EndDate       *timex.Time   `json:"endDate,omitempty"`
	GithubURL     string        `json:"githubUrl,omitempty"`
	DemoURL       string        `json:"demoUrl,omitempty"`
	IsFeatured    bool          `json:"isFeatured"`
	IsPublic      bool          `json:"isPublic"`
	UserID        string        `json:"userId"`
	TechStackID   *int64        `json:"techStackId,omitempty"`
	TechStackName string        `json:"techStackName,omitempty"`
	CreatedAt     timex.Time    `json:"createdAt"`
	UpdatedAt     timex.Time    `json:"updatedAt"`
}

// ProjectInput is the create/update body.
type ProjectInput struct {
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	Status      ProjectStatus `json:"status"`
	StartDate   *timex.Time   `json:"startDate,omitempty"`
	EndDate     *timex.Time   `json:"endDate,omitempty"`
	GithubURL   string        `json:"githubUrl,omitempty"`
	DemoURL     string        `json:"demoUrl,omitempty"`
	IsFeatured  bool          `json:"isFeatured"`
	IsPublic    bool          `json:"isPublic"`
	TechStackID *int64        `json:"techStackId,omitempty"`
	UserID      string        `json:"userId,omitempty"`
}

// ProjectQuery filters project listings. Zero values are omitted from the
// query string.
type ProjectQuery struct {
	Page        int
	PageSize    int
	Status      ProjectStatus
	Search      string
	TechStackID *int64
	IsFeatured  *bool
	UserID      string
}
