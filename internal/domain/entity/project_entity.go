package entity

import "time"

// Project is owned by exactly one user. Owner is set at creation and never changes.
type Project struct {
	ID          string     `json:"_id"`
	Owner       string     `json:"owner"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	TechStack   []string   `json:"techStack"`
	Pinned      bool       `json:"pinned"`
	EmailAlerts bool       `json:"emailAlerts"`
	Notes       string     `json:"notes"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// NewProject returns a project carrying the documented defaults.
func NewProject(owner, title string) *Project {
	return &Project{
		Owner:       owner,
		Title:       title,
		TechStack:   []string{},
		EmailAlerts: true,
	}
}

// ProjectPatch lists the fields a partial update may overwrite. Nil means untouched.
type ProjectPatch struct {
	Title       *string
	Description *string
	StartDate   **time.Time
	EndDate     **time.Time
	TechStack   *[]string
	Pinned      *bool
	EmailAlerts *bool
	Notes       *string
}

// Apply overwrites the named fields of p.
func (pp ProjectPatch) Apply(p *Project) {
	if pp.Title != nil {
		p.Title = *pp.Title
	}
	if pp.Description != nil {
		p.Description = *pp.Description
	}
	if pp.StartDate != nil {
		p.StartDate = *pp.StartDate
	}
	if pp.EndDate != nil {
		p.EndDate = *pp.EndDate
	}
	if pp.TechStack != nil {
		p.TechStack = append([]string{}, (*pp.TechStack)...)
	}
	if pp.Pinned != nil {
		p.Pinned = *pp.Pinned
	}
	if pp.EmailAlerts != nil {
		p.EmailAlerts = *pp.EmailAlerts
	}
	if pp.Notes != nil {
		p.Notes = *pp.Notes
	}
}

// ProjectView is a project as listed to its owner, with progress derived at read time.
type ProjectView struct {
	Project
	Progress int `json:"progress"`
}
