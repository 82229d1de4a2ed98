package models

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// Project statuses
const (
	ProjectStatusDraft     = "draft"
	ProjectStatusPublished = "published"
)

// Project represents a portfolio project with metadata. It references its
// Category by name (not id) and owns zero or more ProjectImages.
type Project struct {
	ID           uuid.UUID      `json:"id"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	Overview     string         `json:"overview,omitempty"`
	Category     string         `json:"category"`
	Status       string         `json:"status"`
	Technologies []string       `json:"technologies,omitempty"`
	Features     []string       `json:"features,omitempty"`
	LiveURL      string         `json:"liveUrl,omitempty"`
	GithubURL    string         `json:"githubUrl,omitempty"`
	Images       []ProjectImage `json:"images,omitempty"`
}

func (p Project) NaturalKey() string {
	return p.Title
}

func (p Project) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&p.Description, validation.Required),
		validation.Field(&p.Status, validation.Required, validation.In(ProjectStatusDraft, ProjectStatusPublished)),
	)
}

// ProjectImage belongs to exactly one Project. After a successful sync the
// OrderIndex values of a project's images form a dense 1..N sequence; the
// full image set is replaced atomically on re-sync, never merged.
type ProjectImage struct {
	ID           uuid.UUID `json:"id"`
	ProjectID    uuid.UUID `json:"projectId"`
	URL          string    `json:"url"`
	OriginalName string    `json:"originalName,omitempty"`
	OrderIndex   int       `json:"orderIndex"`
}

func (i ProjectImage) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.URL, validation.Required),
		validation.Field(&i.OrderIndex, validation.Min(1)),
	)
}
