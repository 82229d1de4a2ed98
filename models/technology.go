package models

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// Technology kinds
const (
	TechKindDomain     = "domain"
	TechKindTechnology = "technology"
)

// Technology represents a technology domain or an individual technology
// entry. It owns zero or more Skills; deleting a technology cascades to
// its skills.
type Technology struct {
	ID        uuid.UUID `json:"id"`
	Kind      string    `json:"kind"`
	Title     string    `json:"title"`
	Icon      string    `json:"icon,omitempty"`
	SortOrder int       `json:"sortOrder"`
	Skills    []Skill   `json:"skills,omitempty"`
}

func (t Technology) NaturalKey() string {
	return t.Title
}

func (t Technology) Validate() error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.Kind, validation.Required, validation.In(TechKindDomain, TechKindTechnology)),
		validation.Field(&t.Title, validation.Required, validation.Length(1, 120)),
		validation.Field(&t.SortOrder, validation.Min(0)),
	)
}

// Skill belongs to exactly one Technology. TechnologyID must reference an
// existing technology before the skill is written.
type Skill struct {
	ID              uuid.UUID `json:"id"`
	TechnologyID    uuid.UUID `json:"technologyId"`
	Name            string    `json:"name"`
	Level           int       `json:"level"`
	YearsExperience float64   `json:"yearsExperience"`
}

func (s Skill) NaturalKey() string {
	return s.Name
}

func (s Skill) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Name, validation.Required, validation.Length(1, 120)),
		validation.Field(&s.Level, validation.Required, validation.Min(1), validation.Max(5)),
		validation.Field(&s.YearsExperience, validation.Min(0.0)),
	)
}
