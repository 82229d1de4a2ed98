package models

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// Category groups projects by display section. Projects reference a
// category by name, not by id, so Name is the natural key and must stay
// unique per tenant.
type Category struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Color       string    `json:"color,omitempty"`
}

// NaturalKey returns the business-unique field used for conflict resolution
func (c Category) NaturalKey() string {
	return c.Name
}

func (c Category) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Name, validation.Required, validation.Length(1, 120)),
		validation.Field(&c.Description, validation.Length(0, 2000)),
	)
}
