package models

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// Niche is a standalone service/specialty entry. Display order is driven
// entirely by SortOrder, not by creation time.
type Niche struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Overview    string    `json:"overview"`
	Tools       string    `json:"tools,omitempty"`
	KeyFeatures string    `json:"keyFeatures,omitempty"`
	Image       string    `json:"image,omitempty"`
	SortOrder   int       `json:"sortOrder"`
	AIDriven    bool      `json:"aiDriven"`
}

func (n Niche) NaturalKey() string {
	return n.Title
}

func (n Niche) Validate() error {
	return validation.ValidateStruct(&n,
		validation.Field(&n.Title, validation.Required, validation.Length(1, 160)),
		validation.Field(&n.Overview, validation.Required),
		validation.Field(&n.SortOrder, validation.Min(0)),
	)
}
