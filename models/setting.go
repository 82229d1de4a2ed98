package models

import (
	"encoding/json"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Setting is a tenant-scoped key/value pair. Value is opaque to this layer:
// it may be a JSON document or a bare string, and is stored verbatim.
// Settings are upserted by key, never duplicated.
type Setting struct {
	TenantID string          `json:"tenantId"`
	Key      string          `json:"key"`
	Value    json.RawMessage `json:"value"`
}

func (s Setting) NaturalKey() string {
	return s.Key
}

func (s Setting) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Key, validation.Required, validation.Length(1, 120)),
	)
}

// StringValue returns the value as a plain string, unquoting it when the
// raw payload is a JSON string literal.
func (s Setting) StringValue() string {
	var asString string
	if err := json.Unmarshal(s.Value, &asString); err == nil {
		return asString
	}
	return string(s.Value)
}
