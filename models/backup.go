package models

import (
	"encoding/json"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/muneeb-arif/my-portfolio-sub000/errs"
)

// BackupVersion identifies the backup document layout produced by this
// release. Restores accept any document that carries both top-level keys.
const BackupVersion = "1.0"

// BackupMetadata describes when and for whom a backup was taken
type BackupMetadata struct {
	ExportedAt   time.Time      `json:"exportedAt"`
	TenantID     string         `json:"tenantId"`
	Version      string         `json:"version"`
	TotalRecords map[string]int `json:"totalRecords"`
}

// BackupData holds the full exported record set for every entity type
type BackupData struct {
	Projects      []Project      `json:"projects"`
	Technologies  []Technology   `json:"technologies"`
	Skills        []Skill        `json:"skills"`
	Niches        []Niche        `json:"niches"`
	Categories    []Category     `json:"categories"`
	ProjectImages []ProjectImage `json:"projectImages"`
}

// BackupDocument is the single downloadable JSON artifact produced by the
// backup operation and consumed by restore.
type BackupDocument struct {
	Metadata *BackupMetadata `json:"metadata"`
	Data     *BackupData     `json:"data"`
}

// ParseBackupDocument decodes and validates a backup artifact. A document
// missing either the metadata or data top-level key is rejected before any
// import work starts.
func ParseBackupDocument(raw []byte) (*BackupDocument, error) {
	var doc BackupDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, errs.NewInvalidBackupDocumentError("not valid JSON: " + err.Error())
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (d BackupDocument) Validate() error {
	if d.Metadata == nil {
		return errs.NewInvalidBackupDocumentError("missing top-level metadata key")
	}
	if d.Data == nil {
		return errs.NewInvalidBackupDocumentError("missing top-level data key")
	}
	if err := validation.ValidateStruct(d.Metadata,
		validation.Field(&d.Metadata.Version, validation.Required),
	); err != nil {
		return errs.NewInvalidBackupDocumentError("metadata invalid: " + err.Error())
	}
	return nil
}

// TotalRecords counts every record in the data section, keyed by entity name
func (d BackupData) TotalRecords() map[string]int {
	return map[string]int{
		"projects":      len(d.Projects),
		"technologies":  len(d.Technologies),
		"skills":        len(d.Skills),
		"niches":        len(d.Niches),
		"categories":    len(d.Categories),
		"projectImages": len(d.ProjectImages),
	}
}
