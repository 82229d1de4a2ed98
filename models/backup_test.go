package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muneeb-arif/my-portfolio-sub000/errs"
)

func validDocumentJSON() []byte {
	return []byte(`{
		"metadata": {
			"exportedAt": "2025-06-01T12:00:00Z",
			"tenantId": "tenant-1",
			"version": "1.0",
			"totalRecords": {"categories": 1}
		},
		"data": {
			"projects": [],
			"technologies": [],
			"skills": [],
			"niches": [],
			"categories": [{"id": "a1b2c3d4-0001-4000-8000-000000000001", "name": "Web", "description": ""}],
			"projectImages": []
		}
	}`)
}

func TestParseBackupDocument_Valid(t *testing.T) {
	doc, err := ParseBackupDocument(validDocumentJSON())
	require.NoError(t, err)

	assert.Equal(t, "tenant-1", doc.Metadata.TenantID)
	assert.Equal(t, "1.0", doc.Metadata.Version)
	assert.Equal(t, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC), doc.Metadata.ExportedAt)
	require.Len(t, doc.Data.Categories, 1)
	assert.Equal(t, "Web", doc.Data.Categories[0].Name)
}

func TestParseBackupDocument_RejectsMissingTopLevelKeys(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"missing metadata", `{"data": {"projects": []}}`},
		{"missing data", `{"metadata": {"version": "1.0"}}`},
		{"empty object", `{}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseBackupDocument([]byte(tc.raw))
			require.Error(t, err)
			assert.True(t, errs.IsInvalidBackupDocument(err))
		})
	}
}

func TestParseBackupDocument_RejectsMalformedJSON(t *testing.T) {
	_, err := ParseBackupDocument([]byte(`{"metadata": `))
	require.Error(t, err)
	assert.True(t, errs.IsInvalidBackupDocument(err))
}

func TestParseBackupDocument_RejectsMissingVersion(t *testing.T) {
	_, err := ParseBackupDocument([]byte(`{"metadata": {"tenantId": "t"}, "data": {}}`))
	require.Error(t, err)
	assert.True(t, errs.IsInvalidBackupDocument(err))
}

func TestBackupData_TotalRecords(t *testing.T) {
	data := BackupData{
		Categories: []Category{{Name: "Web"}, {Name: "AI"}},
		Skills:     []Skill{{Name: "Go"}},
	}

	counts := data.TotalRecords()
	assert.Equal(t, 2, counts["categories"])
	assert.Equal(t, 1, counts["skills"])
	assert.Equal(t, 0, counts["projects"])
}
