package services

import (
	"context"
	"fmt"

	"github.com/muneeb-arif/my-portfolio-sub000/errs"
	"github.com/muneeb-arif/my-portfolio-sub000/models"
)

// Restore imports a previously exported backup document. Validation runs
// before any write: a document missing its metadata or data section is
// rejected outright with no partial import. Once validated, records are
// written in the same dependency order as a sync, with the same per-record
// failure isolation.
func (e *Engine) Restore(ctx context.Context, doc *models.BackupDocument) (*Summary, error) {
	e.setPhase(PhaseValidating)

	if doc == nil {
		e.setPhase(PhaseIdle)
		return nil, errs.NewInvalidBackupDocumentError("document is empty")
	}
	if err := doc.Validate(); err != nil {
		e.setPhase(PhaseIdle)
		e.reporter.Error(fmt.Sprintf("Backup document rejected: %v", err))
		return nil, err
	}

	e.reporter.Info(fmt.Sprintf("Restoring backup from %s (%d records)",
		doc.Metadata.ExportedAt.Format("2006-01-02 15:04"), totalCount(doc.Data.TotalRecords())))

	e.resetIDMap()
	e.client.CheckHealth(ctx)

	e.setPhase(PhaseImporting)
	results, cancelled := e.writeAll(ctx, syncBatch{
		Categories:   doc.Data.Categories,
		Technologies: doc.Data.Technologies,
		Skills:       restoreSkills(doc.Data),
		Niches:       doc.Data.Niches,
		Projects:     doc.Data.Projects,
		Images:       restoreImages(doc.Data),
	})

	return e.finish(results, cancelled, "restore"), nil
}

// RestoreFromJSON parses a raw backup artifact and restores it
func (e *Engine) RestoreFromJSON(ctx context.Context, raw []byte) (*Summary, error) {
	doc, err := models.ParseBackupDocument(raw)
	if err != nil {
		e.reporter.Error(fmt.Sprintf("Backup document rejected: %v", err))
		return nil, err
	}
	return e.Restore(ctx, doc)
}

// restoreSkills prefers the document's top-level skills array and falls
// back to the skills nested under technologies for older artifacts.
func restoreSkills(data *models.BackupData) []models.Skill {
	if len(data.Skills) > 0 {
		return data.Skills
	}
	return flattenSkills(data.Technologies)
}

func restoreImages(data *models.BackupData) []models.ProjectImage {
	if len(data.ProjectImages) > 0 {
		return data.ProjectImages
	}
	return flattenImages(data.Projects)
}
