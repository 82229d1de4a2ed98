package services

import (
	"context"
	"fmt"
	"time"

	"github.com/muneeb-arif/my-portfolio-sub000/models"
)

// Backup exports the full tenant dataset into a single downloadable
// document. Reads go through the fallback-aware client, so a backup taken
// while the backend is down captures the seed dataset instead of failing.
func (e *Engine) Backup(ctx context.Context) (*models.BackupDocument, error) {
	e.reporter.Info("Starting backup export")
	e.client.CheckHealth(ctx)

	e.setPhase(PhaseCollecting)

	data := &models.BackupData{}
	var firstErr error

	collect := func(entity string, fn func() error) {
		if err := fn(); err != nil {
			e.reporter.Error(fmt.Sprintf("Could not collect %s: %v", entity, err))
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	collect("projects", func() (err error) {
		data.Projects, err = e.client.ListProjects(ctx)
		return
	})
	collect("technologies", func() (err error) {
		data.Technologies, err = e.client.ListTechnologies(ctx)
		return
	})
	collect("skills", func() (err error) {
		data.Skills, err = e.client.ListSkills(ctx)
		return
	})
	collect("niches", func() (err error) {
		data.Niches, err = e.client.ListNiches(ctx)
		return
	})
	collect("categories", func() (err error) {
		data.Categories, err = e.client.ListCategories(ctx)
		return
	})
	collect("projectImages", func() (err error) {
		data.ProjectImages, err = e.client.ListProjectImages(ctx)
		return
	})

	e.setPhase(PhaseExporting)

	doc := &models.BackupDocument{
		Metadata: &models.BackupMetadata{
			ExportedAt:   time.Now().UTC(),
			TenantID:     e.client.TenantID(),
			Version:      models.BackupVersion,
			TotalRecords: data.TotalRecords(),
		},
		Data: data,
	}

	e.setPhase(PhaseComplete)

	if firstErr != nil {
		e.reporter.Warning("Backup completed with collection errors")
		return doc, firstErr
	}
	e.reporter.Success(fmt.Sprintf("Backup complete: %d records exported", totalCount(doc.Metadata.TotalRecords)))
	return doc, nil
}

func totalCount(counts map[string]int) int {
	total := 0
	for _, n := range counts {
		total += n
	}
	return total
}
