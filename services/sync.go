package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/muneeb-arif/my-portfolio-sub000/models"
)

// Sync wipes the backend and reseeds it from the seed dataset. Entity types
// are processed in dependency order (categories, technologies, skills,
// niches, projects, images) so parent ids are always known before children
// are written. The run always completes; per-record failures are reported
// and counted, never fatal.
func (e *Engine) Sync(ctx context.Context) *Summary {
	e.resetIDMap()
	e.reporter.Info("Starting full sync from seed dataset")

	// One probe bounds the health-check overhead for the whole batch
	e.client.CheckHealth(ctx)

	e.setPhase(PhaseClearing)
	if cancelled := e.wipe(ctx); cancelled {
		return e.finish(Results{}, true, "sync")
	}

	e.setPhase(PhaseSyncing)
	results, cancelled := e.writeAll(ctx, syncBatch{
		Categories:   e.seed.Categories(),
		Technologies: e.seed.Technologies(),
		Skills:       flattenSkills(e.seed.Technologies()),
		Niches:       e.seed.Niches(),
		Projects:     e.seed.Projects(),
		Images:       flattenImages(e.seed.Projects()),
	})

	return e.finish(results, cancelled, "sync")
}

// Reset wipes every entity type without reseeding
func (e *Engine) Reset(ctx context.Context) *Summary {
	e.reporter.Info("Starting reset: all portfolio data will be removed")
	e.client.CheckHealth(ctx)

	e.setPhase(PhaseClearing)
	cancelled := e.wipe(ctx)

	return e.finish(Results{}, cancelled, "reset")
}

// syncBatch is the full record set a sync or restore writes
type syncBatch struct {
	Categories   []models.Category
	Technologies []models.Technology
	Skills       []models.Skill
	Niches       []models.Niche
	Projects     []models.Project
	Images       []models.ProjectImage
}

// writeAll runs the entity phases in dependency order. It stops early only
// on context cancellation, checked between record iterations.
func (e *Engine) writeAll(ctx context.Context, batch syncBatch) (Results, bool) {
	var results Results
	var cancelled bool

	results.Categories, cancelled = e.writeCategories(ctx, batch.Categories)
	if cancelled {
		return results, true
	}
	results.Technologies, cancelled = e.writeTechnologies(ctx, batch.Technologies)
	if cancelled {
		return results, true
	}
	results.Skills, cancelled = e.writeSkills(ctx, batch.Skills)
	if cancelled {
		return results, true
	}
	results.Niches, cancelled = e.writeNiches(ctx, batch.Niches)
	if cancelled {
		return results, true
	}
	results.Projects, cancelled = e.writeProjects(ctx, batch.Projects)
	if cancelled {
		return results, true
	}
	_, cancelled = e.writeProjectImages(ctx, batch.Images)
	return results, cancelled
}

func (e *Engine) finish(results Results, cancelled bool, operation string) *Summary {
	e.setPhase(PhaseComplete)
	if cancelled {
		msg := fmt.Sprintf("%s cancelled; remaining phases were skipped", operation)
		e.reporter.Warning(msg)
		return &Summary{Success: false, Message: msg, Results: results}
	}
	msg := fmt.Sprintf("%s complete", operation)
	e.reporter.Success(msg)
	return &Summary{Success: true, Message: msg, Results: results}
}

// wipe deletes every record of every entity type, children before parents
// so foreign-key-style constraints never block a delete. Individual delete
// failures are reported and skipped; cancellation stops the wipe early.
func (e *Engine) wipe(ctx context.Context) bool {
	e.reporter.Info("Clearing existing records")

	images, _ := e.client.ListProjectImages(ctx)
	for _, image := range images {
		if ctx.Err() != nil {
			return true
		}
		if err := e.client.DeleteProjectImage(ctx, image.ID); err != nil {
			e.reporter.Warning(fmt.Sprintf("Could not delete project image %s: %v", image.ID, err))
		}
	}

	projects, _ := e.client.ListProjects(ctx)
	for _, project := range projects {
		if ctx.Err() != nil {
			return true
		}
		if err := e.client.DeleteProject(ctx, project.ID); err != nil {
			e.reporter.Warning(fmt.Sprintf("Could not delete project %q: %v", project.Title, err))
		}
	}

	skills, _ := e.client.ListSkills(ctx)
	for _, skill := range skills {
		if ctx.Err() != nil {
			return true
		}
		if err := e.client.DeleteSkill(ctx, skill.ID); err != nil {
			e.reporter.Warning(fmt.Sprintf("Could not delete skill %q: %v", skill.Name, err))
		}
	}

	technologies, _ := e.client.ListTechnologies(ctx)
	for _, technology := range technologies {
		if ctx.Err() != nil {
			return true
		}
		if err := e.client.DeleteTechnology(ctx, technology.ID); err != nil {
			e.reporter.Warning(fmt.Sprintf("Could not delete technology %q: %v", technology.Title, err))
		}
	}

	niches, _ := e.client.ListNiches(ctx)
	for _, niche := range niches {
		if ctx.Err() != nil {
			return true
		}
		if err := e.client.DeleteNiche(ctx, niche.ID); err != nil {
			e.reporter.Warning(fmt.Sprintf("Could not delete niche %q: %v", niche.Title, err))
		}
	}

	categories, _ := e.client.ListCategories(ctx)
	for _, category := range categories {
		if ctx.Err() != nil {
			return true
		}
		if err := e.client.DeleteCategory(ctx, category.ID); err != nil {
			e.reporter.Warning(fmt.Sprintf("Could not delete category %q: %v", category.Name, err))
		}
	}

	e.reporter.Info("Clearing finished")
	return false
}

func (e *Engine) writeCategories(ctx context.Context, categories []models.Category) (int, bool) {
	e.reporter.Info(fmt.Sprintf("Writing %d categories", len(categories)))

	existing := make(map[string]uuid.UUID)
	for _, c := range snapshot(e, func() ([]models.Category, error) { return e.client.ListCategories(ctx) }) {
		existing[c.NaturalKey()] = c.ID
	}

	written := 0
	for _, category := range categories {
		if ctx.Err() != nil {
			return written, true
		}
		if err := category.Validate(); err != nil {
			e.recordFailure("category", category.NaturalKey(), err)
			continue
		}

		e.deleteExisting(ctx, "category", category.NaturalKey(), existing, func(id uuid.UUID) error {
			return e.client.DeleteCategory(ctx, id)
		})

		_, err := e.client.CreateCategory(ctx, category)
		if err != nil {
			// Insert can hit a surviving natural-key constraint when the
			// delete step failed; fall back to an upsert against the known id.
			if id, ok := existing[category.NaturalKey()]; ok {
				category.ID = id
				_, err = e.client.UpdateCategory(ctx, category)
			}
		}
		if err != nil {
			e.recordFailure("category", category.NaturalKey(), err)
			continue
		}
		written++
	}

	e.reporter.Success(fmt.Sprintf("Categories: %d of %d written", written, len(categories)))
	return written, false
}

func (e *Engine) writeTechnologies(ctx context.Context, technologies []models.Technology) (int, bool) {
	e.reporter.Info(fmt.Sprintf("Writing %d technologies", len(technologies)))

	existing := make(map[string]uuid.UUID)
	for _, t := range snapshot(e, func() ([]models.Technology, error) { return e.client.ListTechnologies(ctx) }) {
		existing[t.NaturalKey()] = t.ID
	}

	written := 0
	for _, technology := range technologies {
		if ctx.Err() != nil {
			return written, true
		}
		if err := technology.Validate(); err != nil {
			e.recordFailure("technology", technology.NaturalKey(), err)
			continue
		}

		// Skills are written in their own phase once the parent id is known
		incomingID := technology.ID
		technology.Skills = nil

		e.deleteExisting(ctx, "technology", technology.NaturalKey(), existing, func(id uuid.UUID) error {
			return e.client.DeleteTechnology(ctx, id)
		})

		created, err := e.client.CreateTechnology(ctx, technology)
		if err != nil {
			if id, ok := existing[technology.NaturalKey()]; ok {
				technology.ID = id
				created, err = e.client.UpdateTechnology(ctx, technology)
			}
		}
		if err != nil {
			e.recordFailure("technology", technology.NaturalKey(), err)
			continue
		}

		e.mapID(incomingID, created.ID)
		written++
	}

	e.reporter.Success(fmt.Sprintf("Technologies: %d of %d written", written, len(technologies)))
	return written, false
}

func (e *Engine) writeSkills(ctx context.Context, skills []models.Skill) (int, bool) {
	e.reporter.Info(fmt.Sprintf("Writing %d skills", len(skills)))

	existing := make(map[string]uuid.UUID)
	for _, s := range snapshot(e, func() ([]models.Skill, error) { return e.client.ListSkills(ctx) }) {
		existing[s.NaturalKey()] = s.ID
	}

	written := 0
	for _, skill := range skills {
		if ctx.Err() != nil {
			return written, true
		}
		if err := skill.Validate(); err != nil {
			e.recordFailure("skill", skill.NaturalKey(), err)
			continue
		}

		// A skill is only written once its parent technology's generated id
		// is present in the id map.
		parentID, ok := e.mappedID(skill.TechnologyID)
		if !ok {
			e.recordFailure("skill", skill.NaturalKey(), fmt.Errorf("parent technology %s was not created", skill.TechnologyID))
			continue
		}
		skill.TechnologyID = parentID

		e.deleteExisting(ctx, "skill", skill.NaturalKey(), existing, func(id uuid.UUID) error {
			return e.client.DeleteSkill(ctx, id)
		})

		_, err := e.client.CreateSkill(ctx, skill)
		if err != nil {
			if id, ok := existing[skill.NaturalKey()]; ok {
				skill.ID = id
				_, err = e.client.UpdateSkill(ctx, skill)
			}
		}
		if err != nil {
			e.recordFailure("skill", skill.NaturalKey(), err)
			continue
		}
		written++
	}

	e.reporter.Success(fmt.Sprintf("Skills: %d of %d written", written, len(skills)))
	return written, false
}

func (e *Engine) writeNiches(ctx context.Context, niches []models.Niche) (int, bool) {
	e.reporter.Info(fmt.Sprintf("Writing %d niches", len(niches)))

	existing := make(map[string]uuid.UUID)
	for _, n := range snapshot(e, func() ([]models.Niche, error) { return e.client.ListNiches(ctx) }) {
		existing[n.NaturalKey()] = n.ID
	}

	written := 0
	for _, niche := range niches {
		if ctx.Err() != nil {
			return written, true
		}
		if err := niche.Validate(); err != nil {
			e.recordFailure("niche", niche.NaturalKey(), err)
			continue
		}

		e.deleteExisting(ctx, "niche", niche.NaturalKey(), existing, func(id uuid.UUID) error {
			return e.client.DeleteNiche(ctx, id)
		})

		_, err := e.client.CreateNiche(ctx, niche)
		if err != nil {
			if id, ok := existing[niche.NaturalKey()]; ok {
				niche.ID = id
				_, err = e.client.UpdateNiche(ctx, niche)
			}
		}
		if err != nil {
			e.recordFailure("niche", niche.NaturalKey(), err)
			continue
		}
		written++
	}

	e.reporter.Success(fmt.Sprintf("Niches: %d of %d written", written, len(niches)))
	return written, false
}

func (e *Engine) writeProjects(ctx context.Context, projects []models.Project) (int, bool) {
	e.reporter.Info(fmt.Sprintf("Writing %d projects", len(projects)))

	existing := make(map[string]uuid.UUID)
	for _, p := range snapshot(e, func() ([]models.Project, error) { return e.client.ListProjects(ctx) }) {
		existing[p.NaturalKey()] = p.ID
	}

	written := 0
	for _, project := range projects {
		if ctx.Err() != nil {
			return written, true
		}
		if err := project.Validate(); err != nil {
			e.recordFailure("project", project.NaturalKey(), err)
			continue
		}

		// Images are attached in their own phase against the generated id
		incomingID := project.ID
		project.Images = nil

		e.deleteExisting(ctx, "project", project.NaturalKey(), existing, func(id uuid.UUID) error {
			return e.client.DeleteProject(ctx, id)
		})

		created, err := e.client.CreateProject(ctx, project)
		if err != nil {
			if id, ok := existing[project.NaturalKey()]; ok {
				project.ID = id
				created, err = e.client.UpdateProject(ctx, project)
			}
		}
		if err != nil {
			e.recordFailure("project", project.NaturalKey(), err)
			continue
		}

		e.mapID(incomingID, created.ID)
		written++
	}

	e.reporter.Success(fmt.Sprintf("Projects: %d of %d written", written, len(projects)))
	return written, false
}

// writeProjectImages replaces each project's image set as a whole: existing
// images of the target project are removed, then the incoming set is
// inserted with a dense 1..N order per project.
func (e *Engine) writeProjectImages(ctx context.Context, images []models.ProjectImage) (int, bool) {
	if len(images) == 0 {
		return 0, false
	}
	e.reporter.Info(fmt.Sprintf("Writing %d project images", len(images)))

	existingByProject := make(map[uuid.UUID][]models.ProjectImage)
	for _, img := range snapshot(e, func() ([]models.ProjectImage, error) { return e.client.ListProjectImages(ctx) }) {
		existingByProject[img.ProjectID] = append(existingByProject[img.ProjectID], img)
	}

	byProject := make(map[uuid.UUID][]models.ProjectImage)
	var order []uuid.UUID
	for _, image := range images {
		if _, seen := byProject[image.ProjectID]; !seen {
			order = append(order, image.ProjectID)
		}
		byProject[image.ProjectID] = append(byProject[image.ProjectID], image)
	}

	written := 0
	for _, oldProjectID := range order {
		if ctx.Err() != nil {
			return written, true
		}

		projectID, ok := e.mappedID(oldProjectID)
		if !ok {
			e.recordFailure("projectImage", oldProjectID.String(), fmt.Errorf("parent project %s was not created", oldProjectID))
			continue
		}

		// Full-set replacement: clear whatever the project currently has
		for _, stale := range existingByProject[projectID] {
			if err := e.client.DeleteProjectImage(ctx, stale.ID); err != nil {
				e.reporter.Warning(fmt.Sprintf("Could not delete stale image %s: %v", stale.ID, err))
			}
		}

		set := byProject[oldProjectID]
		sort.SliceStable(set, func(i, j int) bool { return set[i].OrderIndex < set[j].OrderIndex })

		for i, image := range set {
			if ctx.Err() != nil {
				return written, true
			}
			image.ProjectID = projectID
			image.OrderIndex = i + 1
			if err := image.Validate(); err != nil {
				e.recordFailure("projectImage", image.URL, err)
				continue
			}
			if _, err := e.client.CreateProjectImage(ctx, image); err != nil {
				e.recordFailure("projectImage", image.URL, err)
				continue
			}
			written++
		}
	}

	e.reporter.Success(fmt.Sprintf("Project images: %d of %d written", written, len(images)))
	return written, false
}

// deleteExisting runs the delete half of delete-then-insert. Errors are
// reported and ignored: the insert is still attempted.
func (e *Engine) deleteExisting(ctx context.Context, entity, naturalKey string, existing map[string]uuid.UUID, deleteFn func(uuid.UUID) error) {
	id, ok := existing[naturalKey]
	if !ok {
		return
	}
	if err := deleteFn(id); err != nil {
		e.logger.Warn().Err(err).Str("entity", entity).Str("naturalKey", naturalKey).Msg("Pre-insert delete failed, continuing")
		e.reporter.Warning(fmt.Sprintf("Could not delete existing %s %q: %v", entity, naturalKey, err))
	}
}

func (e *Engine) recordFailure(entity, naturalKey string, err error) {
	e.logger.Error().Err(err).Str("entity", entity).Str("naturalKey", naturalKey).Msg("Record sync failed")
	e.reporter.Error(fmt.Sprintf("Failed to sync %s %q: %v", entity, naturalKey, err))
}

// snapshot swallows list errors into an empty result: a missing snapshot
// only degrades conflict resolution, it never blocks the run.
func snapshot[T any](e *Engine, list func() ([]T, error)) []T {
	records, err := list()
	if err != nil {
		e.logger.Warn().Err(err).Msg("Could not snapshot existing records")
		return nil
	}
	return records
}

func flattenSkills(technologies []models.Technology) []models.Skill {
	var skills []models.Skill
	for _, tech := range technologies {
		for _, skill := range tech.Skills {
			skill.TechnologyID = tech.ID
			skills = append(skills, skill)
		}
	}
	return skills
}

func flattenImages(projects []models.Project) []models.ProjectImage {
	var images []models.ProjectImage
	for _, project := range projects {
		for _, image := range project.Images {
			image.ProjectID = project.ID
			images = append(images, image)
		}
	}
	return images
}
