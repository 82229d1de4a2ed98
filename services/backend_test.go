package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/muneeb-arif/my-portfolio-sub000/client"
	"github.com/muneeb-arif/my-portfolio-sub000/models"
	"github.com/muneeb-arif/my-portfolio-sub000/progress"
)

// fakeBackend is an in-memory stand-in for the portfolio API. It speaks the
// same envelope as the real backend, assigns ids on insert, enforces
// natural-key uniqueness, and cascades technology deletes to skills.
// Rejections come back as 2xx envelopes with success=false, matching how
// the backend reports application-level errors.
type fakeBackend struct {
	mu           sync.Mutex
	categories   map[uuid.UUID]models.Category
	technologies map[uuid.UUID]models.Technology
	skills       map[uuid.UUID]models.Skill
	niches       map[uuid.UUID]models.Niche
	projects     map[uuid.UUID]models.Project
	images       map[uuid.UUID]models.ProjectImage
	settings     map[string]models.Setting

	// rejectCreates lists natural keys whose insert is refused, for
	// exercising per-record failure handling
	rejectCreates map[string]bool
	// blockDeletes lists ids whose delete is refused, for exercising the
	// upsert path behind a surviving duplicate
	blockDeletes map[uuid.UUID]bool
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		categories:    make(map[uuid.UUID]models.Category),
		technologies:  make(map[uuid.UUID]models.Technology),
		skills:        make(map[uuid.UUID]models.Skill),
		niches:        make(map[uuid.UUID]models.Niche),
		projects:      make(map[uuid.UUID]models.Project),
		images:        make(map[uuid.UUID]models.ProjectImage),
		settings:      make(map[string]models.Setting),
		rejectCreates: make(map[string]bool),
		blockDeletes:  make(map[uuid.UUID]bool),
	}
}

func respond(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	payload, _ := json.Marshal(data)
	json.NewEncoder(w).Encode(map[string]any{"success": true, "data": json.RawMessage(payload)})
}

func respondError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"success": false, "error": message})
}

func parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, "invalid id")
		return uuid.Nil, false
	}
	return id, true
}

func (b *fakeBackend) router() *chi.Mux {
	r := chi.NewRouter()

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
	})

	r.Get("/categories", func(w http.ResponseWriter, _ *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		respond(w, values(b.categories))
	})
	r.Post("/categories", func(w http.ResponseWriter, req *http.Request) {
		var category models.Category
		json.NewDecoder(req.Body).Decode(&category)
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.rejectCreates[category.Name] {
			respondError(w, "insert refused for "+category.Name)
			return
		}
		for _, existing := range b.categories {
			if existing.Name == category.Name {
				respondError(w, "category name already exists")
				return
			}
		}
		category.ID = uuid.New()
		b.categories[category.ID] = category
		respond(w, category)
	})
	r.Put("/categories/{id}", func(w http.ResponseWriter, req *http.Request) {
		id, ok := parseID(w, req)
		if !ok {
			return
		}
		var category models.Category
		json.NewDecoder(req.Body).Decode(&category)
		b.mu.Lock()
		defer b.mu.Unlock()
		if _, exists := b.categories[id]; !exists {
			respondError(w, "category not found")
			return
		}
		category.ID = id
		b.categories[id] = category
		respond(w, category)
	})
	r.Delete("/categories/{id}", func(w http.ResponseWriter, req *http.Request) {
		id, ok := parseID(w, req)
		if !ok {
			return
		}
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.blockDeletes[id] {
			respondError(w, "delete refused")
			return
		}
		category, exists := b.categories[id]
		if exists {
			for _, project := range b.projects {
				if project.Category == category.Name {
					respondError(w, "category is referenced by a project")
					return
				}
			}
		}
		delete(b.categories, id)
		respond(w, nil)
	})

	r.Get("/technologies", func(w http.ResponseWriter, _ *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		respond(w, values(b.technologies))
	})
	r.Post("/technologies", func(w http.ResponseWriter, req *http.Request) {
		var technology models.Technology
		json.NewDecoder(req.Body).Decode(&technology)
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.rejectCreates[technology.Title] {
			respondError(w, "insert refused for "+technology.Title)
			return
		}
		for _, existing := range b.technologies {
			if existing.Title == technology.Title {
				respondError(w, "technology title already exists")
				return
			}
		}
		technology.ID = uuid.New()
		b.technologies[technology.ID] = technology
		respond(w, technology)
	})
	r.Put("/technologies/{id}", func(w http.ResponseWriter, req *http.Request) {
		id, ok := parseID(w, req)
		if !ok {
			return
		}
		var technology models.Technology
		json.NewDecoder(req.Body).Decode(&technology)
		b.mu.Lock()
		defer b.mu.Unlock()
		if _, exists := b.technologies[id]; !exists {
			respondError(w, "technology not found")
			return
		}
		technology.ID = id
		b.technologies[id] = technology
		respond(w, technology)
	})
	r.Delete("/technologies/{id}", func(w http.ResponseWriter, req *http.Request) {
		id, ok := parseID(w, req)
		if !ok {
			return
		}
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.blockDeletes[id] {
			respondError(w, "delete refused")
			return
		}
		delete(b.technologies, id)
		// Cascade to skills
		for skillID, skill := range b.skills {
			if skill.TechnologyID == id {
				delete(b.skills, skillID)
			}
		}
		respond(w, nil)
	})

	r.Get("/skills", func(w http.ResponseWriter, _ *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		respond(w, values(b.skills))
	})
	r.Post("/skills", func(w http.ResponseWriter, req *http.Request) {
		var skill models.Skill
		json.NewDecoder(req.Body).Decode(&skill)
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.rejectCreates[skill.Name] {
			respondError(w, "insert refused for "+skill.Name)
			return
		}
		if _, exists := b.technologies[skill.TechnologyID]; !exists {
			respondError(w, "technology not found for skill")
			return
		}
		skill.ID = uuid.New()
		b.skills[skill.ID] = skill
		respond(w, skill)
	})
	r.Put("/skills/{id}", func(w http.ResponseWriter, req *http.Request) {
		id, ok := parseID(w, req)
		if !ok {
			return
		}
		var skill models.Skill
		json.NewDecoder(req.Body).Decode(&skill)
		b.mu.Lock()
		defer b.mu.Unlock()
		if _, exists := b.skills[id]; !exists {
			respondError(w, "skill not found")
			return
		}
		skill.ID = id
		b.skills[id] = skill
		respond(w, skill)
	})
	r.Delete("/skills/{id}", func(w http.ResponseWriter, req *http.Request) {
		id, ok := parseID(w, req)
		if !ok {
			return
		}
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.skills, id)
		respond(w, nil)
	})

	r.Get("/niches", func(w http.ResponseWriter, _ *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		respond(w, values(b.niches))
	})
	r.Post("/niches", func(w http.ResponseWriter, req *http.Request) {
		var niche models.Niche
		json.NewDecoder(req.Body).Decode(&niche)
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.rejectCreates[niche.Title] {
			respondError(w, "insert refused for "+niche.Title)
			return
		}
		for _, existing := range b.niches {
			if existing.Title == niche.Title {
				respondError(w, "niche title already exists")
				return
			}
		}
		niche.ID = uuid.New()
		b.niches[niche.ID] = niche
		respond(w, niche)
	})
	r.Put("/niches/{id}", func(w http.ResponseWriter, req *http.Request) {
		id, ok := parseID(w, req)
		if !ok {
			return
		}
		var niche models.Niche
		json.NewDecoder(req.Body).Decode(&niche)
		b.mu.Lock()
		defer b.mu.Unlock()
		if _, exists := b.niches[id]; !exists {
			respondError(w, "niche not found")
			return
		}
		niche.ID = id
		b.niches[id] = niche
		respond(w, niche)
	})
	r.Delete("/niches/{id}", func(w http.ResponseWriter, req *http.Request) {
		id, ok := parseID(w, req)
		if !ok {
			return
		}
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.niches, id)
		respond(w, nil)
	})

	r.Get("/projects", func(w http.ResponseWriter, _ *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		respond(w, values(b.projects))
	})
	r.Post("/projects", func(w http.ResponseWriter, req *http.Request) {
		var project models.Project
		json.NewDecoder(req.Body).Decode(&project)
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.rejectCreates[project.Title] {
			respondError(w, "insert refused for "+project.Title)
			return
		}
		for _, existing := range b.projects {
			if existing.Title == project.Title {
				respondError(w, "project title already exists")
				return
			}
		}
		project.ID = uuid.New()
		b.projects[project.ID] = project
		respond(w, project)
	})
	r.Put("/projects/{id}", func(w http.ResponseWriter, req *http.Request) {
		id, ok := parseID(w, req)
		if !ok {
			return
		}
		var project models.Project
		json.NewDecoder(req.Body).Decode(&project)
		b.mu.Lock()
		defer b.mu.Unlock()
		if _, exists := b.projects[id]; !exists {
			respondError(w, "project not found")
			return
		}
		project.ID = id
		b.projects[id] = project
		respond(w, project)
	})
	r.Delete("/projects/{id}", func(w http.ResponseWriter, req *http.Request) {
		id, ok := parseID(w, req)
		if !ok {
			return
		}
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.projects, id)
		respond(w, nil)
	})

	r.Get("/project-images", func(w http.ResponseWriter, _ *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		respond(w, values(b.images))
	})
	r.Post("/project-images", func(w http.ResponseWriter, req *http.Request) {
		var image models.ProjectImage
		json.NewDecoder(req.Body).Decode(&image)
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.rejectCreates[image.URL] {
			respondError(w, "insert refused for "+image.URL)
			return
		}
		if _, exists := b.projects[image.ProjectID]; !exists {
			respondError(w, "project not found for image")
			return
		}
		image.ID = uuid.New()
		b.images[image.ID] = image
		respond(w, image)
	})
	r.Delete("/project-images/{id}", func(w http.ResponseWriter, req *http.Request) {
		id, ok := parseID(w, req)
		if !ok {
			return
		}
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.images, id)
		respond(w, nil)
	})

	r.Get("/settings", func(w http.ResponseWriter, _ *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		settings := make([]models.Setting, 0, len(b.settings))
		for _, s := range b.settings {
			settings = append(settings, s)
		}
		respond(w, settings)
	})
	r.Put("/settings/{key}", func(w http.ResponseWriter, req *http.Request) {
		var setting models.Setting
		json.NewDecoder(req.Body).Decode(&setting)
		setting.Key = chi.URLParam(req, "key")
		b.mu.Lock()
		defer b.mu.Unlock()
		b.settings[setting.Key] = setting
		respond(w, setting)
	})
	r.Delete("/settings/{key}", func(w http.ResponseWriter, req *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.settings, chi.URLParam(req, "key"))
		respond(w, nil)
	})

	return r
}

func values[T any](m map[uuid.UUID]T) []T {
	out := make([]T, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	return out
}

// counts is a convenience snapshot for assertions
func (b *fakeBackend) counts() map[string]int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return map[string]int{
		"categories":   len(b.categories),
		"technologies": len(b.technologies),
		"skills":       len(b.skills),
		"niches":       len(b.niches),
		"projects":     len(b.projects),
		"images":       len(b.images),
	}
}

func (b *fakeBackend) seedCategory(name, description string) uuid.UUID {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := uuid.New()
	b.categories[id] = models.Category{ID: id, Name: name, Description: description}
	return id
}

func (b *fakeBackend) categoryNames() map[string]uuid.UUID {
	b.mu.Lock()
	defer b.mu.Unlock()
	names := make(map[string]uuid.UUID, len(b.categories))
	for id, c := range b.categories {
		names[c.Name] = id
	}
	return names
}

// testSeed is a SeedSource with whatever records a test needs
type testSeed struct {
	categories   []models.Category
	technologies []models.Technology
	niches       []models.Niche
	projects     []models.Project
}

func (s testSeed) Categories() []models.Category     { return s.categories }
func (s testSeed) Technologies() []models.Technology { return s.technologies }
func (s testSeed) Niches() []models.Niche            { return s.niches }
func (s testSeed) Projects() []models.Project        { return s.projects }

func newTestEngine(t *testing.T, seed SeedSource) (*Engine, *fakeBackend, *progress.Reporter) {
	t.Helper()

	backend := newFakeBackend()
	server := httptest.NewServer(backend.router())
	t.Cleanup(server.Close)

	apiClient := client.New(map[string]string{
		"API_BASE_URL":                  server.URL,
		"OWNER_TENANT_ID":               "tenant-test",
		"HEALTH_PROBE_INTERVAL_SECONDS": "3600",
		"HTTP_TIMEOUT_SECONDS":          "5",
	})
	reporter := progress.NewReporter()
	return NewEngine(apiClient, seed, reporter), backend, reporter
}
