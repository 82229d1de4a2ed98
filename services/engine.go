// Package services holds the bulk operations that move whole datasets
// between the backend, the static seed, and backup documents.
package services

import (
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/muneeb-arif/my-portfolio-sub000/client"
	"github.com/muneeb-arif/my-portfolio-sub000/models"
	"github.com/muneeb-arif/my-portfolio-sub000/progress"
)

// Run phases. A run always ends in PhaseComplete: individual record
// failures land in the summary, never in a failed terminal state.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseClearing   Phase = "clearing"
	PhaseSyncing    Phase = "syncing"
	PhaseCollecting Phase = "collecting"
	PhaseExporting  Phase = "exporting"
	PhaseValidating Phase = "validating"
	PhaseImporting  Phase = "importing"
	PhaseComplete   Phase = "complete"
)

// Results counts records confirmed written per entity type
type Results struct {
	Projects     int `json:"projects"`
	Technologies int `json:"technologies"`
	Skills       int `json:"skills"`
	Niches       int `json:"niches"`
	Categories   int `json:"categories"`
}

// Summary is the structured result every bulk operation returns. Success
// reflects whether the run completed without aborting, not whether every
// record succeeded.
type Summary struct {
	Success bool    `json:"success"`
	Message string  `json:"message"`
	Results Results `json:"results"`
}

// SeedSource supplies the records a sync reseeds from. The static fallback
// dataset satisfies it; tests substitute their own.
type SeedSource interface {
	Categories() []models.Category
	Technologies() []models.Technology
	Niches() []models.Niche
	Projects() []models.Project
}

// Engine orchestrates sync, backup, restore, and reset across all entity
// types, in dependency order, one record at a time.
type Engine struct {
	client   *client.Client
	seed     SeedSource
	reporter *progress.Reporter
	logger   zerolog.Logger

	mu    sync.Mutex
	phase Phase
	// idMap records backend-generated ids for parents (technologies,
	// projects), keyed by the id the incoming record carried. Children are
	// only written after their parent's new id is present here.
	idMap map[uuid.UUID]uuid.UUID
}

func NewEngine(apiClient *client.Client, seed SeedSource, reporter *progress.Reporter) *Engine {
	e := &Engine{
		client:   apiClient,
		seed:     seed,
		reporter: reporter,
		logger:   log.With().Str("component", "syncEngine").Logger(),
		phase:    PhaseIdle,
		idMap:    make(map[uuid.UUID]uuid.UUID),
	}
	// Route the client's one-time degraded notice into the progress stream
	apiClient.SetDegradedNoticeFunc(func(message string) {
		reporter.Warning(message)
	})
	return e
}

// Phase reports the engine's current run phase
func (e *Engine) Phase() Phase {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.phase
}

func (e *Engine) setPhase(phase Phase) {
	e.mu.Lock()
	e.phase = phase
	e.mu.Unlock()
	e.logger.Debug().Str("phase", string(phase)).Msg("Phase transition")
}

func (e *Engine) resetIDMap() {
	e.mu.Lock()
	e.idMap = make(map[uuid.UUID]uuid.UUID)
	e.mu.Unlock()
}

func (e *Engine) mapID(oldID, newID uuid.UUID) {
	e.mu.Lock()
	e.idMap[oldID] = newID
	e.mu.Unlock()
}

func (e *Engine) mappedID(oldID uuid.UUID) (uuid.UUID, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	newID, ok := e.idMap[oldID]
	return newID, ok
}
