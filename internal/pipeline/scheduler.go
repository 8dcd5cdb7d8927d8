// Package pipeline runs generation phases in foreign-key dependency order.
//
// Phases are grouped by level. Every phase of a level runs before any phase of
// the next one, and once a level completes the entities it produced are sealed
// so later phases can only read them.
package pipeline

import (
	"context"
	"sort"
	"time"

	"github.com/chybatronik/busTicketSeed/internal/logging"
	"github.com/chybatronik/busTicketSeed/internal/models"
	"github.com/chybatronik/busTicketSeed/pkg/errors"
)

// Phase is one unit of generation work
type Phase struct {
	Name     string
	Level    int
	Requires []models.Entity
	Produces []models.Entity
	Run      func(ctx context.Context) error
}

// Sealer is the part of the registry the scheduler drives
type Sealer interface {
	Seal(entities ...models.Entity)
	IsSealed(entity models.Entity) bool
}

// Scheduler orders and runs phases
type Scheduler struct {
	sealer Sealer
	logger *logging.Logger
	fields *logging.StandardField
	phases []Phase
}

// NewScheduler creates a scheduler sealing entities in the given registry
func NewScheduler(sealer Sealer, logger *logging.Logger) *Scheduler {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Scheduler{
		sealer: sealer,
		logger: logger,
		fields: logging.NewStandardField(),
	}
}

// Add registers phases; within a level they run in registration order
func (s *Scheduler) Add(phases ...Phase) {
	s.phases = append(s.phases, phases...)
}

// Levels returns the phases grouped by ascending level
func (s *Scheduler) Levels() [][]Phase {
	ordered := make([]Phase, len(s.phases))
	copy(ordered, s.phases)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Level < ordered[j].Level
	})

	var levels [][]Phase
	for i, p := range ordered {
		if i == 0 || p.Level != ordered[i-1].Level {
			levels = append(levels, nil)
		}
		levels[len(levels)-1] = append(levels[len(levels)-1], p)
	}
	return levels
}

// Run executes every phase level by level
func (s *Scheduler) Run(ctx context.Context) error {
	for _, level := range s.Levels() {
		var produced []models.Entity

		for _, phase := range level {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := s.runPhase(ctx, phase); err != nil {
				return err
			}
			produced = append(produced, phase.Produces...)
		}

		s.sealer.Seal(produced...)
	}
	return nil
}

func (s *Scheduler) runPhase(ctx context.Context, phase Phase) error {
	logger := s.logger.WithPhase(phase.Name, phase.Level)

	for _, dep := range phase.Requires {
		if !s.sealer.IsSealed(dep) {
			err := errors.NewPhaseOrderError(phase.Name, dep.String())
			logger.WithError(err).Error("Phase dependency not ready")
			return err
		}
	}

	logger.Debug("Phase started")
	started := time.Now()

	if err := phase.Run(ctx); err != nil {
		logger.WithError(err).Error("Phase failed", s.fields.Duration(time.Since(started)))
		return err
	}

	logger.Info("Phase completed", s.fields.Duration(time.Since(started)))
	return nil
}
