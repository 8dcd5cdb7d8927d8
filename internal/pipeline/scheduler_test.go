package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chybatronik/busTicketSeed/internal/models"
	"github.com/chybatronik/busTicketSeed/internal/registry"
	"github.com/chybatronik/busTicketSeed/pkg/errors"
)

func record(trace *[]string, name string) func(context.Context) error {
	return func(context.Context) error {
		*trace = append(*trace, name)
		return nil
	}
}

func TestSchedulerRunsLevelsInOrder(t *testing.T) {
	reg := registry.New()
	s := NewScheduler(reg, nil)

	var trace []string
	s.Add(
		Phase{Name: "bus", Level: 1, Requires: []models.Entity{models.Company}, Produces: []models.Entity{models.Bus}, Run: record(&trace, "bus")},
		Phase{Name: "company", Level: 0, Produces: []models.Entity{models.Company}, Run: record(&trace, "company")},
		Phase{Name: "schedule", Level: 2, Requires: []models.Entity{models.Bus}, Produces: []models.Entity{models.Schedule}, Run: record(&trace, "schedule")},
		Phase{Name: "driver", Level: 0, Produces: []models.Entity{models.Driver}, Run: record(&trace, "driver")},
	)

	require.NoError(t, s.Run(context.Background()))
	assert.Equal(t, []string{"company", "driver", "bus", "schedule"}, trace)

	for _, e := range []models.Entity{models.Company, models.Driver, models.Bus, models.Schedule} {
		assert.True(t, reg.IsSealed(e), "%s should be sealed", e)
	}
}

func TestSchedulerSealsAfterWholeLevel(t *testing.T) {
	reg := registry.New()
	s := NewScheduler(reg, nil)

	var sealedDuringLevel bool
	s.Add(
		Phase{Name: "company", Level: 0, Produces: []models.Entity{models.Company}, Run: func(context.Context) error {
			return reg.Register(models.Company, 1)
		}},
		Phase{Name: "member", Level: 0, Produces: []models.Entity{models.Member}, Run: func(context.Context) error {
			sealedDuringLevel = reg.IsSealed(models.Company)
			return nil
		}},
	)

	require.NoError(t, s.Run(context.Background()))
	assert.False(t, sealedDuringLevel)
	assert.Error(t, reg.Register(models.Company, 2))
}

func TestSchedulerRejectsMissingDependency(t *testing.T) {
	reg := registry.New()
	s := NewScheduler(reg, nil)

	ran := false
	s.Add(Phase{Name: "booking", Level: 0, Requires: []models.Entity{models.Payment}, Run: func(context.Context) error {
		ran = true
		return nil
	}})

	err := s.Run(context.Background())
	require.Error(t, err)
	assert.False(t, ran)

	genErr, ok := errors.GetGenerationError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodePhaseOrderViolation, genErr.Code)
}

func TestSchedulerStopsOnCancel(t *testing.T) {
	reg := registry.New()
	s := NewScheduler(reg, nil)

	ctx, cancel := context.WithCancel(context.Background())
	var trace []string
	s.Add(
		Phase{Name: "first", Level: 0, Run: func(context.Context) error {
			trace = append(trace, "first")
			cancel()
			return nil
		}},
		Phase{Name: "second", Level: 1, Run: record(&trace, "second")},
	)

	err := s.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []string{"first"}, trace)
}

func TestLevels(t *testing.T) {
	s := NewScheduler(registry.New(), nil)
	s.Add(
		Phase{Name: "a", Level: 2},
		Phase{Name: "b", Level: 0},
		Phase{Name: "c", Level: 2},
	)

	levels := s.Levels()
	require.Len(t, levels, 2)
	assert.Equal(t, "b", levels[0][0].Name)
	assert.Equal(t, "a", levels[1][0].Name)
	assert.Equal(t, "c", levels[1][1].Name)
}
