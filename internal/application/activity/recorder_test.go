package activity_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/jhoicas/stocky-api/internal/application/activity"
	"github.com/jhoicas/stocky-api/internal/domain/entity"
	"github.com/jhoicas/stocky-api/pkg/logger"
)

type mockActivityRepo struct {
	mock.Mock
}

func (m *mockActivityRepo) Append(ctx context.Context, e *entity.ActivityLog) error {
	return m.Called(ctx, e).Error(0)
}

func TestRecord_AñadeEntrada(t *testing.T) {
	repo := new(mockActivityRepo)
	repo.On("Append", mock.Anything, mock.MatchedBy(func(e *entity.ActivityLog) bool {
		return e.EntityType == entity.ActivityOrder &&
			e.EntityID == "o-1" &&
			e.Action == "status" &&
			e.ActorUserID == "u-1" &&
			string(e.Payload) == `{"to":"delivered"}` &&
			e.ID != "" && !e.At.IsZero()
	})).Return(nil).Once()

	activity.NewRecorder(logger.Nop()).Record(context.Background(), repo, entity.ActivityOrder, "o-1", "status", "u-1", map[string]string{"to": "delivered"})

	repo.AssertExpectations(t)
}

func TestRecord_FalloNoPropagaYSeRegistra(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "info", Output: &buf})
	repo := new(mockActivityRepo)
	repo.On("Append", mock.Anything, mock.Anything).Return(errors.New("disco lleno")).Once()

	assert.NotPanics(t, func() {
		activity.NewRecorder(log).Record(context.Background(), repo, entity.ActivitySerial, "s-1", "status", "u-1", nil)
	})

	repo.AssertExpectations(t)
	assert.Contains(t, buf.String(), "disco lleno")
}

func TestRecord_EntradaIncompletaNoSeEscribe(t *testing.T) {
	repo := new(mockActivityRepo)

	activity.NewRecorder(nil).Record(context.Background(), repo, entity.ActivityItem, "", "create", "u-1", nil)

	repo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

func TestRecord_UsaElRelojInyectado(t *testing.T) {
	fixed := time.Date(2026, 10, 15, 9, 30, 0, 0, time.FixedZone("COT", -5*3600))
	repo := new(mockActivityRepo)
	repo.On("Append", mock.Anything, mock.MatchedBy(func(e *entity.ActivityLog) bool {
		return e.At.Equal(fixed) && e.At.Location() == time.UTC
	})).Return(nil).Once()

	rec := activity.NewRecorder(logger.Nop()).WithClock(func() time.Time { return fixed })
	rec.Record(context.Background(), repo, entity.ActivityAssignment, "a-1", "assign", "u-1", nil)

	repo.AssertExpectations(t)
}
