package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/festival-booking/internal/engine"
	"github.com/iliyamo/festival-booking/internal/model"
	"github.com/iliyamo/festival-booking/internal/repository"
)

type catalogMock struct {
	firstFn func(ctx context.Context) (*model.Festival, error)
	daysFn  func(ctx context.Context) ([]repository.DayOccupancy, error)
}

func (m *catalogMock) FirstFestival(ctx context.Context) (*model.Festival, error) {
	return m.firstFn(ctx)
}

func (m *catalogMock) ListDaysWithOccupancy(ctx context.Context) ([]repository.DayOccupancy, error) {
	return m.daysFn(ctx)
}

func newCatalogCtx(target string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestFestivalInfo(t *testing.T) {
	h := NewFestivalHandler(&catalogMock{
		firstFn: func(ctx context.Context) (*model.Festival, error) {
			return &model.Festival{ID: "f1", Name: "Summer Fest", Location: "Riverside Park", CapacityPerDay: 6}, nil
		},
	})

	c, rec := newCatalogCtx("/v1/festival/info")
	require.NoError(t, h.Info(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Summer Fest")
}

func TestFestivalInfoNotConfigured(t *testing.T) {
	h := NewFestivalHandler(&catalogMock{
		firstFn: func(ctx context.Context) (*model.Festival, error) {
			return nil, engine.ErrFestivalNotFound
		},
	})

	c, rec := newCatalogCtx("/v1/festival/info")
	require.NoError(t, h.Info(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFestivalDaysCarryAvailability(t *testing.T) {
	h := NewFestivalHandler(&catalogMock{
		daysFn: func(ctx context.Context) ([]repository.DayOccupancy, error) {
			return []repository.DayOccupancy{
				{
					Day: model.Day{
						ID:       "d1",
						Date:     time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC),
						Theme:    "Jazz",
						Capacity: 6,
					},
					TicketsSold: 4,
					Available:   2,
				},
			}, nil
		},
	})

	c, rec := newCatalogCtx("/v1/festival/days")
	require.NoError(t, h.Days(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"tickets_sold":4`)
	assert.Contains(t, rec.Body.String(), `"available":2`)
}
