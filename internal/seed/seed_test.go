package seed

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/festival-booking/internal/engine"
	"github.com/iliyamo/festival-booking/internal/model"
)

type seedStoreMock struct {
	firstFn    func(ctx context.Context) (*model.Festival, error)
	festivals  []*model.Festival
	days       []*model.Day
	createDayE error
}

func (m *seedStoreMock) FirstFestival(ctx context.Context) (*model.Festival, error) {
	return m.firstFn(ctx)
}

func (m *seedStoreMock) CreateFestival(ctx context.Context, f *model.Festival) error {
	m.festivals = append(m.festivals, f)
	return nil
}

func (m *seedStoreMock) CreateDay(ctx context.Context, d *model.Day) error {
	if m.createDayE != nil {
		return m.createDayE
	}
	m.days = append(m.days, d)
	return nil
}

func TestRunSeedsEmptyDatabase(t *testing.T) {
	store := &seedStoreMock{
		firstFn: func(ctx context.Context) (*model.Festival, error) {
			return nil, engine.ErrFestivalNotFound
		},
	}

	require.NoError(t, Run(context.Background(), store))
	require.Len(t, store.festivals, 1)
	require.Len(t, store.days, 5)

	f := store.festivals[0]
	assert.Equal(t, "Food & Friends Festival", f.Name)
	assert.Equal(t, 6, f.CapacityPerDay)
	assert.NotEmpty(t, f.ID)

	for _, d := range store.days {
		assert.Equal(t, f.ID, d.FestivalID)
		assert.Equal(t, f.CapacityPerDay, d.Capacity)
		assert.NotEmpty(t, d.ID)
	}
	assert.Equal(t, "Autumn Harvest", store.days[0].Theme)
	assert.Equal(t, "Sweet Endings", store.days[4].Theme)
}

func TestRunSkipsSeededDatabase(t *testing.T) {
	store := &seedStoreMock{
		firstFn: func(ctx context.Context) (*model.Festival, error) {
			return &model.Festival{ID: "f1", Name: "Food & Friends Festival"}, nil
		},
	}

	require.NoError(t, Run(context.Background(), store))
	assert.Empty(t, store.festivals, "an already-provisioned database must not be reseeded")
	assert.Empty(t, store.days)
}

func TestRunPropagatesStoreErrors(t *testing.T) {
	dbErr := errors.New("connection lost")

	store := &seedStoreMock{
		firstFn: func(ctx context.Context) (*model.Festival, error) {
			return nil, dbErr
		},
	}
	assert.ErrorIs(t, Run(context.Background(), store), dbErr)

	store = &seedStoreMock{
		firstFn: func(ctx context.Context) (*model.Festival, error) {
			return nil, engine.ErrFestivalNotFound
		},
		createDayE: dbErr,
	}
	assert.ErrorIs(t, Run(context.Background(), store), dbErr)
}
