// Package seed provisions the initial festival record and its days.
// It is the first-boot counterpart to database.EnsureSchema: the
// schema gives empty tables, this gives the catalog the admin surface
// and public listings operate on. Run is idempotent and refuses to
// touch a database that already holds a festival.
package seed

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/festival-booking/internal/engine"
	"github.com/iliyamo/festival-booking/internal/model"
)

// Store is the slice of the repository the seeder needs.
type Store interface {
	FirstFestival(ctx context.Context) (*model.Festival, error)
	CreateFestival(ctx context.Context, f *model.Festival) error
	CreateDay(ctx context.Context, d *model.Day) error
}

type dayFixture struct {
	date  time.Time
	theme string
	menu  string
}

var festivalFixture = model.Festival{
	Name:           "Food & Friends Festival",
	StartDate:      time.Date(2024, 11, 3, 0, 0, 0, 0, time.UTC),
	EndDate:        time.Date(2024, 11, 7, 0, 0, 0, 0, time.UTC),
	Location:       "Guldbergsgade 51A, 4. tv., 2200 København N",
	PriceCents:     5000,
	CapacityPerDay: 6,
}

var dayFixtures = []dayFixture{
	{time.Date(2024, 11, 3, 0, 0, 0, 0, time.UTC), "Autumn Harvest", "Seasonal vegetables, roasted meats, and warm spices"},
	{time.Date(2024, 11, 4, 0, 0, 0, 0, time.UTC), "Mediterranean Night", "Fresh seafood, olive oil, and Mediterranean herbs"},
	{time.Date(2024, 11, 5, 0, 0, 0, 0, time.UTC), "Asian Fusion", "Sushi, stir-fries, and exotic spices"},
	{time.Date(2024, 11, 6, 0, 0, 0, 0, time.UTC), "Comfort Classics", "Homestyle cooking, comfort foods, and hearty portions"},
	{time.Date(2024, 11, 7, 0, 0, 0, 0, time.UTC), "Sweet Endings", "Desserts, pastries, and sweet treats"},
}

// Run creates the festival and its five themed days unless a festival
// already exists, in which case it logs and leaves the data alone.
func Run(ctx context.Context, store Store) error {
	existing, err := store.FirstFestival(ctx)
	if err != nil && !errors.Is(err, engine.ErrFestivalNotFound) {
		return err
	}
	if existing != nil {
		log.Printf("seed: festival %q already present, nothing to do", existing.Name)
		return nil
	}

	now := time.Now().UTC()
	festival := festivalFixture
	festival.ID = uuid.NewString()
	festival.CreatedAt = now
	festival.UpdatedAt = now
	if err := store.CreateFestival(ctx, &festival); err != nil {
		return err
	}
	log.Printf("seed: created festival %q (%s)", festival.Name, festival.ID)

	for _, fx := range dayFixtures {
		day := &model.Day{
			ID:         uuid.NewString(),
			FestivalID: festival.ID,
			Date:       fx.date,
			Theme:      fx.theme,
			Menu:       fx.menu,
			Capacity:   festival.CapacityPerDay,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := store.CreateDay(ctx, day); err != nil {
			return err
		}
		log.Printf("seed: created day %s (%s)", fx.date.Format("2006-01-02"), fx.theme)
	}
	return nil
}
