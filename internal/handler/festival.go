package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/festival-booking/internal/engine"
	"github.com/iliyamo/festival-booking/internal/model"
	"github.com/iliyamo/festival-booking/internal/repository"
)

// FestivalCatalog is the read side of the public catalog.
type FestivalCatalog interface {
	FirstFestival(ctx context.Context) (*model.Festival, error)
	ListDaysWithOccupancy(ctx context.Context) ([]repository.DayOccupancy, error)
}

// FestivalHandler serves the public festival catalog: the festival
// record itself and the day list with live availability.
type FestivalHandler struct {
	Catalog FestivalCatalog
}

func NewFestivalHandler(catalog FestivalCatalog) *FestivalHandler {
	if catalog == nil {
		panic("nil catalog passed to NewFestivalHandler")
	}
	return &FestivalHandler{Catalog: catalog}
}

// Info handles GET /v1/festival/info.
func (h *FestivalHandler) Info(c echo.Context) error {
	festival, err := h.Catalog.FirstFestival(c.Request().Context())
	if err != nil {
		if errors.Is(err, engine.ErrFestivalNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "festival not configured"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, festival)
}

// Days handles GET /v1/festival/days. Each day carries tickets_sold
// and available so clients can grey out full days without a second
// request.
func (h *FestivalHandler) Days(c echo.Context) error {
	days, err := h.Catalog.ListDaysWithOccupancy(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"days": days})
}
