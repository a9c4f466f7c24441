package handler

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/festival-booking/internal/engine"
	"github.com/iliyamo/festival-booking/internal/model"
	"github.com/iliyamo/festival-booking/internal/repository"
)

// AdminStore is the store surface behind the admin endpoints.
type AdminStore interface {
	ListBookingsDetailed(ctx context.Context) ([]repository.BookingDetail, error)
	CreateDay(ctx context.Context, d *model.Day) error
	GetDay(ctx context.Context, dayID string) (*model.Day, error)
	FirstFestival(ctx context.Context) (*model.Festival, error)
	UpdateDay(ctx context.Context, d *model.Day) error
	UpdateFestival(ctx context.Context, f *model.Festival) error
}

// AdminEngine is the booking-engine surface behind the admin
// endpoints. These go through the same invariant checks as the
// self-service operations.
type AdminEngine interface {
	CreateForUser(ctx context.Context, email, dayID string) (*model.Booking, error)
	CancelByID(ctx context.Context, bookingID string) error
	DeleteDay(ctx context.Context, dayID string) error
}

// AdminHandler serves the administrative surface: booking oversight,
// day catalog management and festival settings. All routes behind it
// require the admin flag.
type AdminHandler struct {
	Store      AdminStore
	Engine     AdminEngine
	Invalidate func(ctx context.Context)
}

func NewAdminHandler(store AdminStore, eng AdminEngine, invalidate func(ctx context.Context)) *AdminHandler {
	if store == nil || eng == nil {
		panic("nil dependency passed to NewAdminHandler")
	}
	return &AdminHandler{Store: store, Engine: eng, Invalidate: invalidate}
}

func (h *AdminHandler) invalidate(c echo.Context) {
	if h.Invalidate != nil {
		h.Invalidate(c.Request().Context())
	}
}

// ----- bookings -----

// ListBookings handles GET /v1/admin/bookings. Flat list of every
// booking with user and day context.
func (h *AdminHandler) ListBookings(c echo.Context) error {
	bookings, err := h.Store.ListBookingsDetailed(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": bookings, "total": len(bookings)})
}

type dayGroup struct {
	DayID    string                     `json:"day_id"`
	DayDate  time.Time                  `json:"day_date"`
	Theme    string                     `json:"theme"`
	Bookings []repository.BookingDetail `json:"bookings"`
}

// BookingsByDay handles GET /v1/admin/bookings/by-day. Same data as
// ListBookings but grouped per day, in day order, for the check-in
// view.
func (h *AdminHandler) BookingsByDay(c echo.Context) error {
	bookings, err := h.Store.ListBookingsDetailed(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	groups := make([]dayGroup, 0)
	index := make(map[string]int)
	for _, b := range bookings {
		i, ok := index[b.DayID]
		if !ok {
			i = len(groups)
			index[b.DayID] = i
			groups = append(groups, dayGroup{DayID: b.DayID, DayDate: b.DayDate, Theme: b.Theme})
		}
		groups[i].Bookings = append(groups[i].Bookings, b)
	}
	return c.JSON(http.StatusOK, echo.Map{"days": groups})
}

// ExportBookings handles GET /v1/admin/bookings/export. It streams the
// full booking list as a CSV attachment.
func (h *AdminHandler) ExportBookings(c echo.Context) error {
	bookings, err := h.Store.ListBookingsDetailed(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"booking_id", "name", "email", "day", "theme", "booked_at", "status"})
	for _, b := range bookings {
		_ = w.Write([]string{
			b.BookingID,
			b.UserName,
			b.UserEmail,
			b.DayDate.Format("2006-01-02"),
			b.Theme,
			b.BookingDate.Format(time.RFC3339),
			b.Status,
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "export failed"})
	}
	name := fmt.Sprintf("bookings-%s.csv", time.Now().UTC().Format("2006-01-02"))
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	return c.Blob(http.StatusOK, "text/csv", buf.Bytes())
}

type adminBookingReq struct {
	Email string `json:"email"`
	DayID string `json:"day_id"`
}

// CreateBooking handles POST /v1/admin/bookings. The admin books on
// behalf of an existing account identified by email; capacity and the
// one-booking-per-user rule are enforced exactly as on the public
// path.
func (h *AdminHandler) CreateBooking(c echo.Context) error {
	var req adminBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Email == "" || req.DayID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email and day_id are required"})
	}
	booking, err := h.Engine.CreateForUser(c.Request().Context(), strings.ToLower(req.Email), req.DayID)
	if err != nil {
		return bookingError(c, err)
	}
	h.invalidate(c)
	return c.JSON(http.StatusCreated, booking)
}

// DeleteBooking handles DELETE /v1/admin/bookings/:id. Removes any
// user's booking by identifier.
func (h *AdminHandler) DeleteBooking(c echo.Context) error {
	bookingID := c.Param("id")
	if err := h.Engine.CancelByID(c.Request().Context(), bookingID); err != nil {
		return bookingError(c, err)
	}
	h.invalidate(c)
	return c.JSON(http.StatusOK, echo.Map{"message": "booking deleted"})
}

// ----- days -----

type dayReq struct {
	Date     string `json:"date"`
	Theme    string `json:"theme"`
	Menu     string `json:"menu"`
	Capacity *int   `json:"capacity"`
}

func parseDayDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// CreateDay handles POST /v1/admin/days. Capacity defaults to the
// festival's per-day setting when the body omits it.
func (h *AdminHandler) CreateDay(c echo.Context) error {
	var req dayReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Date == "" || req.Theme == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date and theme are required"})
	}
	date, err := parseDayDate(req.Date)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date, expected YYYY-MM-DD"})
	}
	if req.Capacity != nil && *req.Capacity < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "capacity cannot be negative"})
	}

	ctx := c.Request().Context()
	festival, err := h.Store.FirstFestival(ctx)
	if err != nil {
		if errors.Is(err, engine.ErrFestivalNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "festival not configured"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	capacity := festival.CapacityPerDay
	if req.Capacity != nil {
		capacity = *req.Capacity
	}
	now := time.Now().UTC()
	day := &model.Day{
		ID:         uuid.NewString(),
		FestivalID: festival.ID,
		Date:       date,
		Theme:      req.Theme,
		Menu:       req.Menu,
		Capacity:   capacity,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := h.Store.CreateDay(ctx, day); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create day failed"})
	}
	h.invalidate(c)
	return c.JSON(http.StatusCreated, day)
}

// UpdateDay handles PUT /v1/admin/days/:id. Absent fields keep their
// current values. Lowering capacity below the current occupancy is
// allowed and only blocks new admissions; existing bookings stay.
func (h *AdminHandler) UpdateDay(c echo.Context) error {
	var req dayReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx := c.Request().Context()
	day, err := h.Store.GetDay(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, engine.ErrDayNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "day not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if req.Date != "" {
		date, err := parseDayDate(req.Date)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date, expected YYYY-MM-DD"})
		}
		day.Date = date
	}
	if req.Theme != "" {
		day.Theme = req.Theme
	}
	if req.Menu != "" {
		day.Menu = req.Menu
	}
	if req.Capacity != nil {
		if *req.Capacity < 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "capacity cannot be negative"})
		}
		day.Capacity = *req.Capacity
	}
	day.UpdatedAt = time.Now().UTC()
	if err := h.Store.UpdateDay(ctx, day); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update day failed"})
	}
	h.invalidate(c)
	return c.JSON(http.StatusOK, day)
}

// DeleteDay handles DELETE /v1/admin/days/:id. A day that still has
// bookings is refused with 409; the admin cancels or moves those
// bookings first.
func (h *AdminHandler) DeleteDay(c echo.Context) error {
	if err := h.Engine.DeleteDay(c.Request().Context(), c.Param("id")); err != nil {
		return bookingError(c, err)
	}
	h.invalidate(c)
	return c.JSON(http.StatusOK, echo.Map{"message": "day deleted"})
}

// ----- festival -----

type festivalReq struct {
	Name           string `json:"name"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
	Location       string `json:"location"`
	PriceCents     *int   `json:"price_cents"`
	CapacityPerDay *int   `json:"capacity_per_day"`
}

// UpdateFestival handles PUT /v1/admin/festival. Absent fields keep
// their current values.
func (h *AdminHandler) UpdateFestival(c echo.Context) error {
	var req festivalReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx := c.Request().Context()
	festival, err := h.Store.FirstFestival(ctx)
	if err != nil {
		if errors.Is(err, engine.ErrFestivalNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "festival not configured"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if req.Name != "" {
		festival.Name = req.Name
	}
	if req.StartDate != "" {
		t, err := parseDayDate(req.StartDate)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid start_date"})
		}
		festival.StartDate = t
	}
	if req.EndDate != "" {
		t, err := parseDayDate(req.EndDate)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid end_date"})
		}
		festival.EndDate = t
	}
	if req.Location != "" {
		festival.Location = req.Location
	}
	if req.PriceCents != nil {
		if *req.PriceCents < 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "price_cents cannot be negative"})
		}
		festival.PriceCents = uint32(*req.PriceCents)
	}
	if req.CapacityPerDay != nil {
		if *req.CapacityPerDay < 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "capacity_per_day cannot be negative"})
		}
		festival.CapacityPerDay = *req.CapacityPerDay
	}
	if festival.EndDate.Before(festival.StartDate) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "end_date is before start_date"})
	}
	if err := h.Store.UpdateFestival(ctx, festival); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update festival failed"})
	}
	h.invalidate(c)
	return c.JSON(http.StatusOK, festival)
}
