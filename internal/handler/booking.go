package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/festival-booking/internal/engine"
	"github.com/iliyamo/festival-booking/internal/model"
)

// BookingService is the slice of the booking engine the self-service
// endpoints use. All three operations are atomic with respect to the
// one-booking-per-user and per-day capacity invariants.
type BookingService interface {
	Create(ctx context.Context, userID, dayID string) (*model.Booking, error)
	Move(ctx context.Context, userID, newDayID string) (*model.Booking, error)
	Cancel(ctx context.Context, userID string) error
}

// BookingReader serves the read side of the self-service surface.
type BookingReader interface {
	FindBookingByUser(ctx context.Context, userID string) (*model.Booking, error)
}

// BookingHandler exposes the booking lifecycle to the authenticated
// user: create, inspect, move and cancel, always scoped to the
// caller's own reservation. Invalidate, when set, is called after
// every successful mutation so cached day listings are refreshed.
type BookingHandler struct {
	Service    BookingService
	Bookings   BookingReader
	Invalidate func(ctx context.Context)
}

func NewBookingHandler(service BookingService, bookings BookingReader, invalidate func(ctx context.Context)) *BookingHandler {
	if service == nil || bookings == nil {
		panic("nil dependency passed to NewBookingHandler")
	}
	return &BookingHandler{Service: service, Bookings: bookings, Invalidate: invalidate}
}

type bookingReq struct {
	DayID string `json:"day_id"`
}

// CreateBooking handles POST /v1/bookings. The body carries the
// target day; the owner is always the caller. Responds 201 with the
// created booking, 404 when the day does not exist, and 409 when the
// user already holds a booking or the day is full.
func (h *BookingHandler) CreateBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req bookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.DayID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "day_id is required"})
	}
	booking, err := h.Service.Create(c.Request().Context(), userID, req.DayID)
	if err != nil {
		return bookingError(c, err)
	}
	h.invalidate(c)
	return c.JSON(http.StatusCreated, booking)
}

// GetMyBooking handles GET /v1/bookings/my-booking. It returns the
// caller's booking, or a null body when none exists (the original
// client treats "no booking yet" as a normal state, not an error).
func (h *BookingHandler) GetMyBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	booking, err := h.Bookings.FindBookingByUser(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load booking"})
	}
	if booking == nil {
		return c.JSON(http.StatusOK, nil)
	}
	return c.JSON(http.StatusOK, booking)
}

// UpdateMyBooking handles PUT /v1/bookings/my-booking. It moves the
// caller's booking to the day in the body, re-validating capacity on
// the destination with the caller's own slot excluded from the count.
func (h *BookingHandler) UpdateMyBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req bookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.DayID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "day_id is required"})
	}
	booking, err := h.Service.Move(c.Request().Context(), userID, req.DayID)
	if err != nil {
		return bookingError(c, err)
	}
	h.invalidate(c)
	return c.JSON(http.StatusOK, booking)
}

// CancelMyBooking handles DELETE /v1/bookings/my-booking. The booking
// is removed outright; a second cancel returns 404, never a silent
// success.
func (h *BookingHandler) CancelMyBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	if err := h.Service.Cancel(c.Request().Context(), userID); err != nil {
		return bookingError(c, err)
	}
	h.invalidate(c)
	return c.JSON(http.StatusOK, echo.Map{"message": "booking cancelled"})
}

func (h *BookingHandler) invalidate(c echo.Context) {
	if h.Invalidate != nil {
		h.Invalidate(c.Request().Context())
	}
}

// bookingError translates engine sentinels into HTTP responses.
// Anything unrecognized is a storage failure and becomes a 500.
func bookingError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, engine.ErrDayNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "day not found"})
	case errors.Is(err, engine.ErrUserNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
	case errors.Is(err, engine.ErrBookingNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no booking found"})
	case errors.Is(err, engine.ErrAlreadyBooked):
		return c.JSON(http.StatusConflict, echo.Map{"error": "you already have a booking"})
	case errors.Is(err, engine.ErrDayFull):
		return c.JSON(http.StatusConflict, echo.Map{"error": "this day is fully booked"})
	case errors.Is(err, engine.ErrDayHasBookings):
		return c.JSON(http.StatusConflict, echo.Map{"error": "day still has bookings"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
}
