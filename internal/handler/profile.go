package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/festival-booking/internal/engine"
	"github.com/iliyamo/festival-booking/internal/model"
)

// ProfileStore reads and edits the caller's own account record.
type ProfileStore interface {
	GetUser(ctx context.Context, userID string) (*model.User, error)
	UpdateUserProfile(ctx context.Context, userID string, name *string, emailOptIn *bool) (*model.User, error)
}

// ProfileHandler serves the self-service profile endpoints. Email and
// Google identity are immutable here; only the display name and the
// notification opt-in can change.
type ProfileHandler struct {
	Store ProfileStore
}

func NewProfileHandler(store ProfileStore) *ProfileHandler {
	if store == nil {
		panic("nil store passed to NewProfileHandler")
	}
	return &ProfileHandler{Store: store}
}

type profileUpdateReq struct {
	Name       *string `json:"name"`
	EmailOptIn *bool   `json:"email_opt_in"`
}

// GetProfile handles GET /v1/users/profile.
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	user, err := h.Store.GetUser(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, engine.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateProfile handles PUT /v1/users/profile. Absent fields are left
// untouched, so `{"email_opt_in": false}` does not blank the name.
func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req profileUpdateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Name != nil && *req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name cannot be empty"})
	}
	user, err := h.Store.UpdateUserProfile(c.Request().Context(), userID, req.Name, req.EmailOptIn)
	if err != nil {
		if errors.Is(err, engine.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, user)
}
