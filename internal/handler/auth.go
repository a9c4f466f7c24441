package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/festival-booking/internal/auth"
	"github.com/iliyamo/festival-booking/internal/config"
	"github.com/iliyamo/festival-booking/internal/model"
	"github.com/iliyamo/festival-booking/internal/utils"
)

// TokenVerifier validates a Google ID token and returns its claims.
type TokenVerifier interface {
	Verify(ctx context.Context, idToken string) (auth.Claims, error)
}

// UserAccounts is the slice of the store the auth endpoints need.
type UserAccounts interface {
	UpsertGoogleUser(ctx context.Context, googleID, email, name string, isAdmin bool) (*model.User, error)
	GetUser(ctx context.Context, userID string) (*model.User, error)
}

// AuthHandler bundles dependencies for the sign-in endpoints. There
// is no local registration: accounts come into existence on the first
// verified Google login.
type AuthHandler struct {
	Cfg      config.Config
	Verifier TokenVerifier
	Users    UserAccounts
}

func NewAuthHandler(cfg config.Config, verifier TokenVerifier, users UserAccounts) *AuthHandler {
	if verifier == nil || users == nil {
		panic("nil dependency passed to NewAuthHandler")
	}
	return &AuthHandler{Cfg: cfg, Verifier: verifier, Users: users}
}

// ----- DTOs -----

type googleLoginReq struct {
	IDToken string `json:"id_token"`
}

type loginResp struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	Expires     time.Time   `json:"expires"`
	User        *model.User `json:"user"`
}

// GoogleLogin handles POST /v1/auth/google/login. It verifies the
// Google ID token, creates or refreshes the local account, and
// returns a signed session token. Users listed in ADMIN_EMAILS are
// granted the admin flag here.
func (h *AuthHandler) GoogleLogin(c echo.Context) error {
	var req googleLoginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.IDToken == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id_token required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	claims, err := h.Verifier.Verify(ctx, req.IDToken)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid google token"})
	}

	email := strings.ToLower(claims.Email)
	name := claims.Name
	if name == "" {
		name = email
	}
	user, err := h.Users.UpsertGoogleUser(ctx, claims.Subject, email, name, h.isAdminEmail(email))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, user.ID, user.IsAdmin, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}

	return c.JSON(http.StatusOK, loginResp{
		AccessToken: access.Token,
		TokenType:   "bearer",
		Expires:     access.Exp,
		User:        user,
	})
}

// Me handles GET /v1/me. It returns the authenticated user's record.
func (h *AuthHandler) Me(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	user, err := h.Users.GetUser(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "user not found"})
	}
	return c.JSON(http.StatusOK, user)
}

// Logout handles POST /v1/auth/logout. Sessions are stateless JWTs,
// so logout is an acknowledgement; clients discard the token.
func (h *AuthHandler) Logout(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"message": "logged out"})
}

func (h *AuthHandler) isAdminEmail(email string) bool {
	for _, a := range h.Cfg.AdminEmails {
		if a == email {
			return true
		}
	}
	return false
}
