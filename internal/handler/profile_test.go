package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/festival-booking/internal/model"
)

type profileStoreMock struct {
	getFn    func(ctx context.Context, userID string) (*model.User, error)
	updateFn func(ctx context.Context, userID string, name *string, emailOptIn *bool) (*model.User, error)
}

func (m *profileStoreMock) GetUser(ctx context.Context, userID string) (*model.User, error) {
	return m.getFn(ctx, userID)
}

func (m *profileStoreMock) UpdateUserProfile(ctx context.Context, userID string, name *string, emailOptIn *bool) (*model.User, error) {
	return m.updateFn(ctx, userID, name, emailOptIn)
}

func newProfileCtx(method, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, "/v1/users/profile", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", "u1")
	return c, rec
}

func TestGetProfile(t *testing.T) {
	h := NewProfileHandler(&profileStoreMock{
		getFn: func(ctx context.Context, userID string) (*model.User, error) {
			return &model.User{ID: userID, Email: "alice@example.com", Name: "Alice", EmailOptIn: true}, nil
		},
	})

	c, rec := newProfileCtx(http.MethodGet, "")
	require.NoError(t, h.GetProfile(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"email_opt_in":true`)
}

func TestUpdateProfilePartialFields(t *testing.T) {
	h := NewProfileHandler(&profileStoreMock{
		updateFn: func(ctx context.Context, userID string, name *string, emailOptIn *bool) (*model.User, error) {
			assert.Nil(t, name, "absent name must stay untouched")
			require.NotNil(t, emailOptIn)
			assert.False(t, *emailOptIn)
			return &model.User{ID: userID, Name: "Alice", EmailOptIn: false}, nil
		},
	})

	c, rec := newProfileCtx(http.MethodPut, `{"email_opt_in":false}`)
	require.NoError(t, h.UpdateProfile(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"email_opt_in":false`)
}

func TestUpdateProfileRejectsEmptyName(t *testing.T) {
	h := NewProfileHandler(&profileStoreMock{})

	c, rec := newProfileCtx(http.MethodPut, `{"name":""}`)
	require.NoError(t, h.UpdateProfile(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
