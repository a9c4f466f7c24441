package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/festival-booking/internal/engine"
	"github.com/iliyamo/festival-booking/internal/model"
	"github.com/iliyamo/festival-booking/internal/repository"
)

type adminStoreMock struct {
	listFn           func(ctx context.Context) ([]repository.BookingDetail, error)
	createDayFn      func(ctx context.Context, d *model.Day) error
	getDayFn         func(ctx context.Context, dayID string) (*model.Day, error)
	firstFestivalFn  func(ctx context.Context) (*model.Festival, error)
	updateDayFn      func(ctx context.Context, d *model.Day) error
	updateFestivalFn func(ctx context.Context, f *model.Festival) error
}

func (m *adminStoreMock) ListBookingsDetailed(ctx context.Context) ([]repository.BookingDetail, error) {
	return m.listFn(ctx)
}
func (m *adminStoreMock) CreateDay(ctx context.Context, d *model.Day) error {
	return m.createDayFn(ctx, d)
}
func (m *adminStoreMock) GetDay(ctx context.Context, dayID string) (*model.Day, error) {
	return m.getDayFn(ctx, dayID)
}
func (m *adminStoreMock) FirstFestival(ctx context.Context) (*model.Festival, error) {
	return m.firstFestivalFn(ctx)
}
func (m *adminStoreMock) UpdateDay(ctx context.Context, d *model.Day) error {
	return m.updateDayFn(ctx, d)
}
func (m *adminStoreMock) UpdateFestival(ctx context.Context, f *model.Festival) error {
	return m.updateFestivalFn(ctx, f)
}

type adminEngineMock struct {
	createForUserFn func(ctx context.Context, email, dayID string) (*model.Booking, error)
	cancelByIDFn    func(ctx context.Context, bookingID string) error
	deleteDayFn     func(ctx context.Context, dayID string) error
}

func (m *adminEngineMock) CreateForUser(ctx context.Context, email, dayID string) (*model.Booking, error) {
	return m.createForUserFn(ctx, email, dayID)
}
func (m *adminEngineMock) CancelByID(ctx context.Context, bookingID string) error {
	return m.cancelByIDFn(ctx, bookingID)
}
func (m *adminEngineMock) DeleteDay(ctx context.Context, dayID string) error {
	return m.deleteDayFn(ctx, dayID)
}

func newAdminCtx(method, target, body string, params map[string]string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	for k, v := range params {
		c.SetParamNames(k)
		c.SetParamValues(v)
	}
	return c, rec
}

func sampleDetails() []repository.BookingDetail {
	day1 := time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 7, 11, 0, 0, 0, 0, time.UTC)
	return []repository.BookingDetail{
		{BookingID: "b1", UserName: "Alice", UserEmail: "alice@x.com", DayID: "d1", DayDate: day1, Theme: "Jazz"},
		{BookingID: "b2", UserName: "Bob", UserEmail: "bob@x.com", DayID: "d1", DayDate: day1, Theme: "Jazz"},
		{BookingID: "b3", UserName: "Cleo", UserEmail: "cleo@x.com", DayID: "d2", DayDate: day2, Theme: "Folk"},
	}
}

func TestListBookings(t *testing.T) {
	h := NewAdminHandler(&adminStoreMock{
		listFn: func(ctx context.Context) ([]repository.BookingDetail, error) { return sampleDetails(), nil },
	}, &adminEngineMock{}, nil)

	c, rec := newAdminCtx(http.MethodGet, "/v1/admin/bookings", "", nil)
	require.NoError(t, h.ListBookings(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total":3`)
	assert.Contains(t, rec.Body.String(), "alice@x.com")
}

func TestBookingsByDayGroups(t *testing.T) {
	h := NewAdminHandler(&adminStoreMock{
		listFn: func(ctx context.Context) ([]repository.BookingDetail, error) { return sampleDetails(), nil },
	}, &adminEngineMock{}, nil)

	c, rec := newAdminCtx(http.MethodGet, "/v1/admin/bookings/by-day", "", nil)
	require.NoError(t, h.BookingsByDay(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	// Two groups, and d1 (earlier day) listed before d2.
	assert.Contains(t, body, `"day_id":"d1"`)
	assert.Contains(t, body, `"day_id":"d2"`)
	assert.Less(t, strings.Index(body, `"day_id":"d1"`), strings.Index(body, `"day_id":"d2"`))
}

func TestExportBookingsCSV(t *testing.T) {
	h := NewAdminHandler(&adminStoreMock{
		listFn: func(ctx context.Context) ([]repository.BookingDetail, error) { return sampleDetails(), nil },
	}, &adminEngineMock{}, nil)

	c, rec := newAdminCtx(http.MethodGet, "/v1/admin/bookings/export", "", nil)
	require.NoError(t, h.ExportBookings(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get(echo.HeaderContentType))
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "attachment")

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "booking_id,name,email,day,theme,booked_at,status", lines[0])
	assert.Contains(t, lines[1], "Alice")
	assert.Contains(t, lines[1], "2026-07-10")
}

func TestAdminCreateBooking(t *testing.T) {
	purged := false
	h := NewAdminHandler(&adminStoreMock{}, &adminEngineMock{
		createForUserFn: func(ctx context.Context, email, dayID string) (*model.Booking, error) {
			assert.Equal(t, "walkin@x.com", email, "email must be lower-cased")
			return &model.Booking{ID: "b9", DayID: dayID}, nil
		},
	}, func(ctx context.Context) { purged = true })

	c, rec := newAdminCtx(http.MethodPost, "/v1/admin/bookings", `{"email":"WalkIn@X.com","day_id":"d1"}`, nil)
	require.NoError(t, h.CreateBooking(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, purged)
}

func TestAdminCreateBookingUnknownUser(t *testing.T) {
	h := NewAdminHandler(&adminStoreMock{}, &adminEngineMock{
		createForUserFn: func(ctx context.Context, email, dayID string) (*model.Booking, error) {
			return nil, engine.ErrUserNotFound
		},
	}, nil)

	c, rec := newAdminCtx(http.MethodPost, "/v1/admin/bookings", `{"email":"ghost@x.com","day_id":"d1"}`, nil)
	require.NoError(t, h.CreateBooking(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminDeleteBooking(t *testing.T) {
	h := NewAdminHandler(&adminStoreMock{}, &adminEngineMock{
		cancelByIDFn: func(ctx context.Context, bookingID string) error {
			assert.Equal(t, "b1", bookingID)
			return nil
		},
	}, nil)

	c, rec := newAdminCtx(http.MethodDelete, "/v1/admin/bookings/b1", "", map[string]string{"id": "b1"})
	require.NoError(t, h.DeleteBooking(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCreateDayDefaultsCapacity(t *testing.T) {
	var created *model.Day
	h := NewAdminHandler(&adminStoreMock{
		firstFestivalFn: func(ctx context.Context) (*model.Festival, error) {
			return &model.Festival{ID: "f1", CapacityPerDay: 6}, nil
		},
		createDayFn: func(ctx context.Context, d *model.Day) error {
			created = d
			return nil
		},
	}, &adminEngineMock{}, nil)

	c, rec := newAdminCtx(http.MethodPost, "/v1/admin/days", `{"date":"2026-07-12","theme":"Rock Night","menu":"BBQ"}`, nil)
	require.NoError(t, h.CreateDay(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, created)
	assert.Equal(t, 6, created.Capacity)
	assert.Equal(t, "f1", created.FestivalID)
	assert.Equal(t, time.Date(2026, 7, 12, 0, 0, 0, 0, time.UTC), created.Date)
}

func TestCreateDayValidation(t *testing.T) {
	h := NewAdminHandler(&adminStoreMock{}, &adminEngineMock{}, nil)

	c, rec := newAdminCtx(http.MethodPost, "/v1/admin/days", `{"theme":"No Date"}`, nil)
	require.NoError(t, h.CreateDay(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	c, rec = newAdminCtx(http.MethodPost, "/v1/admin/days", `{"date":"12.07.2026","theme":"Bad Date"}`, nil)
	require.NoError(t, h.CreateDay(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	c, rec = newAdminCtx(http.MethodPost, "/v1/admin/days", `{"date":"2026-07-12","theme":"Neg","capacity":-1}`, nil)
	require.NoError(t, h.CreateDay(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateDayPartial(t *testing.T) {
	var updated *model.Day
	h := NewAdminHandler(&adminStoreMock{
		getDayFn: func(ctx context.Context, dayID string) (*model.Day, error) {
			return &model.Day{ID: dayID, Theme: "Jazz", Menu: "Tapas", Capacity: 6}, nil
		},
		updateDayFn: func(ctx context.Context, d *model.Day) error {
			updated = d
			return nil
		},
	}, &adminEngineMock{}, nil)

	c, rec := newAdminCtx(http.MethodPut, "/v1/admin/days/d1", `{"capacity":2}`, map[string]string{"id": "d1"})
	require.NoError(t, h.UpdateDay(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, updated)
	assert.Equal(t, 2, updated.Capacity)
	assert.Equal(t, "Jazz", updated.Theme, "absent fields keep their values")
}

func TestDeleteDayWithBookings(t *testing.T) {
	h := NewAdminHandler(&adminStoreMock{}, &adminEngineMock{
		deleteDayFn: func(ctx context.Context, dayID string) error {
			return engine.ErrDayHasBookings
		},
	}, nil)

	c, rec := newAdminCtx(http.MethodDelete, "/v1/admin/days/d1", "", map[string]string{"id": "d1"})
	require.NoError(t, h.DeleteDay(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestUpdateFestivalValidatesDateOrder(t *testing.T) {
	h := NewAdminHandler(&adminStoreMock{
		firstFestivalFn: func(ctx context.Context) (*model.Festival, error) {
			return &model.Festival{
				ID:        "f1",
				StartDate: time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC),
				EndDate:   time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC),
			}, nil
		},
	}, &adminEngineMock{}, nil)

	c, rec := newAdminCtx(http.MethodPut, "/v1/admin/festival", `{"end_date":"2026-07-01"}`, nil)
	require.NoError(t, h.UpdateFestival(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateFestivalPartial(t *testing.T) {
	var updated *model.Festival
	h := NewAdminHandler(&adminStoreMock{
		firstFestivalFn: func(ctx context.Context) (*model.Festival, error) {
			return &model.Festival{ID: "f1", Name: "Summer Fest", Location: "Old Town", CapacityPerDay: 6}, nil
		},
		updateFestivalFn: func(ctx context.Context, f *model.Festival) error {
			updated = f
			return nil
		},
	}, &adminEngineMock{}, nil)

	c, rec := newAdminCtx(http.MethodPut, "/v1/admin/festival", `{"location":"Riverside Park"}`, nil)
	require.NoError(t, h.UpdateFestival(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, updated)
	assert.Equal(t, "Riverside Park", updated.Location)
	assert.Equal(t, "Summer Fest", updated.Name)
}
