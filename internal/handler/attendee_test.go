package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/event-ticketing/internal/booking"
	"github.com/iliyamo/event-ticketing/internal/model"
	"github.com/iliyamo/event-ticketing/internal/repository"
)

type fakeBrowser struct {
	list []repository.PublishedEventDetail
}

func (f *fakeBrowser) ListPublished(ctx context.Context) ([]repository.PublishedEventDetail, error) {
	return f.list, nil
}

func (f *fakeBrowser) GetPublished(ctx context.Context, eventID uint64) (*repository.PublishedEventDetail, error) {
	for i := range f.list {
		if f.list[i].ID == eventID {
			return &f.list[i], nil
		}
	}
	return nil, repository.ErrEventNotFound
}

type fakeEngine struct {
	av       booking.Availability
	avErr    error
	booked   *model.Booking
	bookErr  error
	quote    *booking.Quote
	quoteErr error

	gotBook booking.Request
}

func (f *fakeEngine) Availability(ctx context.Context, eventID uint64) (booking.Availability, error) {
	return f.av, f.avErr
}

func (f *fakeEngine) Book(ctx context.Context, eventID uint64, req booking.Request) (*model.Booking, error) {
	f.gotBook = req
	if f.bookErr != nil {
		return nil, f.bookErr
	}
	return f.booked, nil
}

func (f *fakeEngine) Preview(ctx context.Context, eventID uint64, req booking.Request) (*booking.Quote, error) {
	if f.quoteErr != nil {
		return nil, f.quoteErr
	}
	return f.quote, nil
}

func setupAttendee(fb *fakeBrowser, fe *fakeEngine) *echo.Echo {
	e := echo.New()
	h := &AttendeeHandler{Events: fb, Engine: fe} // Publish nil: no broker in tests
	e.GET("/attendee/home", h.Home)
	e.GET("/attendee/book/:id", h.ShowEvent)
	e.POST("/attendee/book/:id", h.Book)
	e.POST("/attendee/checkout/:id", h.Checkout)
	return e
}

func publishedEvent(id uint64, title string) repository.PublishedEventDetail {
	return repository.PublishedEventDetail{
		ID:                id,
		Title:             title,
		Description:       "an evening of music",
		Date:              time.Date(2026, 9, 12, 19, 0, 0, 0, time.UTC),
		OrganiserUsername: "alice",
	}
}

func TestHome_ListsPublishedEventsWithAvailability(t *testing.T) {
	fb := &fakeBrowser{list: []repository.PublishedEventDetail{publishedEvent(1, "Jazz Night")}}
	fe := &fakeEngine{av: booking.Availability{NormalQty: 10, NormalPriceCents: 1500, ConcessionQty: 4, ConcessionPriceCents: 900}}
	e := setupAttendee(fb, fe)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/attendee/home", nil)
	e.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Events []struct {
			ID           uint64               `json:"id"`
			Title        string               `json:"title"`
			Availability booking.Availability `json:"availability"`
		} `json:"events"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Events, 1)
	assert.Equal(t, "Jazz Night", resp.Events[0].Title)
	assert.Equal(t, uint32(10), resp.Events[0].Availability.NormalQty)
	assert.Equal(t, uint32(900), resp.Events[0].Availability.ConcessionPriceCents)
}

func TestShowEvent_UnknownEventIs404(t *testing.T) {
	e := setupAttendee(&fakeBrowser{}, &fakeEngine{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/attendee/book/99", nil)
	e.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "event not found or unpublished")
}

func TestShowEvent_InvalidIDIs400(t *testing.T) {
	e := setupAttendee(&fakeBrowser{}, &fakeEngine{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/attendee/book/abc", nil)
	e.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBook_Success(t *testing.T) {
	fb := &fakeBrowser{list: []repository.PublishedEventDetail{publishedEvent(7, "Jazz Night")}}
	fe := &fakeEngine{
		booked: &model.Booking{ID: 42, EventID: 7, FullName: "Dana Reed", Email: "dana@example.com", NormalQty: 2, CreatedAt: time.Now()},
	}
	e := setupAttendee(fb, fe)

	body := `{"full_name":"Dana Reed","email":"dana@example.com","normal_qty":"2","concession_qty":"oops"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/attendee/book/7", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	e.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	var resp struct {
		Message   string `json:"message"`
		BookingID uint64 `json:"booking_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "booking confirmed", resp.Message)
	assert.Equal(t, uint64(42), resp.BookingID)

	// free-form quantities coerce before the engine sees them
	assert.Equal(t, uint32(2), fe.gotBook.NormalQty)
	assert.Equal(t, uint32(0), fe.gotBook.ConcessionQty)
}

func TestBook_UnpublishedEventIs404(t *testing.T) {
	fe := &fakeEngine{booked: &model.Booking{ID: 1}}
	e := setupAttendee(&fakeBrowser{}, fe)

	body := `{"full_name":"Dana Reed","email":"dana@example.com","normal_qty":"1"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/attendee/book/7", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	e.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	// the engine is never reached for hidden events
	assert.Equal(t, booking.Request{}, fe.gotBook)
}

func TestBook_ValidationErrorIs400WithReason(t *testing.T) {
	fb := &fakeBrowser{list: []repository.PublishedEventDetail{publishedEvent(7, "Jazz Night")}}
	fe := &fakeEngine{bookErr: &booking.ValidationError{
		Reason:  booking.ReasonNoTicketsSelected,
		Message: "please select at least one ticket",
	}}
	e := setupAttendee(fb, fe)

	body := `{"full_name":"Dana Reed","email":"dana@example.com","normal_qty":"0","concession_qty":"0"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/attendee/book/7", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	e.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var resp struct {
		Error  string `json:"error"`
		Reason string `json:"reason"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "please select at least one ticket", resp.Error)
	assert.Equal(t, string(booking.ReasonNoTicketsSelected), resp.Reason)
}

func TestBook_RacedOutOfStockIs400(t *testing.T) {
	fb := &fakeBrowser{list: []repository.PublishedEventDetail{publishedEvent(7, "Jazz Night")}}
	fe := &fakeEngine{bookErr: repository.ErrInsufficientStock}
	e := setupAttendee(fb, fe)

	body := `{"full_name":"Dana Reed","email":"dana@example.com","normal_qty":"3"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/attendee/book/7", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	e.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), string(booking.ReasonInsufficientStock))
}

func TestBook_StorageErrorIsGeneric500(t *testing.T) {
	fb := &fakeBrowser{list: []repository.PublishedEventDetail{publishedEvent(7, "Jazz Night")}}
	fe := &fakeEngine{bookErr: errors.New("connection reset")}
	e := setupAttendee(fb, fe)

	body := `{"full_name":"Dana Reed","email":"dana@example.com","normal_qty":"1"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/attendee/book/7", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	e.ServeHTTP(w, req)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "something went wrong")
	assert.NotContains(t, w.Body.String(), "connection reset")
}

func TestCheckout_ReturnsQuote(t *testing.T) {
	fb := &fakeBrowser{list: []repository.PublishedEventDetail{publishedEvent(7, "Jazz Night")}}
	fe := &fakeEngine{quote: &booking.Quote{
		FullName:             "Dana Reed",
		Email:                "dana@example.com",
		NormalQty:            2,
		ConcessionQty:        1,
		NormalPriceCents:     1500,
		ConcessionPriceCents: 900,
		TotalCents:           3900,
	}}
	e := setupAttendee(fb, fe)

	body := `{"full_name":"Dana Reed","email":"dana@example.com","normal_qty":"2","concession_qty":"1"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/attendee/checkout/7", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	e.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Event struct {
			Title string `json:"title"`
		} `json:"event"`
		Quote booking.Quote `json:"quote"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Jazz Night", resp.Event.Title)
	assert.Equal(t, uint64(3900), resp.Quote.TotalCents)
}
