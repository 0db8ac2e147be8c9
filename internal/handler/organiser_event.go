package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-ticketing/internal/booking"
	"github.com/iliyamo/event-ticketing/internal/model"
	"github.com/iliyamo/event-ticketing/internal/repository"
)

// eventReq carries event fields plus both ticket tiers in one payload.
// Quantities and prices arrive as strings so HTML form posts and JSON
// clients share one shape; anything unparseable coerces to zero.
type eventReq struct {
	Title                string `json:"title" form:"title"`
	Description          string `json:"description" form:"description"`
	Date                 string `json:"date" form:"date"`
	NormalQty            string `json:"normal_qty" form:"normal_qty"`
	NormalPriceCents     string `json:"normal_price_cents" form:"normal_price_cents"`
	ConcessionQty        string `json:"concession_qty" form:"concession_qty"`
	ConcessionPriceCents string `json:"concession_price_cents" form:"concession_price_cents"`
}

func (r eventReq) tiers(eventID uint64) []model.Ticket {
	return []model.Ticket{
		{
			EventID:    eventID,
			Type:       model.TierNormal,
			Quantity:   booking.ParseQty(r.NormalQty),
			PriceCents: booking.ParseQty(r.NormalPriceCents),
		},
		{
			EventID:    eventID,
			Type:       model.TierConcession,
			Quantity:   booking.ParseQty(r.ConcessionQty),
			PriceCents: booking.ParseQty(r.ConcessionPriceCents),
		},
	}
}

// organiserEventView is an event together with its tier rows, as shown
// on the organiser dashboard.
type organiserEventView struct {
	model.Event
	Tiers []model.Ticket `json:"tiers"`
}

// CreateEvent handles POST /organiser/events. The event row and both tier
// rows are written in one transaction; new events always start as drafts.
func (h *OrganiserHandler) CreateEvent(c echo.Context) error {
	organiserID, err := getOrganiserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req eventReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title is required"})
	}
	date, err := parseEventDate(strings.TrimSpace(req.Date))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date"})
	}

	ctx := c.Request().Context()
	tx, err := h.Events.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	ev := &model.Event{
		OrganiserID: organiserID,
		Title:       req.Title,
		Description: strings.TrimSpace(req.Description),
		Date:        date,
	}
	if err := h.Events.CreateTx(ctx, tx, ev); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create event"})
	}
	for _, t := range req.tiers(ev.ID) {
		if err := h.Tickets.UpsertTx(ctx, tx, t); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not save ticket tiers"})
		}
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create event"})
	}
	committed = true

	tiers, err := h.Tickets.TiersByEvent(ctx, ev.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusCreated, organiserEventView{Event: *ev, Tiers: tiers})
}

// ListEvents handles GET /organiser/events and returns the organiser's
// dashboard: drafts and published events in separate lists, each event
// with its tier rows.
func (h *OrganiserHandler) ListEvents(c echo.Context) error {
	organiserID, err := getOrganiserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx := c.Request().Context()
	events, err := h.Events.ListByOrganiser(ctx, organiserID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	drafts := make([]organiserEventView, 0)
	published := make([]organiserEventView, 0)
	for _, e := range events {
		tiers, err := h.Tickets.TiersByEvent(ctx, e.ID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
		}
		view := organiserEventView{Event: e, Tiers: tiers}
		if e.Published() {
			published = append(published, view)
		} else {
			drafts = append(drafts, view)
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"drafts": drafts, "published": published})
}

// GetEvent handles GET /organiser/events/:id.
func (h *OrganiserHandler) GetEvent(c echo.Context) error {
	organiserID, err := getOrganiserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || eventID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	ctx := c.Request().Context()
	ev, err := h.Events.GetForOrganiser(ctx, eventID, organiserID)
	if err != nil {
		return h.eventFail(c, err)
	}
	tiers, err := h.Tickets.TiersByEvent(ctx, ev.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, organiserEventView{Event: *ev, Tiers: tiers})
}

// UpdateEvent handles PUT /organiser/events/:id. Event fields and both
// tier rows are replaced in one transaction. Updating tiers rewrites the
// remaining quantity, so organisers can restock or shrink a tier at will.
func (h *OrganiserHandler) UpdateEvent(c echo.Context) error {
	organiserID, err := getOrganiserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || eventID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	var req eventReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title is required"})
	}
	date, err := parseEventDate(strings.TrimSpace(req.Date))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date"})
	}

	ctx := c.Request().Context()
	// ownership check up front so 403 and 404 are distinguishable
	ev, err := h.Events.GetForOrganiser(ctx, eventID, organiserID)
	if err != nil {
		return h.eventFail(c, err)
	}

	tx, err := h.Events.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	ev.Title = req.Title
	ev.Description = strings.TrimSpace(req.Description)
	ev.Date = date
	if err := h.Events.UpdateTx(ctx, tx, ev); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	for _, t := range req.tiers(ev.ID) {
		if err := h.Tickets.UpsertTx(ctx, tx, t); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not save ticket tiers"})
		}
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	committed = true

	tiers, err := h.Tickets.TiersByEvent(ctx, ev.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, organiserEventView{Event: *ev, Tiers: tiers})
}

// PublishEvent handles POST /organiser/events/:id/publish. Publishing is
// one-way; publishing an already published event is a no-op.
func (h *OrganiserHandler) PublishEvent(c echo.Context) error {
	organiserID, err := getOrganiserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || eventID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	if err := h.Events.Publish(c.Request().Context(), eventID, organiserID); err != nil {
		return h.eventFail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "event published"})
}

// DeleteEvent handles DELETE /organiser/events/:id. Tier and booking rows
// cascade with the event.
func (h *OrganiserHandler) DeleteEvent(c echo.Context) error {
	organiserID, err := getOrganiserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || eventID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	if err := h.Events.Delete(c.Request().Context(), eventID, organiserID); err != nil {
		return h.eventFail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// eventFail maps repository errors from organiser event lookups to HTTP
// responses.
func (h *OrganiserHandler) eventFail(c echo.Context, err error) error {
	switch err {
	case repository.ErrEventNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
	case repository.ErrForbidden:
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	default:
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
}
