package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-ticketing/internal/model"
)

type settingsReq struct {
	SiteTitle        string `json:"site_title" form:"site_title"`
	OrganiserName    string `json:"organiser_name" form:"organiser_name"`
	OrganiserCompany string `json:"organiser_company" form:"organiser_company"`
}

// GetSettings handles GET /organiser/settings. Organisers that never
// saved settings get an empty record back rather than a 404.
func (h *OrganiserHandler) GetSettings(c echo.Context) error {
	organiserID, err := getOrganiserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	s, err := h.Settings.GetByOrganiser(c.Request().Context(), organiserID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, s)
}

// UpdateSettings handles PUT /organiser/settings and replaces the
// organiser's display settings in full.
func (h *OrganiserHandler) UpdateSettings(c echo.Context) error {
	organiserID, err := getOrganiserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req settingsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	s := model.Settings{
		OrganiserID:      organiserID,
		SiteTitle:        strings.TrimSpace(req.SiteTitle),
		OrganiserName:    strings.TrimSpace(req.OrganiserName),
		OrganiserCompany: strings.TrimSpace(req.OrganiserCompany),
	}
	if err := h.Settings.Upsert(c.Request().Context(), s); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not save settings"})
	}
	return c.JSON(http.StatusOK, s)
}
