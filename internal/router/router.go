// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-ticketing/internal/handler"
	"github.com/iliyamo/event-ticketing/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication.
// Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers organiser authentication routes.  Register,
// login, refresh and logout live under /organiser/auth and need no
// session; /organiser/auth/me requires a valid access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/organiser/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	// Logout accepts either a bearer token (revoke all sessions) or a
	// refresh_token body (revoke one), so it stays outside the JWT group.
	g.POST("/logout", a.Logout)

	me := e.Group("/organiser/auth")
	me.Use(middleware.JWTAuth(jwtSecret))
	me.Use(middleware.RequireRole(handler.RoleOrganiser))
	me.GET("/me", a.Me)
}
