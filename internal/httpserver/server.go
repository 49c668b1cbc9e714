// Package httpserver exposes the agent's ops surface: health, a state
// snapshot, and a live event feed.
package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Ajayyy18/livekit-voice-agent/internal/agent"
)

// StateSource provides the agent snapshot for the status endpoint.
type StateSource interface {
	Snapshot() agent.Snapshot
}

// New creates a configured Echo server with the ops routes.
func New(src StateSource, hub *Hub) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/status", func(c echo.Context) error {
		return c.JSON(http.StatusOK, src.Snapshot())
	})
	e.GET("/events", func(c echo.Context) error {
		hub.handle(c.Response(), c.Request())
		return nil
	})
	return e
}
