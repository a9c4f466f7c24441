package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/festival-booking/internal/handler"
)

// RegisterCatalog registers the public festival catalog: the festival
// record and the day list with live availability. These endpoints are
// unauthenticated so visitors can browse before signing in, and they
// are the only routes fronted by the Redis response cache -- extra
// middleware (cache, rate limiting) is passed in by the bootstrap.
func RegisterCatalog(e *echo.Echo, f *handler.FestivalHandler, mw ...echo.MiddlewareFunc) {
	g := e.Group("/v1/festival", mw...)
	g.GET("/info", f.Info)
	g.GET("/days", f.Days)
}
