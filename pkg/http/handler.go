package http

import "github.com/labstack/echo/v4"

// Handler registers an API surface on the server's echo instance. The server
// mounts it before the metrics endpoint so handler routes win on conflicts.
type Handler interface {
	RegisterRoutes(e *echo.Echo)
}
