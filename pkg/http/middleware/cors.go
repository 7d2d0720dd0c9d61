package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

// CORSConfig holds CORS configuration.
type CORSConfig struct {
	AllowOrigins []string
	AllowMethods []string
	AllowHeaders []string
	MaxAge       int // preflight cache lifetime in seconds, 0 omits the header
}

// CORS returns CORS middleware. Responses that reflect a specific origin
// carry Vary: Origin so shared caches keep per-origin copies apart.
func CORS(cfg CORSConfig) echo.MiddlewareFunc {
	wildcard := len(cfg.AllowOrigins) > 0 && cfg.AllowOrigins[0] == "*"

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			origin := c.Request().Header.Get("Origin")
			res := c.Response().Header()

			allowed := wildcard
			if !allowed {
				for _, o := range cfg.AllowOrigins {
					if o == origin {
						allowed = true
						break
					}
				}
			}
			if !allowed {
				return next(c)
			}

			if wildcard && origin == "" {
				res.Set("Access-Control-Allow-Origin", "*")
			} else if origin != "" {
				res.Set("Access-Control-Allow-Origin", origin)
				res.Add("Vary", "Origin")
			}

			if len(cfg.AllowMethods) > 0 {
				res.Set("Access-Control-Allow-Methods", strings.Join(cfg.AllowMethods, ", "))
			}
			if len(cfg.AllowHeaders) > 0 {
				res.Set("Access-Control-Allow-Headers", strings.Join(cfg.AllowHeaders, ", "))
			}

			if c.Request().Method == http.MethodOptions {
				if cfg.MaxAge > 0 {
					res.Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
				}
				return c.NoContent(http.StatusNoContent)
			}

			return next(c)
		}
	}
}
