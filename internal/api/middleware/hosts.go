package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// TrustedHost rejects requests whose Host header is not in allowed.
// Entries may be exact hosts, "*.example.com" suffix patterns, or "*".
func TrustedHost(allowed []string) echo.MiddlewareFunc {
	var (
		anyHost  bool
		exact    = make(map[string]struct{}, len(allowed))
		suffixes []string
	)
	for _, h := range allowed {
		h = strings.ToLower(strings.TrimSpace(h))
		switch {
		case h == "":
		case h == "*":
			anyHost = true
		case strings.HasPrefix(h, "*."):
			suffixes = append(suffixes, h[1:])
		default:
			exact[h] = struct{}{}
		}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if anyHost {
			return next
		}
		return func(c echo.Context) error {
			host := strings.ToLower(c.Request().Host)
			if h, _, err := net.SplitHostPort(host); err == nil {
				host = h
			}

			if _, ok := exact[host]; ok {
				return next(c)
			}
			for _, s := range suffixes {
				if strings.HasSuffix(host, s) {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusBadRequest, "invalid host header")
		}
	}
}
