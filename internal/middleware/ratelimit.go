package middleware

import (
	"net/http"

	"github.com/didip/tollbooth/v6"
)

// RateLimit limits each client IP to maxPerSecond requests. Applied to the
// auth endpoints to slow credential stuffing and reset-token guessing;
// exceeding the limit yields 429.
func RateLimit(maxPerSecond float64) func(http.Handler) http.Handler {
	lmt := tollbooth.NewLimiter(maxPerSecond, nil)
	lmt.SetIPLookups([]string{"RemoteAddr", "X-Forwarded-For", "X-Real-IP"})
	return func(next http.Handler) http.Handler {
		return tollbooth.LimitHandler(lmt, next)
	}
}
