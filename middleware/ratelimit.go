// middleware/ratelimit.go
package middleware

import (
	"log"
	"net/http"

	"github.com/ulule/limiter/v3"
	stdlibmw "github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/sudhansusekhar98/UCC-Ticketing-Tool-sub005/config"
)

// RateLimitMiddleware caps per-client request rates using an in-memory
// store. The rate comes from config.RateLimit ("300-M" = 300 per minute).
func RateLimitMiddleware(next http.Handler) http.Handler {
	rate, err := limiter.NewRateFromFormatted(config.RateLimit)
	if err != nil {
		log.Printf("Invalid RATE_LIMIT %q, rate limiting disabled: %v", config.RateLimit, err)
		return next
	}

	instance := limiter.New(memory.NewStore(), rate)
	limited := stdlibmw.NewMiddleware(instance).Handler(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Upgrade") == "websocket" {
			next.ServeHTTP(w, r)
			return
		}
		limited.ServeHTTP(w, r)
	})
}
