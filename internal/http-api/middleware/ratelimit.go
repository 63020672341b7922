package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimit applies a per-client-IP token bucket. Idle clients are evicted
// so the map stays bounded.
func RateLimit(rps float64, burst int) gin.HandlerFunc {
	var (
		mu      sync.Mutex
		clients = make(map[string]*clientLimiter)
	)

	const idleEviction = 10 * time.Minute

	limiterFor := func(ip string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()

		if client, ok := clients[ip]; ok {
			client.lastSeen = time.Now()
			return client.limiter
		}

		// opportunistic cleanup while we hold the lock
		for addr, client := range clients {
			if time.Since(client.lastSeen) > idleEviction {
				delete(clients, addr)
			}
		}

		client := &clientLimiter{
			limiter:  rate.NewLimiter(rate.Limit(rps), burst),
			lastSeen: time.Now(),
		}
		clients[ip] = client
		return client.limiter
	}

	return func(c *gin.Context) {
		if !limiterFor(c.ClientIP()).Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{"success": false, "message": "too many requests"})
			c.Abort()
			return
		}
		c.Next()
	}
}
