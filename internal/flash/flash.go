// Package flash carries one-time advisory messages from the request that
// produced them to the next page the browser renders.
package flash

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// Store queues messages for the current visitor and hands them out once.
type Store interface {
	Add(c echo.Context, msg string) error
	Pop(c echo.Context) ([]string, error)
}

// New returns a Redis-backed store when rdb is available and a cookie-backed
// store otherwise.
func New(rdb *redis.Client, ttl time.Duration) Store {
	if rdb == nil {
		return NewCookieStore()
	}
	return NewRedisStore(rdb, ttl)
}

func setCookie(c echo.Context, name, value string, maxAge int) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
