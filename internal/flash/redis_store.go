package flash

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

const (
	// SessionCookie identifies the visitor whose messages live in Redis.
	SessionCookie = "fyyur_session"
	sessionCtxKey = "flash.session"
	keyPrefix     = "flash:"
)

// RedisStore keeps each visitor's pending messages in a Redis list keyed by
// a random session id held in a cookie.  Lists expire after ttl so abandoned
// sessions do not accumulate.
type RedisStore struct {
	rdb   *redis.Client
	ttl   time.Duration
	newID func() string
}

// NewRedisStore builds a RedisStore; a non-positive ttl defaults to ten minutes.
func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &RedisStore{rdb: rdb, ttl: ttl, newID: uuid.NewString}
}

func key(sid string) string { return keyPrefix + sid }

// session returns the visitor's session id, issuing one when create is set.
func (s *RedisStore) session(c echo.Context, create bool) string {
	if sid, ok := c.Get(sessionCtxKey).(string); ok && sid != "" {
		return sid
	}
	if ck, err := c.Cookie(SessionCookie); err == nil {
		if _, perr := uuid.Parse(ck.Value); perr == nil {
			c.Set(sessionCtxKey, ck.Value)
			return ck.Value
		}
	}
	if !create {
		return ""
	}
	sid := s.newID()
	c.Set(sessionCtxKey, sid)
	setCookie(c, SessionCookie, sid, 0)
	return sid
}

// Add appends msg to the visitor's queue and refreshes its expiry.
func (s *RedisStore) Add(c echo.Context, msg string) error {
	k := key(s.session(c, true))
	ctx := c.Request().Context()
	_, err := s.rdb.Pipelined(ctx, func(p redis.Pipeliner) error {
		p.RPush(ctx, k, msg)
		p.Expire(ctx, k, s.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("flash add: %w", err)
	}
	return nil
}

// Pop returns and clears the visitor's queued messages in one transaction.
func (s *RedisStore) Pop(c echo.Context) ([]string, error) {
	sid := s.session(c, false)
	if sid == "" {
		return nil, nil
	}
	k := key(sid)
	ctx := c.Request().Context()
	var msgs *redis.StringSliceCmd
	_, err := s.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		msgs = p.LRange(ctx, k, 0, -1)
		p.Del(ctx, k)
		return nil
	})
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("flash pop: %w", err)
	}
	return msgs.Val(), nil
}

var _ Store = (*RedisStore)(nil)

