package flash

import (
	"encoding/base64"
	"encoding/json"

	"github.com/labstack/echo/v4"
)

const (
	// MessagesCookie carries pending messages when no Redis is configured.
	MessagesCookie = "fyyur_flash"
	pendingCtxKey  = "flash.pending"
)

// CookieStore keeps pending messages in the browser as base64-encoded JSON.
// Used when Redis is disabled or unreachable.
type CookieStore struct{}

// NewCookieStore returns a CookieStore.
func NewCookieStore() *CookieStore { return &CookieStore{} }

func (s *CookieStore) pending(c echo.Context) []string {
	if msgs, ok := c.Get(pendingCtxKey).([]string); ok {
		return msgs
	}
	return decode(c)
}

// Add appends msg to the messages cookie written with this response.
func (s *CookieStore) Add(c echo.Context, msg string) error {
	msgs := append(s.pending(c), msg)
	raw, err := json.Marshal(msgs)
	if err != nil {
		return err
	}
	c.Set(pendingCtxKey, msgs)
	setCookie(c, MessagesCookie, base64.RawURLEncoding.EncodeToString(raw), 0)
	return nil
}

// Pop returns the messages carried by the request and expires the cookie.
// A cookie that cannot be decoded is discarded silently.
func (s *CookieStore) Pop(c echo.Context) ([]string, error) {
	msgs := decode(c)
	if msgs == nil {
		return nil, nil
	}
	c.Set(pendingCtxKey, []string{})
	setCookie(c, MessagesCookie, "", -1)
	return msgs, nil
}

func decode(c echo.Context) []string {
	ck, err := c.Cookie(MessagesCookie)
	if err != nil || ck.Value == "" {
		return nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(ck.Value)
	if err != nil {
		return nil
	}
	var msgs []string
	if err := json.Unmarshal(raw, &msgs); err != nil {
		return nil
	}
	return msgs
}

var _ Store = (*CookieStore)(nil)
