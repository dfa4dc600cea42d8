package handler

import (
	"encoding/base64"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const guestCartCookieName = "guest-cart"

// cookieGuestCartStore はゲストカートをセッションcookieに保存する。
// 値はbase64化したJSON。タブ間の整合は保証しない（既知の割り切り）。
type cookieGuestCartStore struct {
	c      echo.Context
	secure bool
}

func newCookieGuestCartStore(c echo.Context, secure bool) *cookieGuestCartStore {
	return &cookieGuestCartStore{c: c, secure: secure}
}

func (s *cookieGuestCartStore) Get() (string, bool) {
	cookie, err := s.c.Cookie(guestCartCookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	raw, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		// 壊れたcookieは無い扱い
		return "", false
	}
	return string(raw), true
}

func (s *cookieGuestCartStore) Set(value string) error {
	s.c.SetCookie(&http.Cookie{
		Name:     guestCartCookieName,
		Value:    base64.RawURLEncoding.EncodeToString([]byte(value)),
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
		// MaxAge無し＝セッションcookie
	})
	return nil
}

func (s *cookieGuestCartStore) Remove() {
	s.c.SetCookie(&http.Cookie{
		Name:     guestCartCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
	})
}
