package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	CtxSessionIDKey   = "cart_session_id"
	SessionCookieName = "cart_session"

	sessionCookieMaxAge = 60 * 60 * 24 * 30
)

// SessionCookie はカートのセッションCookieを払い出すミドルウェア。
// 認証ではない：Cookieはブラウザを跨いでカートを引くだけの匿名ハンドル。
func SessionCookie() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var sid string
			if ck, err := c.Cookie(SessionCookieName); err == nil && ck.Value != "" {
				sid = ck.Value
			}

			if sid == "" {
				sid = uuid.NewString()
				c.SetCookie(&http.Cookie{
					Name:     SessionCookieName,
					Value:    sid,
					Path:     "/",
					MaxAge:   sessionCookieMaxAge,
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			c.Set(CtxSessionIDKey, sid)
			return next(c)
		}
	}
}
