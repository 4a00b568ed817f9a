package middleware

import (
	"net/http"

	"aipirat/session"

	"github.com/gin-gonic/gin"
)

const (
	SessionCookie = "aipirat_session"
	VisitorCookie = "aipirat_visitor"

	sessionIDKey = "session_id"
	visitorIDKey = "visitor_id"

	visitorMaxAge = 365 * 24 * 60 * 60
)

// Session makes sure the request carries a browser-session cookie and a
// long-lived visitor cookie. The session cookie has no expiry so it ends when
// the browser closes.
func Session(secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.SetSameSite(http.SameSiteLaxMode)

		sid, err := c.Cookie(SessionCookie)
		if err != nil || !session.ValidID(sid) {
			sid = session.NewID()
			c.SetCookie(SessionCookie, sid, 0, "/", "", secure, true)
		}

		vid, err := c.Cookie(VisitorCookie)
		if err != nil || !session.ValidID(vid) {
			vid = session.NewID()
			c.SetCookie(VisitorCookie, vid, visitorMaxAge, "/", "", secure, true)
		}

		c.Set(sessionIDKey, sid)
		c.Set(visitorIDKey, vid)
		c.Next()
	}
}

// SessionID returns the browser-session id set by Session.
func SessionID(c *gin.Context) string {
	return c.GetString(sessionIDKey)
}

// VisitorID returns the long-lived visitor id set by Session.
func VisitorID(c *gin.Context) string {
	return c.GetString(visitorIDKey)
}
