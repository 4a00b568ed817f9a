package middleware

import (
	"net/http"

	"aipirat/auth"

	"github.com/gin-gonic/gin"
)

// AdminRequired rejects API requests whose session is not authenticated.
func AdminRequired(gate *auth.Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !gate.IsAuthenticated(c.Request.Context(), SessionID(c)) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "admin session required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// AdminPage sends unauthenticated browsers to the admin login view.
func AdminPage(gate *auth.Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !gate.IsAuthenticated(c.Request.Context(), SessionID(c)) {
			c.Redirect(http.StatusSeeOther, "/?view=admin-login")
			c.Abort()
			return
		}
		c.Next()
	}
}
