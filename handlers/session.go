package handlers

import (
	"net/http"

	"aipirat/auth"
	"aipirat/middleware"
	"aipirat/models"
	"aipirat/repository"

	"github.com/gin-gonic/gin"
)

func SessionStatus(gate *auth.Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"authenticated": gate.IsAuthenticated(c.Request.Context(), middleware.SessionID(c))})
	}
}

func Login(gate *auth.Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ok, err := gate.Login(c.Request.Context(), middleware.SessionID(c), req.Username, req.Password)
		if err != nil {
			respondError(c, err)
			return
		}
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"authenticated": true})
	}
}

func Logout(gate *auth.Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := gate.Logout(c.Request.Context(), middleware.SessionID(c)); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"authenticated": false})
	}
}

type languageRequest struct {
	Language string `json:"language" binding:"required,oneof=en ru"`
}

func GetLanguage(langs *repository.VisitorLanguages) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := langs.For(middleware.VisitorID(c)).Get(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"language": lang})
	}
}

func PutLanguage(langs *repository.VisitorLanguages) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req languageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		lang := langs.For(middleware.VisitorID(c)).Set(c.Request.Context(), models.Language(req.Language))
		c.JSON(http.StatusOK, gin.H{"language": lang})
	}
}
