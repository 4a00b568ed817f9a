package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"aipirat/apperr"
	"aipirat/hero"
	"aipirat/models"

	"github.com/gin-gonic/gin"
)

func heroResponse(c *gin.Context, manager *hero.Manager, studio *hero.Studio) models.HeroResponse {
	ctx := c.Request.Context()
	return models.HeroResponse{
		Current:    manager.Current(ctx),
		History:    manager.History(ctx),
		Generating: studio.Generating(),
	}
}

func GetHero(manager *hero.Manager, studio *hero.Studio) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, heroResponse(c, manager, studio))
	}
}

// GenerateHero runs one generation. The body is optional; an empty prompt uses
// the default one.
func GenerateHero(studio *hero.Studio) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.GenerateHeroRequest
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		image, ok, err := studio.Generate(c.Request.Context(), req.Prompt)
		if err != nil {
			respondError(c, err)
			return
		}
		if !ok {
			c.JSON(http.StatusBadGateway, gin.H{"error": "image generation failed"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"image": image})
	}
}

func ApplyHero(manager *hero.Manager, studio *hero.Studio) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ApplyHeroRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if _, err := manager.ApplyFromHistory(c.Request.Context(), *req.Index); err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, heroResponse(c, manager, studio))
	}
}

func DeleteHeroHistory(manager *hero.Manager, studio *hero.Studio) gin.HandlerFunc {
	return func(c *gin.Context) {
		index, err := historyIndex(c)
		if err != nil {
			respondError(c, err)
			return
		}

		if err := manager.DeleteFromHistory(c.Request.Context(), index); err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, heroResponse(c, manager, studio))
	}
}

func historyIndex(c *gin.Context) (int, error) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		return 0, apperr.New(apperr.CodeInvalid, "invalid history index")
	}
	return index, nil
}
