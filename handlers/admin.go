package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"aipirat/apperr"
	"aipirat/appstate"
	"aipirat/auth"
	"aipirat/hero"
	"aipirat/imagegen"
	"aipirat/middleware"
	"aipirat/models"
	"aipirat/repository"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
)

func dashboardURL(notice string) string {
	if notice == "" {
		return pageURL(appstate.ViewAdminDashboard, nil)
	}
	return pageURL(appstate.ViewAdminDashboard, url.Values{"notice": {notice}})
}

func LoginForm(gate *auth.Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.LoginRequest
		_ = c.ShouldBind(&req)

		ok, err := gate.Login(c.Request.Context(), middleware.SessionID(c), req.Username, req.Password)
		if err != nil || !ok {
			c.Redirect(http.StatusSeeOther, pageURL(appstate.ViewAdminLogin, url.Values{"notice": {noticeInvalidCredentials}}))
			return
		}
		c.Redirect(http.StatusSeeOther, dashboardURL(""))
	}
}

func LogoutForm(gate *auth.Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		_ = gate.Logout(c.Request.Context(), middleware.SessionID(c))
		c.Redirect(http.StatusSeeOther, pageURL(appstate.ViewHome, nil))
	}
}

// SaveProjectForm handles the create/edit form. Tags are comma separated and
// gallery images one per line.
func SaveProjectForm(repo *repository.ProjectRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.SaveProjectRequest
		if err := c.ShouldBind(&req); err != nil {
			c.Redirect(http.StatusSeeOther, dashboardURL(noticeTitleRequired))
			return
		}
		req.Tags = splitList(c.PostForm("tags"), ",")
		req.Images = splitList(c.PostForm("images"), "\n")

		if _, err := saveProject(c.Request.Context(), repo, c.PostForm("id"), req); err != nil {
			_ = c.Error(err)
			c.Redirect(http.StatusSeeOther, dashboardURL(noticeSaveFailed))
			return
		}
		c.Redirect(http.StatusSeeOther, dashboardURL(""))
	}
}

func DeleteProjectForm(repo *repository.ProjectRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := repo.DeleteProject(c.Request.Context(), c.Param("id")); err != nil {
			_ = c.Error(err)
			c.Redirect(http.StatusSeeOther, dashboardURL(noticeSaveFailed))
			return
		}
		c.Redirect(http.StatusSeeOther, dashboardURL(""))
	}
}

func GenerateHeroForm(studio *hero.Studio) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, ok, err := studio.Generate(c.Request.Context(), c.PostForm("prompt"))
		switch {
		case errors.Is(err, hero.ErrGenerationInProgress):
			c.Redirect(http.StatusSeeOther, dashboardURL(noticeGenerateBusy))
		case err != nil:
			_ = c.Error(err)
			c.Redirect(http.StatusSeeOther, dashboardURL(noticeSaveFailed))
		case !ok:
			c.Redirect(http.StatusSeeOther, dashboardURL(noticeGenerateFailed))
		default:
			c.Redirect(http.StatusSeeOther, dashboardURL(""))
		}
	}
}

func UploadHeroForm(studio *hero.Studio) gin.HandlerFunc {
	return func(c *gin.Context) {
		fh, err := c.FormFile("image")
		if err != nil {
			c.Redirect(http.StatusSeeOther, dashboardURL(noticeUploadRejected))
			return
		}
		if fh.Size > hero.MaxUploadBytes {
			c.Redirect(http.StatusSeeOther, dashboardURL(noticeUploadRejected))
			return
		}

		f, err := fh.Open()
		if err != nil {
			_ = c.Error(err)
			c.Redirect(http.StatusSeeOther, dashboardURL(noticeUploadRejected))
			return
		}
		defer f.Close()

		data, err := io.ReadAll(io.LimitReader(f, hero.MaxUploadBytes+1))
		if err != nil {
			_ = c.Error(err)
			c.Redirect(http.StatusSeeOther, dashboardURL(noticeUploadRejected))
			return
		}

		if _, err := studio.Upload(c.Request.Context(), fh.Filename, data); err != nil {
			_ = c.Error(err)
			notice := noticeSaveFailed
			if apperr.IsCode(err, apperr.CodeInvalid) {
				notice = noticeUploadRejected
			}
			c.Redirect(http.StatusSeeOther, dashboardURL(notice))
			return
		}
		c.Redirect(http.StatusSeeOther, dashboardURL(""))
	}
}

func ApplyHeroForm(manager *hero.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		index, err := historyIndex(c)
		if err == nil {
			_, err = manager.ApplyFromHistory(c.Request.Context(), index)
		}
		if err != nil {
			_ = c.Error(err)
		}
		c.Redirect(http.StatusSeeOther, dashboardURL(""))
	}
}

func DeleteHeroForm(manager *hero.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		index, err := historyIndex(c)
		if err == nil {
			err = manager.DeleteFromHistory(c.Request.Context(), index)
		}
		if err != nil {
			_ = c.Error(err)
		}
		c.Redirect(http.StatusSeeOther, dashboardURL(""))
	}
}

// DownloadHero serves a history entry as an attachment. Entries that are plain
// URLs are redirected to.
func DownloadHero(manager *hero.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		index, err := historyIndex(c)
		if err != nil {
			respondError(c, err)
			return
		}
		image, err := manager.Entry(c.Request.Context(), index)
		if err != nil {
			respondError(c, err)
			return
		}

		mimeType, data, err := imagegen.ParseDataURI(image)
		if err != nil {
			c.Redirect(http.StatusFound, image)
			return
		}

		ext := ".png"
		if mt := mimetype.Lookup(mimeType); mt != nil && mt.Extension() != "" {
			ext = mt.Extension()
		}
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="pirate-hero-%d%s"`, index, ext))
		c.Data(http.StatusOK, mimeType, data)
	}
}

func splitList(s, sep string) []string {
	out := []string{}
	for _, part := range strings.Split(s, sep) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
