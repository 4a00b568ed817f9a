package handlers

import (
	"net/http"
	"net/url"

	"aipirat/appstate"
	"aipirat/middleware"
	"aipirat/models"
	"aipirat/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// featuredCount is how many projects the home view shows.
const featuredCount = 3

// RenderPage renders GET /?view=<view>&project=<id>. The admin dashboard
// additionally understands edit=<id> and edit=new.
func RenderPage(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		authenticated := d.Gate.IsAuthenticated(ctx, middleware.SessionID(c))
		lang := d.Languages.For(middleware.VisitorID(c)).Get(ctx)

		projects, err := d.Projects.GetProjects(ctx)
		if err != nil {
			d.Log.Warn("listing projects for page", zap.Error(err))
		}

		actions := []appstate.Action{appstate.Navigate{View: appstate.ParseView(c.Query("view"))}}
		if id := c.Query("project"); id != "" {
			for _, p := range projects {
				if p.ID == id {
					actions = append(actions, appstate.SelectProject{Project: p})
					break
				}
			}
		}
		state := appstate.Reduce(appstate.New(authenticated, lang), actions...)

		t := d.Catalog.For(state.Language)
		data := pageData{
			State:     state,
			T:         t,
			Nav:       navItems(t, state.Authenticated),
			Languages: []models.Language{models.LanguageEN, models.LanguageRU},
			Hero:      d.Hero.Current(ctx),
			Projects:  projects,
			Featured:  projects[:min(featuredCount, len(projects))],
			Notice:    noticeText(t, c.Query("notice")),
			Contacts:  contactChannels,
		}

		if state.View.IsAdmin() {
			c.Header("Cache-Control", "no-store")
		}
		if state.View == appstate.ViewAdminDashboard {
			data.History = d.Hero.History(ctx)
			data.Generating = d.Studio.Generating()
			data.Editing = editingProject(c.Query("edit"), projects)
		}

		c.HTML(http.StatusOK, "page.html", data)
	}
}

// editingProject resolves the edit query value into the project shown in the
// admin form. "new" opens an empty form with the default thumbnail.
func editingProject(edit string, projects []models.Project) *models.Project {
	switch edit {
	case "":
		return nil
	case "new":
		return &models.Project{Thumbnail: models.DefaultThumbnail}
	}
	for _, p := range projects {
		if p.ID == edit {
			return &p
		}
	}
	return nil
}

// SetLanguageForm stores the visitor's language and returns to the page the
// form was posted from.
func SetLanguageForm(langs *repository.VisitorLanguages) gin.HandlerFunc {
	return func(c *gin.Context) {
		langs.For(middleware.VisitorID(c)).Set(c.Request.Context(), models.Language(c.PostForm("lang")))
		c.Redirect(http.StatusSeeOther, pageURL(appstate.ParseView(c.PostForm("view")), nil))
	}
}

// pageURL builds a link to view with extra query values.
func pageURL(view appstate.View, extra url.Values) string {
	q := url.Values{}
	q.Set("view", string(view))
	for k, vs := range extra {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	return "/?" + q.Encode()
}
