package handlers

import (
	"context"

	"aipirat/auth"
	"aipirat/hero"
	"aipirat/i18n"
	"aipirat/middleware"
	"aipirat/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Pinger is implemented by storage backends that can report reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps is everything the HTTP layer needs.
type Deps struct {
	Projects  *repository.ProjectRepository
	Languages *repository.VisitorLanguages
	Gate      *auth.Gate
	Hero      *hero.Manager
	Studio    *hero.Studio
	Catalog   *i18n.Catalog
	Storage   Pinger
	Log       *zap.Logger
}

// Register mounts pages, admin forms and the JSON API on r. The caller installs
// global middleware (request id, logging, recovery, session) beforehand.
func Register(r *gin.Engine, d Deps, api ...gin.HandlerFunc) error {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	tmpl, err := Templates()
	if err != nil {
		return err
	}
	r.SetHTMLTemplate(tmpl)

	r.GET("/health", HealthCheck(d.Storage))

	r.GET("/", RenderPage(d))
	r.POST("/lang", SetLanguageForm(d.Languages))

	r.POST("/admin/login", LoginForm(d.Gate))
	r.POST("/admin/logout", LogoutForm(d.Gate))

	admin := r.Group("/admin")
	admin.Use(middleware.AdminPage(d.Gate))
	{
		admin.POST("/projects", SaveProjectForm(d.Projects))
		admin.POST("/projects/:id/delete", DeleteProjectForm(d.Projects))
		admin.POST("/hero/generate", GenerateHeroForm(d.Studio))
		admin.POST("/hero/upload", UploadHeroForm(d.Studio))
		admin.POST("/hero/history/:index/apply", ApplyHeroForm(d.Hero))
		admin.POST("/hero/history/:index/delete", DeleteHeroForm(d.Hero))
		admin.GET("/hero/history/:index/download", DownloadHero(d.Hero))
	}

	v1 := r.Group("/api/v1")
	v1.Use(api...)
	{
		v1.GET("/projects", ListProjects(d.Projects))
		v1.GET("/projects/:id", GetProject(d.Projects))
		v1.GET("/hero", GetHero(d.Hero, d.Studio))
		v1.GET("/lang", GetLanguage(d.Languages))
		v1.PUT("/lang", PutLanguage(d.Languages))
		v1.GET("/session", SessionStatus(d.Gate))
		v1.POST("/session/login", Login(d.Gate))
		v1.POST("/session/logout", Logout(d.Gate))

		protected := v1.Group("")
		protected.Use(middleware.AdminRequired(d.Gate))
		protected.POST("/projects", CreateProject(d.Projects))
		protected.PUT("/projects/:id", UpdateProject(d.Projects))
		protected.DELETE("/projects/:id", DeleteProject(d.Projects))
		protected.POST("/hero/generate", GenerateHero(d.Studio))
		protected.PUT("/hero", ApplyHero(d.Hero, d.Studio))
		protected.DELETE("/hero/history/:index", DeleteHeroHistory(d.Hero, d.Studio))
	}
	return nil
}
