package handlers

import (
	"embed"
	"fmt"
	"html/template"
	"strings"

	"aipirat/appstate"
	"aipirat/i18n"
	"aipirat/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses the embedded page templates.
func Templates() (*template.Template, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"join":  strings.Join,
		"lines": func(s []string) string { return strings.Join(s, "\n") },
		// image sources may be data URIs, which html/template would otherwise reject
		"imgsrc": func(s string) template.URL { return template.URL(s) },
		"cssurl": func(s string) template.CSS {
			return template.CSS(fmt.Sprintf("url(%q)", s))
		},
		"card": func(p models.Project, view string) cardView {
			return cardView{View: view, Project: p}
		},
		"modal": func(page pageData, p *models.Project) modalView {
			return modalView{Page: page, Project: p}
		},
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return tmpl, nil
}

type cardView struct {
	View    string
	Project models.Project
}

type modalView struct {
	Page    pageData
	Project *models.Project
}

type navItem struct {
	View  appstate.View
	Label string
}

// contactChannel is one of the direct contact links on the contact view.
type contactChannel struct {
	Label string
	Value string
	Href  string
}

var contactChannels = []contactChannel{
	{Label: "EMAIL", Value: "captain@aipirat.io", Href: "mailto:captain@aipirat.io"},
	{Label: "TELEGRAM", Value: "@AIPIRAT", Href: "https://t.me/aipirat"},
}

// pageData is the view model of the single page template.
type pageData struct {
	State      appstate.State
	T          *i18n.Strings
	Nav        []navItem
	Languages  []models.Language
	Hero       string
	Projects   []models.Project
	Featured   []models.Project
	History    []string
	Generating bool
	Editing    *models.Project
	Notice     string
	Contacts   []contactChannel
}

func navItems(t *i18n.Strings, authenticated bool) []navItem {
	items := []navItem{
		{View: appstate.ViewHome, Label: t.Nav.Intro},
		{View: appstate.ViewProjects, Label: t.Nav.Works},
		{View: appstate.ViewAbout, Label: t.Nav.Profile},
		{View: appstate.ViewContact, Label: t.Nav.Inquiry},
	}
	if authenticated {
		return append(items, navItem{View: appstate.ViewAdminDashboard, Label: t.Nav.Dashboard})
	}
	return append(items, navItem{View: appstate.ViewAdminLogin, Label: t.Nav.Admin})
}

// noticeText resolves a notice code carried across a redirect.
func noticeText(t *i18n.Strings, code string) string {
	switch code {
	case noticeInvalidCredentials:
		return t.Admin.InvalidCredentials
	case noticeGenerateFailed:
		return t.Admin.GenerateFailed
	case noticeGenerateBusy:
		return t.Admin.GenerateBusy
	case noticeUploadRejected:
		return t.Admin.UploadRejected
	case noticeTitleRequired:
		return t.Admin.TitleRequired
	case noticeSaveFailed:
		return t.Admin.SaveFailed
	default:
		return ""
	}
}

const (
	noticeInvalidCredentials = "invalid_credentials"
	noticeGenerateFailed     = "generate_failed"
	noticeGenerateBusy       = "generate_busy"
	noticeUploadRejected     = "upload_rejected"
	noticeTitleRequired      = "title_required"
	noticeSaveFailed         = "save_failed"
)
