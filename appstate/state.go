// Package appstate is the navigation state machine behind every rendered page.
// State changes only through Reduce.
package appstate

import "aipirat/models"

type View string

const (
	ViewHome           View = "home"
	ViewProjects       View = "projects"
	ViewAbout          View = "about"
	ViewContact        View = "contact"
	ViewAdminLogin     View = "admin-login"
	ViewAdminDashboard View = "admin-dashboard"
)

// Views lists every view in navigation order.
var Views = []View{ViewHome, ViewProjects, ViewAbout, ViewContact, ViewAdminLogin, ViewAdminDashboard}

// ParseView returns the view named s, or ViewHome.
func ParseView(s string) View {
	for _, v := range Views {
		if string(v) == s {
			return v
		}
	}
	return ViewHome
}

// IsAdmin reports whether v belongs to the admin area.
func (v View) IsAdmin() bool {
	return v == ViewAdminLogin || v == ViewAdminDashboard
}

// State is everything a page render depends on besides stored data.
type State struct {
	View          View
	Authenticated bool
	Language      models.Language
	Selected      *models.Project
	// ScrollTop is set by every navigation so the page opens at the top.
	ScrollTop bool
}

// New returns the initial state for a visitor.
func New(authenticated bool, lang models.Language) State {
	return State{View: ViewHome, Authenticated: authenticated, Language: models.ParseLanguage(string(lang))}
}

// ShowFooter reports whether the site footer is rendered.
func (s State) ShowFooter() bool {
	return s.View != ViewAdminDashboard
}
