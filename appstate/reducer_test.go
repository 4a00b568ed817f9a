package appstate

import (
	"testing"

	"aipirat/models"

	"github.com/stretchr/testify/assert"
)

func TestParseView(t *testing.T) {
	for _, v := range Views {
		assert.Equal(t, v, ParseView(string(v)))
	}
	assert.Equal(t, ViewHome, ParseView(""))
	assert.Equal(t, ViewHome, ParseView("settings"))
}

func TestNavigateSetsViewAndScroll(t *testing.T) {
	s := New(false, models.LanguageEN)
	assert.False(t, s.ScrollTop)

	for _, v := range []View{ViewProjects, ViewAbout, ViewContact, ViewAdminLogin, ViewHome} {
		next := Reduce(s, Navigate{View: v})
		assert.Equal(t, v, next.View)
		assert.True(t, next.ScrollTop)
	}
}

func TestDashboardIsGuarded(t *testing.T) {
	s := Reduce(New(false, models.LanguageRU), Navigate{View: ViewAdminDashboard})
	assert.Equal(t, ViewAdminLogin, s.View)
	assert.True(t, s.ScrollTop)

	s = Reduce(New(true, models.LanguageRU), Navigate{View: ViewAdminDashboard})
	assert.Equal(t, ViewAdminDashboard, s.View)
}

func TestLoginAndLogout(t *testing.T) {
	s := Reduce(New(false, models.LanguageEN), Navigate{View: ViewAdminLogin}, LoginSucceeded{})
	assert.True(t, s.Authenticated)
	assert.Equal(t, ViewAdminDashboard, s.View)
	assert.False(t, s.ShowFooter())

	s = Reduce(s, LoggedOut{})
	assert.False(t, s.Authenticated)
	assert.Equal(t, ViewHome, s.View)
	assert.True(t, s.ShowFooter())

	s = Reduce(s, Navigate{View: ViewAdminDashboard})
	assert.Equal(t, ViewAdminLogin, s.View, "logging out re-arms the guard")
}

func TestProjectSelection(t *testing.T) {
	p := models.Project{ID: "1", Title: "Nexus Analytics Dashboard"}
	s := Reduce(New(false, models.LanguageEN), Navigate{View: ViewProjects}, SelectProject{Project: p})
	if assert.NotNil(t, s.Selected) {
		assert.Equal(t, "1", s.Selected.ID)
	}
	assert.Equal(t, ViewProjects, s.View, "selection does not navigate")

	s = Reduce(s, CloseProject{})
	assert.Nil(t, s.Selected)
}

func TestSetLanguage(t *testing.T) {
	s := New(false, "")
	assert.Equal(t, models.LanguageRU, s.Language)

	s = Reduce(s, SetLanguage{Language: models.LanguageEN})
	assert.Equal(t, models.LanguageEN, s.Language)

	s = Reduce(s, SetLanguage{Language: "de"})
	assert.Equal(t, models.LanguageRU, s.Language)
}

func TestReduceIsPure(t *testing.T) {
	start := New(false, models.LanguageEN)
	_ = Reduce(start, Navigate{View: ViewContact}, SelectProject{Project: models.Project{ID: "2"}})
	assert.Equal(t, ViewHome, start.View)
	assert.Nil(t, start.Selected)
	assert.False(t, start.ScrollTop)
}

func TestIsAdmin(t *testing.T) {
	assert.True(t, ViewAdminLogin.IsAdmin())
	assert.True(t, ViewAdminDashboard.IsAdmin())
	assert.False(t, ViewContact.IsAdmin())
}
