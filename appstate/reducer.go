package appstate

import "aipirat/models"

// Action is a state transition request.
type Action interface {
	apply(State) State
}

// Navigate moves to View. The admin dashboard requires authentication; without
// it the transition lands on the admin login view.
type Navigate struct{ View View }

// LoginSucceeded marks the state authenticated and opens the dashboard.
type LoginSucceeded struct{}

// LoggedOut clears authentication and returns home.
type LoggedOut struct{}

// SelectProject opens the detail view of a project.
type SelectProject struct{ Project models.Project }

// CloseProject closes the project detail view.
type CloseProject struct{}

// SetLanguage switches the display language.
type SetLanguage struct{ Language models.Language }

func (a Navigate) apply(s State) State {
	target := a.View
	if target == ViewAdminDashboard && !s.Authenticated {
		target = ViewAdminLogin
	}
	s.View = target
	s.ScrollTop = true
	return s
}

func (LoginSucceeded) apply(s State) State {
	s.Authenticated = true
	return Navigate{View: ViewAdminDashboard}.apply(s)
}

func (LoggedOut) apply(s State) State {
	s.Authenticated = false
	return Navigate{View: ViewHome}.apply(s)
}

func (a SelectProject) apply(s State) State {
	p := a.Project
	s.Selected = &p
	return s
}

func (CloseProject) apply(s State) State {
	s.Selected = nil
	return s
}

func (a SetLanguage) apply(s State) State {
	s.Language = models.ParseLanguage(string(a.Language))
	return s
}

// Reduce applies actions in order and returns the resulting state.
func Reduce(s State, actions ...Action) State {
	for _, a := range actions {
		if a == nil {
			continue
		}
		s = a.apply(s)
	}
	return s
}
