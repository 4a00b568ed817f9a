package models

// HeroResponse describes the current hero backdrop and its archive.
type HeroResponse struct {
	Current    string   `json:"current"`
	History    []string `json:"history"`
	Generating bool     `json:"generating"`
}

// GenerateHeroRequest carries an optional custom prompt.
type GenerateHeroRequest struct {
	Prompt string `json:"prompt" form:"prompt"`
}

// ApplyHeroRequest selects a history entry as the current hero.
type ApplyHeroRequest struct {
	Index *int `json:"index" binding:"required,gte=0"`
}

// LoginRequest is the admin credential pair.
type LoginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}
