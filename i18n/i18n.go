// Package i18n holds the display strings for every supported language. Tables
// are embedded and validated once at startup; a missing entry fails Load.
package i18n

import (
	"bytes"
	"embed"
	"fmt"

	"aipirat/models"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var locales embed.FS

type Nav struct {
	Intro     string `yaml:"intro" validate:"required"`
	Works     string `yaml:"works" validate:"required"`
	Profile   string `yaml:"profile" validate:"required"`
	Inquiry   string `yaml:"inquiry" validate:"required"`
	Admin     string `yaml:"admin" validate:"required"`
	Dashboard string `yaml:"dashboard" validate:"required"`
	Language  string `yaml:"language" validate:"required"`
}

type Home struct {
	Badge      string `yaml:"badge" validate:"required"`
	Title      string `yaml:"title" validate:"required"`
	Subtitle   string `yaml:"subtitle" validate:"required"`
	BtnWorks   string `yaml:"btnWorks" validate:"required"`
	BtnTalk    string `yaml:"btnTalk" validate:"required"`
	Generating string `yaml:"generating" validate:"required"`
}

type About struct {
	Title           string   `yaml:"title" validate:"required"`
	Subtitle        string   `yaml:"subtitle" validate:"required"`
	Bio             string   `yaml:"bio" validate:"required"`
	StackTitle      string   `yaml:"stackTitle" validate:"required"`
	PhilosophyTitle string   `yaml:"philosophyTitle" validate:"required"`
	PhilosophyDesc  string   `yaml:"philosophyDesc" validate:"required"`
	Skills          []string `yaml:"skills" validate:"min=1,dive,required"`
}

type Contact struct {
	Title      string `yaml:"title" validate:"required"`
	Subtitle   string `yaml:"subtitle" validate:"required"`
	FormName   string `yaml:"formName" validate:"required"`
	FormEmail  string `yaml:"formEmail" validate:"required"`
	FormMsg    string `yaml:"formMsg" validate:"required"`
	FormSubmit string `yaml:"formSubmit" validate:"required"`
	Direct     string `yaml:"direct" validate:"required"`
}

type Projects struct {
	Title       string `yaml:"title" validate:"required"`
	Subtitle    string `yaml:"subtitle" validate:"required"`
	ViewAll     string `yaml:"viewAll" validate:"required"`
	Empty       string `yaml:"empty" validate:"required"`
	CreateFirst string `yaml:"createFirst" validate:"required"`
}

type Admin struct {
	LoginTitle         string `yaml:"loginTitle" validate:"required"`
	LoginSub           string `yaml:"loginSub" validate:"required"`
	UserLabel          string `yaml:"userLabel" validate:"required"`
	PassLabel          string `yaml:"passLabel" validate:"required"`
	AuthBtn            string `yaml:"authBtn" validate:"required"`
	InvalidCredentials string `yaml:"invalidCredentials" validate:"required"`
	DashTitle          string `yaml:"dashTitle" validate:"required"`
	DashSub            string `yaml:"dashSub" validate:"required"`
	NewBtn             string `yaml:"newBtn" validate:"required"`
	LogoutBtn          string `yaml:"logoutBtn" validate:"required"`
	TableThumb         string `yaml:"tableThumb" validate:"required"`
	TableActions       string `yaml:"tableActions" validate:"required"`
	Edit               string `yaml:"edit" validate:"required"`
	Delete             string `yaml:"delete" validate:"required"`
	ModalTitle         string `yaml:"modalTitle" validate:"required"`
	ModalNewTitle      string `yaml:"modalNewTitle" validate:"required"`
	FieldTitle         string `yaml:"fieldTitle" validate:"required"`
	FieldShort         string `yaml:"fieldShort" validate:"required"`
	FieldLong          string `yaml:"fieldLong" validate:"required"`
	FieldThumbnail     string `yaml:"fieldThumbnail" validate:"required"`
	FieldImages        string `yaml:"fieldImages" validate:"required"`
	FieldTags          string `yaml:"fieldTags" validate:"required"`
	FieldGithub        string `yaml:"fieldGithub" validate:"required"`
	FieldDemo          string `yaml:"fieldDemo" validate:"required"`
	SaveBtn            string `yaml:"saveBtn" validate:"required"`
	DiscardBtn         string `yaml:"discardBtn" validate:"required"`
	RegenHero          string `yaml:"regenHero" validate:"required"`
	UploadBtn          string `yaml:"uploadBtn" validate:"required"`
	StormTitle         string `yaml:"stormTitle" validate:"required"`
	StormSub           string `yaml:"stormSub" validate:"required"`
	PromptPlaceholder  string `yaml:"promptPlaceholder" validate:"required"`
	GenerateFailed     string `yaml:"generateFailed" validate:"required"`
	GenerateBusy       string `yaml:"generateBusy" validate:"required"`
	UploadRejected     string `yaml:"uploadRejected" validate:"required"`
	TitleRequired      string `yaml:"titleRequired" validate:"required"`
	SaveFailed         string `yaml:"saveFailed" validate:"required"`
	HistoryTitle       string `yaml:"historyTitle" validate:"required"`
	HistorySub         string `yaml:"historySub" validate:"required"`
	Download           string `yaml:"download" validate:"required"`
	Apply              string `yaml:"apply" validate:"required"`
}

type Modal struct {
	Context      string `yaml:"context" validate:"required"`
	Deliverables string `yaml:"deliverables" validate:"required"`
	Links        string `yaml:"links" validate:"required"`
	Explore      string `yaml:"explore" validate:"required"`
	Source       string `yaml:"source" validate:"required"`
	Close        string `yaml:"close" validate:"required"`
}

// Strings is the complete set of display strings for one language.
type Strings struct {
	Nav      Nav      `yaml:"nav"`
	Home     Home     `yaml:"home"`
	About    About    `yaml:"about"`
	Contact  Contact  `yaml:"contact"`
	Projects Projects `yaml:"projects"`
	Admin    Admin    `yaml:"admin"`
	Modal    Modal    `yaml:"modal"`
}

// Catalog maps every supported language to its strings.
type Catalog struct {
	tables map[models.Language]*Strings
}

// Load reads and validates the embedded tables.
func Load() (*Catalog, error) {
	sources := make(map[models.Language][]byte, 2)
	for _, lang := range []models.Language{models.LanguageEN, models.LanguageRU} {
		data, err := locales.ReadFile("locales/" + string(lang) + ".yaml")
		if err != nil {
			return nil, fmt.Errorf("read %s strings: %w", lang, err)
		}
		sources[lang] = data
	}
	return Parse(sources)
}

// Parse builds a catalog from raw YAML tables. Both languages must be present,
// every key must be filled, and unknown keys are rejected.
func Parse(sources map[models.Language][]byte) (*Catalog, error) {
	validate := validator.New()
	c := &Catalog{tables: make(map[models.Language]*Strings, len(sources))}

	for _, lang := range []models.Language{models.LanguageEN, models.LanguageRU} {
		data, ok := sources[lang]
		if !ok {
			return nil, fmt.Errorf("no strings for language %q", lang)
		}

		var s Strings
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&s); err != nil {
			return nil, fmt.Errorf("parse %s strings: %w", lang, err)
		}
		if err := validate.Struct(&s); err != nil {
			return nil, fmt.Errorf("incomplete %s strings: %w", lang, err)
		}
		c.tables[lang] = &s
	}
	return c, nil
}

// For returns the strings for lang, falling back to the default language.
func (c *Catalog) For(lang models.Language) *Strings {
	if s, ok := c.tables[lang]; ok {
		return s
	}
	return c.tables[models.DefaultLanguage]
}
