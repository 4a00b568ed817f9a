package models

// Language is a display language tag.
type Language string

const (
	LanguageEN Language = "en"
	LanguageRU Language = "ru"

	DefaultLanguage = LanguageRU
)

// ParseLanguage returns the language for s, or DefaultLanguage for anything unknown.
func ParseLanguage(s string) Language {
	if l := Language(s); l.Valid() {
		return l
	}
	return DefaultLanguage
}

func (l Language) Valid() bool {
	return l == LanguageEN || l == LanguageRU
}
