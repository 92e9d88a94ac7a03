package locale

import "strings"

const (
	LanguageEnglish = "en"
	LanguageTurkish = "tr"
)

type Preference struct {
	Language string
	Locale   string
	HTMLLang string
}

func NormalizeLanguage(raw string) string {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	if trimmed == "" {
		return ""
	}
	if strings.HasPrefix(trimmed, "tr") {
		return LanguageTurkish
	}
	if strings.HasPrefix(trimmed, "en") {
		return LanguageEnglish
	}
	return ""
}

func LanguageFromAcceptLanguage(header string) string {
	for _, part := range strings.Split(header, ",") {
		tag, _, _ := strings.Cut(part, ";")
		if language := NormalizeLanguage(tag); language != "" {
			return language
		}
	}
	return ""
}

// Resolve 依次使用显式参数、Accept-Language，最后回落到英文
func Resolve(query, acceptLanguage string) string {
	if language := NormalizeLanguage(query); language != "" {
		return language
	}
	if language := LanguageFromAcceptLanguage(acceptLanguage); language != "" {
		return language
	}
	return LanguageEnglish
}

func PreferenceForLanguage(language string) Preference {
	if NormalizeLanguage(language) == LanguageTurkish {
		return Preference{Language: LanguageTurkish, Locale: "tr_TR", HTMLLang: "tr-TR"}
	}
	return Preference{Language: LanguageEnglish, Locale: "en_US", HTMLLang: "en-US"}
}
