package locale

// Pick returns the text matching the request language, defaulting to English.
func Pick(language, english, turkish string) string {
	if NormalizeLanguage(language) == LanguageTurkish {
		if turkish != "" {
			return turkish
		}
		return english
	}
	if english != "" {
		return english
	}
	return turkish
}

type label struct {
	english string
	turkish string
}

var statusLabels = map[string]label{
	"planned":     {"Planned", "Planlandı"},
	"in_progress": {"In progress", "Devam ediyor"},
	"blocked":     {"Blocked", "Engellendi"},
	"done":        {"Done", "Tamamlandı"},
	"pending":     {"Pending", "Bekliyor"},
	"logged":      {"Logged", "Kaydedildi"},
}

var artifactLabels = map[string]label{
	"pr":    {"Pull request", "Pull request"},
	"demo":  {"Demo", "Demo"},
	"blog":  {"Blog post", "Blog yazısı"},
	"repo":  {"Repository", "Depo"},
	"doc":   {"Document", "Doküman"},
	"other": {"Link", "Bağlantı"},
}

// StatusLabel 返回状态的显示名称；未知状态原样返回
func StatusLabel(language, status string) string {
	if l, ok := statusLabels[status]; ok {
		return Pick(language, l.english, l.turkish)
	}
	return status
}

// StatusLabels 返回全部状态的显示名称
func StatusLabels(language string) map[string]string {
	labels := make(map[string]string, len(statusLabels))
	for key, l := range statusLabels {
		labels[key] = Pick(language, l.english, l.turkish)
	}
	return labels
}

// ArtifactLabel 返回产出物类型的显示名称
func ArtifactLabel(language, kind string) string {
	if l, ok := artifactLabels[kind]; ok {
		return Pick(language, l.english, l.turkish)
	}
	return kind
}
