package report

import "strings"

// Supported languages.
const (
	LangEnglish = "en"
	LangSpanish = "es"
)

type msgKey int

const (
	msgSummaryTitle msgKey = iota
	msgSummaryDirect
	msgSummaryIndirect
	msgIncludedBy
	msgType
	msgTypeDirect
	msgTypeIndirect
	msgCheckIfNeeded
	msgNoFindings
	msgStatsCategory
	msgStatsDirect
	msgStatsIndirect
	msgStatsTotal
	msgSavedTo
)

var messages = map[string]map[msgKey]string{
	LangEnglish: {
		msgSummaryTitle:    "Silly dependencies summary",
		msgSummaryDirect:   "Direct silly dependencies",
		msgSummaryIndirect: "Indirect silly dependencies",
		msgIncludedBy:      "included by",
		msgType:            "type",
		msgTypeDirect:      "direct",
		msgTypeIndirect:    "indirect",
		msgCheckIfNeeded:   "Review whether this dependency is needed",
		msgNoFindings:      "No silly dependencies found",
		msgStatsCategory:   "Category",
		msgStatsDirect:     "Direct",
		msgStatsIndirect:   "Indirect",
		msgStatsTotal:      "Total",
		msgSavedTo:         "Results saved to",
	},
	LangSpanish: {
		msgSummaryTitle:    "Resumen de dependencias tontas",
		msgSummaryDirect:   "Dependencias tontas directas",
		msgSummaryIndirect: "Dependencias tontas indirectas",
		msgIncludedBy:      "incluida por",
		msgType:            "tipo",
		msgTypeDirect:      "directa",
		msgTypeIndirect:    "indirecta",
		msgCheckIfNeeded:   "Revisa si esta dependencia es necesaria",
		msgNoFindings:      "No se encontraron dependencias tontas",
		msgStatsCategory:   "Categoría",
		msgStatsDirect:     "Directas",
		msgStatsIndirect:   "Indirectas",
		msgStatsTotal:      "Total",
		msgSavedTo:         "Resultados guardados en",
	},
}

// NormalizeLang maps lang to a supported language, defaulting to English.
func NormalizeLang(lang string) string {
	if _, ok := messages[lang]; ok {
		return lang
	}
	return LangEnglish
}

// DetectLang picks a language from locale values such as "es_ES.UTF-8",
// checked in order (typically LC_ALL, LC_MESSAGES, LANG). The first
// non-empty value decides.
func DetectLang(locales ...string) string {
	for _, l := range locales {
		if l == "" {
			continue
		}
		if strings.HasPrefix(strings.ToLower(l), LangSpanish) {
			return LangSpanish
		}
		return LangEnglish
	}
	return LangEnglish
}

// SavedTo returns the localized "results saved to" label.
func SavedTo(lang string) string {
	return tr(lang, msgSavedTo)
}

func tr(lang string, key msgKey) string {
	return messages[NormalizeLang(lang)][key]
}
