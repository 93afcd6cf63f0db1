package structural

import "strings"

// Language tags form the closed set the Registry recognizes. No other tag
// is accepted.
const (
	LangJava       = "java"
	LangRust       = "rust"
	LangC          = "c"
	LangCPP        = "cpp"
	LangPython     = "python"
	LangGo         = "go"
	LangJavaScript = "javascript"
	LangTypeScript = "typescript"
)

// extensionToLanguage is the fixed, case-insensitive file-extension
// mapping. Extensions not present here are unsupported and the unit is
// skipped by callers (not an error from this package).
var extensionToLanguage = map[string]string{
	"java": LangJava,
	"rs":   LangRust,
	"c":    LangC,
	"h":    LangC,
	"cpp":  LangCPP,
	"cc":   LangCPP,
	"cxx":  LangCPP,
	"hpp":  LangCPP,
	"hxx":  LangCPP,
	"py":   LangPython,
	"pyi":  LangPython,
	"go":   LangGo,
	"js":   LangJavaScript,
	"mjs":  LangJavaScript,
	"cjs":  LangJavaScript,
	"ts":   LangTypeScript,
	"tsx":  LangTypeScript,
}

// LanguageForExtension maps a file extension (with or without a leading dot,
// case-insensitive) to its language tag. It reports false for any extension
// outside the closed set this package supports.
func LanguageForExtension(ext string) (string, bool) {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	lang, ok := extensionToLanguage[ext]
	return lang, ok
}

// LanguageForPath derives a language tag from a file path's extension.
func LanguageForPath(path string) (string, bool) {
	idx := strings.LastIndexByte(path, '.')
	if idx < 0 || idx == len(path)-1 {
		return "", false
	}
	return LanguageForExtension(path[idx+1:])
}

// SupportedLanguages lists the closed set of language tags the Registry
// can parse.
func SupportedLanguages() []string {
	return []string{LangJava, LangRust, LangC, LangCPP, LangPython, LangGo, LangJavaScript, LangTypeScript}
}

func isSupportedLanguage(lang string) bool {
	switch lang {
	case LangJava, LangRust, LangC, LangCPP, LangPython, LangGo, LangJavaScript, LangTypeScript:
		return true
	default:
		return false
	}
}
