package structural

import "testing"

func TestLanguageForExtension(t *testing.T) {
	cases := map[string]string{
		"go":   LangGo,
		".go":  LangGo,
		"PY":   LangPython,
		"rs":   LangRust,
		"ts":   LangTypeScript,
		"tsx":  LangTypeScript,
		"js":   LangJavaScript,
		"mjs":  LangJavaScript,
		"java": LangJava,
		"cpp":  LangCPP,
		"hpp":  LangCPP,
		"c":    LangC,
		"h":    LangC,
	}
	for ext, want := range cases {
		got, ok := LanguageForExtension(ext)
		if !ok {
			t.Errorf("expected %q to resolve to a language", ext)
			continue
		}
		if got != want {
			t.Errorf("LanguageForExtension(%q) = %q, want %q", ext, got, want)
		}
	}
}

func TestLanguageForExtension_Unsupported(t *testing.T) {
	if _, ok := LanguageForExtension("exe"); ok {
		t.Error("expected unsupported extension to report ok=false")
	}
}

func TestLanguageForPath(t *testing.T) {
	got, ok := LanguageForPath("/srv/app/main.go")
	if !ok || got != LangGo {
		t.Fatalf("LanguageForPath = (%q, %v), want (%q, true)", got, ok, LangGo)
	}
}

func TestSupportedLanguages(t *testing.T) {
	langs := SupportedLanguages()
	if len(langs) != 8 {
		t.Fatalf("expected 8 supported languages, got %d", len(langs))
	}
}
