package detector

import (
	lingua "github.com/pemistahl/lingua-go"
)

// Detector guesses the language of source text. It only informs logging and
// never changes what is sent to an engine.
type Detector struct {
	detector lingua.LanguageDetector
}

// New builds a detector over langs, or over every language lingua knows when
// none are given.
func New(langs ...lingua.Language) *Detector {
	builder := lingua.NewLanguageDetectorBuilder()
	if len(langs) >= 2 {
		builder = builder.FromLanguages(langs...)
	} else {
		builder = builder.FromAllLanguages()
	}
	return &Detector{detector: builder.Build()}
}

func (d *Detector) Detect(text string) (lingua.Language, bool) {
	if text == "" {
		return lingua.Unknown, false
	}
	return d.detector.DetectLanguageOf(text)
}

func (d *Detector) DetectISO(text string) (string, bool) {
	lang, ok := d.Detect(text)
	if !ok {
		return "", false
	}
	return lang.IsoCode639_1().String(), true
}

// IsJapanese reports whether text already reads as Japanese.
func (d *Detector) IsJapanese(text string) bool {
	lang, ok := d.Detect(text)
	return ok && lang == lingua.Japanese
}
