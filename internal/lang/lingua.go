package lang

import (
	"strings"

	"github.com/pemistahl/lingua-go"
)

// LinguaDetector implements Detector on top of the lingua n-gram models.
// Construction is expensive, build it once at startup and share it.
type LinguaDetector struct {
	detector lingua.LanguageDetector
	byCode   map[string]lingua.Language
}

func NewLinguaDetector() *LinguaDetector {
	byCode := make(map[string]lingua.Language)
	for _, l := range lingua.AllLanguages() {
		byCode[strings.ToLower(l.IsoCode639_1().String())] = l
	}

	return &LinguaDetector{
		detector: lingua.NewLanguageDetectorBuilder().
			FromAllLanguages().
			WithLowAccuracyMode().
			Build(),
		byCode: byCode,
	}
}

func (d *LinguaDetector) Detect(text string, candidates []string) string {
	if text == "" || len(candidates) == 0 {
		return ""
	}

	wanted := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		wanted[c] = true
	}

	for _, cv := range d.detector.ComputeLanguageConfidenceValues(text) {
		code := strings.ToLower(cv.Language().IsoCode639_1().String())
		if wanted[code] {
			return code
		}
	}
	return ""
}

func (d *LinguaDetector) Confidence(text string, lang string) float64 {
	l, ok := d.byCode[lang]
	if !ok || text == "" {
		return 0
	}
	return d.detector.ComputeLanguageConfidence(text, l)
}
