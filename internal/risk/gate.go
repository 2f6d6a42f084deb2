package risk

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// #region verdict

// Verdict is the outcome of scanning one utterance. Produced fresh per
// evaluation; never persisted beyond the triggering turn's audit trail.
type Verdict struct {
	RiskDetected bool   `json:"risk_detected"`
	Language     string `json:"language,omitempty"` // "es" | "en"
	Message      string `json:"message,omitempty"`
}

// #endregion verdict

// #region patterns

// Patterns are matched against lowercased, diacritic-folded text, so
// "autolesión" and "autolesion" hit the same entry.
var patternsES = compile([]string{
	`suicid`,
	`matarme`,
	`quitarme la vida`,
	`autolesion`,
	`hacerme dano`,
	`no quiero vivir`,
	`cortarme`,
})

var patternsEN = compile([]string{
	`suicide`,
	`suicidal`,
	`kill myself`,
	`end my life`,
	`self[\s.-]?harm`,
	`hurt myself`,
	`want to die`,
})

func compile(raw []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(raw))
	for i, r := range raw {
		out[i] = regexp.MustCompile(r)
	}
	return out
}

// #endregion patterns

// #region messages

const crisisMessageES = `NOTA DE SEGURIDAD: Se ha detectado contenido relacionado con riesgo de autolesión o suicidio. Este es un sistema educativo y NO puede proporcionar ayuda clínica real.

Si tú o alguien que conoces necesita ayuda inmediata:
- Línea de atención a la crisis: 024 (España)
- Teléfono de la Esperanza: 717 003 717
- Emergencias: 112

Esta sesión se ha pausado por seguridad.`

const crisisMessageEN = `SAFETY NOTICE: Content related to self-harm or suicide risk has been detected. This is an educational system and CANNOT provide real clinical help.

If you or someone you know needs immediate help:
- Crisis line: 988 (US) / 116 123 (EU)
- Emergency services: 112 / 911

This session has been paused for safety.`

// #endregion messages

// #region gate

// Gate scans utterances for self-harm or crisis keywords in Spanish and
// English. Keyword matching is a deliberate, auditable, false-positive-
// tolerant policy for a hard interrupt; semantic classification is out of
// scope and must not be substituted here.
type Gate struct{}

// NewGate returns a Gate. It holds no per-session state and is safe to share.
func NewGate() *Gate {
	return &Gate{}
}

// Evaluate checks one utterance. It is total: any string input, including
// empty, yields a well-formed Verdict and never an error. With a language
// hint only that language's pattern set is scanned; without one, Spanish is
// scanned first, then English.
func (g *Gate) Evaluate(utterance, languageHint string) Verdict {
	folded := fold(utterance)

	check := func(lang string, patterns []*regexp.Regexp, msg string) (Verdict, bool) {
		for _, p := range patterns {
			if p.MatchString(folded) {
				return Verdict{RiskDetected: true, Language: lang, Message: msg}, true
			}
		}
		return Verdict{}, false
	}

	switch languageHint {
	case "es":
		if v, ok := check("es", patternsES, crisisMessageES); ok {
			return v
		}
	case "en":
		if v, ok := check("en", patternsEN, crisisMessageEN); ok {
			return v
		}
	default:
		if v, ok := check("es", patternsES, crisisMessageES); ok {
			return v
		}
		if v, ok := check("en", patternsEN, crisisMessageEN); ok {
			return v
		}
	}

	return Verdict{RiskDetected: false}
}

// #endregion gate

// #region fold

var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// fold lowercases and strips combining marks. Falls back to plain lowercase
// if the transform fails, so Evaluate stays total.
func fold(s string) string {
	out, _, err := transform.String(foldTransformer, strings.ToLower(s))
	if err != nil {
		return strings.ToLower(s)
	}
	return out
}

// #endregion fold
