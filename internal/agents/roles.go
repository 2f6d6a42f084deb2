package agents

import (
	"context"
	"fmt"
	"strings"

	"github.com/clinsim/interview-controller/internal/llm"
)

// #region dialogue

// DialogueTurn is one utterance of the interview as the agents see it.
// The session layer converts its richer transcript records into this shape
// before handing them to a role.
type DialogueTurn struct {
	Role    Role
	Content string
}

// #endregion dialogue

// #region fallbacks

// Deterministic texts returned when generation fails after all retries.
// They keep the interview moving instead of aborting the session.
var fallbacks = map[Role]map[string]string{
	RoleTherapist: {
		"es": "¿Podrías contarme un poco más sobre cómo te has sentido últimamente?",
		"en": "Could you tell me a bit more about how you have been feeling lately?",
	},
	RoleClient: {
		"es": "No sé muy bien cómo explicarlo, la verdad.",
		"en": "I'm not really sure how to explain it, honestly.",
	},
	RoleDiagnostician: {
		"es": "[]",
		"en": "[]",
	},
	RoleAuditor: {
		"es": "No fue posible generar un comentario evidencial.",
		"en": "Evidential commentary could not be generated.",
	},
}

func fallbackFor(role Role, language string) string {
	byLang := fallbacks[role]
	if s, ok := byLang[language]; ok {
		return s
	}
	return byLang["en"]
}

// #endregion fallbacks

// #region therapist

// Therapist generates interview questions, one clinical domain at a time.
type Therapist struct {
	gen Generator
}

func NewTherapist(gen Generator) *Therapist {
	return &Therapist{gen: gen}
}

// Ask produces the next open-ended question targeting domain. The transcript
// is replayed with therapist turns as assistant messages, then a per-turn
// instruction names the target domain and language.
func (t *Therapist) Ask(ctx context.Context, transcript []DialogueTurn, domain, language string) (string, bool) {
	messages := make([]llm.Message, 0, len(transcript)+1)
	for _, turn := range transcript {
		role := "user"
		if turn.Role == RoleTherapist {
			role = "assistant"
		}
		messages = append(messages, llm.Message{Role: role, Content: turn.Content})
	}

	langName := "English"
	if language == "es" {
		langName = "Español"
	}
	instruction := fmt.Sprintf(
		"Now, gently explore the following domain: %s. Ask ONE open-ended question. Reply in %s.",
		domain, langName)
	messages = append(messages, llm.Message{Role: "user", Content: instruction})

	return generateWithFallback(ctx, t.gen, RoleTherapist, language, messages, fallbackFor(RoleTherapist, language))
}

// #endregion therapist

// #region client

// Client simulates the synthetic patient described by a Profile.
type Client struct {
	gen Generator
}

func NewClient(gen Generator) *Client {
	return &Client{gen: gen}
}

// Respond answers the therapist's last question in character. The profile is
// injected as an opening exchange so the model grounds its response in the
// patient's demographics, complaints, and history.
func (c *Client) Respond(ctx context.Context, transcript []DialogueTurn, profile Profile, language string) (string, bool) {
	messages := make([]llm.Message, 0, len(transcript)+3)

	if profile.Name != "" {
		messages = append(messages, llm.Message{Role: "user", Content: formatProfile(profile, language)})
		ack := "Understood. I will embody this character throughout the interview."
		if language == "es" {
			ack = "Entendido. Voy a encarnar a este personaje durante la entrevista."
		}
		messages = append(messages, llm.Message{Role: "assistant", Content: ack})
	}

	for _, turn := range transcript {
		role := "user"
		if turn.Role == RoleClient {
			role = "assistant"
		}
		messages = append(messages, llm.Message{Role: role, Content: turn.Content})
	}

	instruction := "Respond to the therapist's last question staying in character. " +
		"Reply in English naturally and briefly (1-3 sentences). " +
		"Avoid clinical jargon when describing your symptoms."
	if language == "es" {
		instruction = "Responde a la última pregunta del terapeuta manteniéndote en tu personaje. " +
			"Responde en español de forma natural y breve (1-3 oraciones). " +
			"No uses jerga clínica para describir tus síntomas."
	}
	messages = append(messages, llm.Message{Role: "user", Content: instruction})

	return generateWithFallback(ctx, c.gen, RoleClient, language, messages, fallbackFor(RoleClient, language))
}

func formatProfile(profile Profile, language string) string {
	var parts []string
	gender := ""
	if profile.Gender != "" {
		gender = ", " + profile.Gender
	}
	if language == "es" {
		complaints := "no especificadas"
		if len(profile.Complaints) > 0 {
			complaints = strings.Join(profile.Complaints, ", ")
		}
		parts = append(parts,
			fmt.Sprintf("Eres %s, %d años%s.", profile.Name, profile.Age, gender),
			fmt.Sprintf("Motivo de consulta: %s.", complaints))
		if profile.History != "" {
			parts = append(parts, "Historial: "+profile.History)
		}
		parts = append(parts,
			"Durante la entrevista, responde de forma natural y espontánea. "+
				"No menciones tu perfil directamente; deja que la información emerja gradualmente.")
	} else {
		complaints := "unspecified"
		if len(profile.Complaints) > 0 {
			complaints = strings.Join(profile.Complaints, ", ")
		}
		parts = append(parts,
			fmt.Sprintf("You are %s, %d years old%s.", profile.Name, profile.Age, gender),
			fmt.Sprintf("Presenting complaints: %s.", complaints))
		if profile.History != "" {
			parts = append(parts, "Background: "+profile.History)
		}
		parts = append(parts,
			"During the interview, respond naturally and spontaneously. "+
				"Do not mention your profile directly; let the information emerge gradually.")
	}
	return strings.Join(parts, " ")
}

// #endregion client

// #region diagnostician

// Diagnostician formulates ICD-11 hypotheses from the transcript and the
// retrieved guideline context. It returns the raw model output; parsing and
// repair live in the diagnosis package.
type Diagnostician struct {
	gen Generator
}

func NewDiagnostician(gen Generator) *Diagnostician {
	return &Diagnostician{gen: gen}
}

func (d *Diagnostician) Draft(ctx context.Context, transcript []DialogueTurn, chunks []string, language string) (string, bool) {
	contextStr := "No context available."
	if len(chunks) > 0 {
		contextStr = strings.Join(chunks, "\n---\n")
	}

	var sb strings.Builder
	for _, turn := range transcript {
		sb.WriteString(speakerLabel(turn.Role, language))
		sb.WriteString(": ")
		sb.WriteString(turn.Content)
		sb.WriteString("\n")
	}

	langName := "English"
	if language == "es" {
		langName = "Español"
	}
	prompt := fmt.Sprintf(
		"TRANSCRIPT:\n%s\nICD-11 CONTEXT:\n%s\n\n"+
			"Analyse the transcript and generate diagnostic hypotheses grounded ONLY in the "+
			"provided ICD-11 context. Reply in %s. "+
			"Output ONLY a valid JSON array with no trailing commas. Do NOT wrap it in markdown.",
		sb.String(), contextStr, langName)

	messages := []llm.Message{{Role: "user", Content: prompt}}
	return generateWithFallback(ctx, d.gen, RoleDiagnostician, language, messages, fallbackFor(RoleDiagnostician, language))
}

func speakerLabel(role Role, language string) string {
	switch role {
	case RoleTherapist:
		if language == "es" {
			return "Terapeuta"
		}
		return "Therapist"
	default:
		if language == "es" {
			return "Cliente"
		}
		return "Client"
	}
}

// #endregion diagnostician

// #region auditor

// Auditor asks the model for a short free-text commentary on the evidential
// quality of the hypotheses. The mechanical traceability check itself is in
// the diagnosis package and never involves the model.
type Auditor struct {
	gen Generator
}

func NewAuditor(gen Generator) *Auditor {
	return &Auditor{gen: gen}
}

func (a *Auditor) Commentary(ctx context.Context, hypothesisLabels []string, unverified int, language string) (string, bool) {
	summary := strings.Join(hypothesisLabels, "; ")
	var prompt string
	if language == "es" {
		prompt = fmt.Sprintf(
			"Revisa la calidad evidencial de las siguientes hipótesis diagnósticas: %s. "+
				"Se encontraron %d afirmaciones sin respaldo en la transcripción o contexto recuperado. "+
				"Proporciona un comentario conciso (máximo 3 oraciones) sobre la solidez del respaldo evidencial.",
			summary, unverified)
	} else {
		prompt = fmt.Sprintf(
			"Review the evidential quality of the following diagnostic hypotheses: %s. "+
				"There are %d claims not grounded in the transcript or retrieved context. "+
				"Provide a concise commentary (max 3 sentences) on the strength of evidential support.",
			summary, unverified)
	}

	messages := []llm.Message{{Role: "user", Content: prompt}}
	return generateWithFallback(ctx, a.gen, RoleAuditor, language, messages, fallbackFor(RoleAuditor, language))
}

// #endregion auditor
