package index

import "context"

// #region seed-corpus

// SeedCorpus returns a small built-in reference corpus of ICD-11 guideline
// excerpts for the given language ("es" or "en"). Real deployments load a
// prebuilt corpus; this seed keeps the controller usable out of the box.
func SeedCorpus(language string) []Segment {
	if language == "es" {
		return seedES
	}
	return seedEN
}

var seedEN = []Segment{
	{ID: "icd-6A70", Text: "Depressive Episode - ICD-11 6A70: A depressive episode is characterised by persistent low mood and loss of interest in activities, lasting most of the day, nearly every day, for at least two weeks.", Codes: []string{"6A70"}},
	{ID: "icd-6A71", Text: "Recurrent Depressive Disorder - ICD-11 6A71: A history of at least two depressive episodes separated by several months without significant mood disturbance.", Codes: []string{"6A71"}},
	{ID: "icd-6B00", Text: "Generalised Anxiety Disorder - ICD-11 6B00: Marked symptoms of anxiety with general apprehensiveness or excessive worry focused on multiple everyday events, together with muscle tension or restlessness, persisting for at least several months.", Codes: []string{"6B00"}},
	{ID: "icd-6B01", Text: "Panic Disorder - ICD-11 6B01: Recurrent unexpected panic attacks not restricted to particular stimuli, with persistent concern about their recurrence.", Codes: []string{"6B01"}},
	{ID: "icd-6B40", Text: "Post Traumatic Stress Disorder - ICD-11 6B40: Re-experiencing a traumatic event in the present, deliberate avoidance of reminders, and persistent perceptions of heightened current threat.", Codes: []string{"6B40"}},
	{ID: "icd-6B20", Text: "Obsessive-Compulsive Disorder - ICD-11 6B20: Persistent obsessions or compulsions, most commonly both, that are time consuming or result in significant distress.", Codes: []string{"6B20"}},
	{ID: "icd-7A00", Text: "Chronic Insomnia - ICD-11 7A00: Frequent and persistent difficulty initiating or maintaining sleep despite adequate opportunity, resulting in daytime impairment.", Codes: []string{"7A00"}},
	{ID: "icd-6C40", Text: "Disorders Due to Use of Alcohol - ICD-11 6C40: A pattern of alcohol use with impaired control, increasing priority over other activities, and continued use despite harm.", Codes: []string{"6C40"}},
}

var seedES = []Segment{
	{ID: "icd-6A70", Text: "Episodio Depresivo - CIE-11 6A70: Un episodio depresivo se caracteriza por tristeza persistente y pérdida de interés en las actividades, la mayor parte del día, casi todos los días, durante al menos dos semanas.", Codes: []string{"6A70"}},
	{ID: "icd-6A71", Text: "Trastorno Depresivo Recurrente - CIE-11 6A71: Antecedentes de al menos dos episodios depresivos separados por varios meses sin alteración significativa del estado de ánimo.", Codes: []string{"6A71"}},
	{ID: "icd-6B00", Text: "Trastorno de Ansiedad Generalizada - CIE-11 6B00: Síntomas marcados de ansiedad con aprensión general o preocupación excesiva centrada en múltiples eventos cotidianos, junto con tensión muscular o inquietud, durante al menos varios meses.", Codes: []string{"6B00"}},
	{ID: "icd-6B01", Text: "Trastorno de Pánico - CIE-11 6B01: Ataques de pánico recurrentes e inesperados no restringidos a estímulos particulares, con preocupación persistente por su repetición.", Codes: []string{"6B01"}},
	{ID: "icd-6B40", Text: "Trastorno de Estrés Postraumático - CIE-11 6B40: Reexperimentación de un evento traumático en el presente, evitación deliberada de recordatorios y percepción persistente de amenaza actual elevada.", Codes: []string{"6B40"}},
	{ID: "icd-6B20", Text: "Trastorno Obsesivo-Compulsivo - CIE-11 6B20: Obsesiones o compulsiones persistentes, generalmente ambas, que consumen tiempo o generan malestar significativo.", Codes: []string{"6B20"}},
	{ID: "icd-7A00", Text: "Insomnio Crónico - CIE-11 7A00: Dificultad frecuente y persistente para iniciar o mantener el sueño a pesar de una oportunidad adecuada, con deterioro diurno.", Codes: []string{"7A00"}},
	{ID: "icd-6C40", Text: "Trastornos por Consumo de Alcohol - CIE-11 6C40: Un patrón de consumo de alcohol con control deteriorado, prioridad creciente sobre otras actividades y uso continuado a pesar del daño.", Codes: []string{"6C40"}},
}

// #endregion seed-corpus

// #region embed-corpus

// Embedder turns text into a query or document vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// EmbedCorpus embeds every segment text with the given embedder, in corpus
// order, for feeding NewSemanticIndex.
func EmbedCorpus(ctx context.Context, embedder Embedder, segments []Segment) ([][]float32, error) {
	embeddings := make([][]float32, len(segments))
	for i, seg := range segments {
		vec, err := embedder.Embed(ctx, seg.Text)
		if err != nil {
			return nil, err
		}
		embeddings[i] = vec
	}
	return embeddings, nil
}

// #endregion embed-corpus
