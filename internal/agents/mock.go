package agents

import "hash/fnv"

// Domain-aware banks used when no model is configured. Selection is a hash
// of (seed, turn, domain) so a resumed session replays the same picks.

// #region banks

var mockTherapistES = map[string][]string{
	"mood": {
		"[Mock] ¿Cómo describirías tu estado de ánimo en las últimas semanas?",
		"[Mock] ¿Has notado cambios en cómo te sientes emocionalmente?",
		"[Mock] ¿Hay momentos del día en que te sientes más decaído o sin energía?",
	},
	"anxiety": {
		"[Mock] ¿Experimentas preocupaciones que te resultan difíciles de controlar?",
		"[Mock] ¿Con qué frecuencia sientes tensión o nerviosismo sin una causa clara?",
		"[Mock] ¿Hay situaciones concretas que te generen mucha angustia?",
	},
	"sleep": {
		"[Mock] ¿Cómo estás durmiendo últimamente? ¿Tienes dificultades para conciliar el sueño?",
		"[Mock] ¿Te despiertas durante la noche o muy temprano sin poder volver a dormir?",
		"[Mock] ¿Sientes que el sueño te resulta reparador?",
	},
	"eating": {
		"[Mock] ¿Has notado cambios en tu apetito o en tus hábitos alimenticios?",
		"[Mock] ¿Has perdido o ganado peso en los últimos meses?",
		"[Mock] ¿Tu relación con la comida ha cambiado de alguna manera?",
	},
	"substances": {
		"[Mock] ¿Consumes alcohol u otras sustancias? ¿Con qué frecuencia?",
		"[Mock] ¿Has recurrido a alguna sustancia para manejar el estrés o el malestar?",
	},
	"psychosis": {
		"[Mock] ¿Has tenido experiencias inusuales, como escuchar o ver cosas que otros no perciben?",
		"[Mock] ¿Has tenido pensamientos que te parezcan extraños o difíciles de explicar?",
	},
	"trauma": {
		"[Mock] ¿Has vivido alguna experiencia que te haya resultado especialmente difícil o traumática?",
		"[Mock] ¿Hay recuerdos que aparecen de forma intrusiva y te generan malestar?",
	},
	"ocd": {
		"[Mock] ¿Tienes pensamientos repetitivos que te resultan difíciles de controlar?",
		"[Mock] ¿Realizas algún comportamiento de forma repetida para aliviar la ansiedad?",
	},
	"cognition": {
		"[Mock] ¿Has notado cambios en tu memoria, concentración o capacidad para tomar decisiones?",
		"[Mock] ¿Te cuesta más de lo habitual enfocarte en una tarea?",
	},
	"social_functioning": {
		"[Mock] ¿Cómo están tus relaciones con familia, amigos o compañeros?",
		"[Mock] ¿Has reducido tus actividades sociales o te has aislado últimamente?",
	},
	"suicidal_ideation": {
		"[Mock] ¿Has tenido pensamientos de hacerte daño o de que estarías mejor muerto?",
		"[Mock] En los momentos más difíciles, ¿has pensado en quitarte la vida?",
	},
}

var mockTherapistEN = map[string][]string{
	"mood": {
		"[Mock] How would you describe your mood over the past few weeks?",
		"[Mock] Have you noticed changes in how you feel emotionally day to day?",
		"[Mock] Are there times when you feel particularly low or lack energy?",
	},
	"anxiety": {
		"[Mock] Do you experience worries that are difficult to control?",
		"[Mock] How often do you feel tense or nervous without a clear reason?",
		"[Mock] Are there specific situations that cause you a lot of distress?",
	},
	"sleep": {
		"[Mock] How has your sleep been lately? Do you have trouble falling asleep?",
		"[Mock] Do you wake up during the night or very early and can't go back to sleep?",
		"[Mock] Do you feel rested after a night's sleep?",
	},
	"eating": {
		"[Mock] Have you noticed any changes in your appetite or eating habits?",
		"[Mock] Have you lost or gained weight recently?",
		"[Mock] Has your relationship with food changed in any way?",
	},
	"substances": {
		"[Mock] Do you use alcohol or other substances? How often?",
		"[Mock] Have you used any substance to cope with stress or discomfort?",
	},
	"psychosis": {
		"[Mock] Have you had any unusual experiences, like hearing or seeing things others don't?",
		"[Mock] Have you had thoughts that feel strange or hard to explain?",
	},
	"trauma": {
		"[Mock] Have you been through any particularly difficult or traumatic experiences?",
		"[Mock] Are there memories that intrude on your thoughts and cause distress?",
	},
	"ocd": {
		"[Mock] Do you have repetitive thoughts that are hard to control?",
		"[Mock] Do you perform any behaviours repeatedly to relieve anxiety?",
	},
	"cognition": {
		"[Mock] Have you noticed changes in your memory, concentration, or ability to make decisions?",
		"[Mock] Is it harder than usual to focus on a task?",
	},
	"social_functioning": {
		"[Mock] How are your relationships with family, friends, or colleagues?",
		"[Mock] Have you been withdrawing from social activities lately?",
	},
	"suicidal_ideation": {
		"[Mock] Have you had thoughts of hurting yourself or that you'd be better off dead?",
		"[Mock] In your hardest moments, have you thought about ending your life?",
	},
}

var mockClientES = map[string][]string{
	"mood": {
		"La verdad es que me he sentido muy apagado, sin ganas de hacer nada.",
		"Hay días en que me levanto y todo parece gris. Antes disfrutaba más las cosas.",
		"Me siento triste sin razón concreta, y eso me preocupa bastante.",
	},
	"anxiety": {
		"Sí, me preocupo muchísimo por el trabajo y por mi familia, aunque no haya motivo real.",
		"Siento como un nudo en el estómago casi todo el tiempo. Es agotador.",
		"Me pongo muy nervioso en situaciones cotidianas que antes no me afectaban.",
	},
	"sleep": {
		"Duermo fatal. Me cuesta horas quedarme dormido y luego me despierto a las cuatro de la mañana.",
		"No descanso bien. Me desvelo pensando en mil cosas y por la mañana estoy agotado.",
		"A veces duermo demasiado, pero aun así me siento sin energía durante el día.",
	},
	"eating": {
		"He perdido el apetito casi por completo. A veces se me olvida comer.",
		"Como más de lo habitual cuando estoy estresado, como para calmarme.",
		"Mi apetito está bien, aunque noto que he perdido un poco de peso sin proponérmelo.",
	},
	"substances": {
		"Bebo un par de cervezas por las noches para poder relajarme.",
		"Fumo más cuando estoy estresado, y a veces tomo algún ansiolítico que me sobró.",
		"No consumo nada especial, solo cafeína en exceso.",
	},
	"psychosis": {
		"No, nada de eso. Solo que mi mente no para.",
		"A veces me parece escuchar que me llaman y cuando miro no hay nadie, pero creo que es el cansancio.",
		"Tengo pensamientos muy acelerados pero nada inusual como alucinaciones.",
	},
	"trauma": {
		"Sí, pasé por una situación muy difícil hace unos años que no he superado del todo.",
		"Tengo recuerdos de una época muy mala que aparecen de repente y me ponen mal.",
		"No creo que haya tenido nada traumático, simplemente mucho estrés acumulado.",
	},
	"ocd": {
		"Reviso mucho las cosas: si cerré el gas, si apagué la luz. Sé que es exagerado.",
		"Tengo pensamientos que se repiten solos y que me cuestan mucho quitarme de la cabeza.",
		"No tengo rituales especiales, pero sí soy muy perfeccionista y eso me genera mucha tensión.",
	},
	"cognition": {
		"Me cuesta mucho concentrarme. Leo un párrafo y tengo que volver a empezar.",
		"Se me olvidan cosas que antes recordaba sin problema. Me preocupa.",
		"Mi mente va muy lenta, como si tuviera niebla. Tomo decisiones muy difícil.",
	},
	"social_functioning": {
		"Me he apartado bastante. Ya no quedo con amigos como antes.",
		"En el trabajo me cuesta relacionarme. Prefiero encerrarme en mis tareas.",
		"Mi pareja dice que estoy más distante, y tiene razón.",
	},
	"suicidal_ideation": {
		"A veces pienso que sería mejor no estar aquí, aunque no tengo ningún plan.",
		"Hay momentos muy oscuros, pero no llegaría a hacerme daño.",
		"No, nunca he pensado en eso. Solo quiero que este malestar se acabe.",
	},
}

var mockClientEN = map[string][]string{
	"mood": {
		"Honestly, I've been feeling very down. I can't find motivation for anything.",
		"Most days feel grey. I used to enjoy things more than I do now.",
		"I feel sad without a clear reason, which worries me.",
	},
	"anxiety": {
		"Yes, I worry a lot about work and family even when there's no real reason.",
		"I have a constant knot in my stomach. It's exhausting.",
		"I get very anxious in everyday situations that didn't used to bother me.",
	},
	"sleep": {
		"I sleep terribly. It takes hours to fall asleep and then I wake up at four in the morning.",
		"I don't rest well. I lie awake thinking and I'm exhausted in the morning.",
		"Sometimes I sleep too much but still feel drained during the day.",
	},
	"eating": {
		"I've almost completely lost my appetite. I sometimes forget to eat.",
		"I eat more than usual when I'm stressed, as a way to calm down.",
		"My appetite is okay, though I've lost a bit of weight without trying.",
	},
	"substances": {
		"I have a couple of beers in the evenings to wind down.",
		"I smoke more when I'm stressed, and sometimes I take a leftover anxiolytic.",
		"Nothing special, just too much caffeine.",
	},
	"psychosis": {
		"No, nothing like that. My mind just doesn't stop.",
		"Sometimes I think I hear someone calling my name and when I look there's no one, probably just tiredness.",
		"I have racing thoughts but nothing unusual like hallucinations.",
	},
	"trauma": {
		"Yes, I went through something really difficult a few years ago that I haven't fully moved past.",
		"I have memories of a very hard period that suddenly come back and affect me.",
		"I don't think I've had anything traumatic, just a lot of accumulated stress.",
	},
	"ocd": {
		"I check things a lot, whether I turned off the gas, locked the door. I know it's excessive.",
		"I have thoughts that repeat on their own and are really hard to shake.",
		"No special rituals, but I'm very perfectionistic and that creates a lot of tension.",
	},
	"cognition": {
		"It's hard to concentrate. I read a paragraph and have to start over.",
		"I forget things I used to remember easily. It worries me.",
		"My mind feels foggy and slow. Making decisions is very hard.",
	},
	"social_functioning": {
		"I've withdrawn a lot. I don't see friends the way I used to.",
		"At work I struggle to engage with others. I prefer to just focus on my tasks.",
		"My partner says I've been more distant, and they're right.",
	},
	"suicidal_ideation": {
		"Sometimes I think it'd be better not to be here, though I have no plan.",
		"There are very dark moments, but I wouldn't actually hurt myself.",
		"No, I've never thought about that. I just want this pain to stop.",
	},
}

// #endregion banks

// #region selection

// mockPick hashes (seed, turn, domain) into an index so that rerunning the
// same turn after a resume yields the same utterance.
func mockPick(seed int64, turn int, domain string, n int) int {
	h := fnv.New32a()
	var buf [16]byte
	for i := 0; i < 8; i++ {
		buf[i] = byte(seed >> (8 * i))
	}
	for i := 0; i < 8; i++ {
		buf[8+i] = byte(turn >> (8 * i))
	}
	h.Write(buf[:])
	h.Write([]byte(domain))
	return int(h.Sum32()) % n
}

// MockTherapistQuestion returns a deterministic domain-appropriate question.
func MockTherapistQuestion(domain, language string, seed int64, turn int) string {
	bank := mockTherapistEN
	if language == "es" {
		bank = mockTherapistES
	}
	options, ok := bank[domain]
	if !ok {
		if language == "es" {
			return "[Mock] ¿Puedes hablarme sobre " + domain + "?"
		}
		return "[Mock] Can you tell me about " + domain + "?"
	}
	return options[mockPick(seed, turn, domain, len(options))]
}

// MockClientResponse returns a deterministic domain-appropriate response.
func MockClientResponse(domain, language string, seed int64, turn int) string {
	bank := mockClientEN
	if language == "es" {
		bank = mockClientES
	}
	options, ok := bank[domain]
	if !ok {
		if language == "es" {
			return "[Mock] No sé bien cómo explicarlo."
		}
		return "[Mock] I'm not sure how to explain it."
	}
	return options[mockPick(seed, turn, domain, len(options))]
}

// #endregion selection
