package service

import "strings"

// personaRoute asocia un conjunto de temas con una persona secundaria.
type personaRoute struct {
	keywords map[string]struct{}
	persona  Persona
}

func newRoute(p Persona, keywords ...string) personaRoute {
	set := make(map[string]struct{}, len(keywords))
	for _, k := range keywords {
		set[k] = struct{}{}
	}
	return personaRoute{keywords: set, persona: p}
}

func (r personaRoute) matches(themes []string) bool {
	for _, t := range themes {
		if _, ok := r.keywords[t]; ok {
			return true
		}
	}
	return false
}

// Dispatcher decide que personas secundarias se invocan segun los temas detectados.
// Agregar una persona es agregar una fila a la tabla.
type Dispatcher struct {
	routes []personaRoute
}

func NewDispatcher(set PersonaSet) *Dispatcher {
	return &Dispatcher{routes: []personaRoute{
		newRoute(set.Wellness, "stress", "anxiety", "overwhelm", "pressure"),
		newRoute(set.Mindfulness, "calm", "peace", "mindfulness", "meditation"),
		newRoute(set.Coping, "cope", "manage", "handle", "deal"),
		newRoute(set.CBT, "thoughts", "thinking", "cognitive", "mind"),
		newRoute(set.SelfCare, "self-care", "relax", "well-being"),
		newRoute(set.TraumaSupport, "trauma", "support", "grounding"),
		newRoute(set.Storyteller, "story", "storytelling", "storyteller"),
		newRoute(set.Poet, "poetry", "poem", "poetic"),
		newRoute(set.JournalCoach, "journal", "journalism", "journalist"),
		newRoute(set.Comedian, "humor", "funny", "joke"),
		newRoute(set.Trivia, "trivia", "fun fact", "fun trivia"),
		newRoute(set.PopCulture, "pop culture", "popular culture", "popular"),
		newRoute(set.AttackSupport, "attack", "support", "heal"),
	}}
}

// Match devuelve, en orden de tabla, cada persona cuyo conjunto contiene algun tema.
// Los temas se comparan por pertenencia exacta despues de normalizar.
func (d *Dispatcher) Match(themes []string) []Persona {
	normalized := normalizeTags(themes)
	var out []Persona
	for _, r := range d.routes {
		if r.matches(normalized) {
			out = append(out, r.persona)
		}
	}
	return out
}

// normalizeTags pasa a minusculas, recorta y descarta vacios y duplicados.
func normalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
