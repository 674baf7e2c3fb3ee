package service

import (
	"strings"
	"testing"
)

func personaNames(ps []Persona) string {
	names := make([]string, 0, len(ps))
	for _, p := range ps {
		names = append(names, p.Name)
	}
	return strings.Join(names, ",")
}

func TestDispatcherMatch(t *testing.T) {
	d := NewDispatcher(DefaultPersonas())

	tests := []struct {
		name   string
		themes []string
		want   string
	}{
		{"no themes", nil, ""},
		{"general", []string{"general"}, ""},
		{"stress", []string{"stress"}, "wellness_advisor"},
		{"case and spaces", []string{"  Anxiety "}, "wellness_advisor"},
		{"support hits two routes", []string{"support"}, "trauma_support,attack_support"},
		{"table order", []string{"joke", "calm", "poem"}, "mindfulness_guide,poet,comedian"},
		{"multi word", []string{"pop culture", "fun fact"}, "trivia,pop_culture"},
		{"one invocation per route", []string{"stress", "anxiety", "pressure"}, "wellness_advisor"},
		{"substring does not match", []string{"stressful"}, ""},
		{"self-care", []string{"self-care"}, "self_care"},
		{"journal", []string{"journal"}, "journaling_coach"},
		{"story", []string{"storytelling"}, "storyteller"},
		{"cbt", []string{"thoughts"}, "cbt"},
		{"coping", []string{"cope"}, "coping_strategy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := personaNames(d.Match(tt.themes))
			if got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestNormalizeTags(t *testing.T) {
	got := normalizeTags([]string{" Work", "work", "", "  ", "STRESS"})
	if strings.Join(got, ",") != "work,stress" {
		t.Fatalf("unexpected tags %v", got)
	}
}

func TestPersonaRender(t *testing.T) {
	p := NewPersona("journal-check", "entry={{.entry}} emotions={{.emotions}} themes={{.themes}}")
	out, err := p.Render(PersonaInput{Entry: "hola", Emotions: []string{"sad"}})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if out != `entry=hola emotions=["sad"] themes=[]` {
		t.Fatalf("unexpected render %q", out)
	}
}

func TestDefaultPersonasRender(t *testing.T) {
	set := DefaultPersonas()
	all := []Persona{
		set.EmotionDetector, set.ThemeExtractor, set.Therapy, set.Casual, set.Wellness,
		set.Mindfulness, set.Coping, set.CBT, set.SelfCare, set.TraumaSupport, set.Storyteller,
		set.Poet, set.JournalCoach, set.Comedian, set.Trivia, set.PopCulture, set.AttackSupport,
	}
	for _, p := range all {
		out, err := p.Render(PersonaInput{Entry: "I can't sleep", Emotions: []string{"tired"}, Themes: []string{"health"}})
		if err != nil {
			t.Fatalf("%s: expected no error, got %v", p.Name, err)
		}
		if !strings.Contains(out, "I can't sleep") {
			t.Fatalf("%s: entry missing from prompt", p.Name)
		}
	}
}
