package domain

import (
	"encoding/json"
	"testing"
)

func TestLastTurns(t *testing.T) {
	history := []ChatTurn{
		{Role: RoleUser, Content: "1"},
		{Role: RoleAssistant, Content: "2"},
		{Role: RoleUser, Content: "3"},
	}
	if got := LastTurns(history, 2); len(got) != 2 || got[0].Content != "2" {
		t.Fatalf("expected last 2 turns, got %+v", got)
	}
	if got := LastTurns(history, 10); len(got) != 3 {
		t.Fatalf("expected full history, got %d", len(got))
	}
	if got := LastTurns(history, 0); len(got) != 3 {
		t.Fatalf("expected full history for n=0, got %d", len(got))
	}
}

func TestChatTurnSpeaker(t *testing.T) {
	if (ChatTurn{Role: "user"}).Speaker() != "User" {
		t.Fatalf("expected lowercase role to be treated as user")
	}
	if (ChatTurn{Role: RoleAssistant}).Speaker() != "Assistant" {
		t.Fatalf("expected assistant speaker")
	}
}

func TestJournalEntryParsedAnalysis(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		ok       bool
		emotions int
	}{
		{"object", `{"emotions":["calm","happy"],"themes":["work"]}`, true, 2},
		{"string", `"{\"emotions\":[\"sad\"],\"themes\":[]}"`, true, 1},
		{"empty", ``, false, 0},
		{"null", `null`, false, 0},
		{"garbage string", `"not json"`, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := JournalEntry{Content: "x", Analysis: json.RawMessage(tt.raw)}
			got, ok := entry.ParsedAnalysis()
			if ok != tt.ok {
				t.Fatalf("expected ok=%v, got %v", tt.ok, ok)
			}
			if len(got.Emotions) != tt.emotions {
				t.Fatalf("expected %d emotions, got %v", tt.emotions, got.Emotions)
			}
		})
	}
}

func TestFlexNumberUnmarshal(t *testing.T) {
	var p BreathingPattern
	if err := json.Unmarshal([]byte(`{"inhale":4,"hold1":"7","exhale":"8 seconds","hold2":null}`), &p); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if p.Inhale != 4 || p.Hold1 != 7 || p.Exhale != 8 || p.Hold2 != 0 {
		t.Fatalf("unexpected pattern %+v", p)
	}
	if err := json.Unmarshal([]byte(`{"inhale":"slow"}`), &p); err == nil {
		t.Fatalf("expected error for non numeric value")
	}
}

func TestFlexNumberScores(t *testing.T) {
	var r ChatReport
	if err := json.Unmarshal([]byte(`{"mindfulness_score":"80%","intensity":"6.5"}`), &r); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if r.MindfulnessScore != 80 || r.Intensity != 6.5 {
		t.Fatalf("unexpected scores %+v", r)
	}

	out, err := json.Marshal(SelfAwareness{Score: 42, Comment: "ok"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `{"score":42,"comment":"ok"}` {
		t.Fatalf("expected numeric score, got %s", out)
	}
}

func TestGenerated(t *testing.T) {
	g := FromFallback("x", "model_error")
	if !g.IsFallback() || g.Reason != "model_error" {
		t.Fatalf("unexpected generated %+v", g)
	}
	if FromModel(1).IsFallback() {
		t.Fatalf("expected model source")
	}
}

func TestFlexStringUnmarshal(t *testing.T) {
	var ex BreathingExercise
	if err := json.Unmarshal([]byte(`{"duration":5}`), &ex); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if ex.Duration != "5" {
		t.Fatalf("expected duration 5, got %q", ex.Duration)
	}
	if err := json.Unmarshal([]byte(`{"duration":"7 minutes"}`), &ex); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if ex.Duration != "7 minutes" {
		t.Fatalf("unexpected duration %q", ex.Duration)
	}
}
