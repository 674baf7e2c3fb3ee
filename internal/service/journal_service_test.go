package service

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"companion-llm/internal/domain"
	"companion-llm/internal/llm"
)

type fakeJournalArchive struct {
	saved []domain.JournalAnalysisRecord
	err   error
}

func (f *fakeJournalArchive) Save(_ context.Context, rec domain.JournalAnalysisRecord) error {
	f.saved = append(f.saved, rec)
	return f.err
}

func TestFallbackJournalAnalysis(t *testing.T) {
	got := FallbackJournalAnalysis("I feel happy and grateful but a little worried")

	if got.Summary != "This is a 9-word journal entry that expresses the author's thoughts and feelings." {
		t.Fatalf("unexpected summary %q", got.Summary)
	}
	if math.Abs(float64(got.SentimentScore)-1.0/3.0) > 1e-9 {
		t.Fatalf("expected sentiment 1/3, got %v", got.SentimentScore)
	}
	if got.MindfulnessScore != 65 {
		t.Fatalf("expected mindfulness 65, got %v", got.MindfulnessScore)
	}
	if len(got.Emotions) != 3 || len(got.Insights) != 3 || len(got.Recommendations) != 3 {
		t.Fatalf("unexpected list sizes: %+v", got)
	}
}

func TestFallbackJournalAnalysis_NeutralWithoutKeywords(t *testing.T) {
	got := FallbackJournalAnalysis("Went to the market today.")
	if got.SentimentScore != 0 {
		t.Fatalf("expected neutral sentiment, got %v", got.SentimentScore)
	}
}

func TestJournalServiceAnalyze_ModelFailureUsesHeuristic(t *testing.T) {
	archive := &fakeJournalArchive{}
	svc := NewJournalService(nil, &llm.MockClient{Err: llm.ErrModelUnavailable}, archive)

	res, err := svc.Analyze(context.Background(), JournalAnalysisRequest{Content: "so sad today", UserID: "u1"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !res.IsFallback() || res.Reason != ReasonModelError {
		t.Fatalf("expected model_error fallback, got %+v", res)
	}
	if res.Value.SentimentScore != -1 {
		t.Fatalf("expected sentiment -1, got %v", res.Value.SentimentScore)
	}
	if len(archive.saved) != 1 || archive.saved[0].Source != domain.SourceFallback || archive.saved[0].UserID != "u1" {
		t.Fatalf("unexpected archive state %+v", archive.saved)
	}
}

func TestJournalServiceAnalyze_MergesPartialOutput(t *testing.T) {
	client := &llm.MockClient{Response: "Here you go:\n{\"summary\": \"A calm day\", \"sentiment_score\": 3, \"emotions\": [\"calm\"]}"}
	svc := NewJournalService(nil, client, nil)

	res, err := svc.Analyze(context.Background(), JournalAnalysisRequest{Content: "I walked by the sea"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if res.IsFallback() {
		t.Fatalf("expected model source, got reason %q", res.Reason)
	}
	if res.Value.Summary != "A calm day" {
		t.Fatalf("unexpected summary %q", res.Value.Summary)
	}
	if res.Value.SentimentScore != 1 {
		t.Fatalf("expected clamped sentiment 1, got %v", res.Value.SentimentScore)
	}
	if len(res.Value.Emotions) != 1 || res.Value.Emotions[0] != "calm" {
		t.Fatalf("unexpected emotions %v", res.Value.Emotions)
	}
	if len(res.Value.Recommendations) == 0 || res.Value.Affirmation == "" || res.Value.MindfulnessScore != 65 {
		t.Fatalf("expected missing fields from heuristic, got %+v", res.Value)
	}
}

func TestJournalServiceAnalyze_AcceptsStringScores(t *testing.T) {
	client := &llm.MockClient{Response: `{"summary": "Quiet evening", "sentiment_score": "0.4", "mindfulness_score": "80"}`}
	svc := NewJournalService(nil, client, nil)

	res, err := svc.Analyze(context.Background(), JournalAnalysisRequest{Content: "I read a book"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if res.IsFallback() {
		t.Fatalf("expected model source, got reason %q", res.Reason)
	}
	if res.Value.Summary != "Quiet evening" || res.Value.SentimentScore != 0.4 || res.Value.MindfulnessScore != 80 {
		t.Fatalf("unexpected analysis %+v", res.Value)
	}
}

func TestJournalPrompt_EmbedsRawEntry(t *testing.T) {
	prompt := journalPrompt("Line one\nShe said \"enough\"")
	if !strings.Contains(prompt, "Entry:\n\"Line one\nShe said \"enough\"\"\n") {
		t.Fatalf("expected raw entry text in prompt, got %q", prompt)
	}
	if strings.Contains(prompt, `Line one\nShe said \"enough\"`) {
		t.Fatalf("expected entry not to be escaped, got %q", prompt)
	}
}

func TestJournalServiceAnalyze_EmptyObjectFallsBack(t *testing.T) {
	svc := NewJournalService(nil, &llm.MockClient{Response: "{}"}, nil)

	res, err := svc.Analyze(context.Background(), JournalAnalysisRequest{Content: "hola"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if res.Reason != ReasonMissingKeys {
		t.Fatalf("expected missing_keys, got %q", res.Reason)
	}
}

func TestJournalServiceAnalyze_ArchiveErrorIgnored(t *testing.T) {
	archive := &fakeJournalArchive{err: errors.New("db down")}
	svc := NewJournalService(nil, &llm.MockClient{Response: "nope"}, archive)

	if _, err := svc.Analyze(context.Background(), JournalAnalysisRequest{Content: "hola"}); err != nil {
		t.Fatalf("expected archive error to be swallowed, got %v", err)
	}
}

func TestJournalServiceAnalyze_EmptyContent(t *testing.T) {
	client := &llm.MockClient{Response: "{}"}
	svc := NewJournalService(nil, client, nil)

	if _, err := svc.Analyze(context.Background(), JournalAnalysisRequest{Content: " "}); !errors.Is(err, ErrEmptyJournalContent) {
		t.Fatalf("expected ErrEmptyJournalContent, got %v", err)
	}
	if client.Calls() != 0 {
		t.Fatalf("expected no model calls, got %d", client.Calls())
	}
}
