package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"companion-llm/internal/domain"
	"companion-llm/internal/llm"
)

func TestCombinedAnalysis_EmptyInputReturnsFixedPayload(t *testing.T) {
	client := &llm.MockClient{Response: "{}"}
	svc := NewCombinedAnalysisService(nil, client)

	res, err := svc.Generate(context.Background(), CombinedAnalysisRequest{UserID: "u1"})
	require.NoError(t, err)

	assert.Equal(t, EmptyDataReport(), res.Value)
	assert.Equal(t, domain.SourceFallback, res.Source)
	assert.Equal(t, ReasonEmptyInput, res.Reason)
	assert.Equal(t, 0, client.Calls())

	body, err := json.Marshal(res.Value)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"greeting": "Welcome to your insights dashboard.",
		"personality_analysis": "analytical",
		"current_emotion": "neutral",
		"progress": "You're just getting started. Add more data by chatting with your AI companion or writing journal entries.",
		"self_awareness": {"score": 50, "comment": "As you share more, we'll provide deeper insights about your emotional patterns."},
		"suggestion": "Try using the AI companion chat or journal features regularly to build a more accurate analysis of your emotional well-being.",
		"affirmation": "Every step I take to understand myself better is valuable progress."
	}`, string(body))
}

func TestCombinedAnalysis_ModelFailureUsesCounts(t *testing.T) {
	svc := NewCombinedAnalysisService(nil, &llm.MockClient{Err: llm.ErrModelTimeout})

	res, err := svc.Generate(context.Background(), CombinedAnalysisRequest{
		ChatHistory: []domain.ChatTurn{
			{Role: "USER", Content: "I am so stressed and worried about work"},
			{Role: "ASSISTANT", Content: "I'm sorry you feel sad and tired"},
		},
	})
	require.NoError(t, err)

	assert.True(t, res.IsFallback())
	assert.Equal(t, ReasonModelError, res.Reason)
	assert.Equal(t, "anxious", res.Value.CurrentEmotion)
	assert.Equal(t, "thoughtful", res.Value.PersonalityAnalysis)
	assert.Equal(t, suggestionByTheme["work"], res.Value.Suggestion)
	assert.Equal(t, affirmationByEmotion["neutral"], res.Value.Affirmation)
	assert.Equal(t, domain.FlexNumber(15), res.Value.SelfAwareness.Score)
	assert.Contains(t, res.Value.Greeting, "focus on work")
}

func TestCombinedAnalysis_PrefersJournalAnalysis(t *testing.T) {
	client := &llm.MockClient{Response: "not json"}
	svc := NewCombinedAnalysisService(nil, client)

	res, err := svc.Generate(context.Background(), CombinedAnalysisRequest{
		JournalData: []domain.JournalEntry{
			{Content: "A nice day", Mood: "good", Analysis: json.RawMessage(`"{\"emotions\":[\"joy\",\"joy\"],\"themes\":[\"family\"]}"`)},
			{Content: "Dinner with family", Mood: "good", Analysis: json.RawMessage(`{"emotions":["joy"],"themes":["family"]}`)},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, ReasonNoJSON, res.Reason)
	assert.Equal(t, "joy", res.Value.CurrentEmotion)
	assert.Equal(t, "optimistic", res.Value.PersonalityAnalysis)
	assert.Equal(t, suggestionByTheme["family"], res.Value.Suggestion)

	prompts := client.Prompts()
	require.Len(t, prompts, 1)
	assert.Contains(t, prompts[0], "Most frequent emotions: joy (3)")
	assert.Contains(t, prompts[0], "Most common mood: good")
	assert.Contains(t, prompts[0], "Journal data contains 2 entries.")
}

func TestCombinedAnalysis_ModelOutputClamped(t *testing.T) {
	client := &llm.MockClient{Response: `{
		"greeting": "Hi",
		"personality_analysis": "curious",
		"current_emotion": "hopeful",
		"progress": "steady",
		"self_awareness": {"score": 140, "comment": "great"},
		"suggestion": "keep going",
		"affirmation": "I grow"
	}`}
	svc := NewCombinedAnalysisService(nil, client)

	res, err := svc.Generate(context.Background(), CombinedAnalysisRequest{
		ChatHistory: []domain.ChatTurn{{Role: "USER", Content: "hola"}},
	})
	require.NoError(t, err)

	assert.False(t, res.IsFallback())
	assert.Equal(t, "curious", res.Value.PersonalityAnalysis)
	assert.Equal(t, domain.FlexNumber(100), res.Value.SelfAwareness.Score)
}

func TestCombinedAnalysis_AcceptsStringScore(t *testing.T) {
	client := &llm.MockClient{Response: `{
		"greeting": "Hi",
		"personality_analysis": "curious",
		"current_emotion": "hopeful",
		"progress": "steady",
		"self_awareness": {"score": "80", "comment": "great"},
		"suggestion": "keep going",
		"affirmation": "I grow"
	}`}
	svc := NewCombinedAnalysisService(nil, client)

	res, err := svc.Generate(context.Background(), CombinedAnalysisRequest{
		ChatHistory: []domain.ChatTurn{{Role: "USER", Content: "hola"}},
	})
	require.NoError(t, err)

	assert.False(t, res.IsFallback(), "reason %q", res.Reason)
	assert.Equal(t, "Hi", res.Value.Greeting)
	assert.Equal(t, domain.FlexNumber(80), res.Value.SelfAwareness.Score)
}

func TestCombinedAnalysis_MissingKeysFallsBack(t *testing.T) {
	svc := NewCombinedAnalysisService(nil, &llm.MockClient{Response: `{"greeting": "Hi"}`})

	res, err := svc.Generate(context.Background(), CombinedAnalysisRequest{
		ChatHistory: []domain.ChatTurn{{Role: "USER", Content: "hola"}},
	})
	require.NoError(t, err)
	assert.Equal(t, ReasonMissingKeys, res.Reason)
	assert.Equal(t, "neutral", res.Value.CurrentEmotion)
}
