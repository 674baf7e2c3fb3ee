package service

import (
	"strings"
	"testing"
)

func TestExtractEmotions(t *testing.T) {
	got := extractEmotions("I am so STRESSED and worried, also a bit happy")
	if strings.Join(got, ",") != "anxious,happy" {
		t.Fatalf("unexpected emotions %v", got)
	}
}

func TestExtractThemes(t *testing.T) {
	got := extractThemes("My boss at work and the job pressure")
	if strings.Join(got, ",") != "work,stress" {
		t.Fatalf("unexpected themes %v", got)
	}
	if len(extractThemes("")) != 0 {
		t.Fatalf("expected no themes for empty text")
	}
}

func TestTagCounter(t *testing.T) {
	c := newTagCounter()
	c.add("b", "a", "b", " ", "c")
	c.addN("c", 2)

	if c.distinct() != 3 {
		t.Fatalf("expected 3 distinct, got %d", c.distinct())
	}
	top := c.top(2)
	if len(top) != 2 || top[0].tag != "c" || top[0].count != 3 || top[1].tag != "b" {
		t.Fatalf("unexpected top %+v", top)
	}
	if newTagCounter().dominant("neutral") != "neutral" {
		t.Fatalf("expected default for empty counter")
	}
}
