package main

import "testing"

func TestReportFileName(t *testing.T) {
	if got := reportFileName("session_1"); got != "session_1.json" {
		t.Fatalf("expected session_1.json, got %q", got)
	}
	if got := reportFileName(""); got != "unknown.json" {
		t.Fatalf("expected unknown.json, got %q", got)
	}
}
