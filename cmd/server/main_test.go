package main

import "testing"

func TestEnvOr(t *testing.T) {
	t.Setenv("PORT", " 9090 ")
	if got := envOr("PORT", "8080"); got != "9090" {
		t.Fatalf("envOr()=%q want 9090", got)
	}

	t.Setenv("PORT", "")
	if got := envOr("PORT", "8080"); got != "8080" {
		t.Fatalf("envOr()=%q want fallback 8080", got)
	}
}

func TestIntEnv(t *testing.T) {
	t.Setenv("NARRATOR_MAX_TOKENS", "1500")
	if got := intEnv("NARRATOR_MAX_TOKENS", 0); got != 1500 {
		t.Fatalf("intEnv()=%d want 1500", got)
	}

	t.Setenv("NARRATOR_MAX_TOKENS", "not-a-number")
	if got := intEnv("NARRATOR_MAX_TOKENS", 7); got != 7 {
		t.Fatalf("intEnv()=%d want fallback 7", got)
	}

	t.Setenv("NARRATOR_MAX_TOKENS", "")
	if got := intEnv("NARRATOR_MAX_TOKENS", 7); got != 7 {
		t.Fatalf("intEnv()=%d want fallback 7", got)
	}
}

func TestBuildResolverFromEnv_NoKeyMeansNoNarrator(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("NARRATOR_TIMEOUT_SECONDS", "5")
	t.Setenv("NARRATOR_MAX_TOKENS", "800")

	r := buildResolverFromEnv()
	if r.Narrator != nil {
		t.Fatalf("expected nil narrator without api key")
	}
	if r.Timeout.Seconds() != 5 {
		t.Fatalf("timeout = %v, want 5s", r.Timeout)
	}
	if r.MaxTokens != 800 {
		t.Fatalf("max tokens = %d, want 800", r.MaxTokens)
	}
}
