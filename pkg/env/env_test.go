package env

import "testing"

func TestGetFallsBackWhenUnset(t *testing.T) {
	if got := Get("HEARTHSIDE_ENV_TEST_UNSET", "fallback"); got != "fallback" {
		t.Fatalf("expected fallback, got %q", got)
	}
}

func TestGetReturnsTrimmedValue(t *testing.T) {
	t.Setenv("HEARTHSIDE_ENV_TEST_SET", "  storefront-api  ")
	if got := Get("HEARTHSIDE_ENV_TEST_SET", "fallback"); got != "storefront-api" {
		t.Fatalf("expected trimmed value, got %q", got)
	}
}

func TestGetTreatsBlankAsUnset(t *testing.T) {
	t.Setenv("HEARTHSIDE_ENV_TEST_BLANK", "   ")
	if got := Get("HEARTHSIDE_ENV_TEST_BLANK", "fallback"); got != "fallback" {
		t.Fatalf("expected fallback for blank value, got %q", got)
	}
}
