package services_test

import (
	"errors"
	"strings"
	"testing"

	"assetmirror/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrStore, "scan", "insert asset", "failed", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrStore) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"scan", "insert asset", "failed"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapDefaultsToTransient(t *testing.T) {
	err := services.Wrap(nil, "", "", "", nil)
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected transient marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "service failure") {
		t.Fatalf("expected fallback detail, got %q", err.Error())
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want services.Outcome
	}{
		{"nil", nil, services.OutcomeContinue},
		{"stale", services.Wrap(services.ErrStaleElement, "scan", "read entry", "", nil), services.OutcomeContinue},
		{"validation", services.Wrap(services.ErrValidation, "scan", "parse entry", "", nil), services.OutcomeContinue},
		{"not found", services.Wrap(services.ErrNotFound, "page", "navigate", "", nil), services.OutcomeContinue},
		{"classification", services.Wrap(services.ErrClassification, "scan", "entries", "", nil), services.OutcomeAbort},
		{"store", services.Wrap(services.ErrStore, "scan", "insert", "", errors.New("locked")), services.OutcomeAbort},
		{"plain", errors.New("other"), services.OutcomeAbort},
	}
	for _, tc := range cases {
		if got := services.Classify(tc.err); got != tc.want {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}
