package shtest

import (
	"strings"
	"testing"
)

func TestUnifiedDiff_HeadersStripped(t *testing.T) {
	diff, err := unifiedDiff("hi\n", "bye\n", defaultDiffContext)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stripped := stripUnifiedHeaders(diff)
	if strings.Contains(stripped, "--- ") || strings.Contains(stripped, "+++ ") {
		t.Errorf("header lines survived stripping:\n%s", stripped)
	}
	if !strings.Contains(stripped, "-hi") || !strings.Contains(stripped, "+bye") {
		t.Errorf("expected +/- lines for the changed content, got:\n%s", stripped)
	}
}

func TestUnifiedDiff_IdenticalProducesNoChangeLines(t *testing.T) {
	diff, err := unifiedDiff("same\n", "same\n", defaultDiffContext)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(diff, "-same") || strings.Contains(diff, "+same") {
		t.Errorf("identical input produced change lines:\n%s", diff)
	}
}
