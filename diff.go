package shtest

import (
	"strconv"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// defaultDiffContext is the number of context lines around a change
// when --diff-options doesn't request a different amount.
const defaultDiffContext = 3

// unifiedDiff renders a unified-style line diff between expected and
// actual text, with the "---"/"+++" header lines suppressed, per the
// rendering contract of §4.3/§9.
func unifiedDiff(expected, actual string, context int) (string, error) {
	if context < 0 {
		context = defaultDiffContext
	}
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(expected),
		B:        difflib.SplitLines(actual),
		FromFile: "expected",
		ToFile:   "actual",
		Context:  context,
	}
	out, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return "", err
	}
	return stripUnifiedHeaders(out), nil
}

// parseDiffContext reads a GNU-diff-style "-U<N>" token out of the
// opaque --diff-options string (§6), defaulting to defaultDiffContext
// when absent or malformed.
func parseDiffContext(diffOptions string) int {
	for _, field := range strings.Fields(diffOptions) {
		if n, ok := strings.CutPrefix(field, "-U"); ok {
			if v, err := strconv.Atoi(n); err == nil && v >= 0 {
				return v
			}
		}
	}
	return defaultDiffContext
}

// stripUnifiedHeaders drops the "--- expected" / "+++ actual" header
// lines a unified diff starts with, leaving only the hunk bodies.
func stripUnifiedHeaders(diff string) string {
	lines := strings.Split(diff, "\n")
	out := lines[:0:0]
	for _, l := range lines {
		if strings.HasPrefix(l, "--- ") || strings.HasPrefix(l, "+++ ") {
			continue
		}
		out = append(out, l)
	}
	return strings.Join(out, "\n")
}
