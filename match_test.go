package shtest

import (
	"context"
	"testing"
)

func TestMatch_OutputMode(t *testing.T) {
	tt := Test{Mode: ModeOutput, Expected: "hello\n"}
	v, err := Match(context.Background(), tt, "hello\n", MatchOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !v.Passed {
		t.Errorf("Passed = false, want true; diff: %s", v.Diff)
	}
}

func TestMatch_OutputMode_Mismatch(t *testing.T) {
	tt := Test{Mode: ModeOutput, Expected: "bye\n"}
	v, err := Match(context.Background(), tt, "hi\n", MatchOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Passed {
		t.Fatal("Passed = true, want false")
	}
	if v.Diff == "" {
		t.Errorf("expected a non-empty diff fragment")
	}
}

func TestMatch_EmptyOutputMatchesZeroBytes(t *testing.T) {
	tt := Test{Mode: ModeOutput, Expected: ""}
	v, err := Match(context.Background(), tt, "", MatchOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !v.Passed {
		t.Errorf("empty expected output should match empty actual output")
	}
}

func TestMatch_TextMode(t *testing.T) {
	tt := Test{Mode: ModeText, Expected: "hello"}
	v, err := Match(context.Background(), tt, "hello\n", MatchOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !v.Passed {
		t.Errorf("Passed = false, want true")
	}
}

func TestMatch_LinesMode(t *testing.T) {
	tt := Test{Mode: ModeLines, ExpectedLines: 3}
	v, err := Match(context.Background(), tt, "a\nb\nc\n", MatchOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !v.Passed {
		t.Errorf("Passed = false, want true; diff: %s", v.Diff)
	}
}

func TestMatch_LinesModeZero(t *testing.T) {
	tt := Test{Mode: ModeLines, ExpectedLines: 0}
	for _, actual := range []string{"", "no newline"} {
		v, err := Match(context.Background(), tt, actual, MatchOptions{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !v.Passed {
			t.Errorf("--lines 0 should match %q", actual)
		}
	}
}

func TestMatch_RegexMode(t *testing.T) {
	tt := Test{Mode: ModeRegex, Expected: "^he..o$"}
	v, err := Match(context.Background(), tt, "line one\nhello\nline three\n", MatchOptions{SourcePath: "t.txt"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !v.Passed {
		t.Errorf("Passed = false, want true")
	}
}

func TestMatch_RegexMode_InvalidIsFatal(t *testing.T) {
	tt := Test{Mode: ModeRegex, Expected: "(unclosed"}
	_, err := Match(context.Background(), tt, "anything", MatchOptions{SourcePath: "t.txt"})
	if !IsFatal(err) {
		t.Errorf("expected a fatal error for an invalid regex, got %v", err)
	}
}

func TestMatch_PerlMode_DotAllAcrossLines(t *testing.T) {
	tt := Test{Mode: ModePerl, Expected: "line one.*line two"}
	v, err := Match(context.Background(), tt, "line one\nline two\n", MatchOptions{SourcePath: "t.txt"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !v.Passed {
		t.Errorf("Passed = false, want true (perl mode should be dotall)")
	}
}

func TestMatch_FileMode(t *testing.T) {
	read := func(path string) ([]byte, error) { return []byte("expected contents\n"), nil }
	tt := Test{Mode: ModeFile, Expected: "expected.txt"}
	v, err := Match(context.Background(), tt, "expected contents\n", MatchOptions{ReadFile: read})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !v.Passed {
		t.Errorf("Passed = false, want true")
	}
}

func TestMatch_EvalMode(t *testing.T) {
	eval := func(ctx context.Context, command string) (string, error) { return "evaluated\n", nil }
	tt := Test{Mode: ModeEval, Expected: "echo evaluated"}
	v, err := Match(context.Background(), tt, "evaluated\n", MatchOptions{Eval: eval})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !v.Passed {
		t.Errorf("Passed = false, want true")
	}
}
