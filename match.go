package shtest

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// Verdict is the outcome of matching a Test's captured output against
// its expected payload (§4.3).
type Verdict struct {
	Passed bool
	Diff   string // human-readable fragment, set only on failure
}

// EvalFunc runs a shell command in a fresh, one-shot subshell (not the
// persistent session) and returns its stdout, for ModeEval.
type EvalFunc func(ctx context.Context, command string) (string, error)

// FileReaderFunc reads the contents of a named file for ModeFile,
// falling back to embedded fixtures when the path isn't found on disk.
type FileReaderFunc func(path string) ([]byte, error)

// MatchOptions supplies the collaborators Match needs beyond the Test
// and its captured output.
type MatchOptions struct {
	Eval        EvalFunc
	ReadFile    FileReaderFunc
	SourcePath  string // transcript path, for fatal diagnostics
	DiffContext int    // context lines around a change; < 0 means default
}

// Match compares a Test's captured output against its expected
// payload using the mode-appropriate strategy (§4.3). A returned
// *FatalError means the whole run must abort (§7); any other error
// indicates a bug in the matcher's own plumbing.
func Match(ctx context.Context, t Test, captured string, opts MatchOptions) (Verdict, error) {
	switch t.Mode {
	case ModeOutput:
		return matchText(t.Expected, captured, opts)
	case ModeText:
		return matchText(t.Expected+"\n", captured, opts)
	case ModeEval:
		return matchEval(ctx, t, captured, opts)
	case ModeLines:
		return matchLines(t, captured)
	case ModeFile:
		return matchFile(t, captured, opts)
	case ModeRegex:
		return matchRegex(t, captured, opts)
	case ModePerl:
		return matchPerl(t, captured, opts)
	default:
		return Verdict{}, fmt.Errorf("unknown match mode %v", t.Mode)
	}
}

func matchText(expected, actual string, opts MatchOptions) (Verdict, error) {
	if expected == actual {
		return Verdict{Passed: true}, nil
	}
	diff, err := unifiedDiff(expected, actual, opts.DiffContext)
	if err != nil {
		return Verdict{}, err
	}
	return Verdict{Passed: false, Diff: diff}, nil
}

func matchEval(ctx context.Context, t Test, captured string, opts MatchOptions) (Verdict, error) {
	if opts.Eval == nil {
		return Verdict{}, fmt.Errorf("eval mode requires an Eval function")
	}
	expected, err := opts.Eval(ctx, t.Expected)
	if err != nil {
		return Verdict{}, Fatalf("%s:%d: evaluating eval payload %q: %v", opts.SourcePath, t.SourceLine, t.Expected, err)
	}
	return matchText(expected, captured, opts)
}

func matchLines(t Test, captured string) (Verdict, error) {
	count := strings.Count(captured, "\n")
	if count == t.ExpectedLines {
		return Verdict{Passed: true}, nil
	}
	return Verdict{
		Passed: false,
		Diff:   fmt.Sprintf("Expected %d lines, got %d.", t.ExpectedLines, count),
	}, nil
}

func matchFile(t Test, captured string, opts MatchOptions) (Verdict, error) {
	if opts.ReadFile == nil {
		return Verdict{}, fmt.Errorf("file mode requires a ReadFile function")
	}
	data, err := opts.ReadFile(t.Expected)
	if err != nil {
		return Verdict{}, Fatalf("%s:%d: reading file %q: %v", opts.SourcePath, t.SourceLine, t.Expected, err)
	}
	return matchText(string(data), captured, opts)
}

func matchRegex(t Test, captured string, opts MatchOptions) (Verdict, error) {
	re, err := regexp.Compile(t.Expected)
	if err != nil {
		return Verdict{}, Fatalf("%s:%d: invalid regex %q: %v", opts.SourcePath, t.SourceLine, t.Expected, err)
	}
	for _, line := range strings.Split(captured, "\n") {
		if re.MatchString(line) {
			return Verdict{Passed: true}, nil
		}
	}
	return Verdict{
		Passed: false,
		Diff:   fmt.Sprintf("no line matched regex %q", t.Expected),
	}, nil
}

func matchPerl(t Test, captured string, opts MatchOptions) (Verdict, error) {
	re, err := regexp.Compile("(?s)" + t.Expected)
	if err != nil {
		return Verdict{}, Fatalf("%s:%d: invalid perl regex %q: %v", opts.SourcePath, t.SourceLine, t.Expected, err)
	}
	if re.MatchString(captured) {
		return Verdict{Passed: true}, nil
	}
	return Verdict{
		Passed: false,
		Diff:   fmt.Sprintf("captured output did not match /%s/s", t.Expected),
	}, nil
}
