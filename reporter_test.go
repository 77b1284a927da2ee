package shtest

import (
	"bytes"
	"strings"
	"testing"
)

func TestReporter_ReportFailure_NoDuplicateSeparatorBetweenConsecutiveFailures(t *testing.T) {
	var out bytes.Buffer
	r := NewReporter(&out, &out, false, 10, false, false)

	r.ReportFailure(Test{Index: 1, Command: "a"}, Verdict{Diff: "diff-a"})
	r.ReportFailure(Test{Index: 2, Command: "b"}, Verdict{Diff: "diff-b"})

	sep := strings.Repeat("-", 10)
	if got := strings.Count(out.String(), sep); got != 2 {
		t.Errorf("separator count = %d, want 2 (one before the pair, one after), got:\n%s", got, out.String())
	}
}

func TestReporter_FileBannerResetsSeparatorDedup(t *testing.T) {
	var out bytes.Buffer
	r := NewReporter(&out, &out, false, 10, false, false)

	r.ReportFailure(Test{Index: 1, Command: "a"}, Verdict{Diff: "diff-a"})
	r.FileBanner("next.txt")
	r.ReportFailure(Test{Index: 1, Command: "a"}, Verdict{Diff: "diff-a"})

	sep := strings.Repeat("-", 10)
	if got := strings.Count(out.String(), sep); got != 4 {
		t.Errorf("separator count = %d, want 4 (two per isolated failure)", got)
	}
}

func TestReporter_Summary_AllPassed(t *testing.T) {
	var out bytes.Buffer
	r := NewReporter(&out, &out, false, 10, false, false)
	r.Summary([]FileResult{{Path: "a.txt", Counters: Counters{Seen: 3, Skipped: 1}}})
	if got := out.String(); !strings.Contains(got, "OK: 2 of 3 tests passed (1 skipped)") {
		t.Errorf("got %q", got)
	}
}

func TestReporter_Summary_SomeFailed(t *testing.T) {
	var out bytes.Buffer
	r := NewReporter(&out, &out, false, 10, false, false)
	r.Summary([]FileResult{{Path: "a.txt", Counters: Counters{Seen: 3, Failed: 1}}})
	if got := out.String(); !strings.Contains(got, "FAIL: 1 of 3 tests failed (0 skipped)") {
		t.Errorf("got %q", got)
	}
}

func TestReporter_Colorize_NoopWhenColorDisabled(t *testing.T) {
	r := NewReporter(nil, nil, false, 10, false, false)
	if got := r.colorize(ansiRed, "x"); got != "x" {
		t.Errorf("colorize with Color=false should be a no-op, got %q", got)
	}
}

func TestReporter_FileBanner_SuppressedByQuiet(t *testing.T) {
	var out bytes.Buffer
	r := NewReporter(&out, &out, false, 10, true, false)
	r.FileBanner("a.txt")
	if out.Len() != 0 {
		t.Errorf("--quiet should suppress the file banner, got %q", out.String())
	}
}

func TestReporter_ReportPass_OnlyUnderVerbose(t *testing.T) {
	var quiet bytes.Buffer
	NewReporter(&quiet, &quiet, false, 10, false, false).ReportPass(Test{Index: 1, Command: "echo hi"})
	if quiet.Len() != 0 {
		t.Errorf("ReportPass should do nothing without --verbose, got %q", quiet.String())
	}

	var verbose bytes.Buffer
	NewReporter(&verbose, &verbose, false, 10, false, true).ReportPass(Test{Index: 1, Command: "echo hi"})
	if !strings.Contains(verbose.String(), "echo hi") {
		t.Errorf("ReportPass should report the command under --verbose, got %q", verbose.String())
	}
}
