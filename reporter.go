package shtest

import (
	"fmt"
	"io"
	"strings"
)

const (
	ansiRed   = "\x1b[31m"
	ansiGreen = "\x1b[32m"
	ansiReset = "\x1b[0m"
)

// Reporter formats per-test failures and per-file/global tallies
// (§4.6). Color and width are resolved by the CLI layer (§6's
// --color/COLUMNS rules) and injected here rather than detected by
// the core itself.
type Reporter struct {
	Out     io.Writer
	Err     io.Writer
	Color   bool
	Width   int
	Quiet   bool
	Verbose bool

	lastWasFailure bool
}

// NewReporter creates a Reporter writing to out/errOut. quiet
// suppresses per-file banners; verbose additionally reports each
// passing test, not just failures (§6 --quiet/--verbose).
func NewReporter(out, errOut io.Writer, color bool, width int, quiet, verbose bool) *Reporter {
	if width <= 0 {
		width = 50
	}
	return &Reporter{Out: out, Err: errOut, Color: color, Width: width, Quiet: quiet, Verbose: verbose}
}

func (r *Reporter) colorize(code, s string) string {
	if !r.Color {
		return s
	}
	return code + s + ansiReset
}

func (r *Reporter) separator() string {
	return r.colorize(ansiRed, strings.Repeat("-", r.Width))
}

// ReportFailure prints the failure header, the diff fragment, and a
// trailing separator. Consecutive failures share no duplicate
// separator between them (§4.6).
func (r *Reporter) ReportFailure(t Test, v Verdict) {
	if !r.lastWasFailure {
		fmt.Fprintln(r.Out, r.separator())
	}
	fmt.Fprintf(r.Out, "[FAILED #%d, line %d] %s\n", t.Index, t.SourceLine, t.Command)
	if v.Diff != "" {
		fmt.Fprintln(r.Out, v.Diff)
	}
	fmt.Fprintln(r.Out, r.separator())
	r.lastWasFailure = true
}

// FileBanner prints the "Testing file <path>" banner shown before
// each file in multi-file mode. Suppressed by --quiet.
func (r *Reporter) FileBanner(path string) {
	if !r.Quiet {
		fmt.Fprintf(r.Out, "Testing file %s\n", path)
	}
	r.lastWasFailure = false
}

// ReportPass prints an OK status line for a passing test, shown only
// under --verbose; failures are always reported via ReportFailure
// regardless of this flag.
func (r *Reporter) ReportPass(t Test) {
	if !r.Verbose {
		return
	}
	fmt.Fprintf(r.Out, "%d: %s %s\n", t.Index, r.colorize(ansiGreen, "OK"), t.Command)
}

// ListTest prints a Test's command without executing it (--list).
func (r *Reporter) ListTest(t Test) {
	fmt.Fprintf(r.Out, "%d: %s\n", t.Index, t.Command)
}

// ListRunSkipped prints a skipped Test's status in --list-run mode.
func (r *Reporter) ListRunSkipped(t Test) {
	fmt.Fprintf(r.Out, "%d: SKIP %s\n", t.Index, t.Command)
}

// ListRunResult prints an executed Test's OK/FAIL status in --list-run mode.
func (r *Reporter) ListRunResult(t Test, v Verdict) {
	status := r.colorize(ansiGreen, "OK")
	if !v.Passed {
		status = r.colorize(ansiRed, "FAIL")
	}
	fmt.Fprintf(r.Out, "%d: %s %s\n", t.Index, status, t.Command)
}

// MultiFileTable prints the per-file OK/FAIL/SKIP table shown after a
// multi-file run.
func (r *Reporter) MultiFileTable(results []FileResult) {
	fmt.Fprintln(r.Out, "\nFile                                     OK  FAIL  SKIP")
	for _, res := range results {
		fmt.Fprintf(r.Out, "%-40s %4d  %4d  %4d\n", res.Path, res.OK(), res.Failed, res.Skipped)
	}
}

// Summary prints the final one-line tally of §4.6, aggregated across
// every file in this run.
func (r *Reporter) Summary(results []FileResult) {
	var total Counters
	for _, res := range results {
		total.Seen += res.Seen
		total.Failed += res.Failed
		total.Skipped += res.Skipped
	}

	if total.Failed == 0 {
		fmt.Fprintf(r.Out, "OK: %d of %d tests passed (%d skipped)\n", total.OK(), total.Seen, total.Skipped)
	} else {
		fmt.Fprintf(r.Out, "FAIL: %d of %d tests failed (%d skipped)\n", total.Failed, total.Seen, total.Skipped)
	}
}
