package shtest

import (
	"context"
	"log"
	"os"
)

// Counters are the per-file / aggregate run counters of §3.
type Counters struct {
	Seen    int
	Failed  int
	Skipped int
}

// OK is the derived count of passing tests.
func (c Counters) OK() int {
	return c.Seen - c.Failed - c.Skipped
}

// FileResult is the outcome of running one transcript file.
type FileResult struct {
	Path          string
	Counters
	FailedIndices []int
	Stopped       bool // stop-on-first-fail fired during this file
}

// DriverConfig configures the per-file driver loop (§4.5) from the
// options the CLI layer parses out of §6.
type DriverConfig struct {
	StopOnFirstFail bool
	List            bool
	ListRun         bool
	RunRange        RangeSet
	SkipRange       RangeSet
	PreFlight       string
	PostFlight      string
	DiffOptions     string
	ScratchDir      string
	Parser          ParserConfig
}

// Driver is the §4.5 per-file loop: parser → filter → executor →
// matcher → counters → report.
type Driver struct {
	cfg      DriverConfig
	reporter *Reporter
	origWD   string
}

// NewDriver creates a Driver, capturing the process's current working
// directory as the one to restore before each file (§4.5 step 2).
func NewDriver(cfg DriverConfig, reporter *Reporter) (*Driver, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return &Driver{cfg: cfg, reporter: reporter, origWD: wd}, nil
}

// RunFiles runs every path in order, handling pre/post-flight hooks
// and stop-on-first-fail around the per-file loop, and returns the
// process exit code for the whole invocation (§7).
func (d *Driver) RunFiles(ctx context.Context, paths []string) (int, []FileResult, error) {
	if d.cfg.PreFlight != "" {
		if err := runHook(ctx, d.cfg.PreFlight); err != nil {
			return 2, nil, Fatalf("pre-flight command failed: %v", err)
		}
	}

	var results []FileResult
	aborted := false

	for _, path := range paths {
		if len(paths) > 1 {
			d.reporter.FileBanner(path)
		}

		res, err := d.RunFile(ctx, path)
		if err != nil {
			return 2, results, err
		}
		results = append(results, res)
		if res.Stopped {
			aborted = true
			break
		}
	}

	if !aborted && d.cfg.PostFlight != "" {
		if err := runHook(ctx, d.cfg.PostFlight); err != nil {
			log.Printf("warning: post-flight command failed: %v", err)
		}
	}

	if len(paths) > 1 {
		d.reporter.MultiFileTable(results)
	}
	d.reporter.Summary(results)

	exit := 0
	for _, r := range results {
		if r.Failed > 0 {
			exit = 1
		}
	}
	if aborted {
		exit = 1
	}
	return exit, results, nil
}

// RunFile runs the tests in a single transcript file (§4.5).
func (d *Driver) RunFile(ctx context.Context, path string) (FileResult, error) {
	result := FileResult{Path: path}

	if err := os.Chdir(d.origWD); err != nil {
		return result, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return result, Fatalf("cannot read %s: %v", path, err)
	}
	if info.IsDir() {
		return result, Fatalf("%s is a directory", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return result, Fatalf("cannot read %s: %v", path, err)
	}

	transcript, fixtures := splitFixtures(data)

	tests, err := NewParser(path, d.cfg.Parser).ParseBytes(transcript)
	if err != nil {
		return result, err
	}

	if len(tests) == 0 && d.cfg.RunRange.Empty() && d.cfg.SkipRange.Empty() {
		return result, Fatalf("%s: no test found", path)
	}

	var runMatches, skipMatches int
	for _, t := range tests {
		if d.cfg.RunRange.Contains(t.Index) {
			runMatches++
		}
		if d.cfg.SkipRange.Contains(t.Index) {
			skipMatches++
		}
	}

	// An active range that matches no test is fatal before anything
	// executes (§7), not discovered after the fact.
	if !d.cfg.RunRange.Empty() && runMatches == 0 && !d.cfg.SkipRange.Empty() && skipMatches == 0 {
		return result, Fatalf("%s: neither --test nor --skip range matched any test", path)
	}
	if !d.cfg.RunRange.Empty() && runMatches == 0 {
		return result, Fatalf("%s: --test range matched no test", path)
	}
	if !d.cfg.SkipRange.Empty() && skipMatches == 0 {
		return result, Fatalf("%s: --skip range matched no test", path)
	}

	var executor *Executor
	if !d.cfg.List {
		cleanupFixtures, err := fixtures.Materialize()
		if err != nil {
			return result, err
		}
		defer cleanupFixtures()

		var execOpts []ExecutorOption
		if d.cfg.ScratchDir != "" {
			execOpts = append(execOpts, WithScratchDir(d.cfg.ScratchDir))
		}
		executor, err = NewExecutor(d.origWD, execOpts...)
		if err != nil {
			return result, err
		}
	}

	matchOpts := MatchOptions{
		Eval:        EvalFresh,
		ReadFile:    fixtures.ReadFile,
		SourcePath:  path,
		DiffContext: parseDiffContext(d.cfg.DiffOptions),
	}

	// Counting and range filtering (§4.5 step 5a/5b) happen before the
	// list-mode check (5c): a test excluded by --test/--skip is still
	// counted as skipped and is never executed; --list does not print
	// it, and --list-run prints it with a SKIP status.
	for _, t := range tests {
		result.Seen++

		inRun := d.cfg.RunRange.Empty() || d.cfg.RunRange.Contains(t.Index)
		inSkip := d.cfg.SkipRange.Contains(t.Index)

		if inSkip || !inRun {
			result.Skipped++
			if d.cfg.ListRun {
				d.reporter.ListRunSkipped(t)
			}
			continue
		}

		if d.cfg.List {
			d.reporter.ListTest(t)
			continue
		}

		if d.cfg.ListRun {
			captured, runErr := executor.Run(ctx, t.Command)
			if runErr != nil {
				return result, runErr
			}
			verdict, matchErr := Match(ctx, t, captured, matchOpts)
			if matchErr != nil {
				return result, matchErr
			}
			d.reporter.ListRunResult(t, verdict)
			if !verdict.Passed {
				result.Failed++
				result.FailedIndices = append(result.FailedIndices, t.Index)
			}
			continue
		}

		captured, runErr := executor.Run(ctx, t.Command)
		if runErr != nil {
			return result, runErr
		}

		verdict, matchErr := Match(ctx, t, captured, matchOpts)
		if matchErr != nil {
			return result, matchErr
		}

		if !verdict.Passed {
			result.Failed++
			result.FailedIndices = append(result.FailedIndices, t.Index)
			d.reporter.ReportFailure(t, verdict)
			if d.cfg.StopOnFirstFail {
				result.Stopped = true
				return result, nil
			}
		} else {
			d.reporter.ReportPass(t)
		}
	}

	return result, nil
}
