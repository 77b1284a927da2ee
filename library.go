package shtest

import (
	"bytes"
	"context"
	"testing"
)

// TestingT is the interface common to *testing.T and *testing.B,
// letting RunFile/RunFiles drive a failure through whichever the
// caller has in hand.
type TestingT interface {
	Helper()
	Fatalf(format string, args ...any)
	Logf(format string, args ...any)
}

// Params configures a library-embedded run (SPEC_FULL §4.4): besides
// the CLI, shtest is usable directly from a Go test.
type Params struct {
	RunRange    RangeSet
	SkipRange   RangeSet
	PreFlight   string
	PostFlight  string
	DiffOptions string
	Parser      ParserConfig
	Verbose     bool
}

// RunFile runs a single transcript file and fails t if any test in it
// fails or a fatal error occurs.
func RunFile(t TestingT, p Params, path string) {
	t.Helper()
	RunFiles(t, p, path)
}

// RunFiles runs every named transcript file in order and fails t if
// any test fails or a fatal error occurs, mirroring the CLI's
// Driver.RunFiles but reporting through TestingT instead of stdout.
func RunFiles(t TestingT, p Params, paths ...string) {
	t.Helper()

	var out bytes.Buffer
	reporter := NewReporter(&out, &out, false, 50, !p.Verbose, p.Verbose)

	parserCfg := p.Parser
	if parserCfg.Prompt == "" {
		parserCfg = DefaultParserConfig()
	}

	driver, err := NewDriver(DriverConfig{
		RunRange:    p.RunRange,
		SkipRange:   p.SkipRange,
		PreFlight:   p.PreFlight,
		PostFlight:  p.PostFlight,
		DiffOptions: p.DiffOptions,
		Parser:      parserCfg,
	}, reporter)
	if err != nil {
		t.Fatalf("shtest: %v", err)
		return
	}

	exitCode, results, err := driver.RunFiles(context.Background(), paths)
	if p.Verbose || exitCode != 0 {
		t.Logf("%s", out.String())
	}
	if err != nil {
		t.Fatalf("shtest: %v", err)
		return
	}
	for _, res := range results {
		if res.Failed > 0 {
			t.Fatalf("shtest: %s: %d of %d tests failed", res.Path, res.Failed, res.Seen)
		}
	}
}

var _ TestingT = (*testing.T)(nil)
