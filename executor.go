package shtest

import (
	"bytes"
	"context"
	"io"
	"os"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// Executor owns a persistent shell session for the lifetime of one
// file run (§4.4). Variables, working directory and functions set by
// one Run call are visible to the next, because the same *interp.Runner
// is reused without ever calling Reset().
type Executor struct {
	runner *interp.Runner
	buf    *bytes.Buffer
	parser *syntax.Parser
}

// ExecutorOption configures NewExecutor.
type ExecutorOption func(*executorConfig)

type executorConfig struct {
	scratchDir string
}

// WithScratchDir overrides TMPDIR inside the session with dir, so test
// commands that create scratch files (mktemp and friends) land in the
// private temporary directory of §5 rather than the real system /tmp.
func WithScratchDir(dir string) ExecutorOption {
	return func(c *executorConfig) { c.scratchDir = dir }
}

// NewExecutor creates a persistent shell session rooted at dir (the
// process's current directory if dir is "").
func NewExecutor(dir string, opts ...ExecutorOption) (*Executor, error) {
	var cfg executorConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	env := os.Environ()
	if cfg.scratchDir != "" {
		env = setEnv(env, "TMPDIR", cfg.scratchDir)
	}

	buf := &bytes.Buffer{}
	runnerOpts := []interp.RunnerOption{
		interp.StdIO(nil, buf, buf),
		interp.Env(expand.ListEnviron(env...)),
	}
	if dir != "" {
		runnerOpts = append(runnerOpts, interp.Dir(dir))
	}
	runner, err := interp.New(runnerOpts...)
	if err != nil {
		return nil, err
	}
	return &Executor{
		runner: runner,
		buf:    buf,
		parser: syntax.NewParser(syntax.Variant(syntax.LangBash)),
	}, nil
}

// setEnv replaces key's entry in a process-style "KEY=value" slice, or
// appends one if key isn't already set.
func setEnv(env []string, key, value string) []string {
	prefix := key + "="
	for i, kv := range env {
		if strings.HasPrefix(kv, prefix) {
			env[i] = prefix + value
			return env
		}
	}
	return append(env, prefix+value)
}

// Run evaluates command in the persistent session and returns its
// combined stdout+stderr. The executor does not interpret exit status
// (§4.4); a non-zero exit is not reported as an error here.
func (e *Executor) Run(ctx context.Context, command string) (string, error) {
	file, err := e.parser.Parse(strings.NewReader(command), "")
	if err != nil {
		return "", err
	}

	e.buf.Reset()
	runErr := e.runner.Run(ctx, file)
	captured := e.buf.String()

	if runErr != nil {
		if _, ok := interp.IsExitStatus(runErr); ok {
			return captured, nil
		}
		return captured, runErr
	}
	return captured, nil
}

// Dir reports the session's current working directory.
func (e *Executor) Dir() string {
	return e.runner.Dir
}

// runHook runs a pre/post-flight command in a fresh subshell and
// reports its exit status as an error (§5: "pre-flight failure aborts
// before any test runs"), unlike EvalFresh, which a match mode needs
// to treat a non-zero exit as just another output to compare.
func runHook(ctx context.Context, command string) error {
	runner, err := interp.New(
		interp.StdIO(nil, io.Discard, io.Discard),
		interp.Env(expand.ListEnviron(os.Environ()...)),
	)
	if err != nil {
		return err
	}

	parser := syntax.NewParser(syntax.Variant(syntax.LangBash))
	file, err := parser.Parse(strings.NewReader(command), "")
	if err != nil {
		return err
	}

	return runner.Run(ctx, file)
}

// EvalFresh runs command in a brand-new, one-shot subshell — never the
// persistent session — and returns only its stdout, for ModeEval (§4.3).
func EvalFresh(ctx context.Context, command string) (string, error) {
	var stdout bytes.Buffer
	runner, err := interp.New(
		interp.StdIO(nil, &stdout, io.Discard),
		interp.Env(expand.ListEnviron(os.Environ()...)),
	)
	if err != nil {
		return "", err
	}

	parser := syntax.NewParser(syntax.Variant(syntax.LangBash))
	file, err := parser.Parse(strings.NewReader(command), "")
	if err != nil {
		return "", err
	}

	runErr := runner.Run(ctx, file)
	if runErr != nil {
		if _, ok := interp.IsExitStatus(runErr); !ok {
			return stdout.String(), runErr
		}
	}
	return stdout.String(), nil
}
