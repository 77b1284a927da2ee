package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/peterbourgon/ff/v4"
	"github.com/shtest/shtest"
)

const version = "0.1.0"

type config struct {
	first        bool
	list         bool
	listRun      bool
	test         string
	skip         string
	preFlight    string
	postFlight   string
	quiet        bool
	verbose      bool
	color        string
	diffOptions  string
	inlinePrefix string
	prefix       string
	prompt       string
	configPath   string
	showVersion  bool
}

func (cfg *config) registerFlags(fs *ff.FlagSet) {
	fs.BoolVar(&cfg.first, 0, "first", "stop on first failure")
	fs.BoolVar(&cfg.list, 0, "list", "list tests without executing")
	fs.BoolVar(&cfg.listRun, 0, "list-run", "list tests with OK/FAIL status")
	fs.StringVar(&cfg.test, 0, "test", "", "only run tests whose index is in RANGE")
	fs.StringVar(&cfg.skip, 0, "skip", "", "skip tests whose index is in RANGE")
	fs.StringVar(&cfg.preFlight, 0, "pre-flight", "", "run CMD once before the first test")
	fs.StringVar(&cfg.postFlight, 0, "post-flight", "", "run CMD once after the last test")
	fs.BoolVar(&cfg.quiet, 'q', "quiet", "suppress non-essential output")
	fs.BoolVar(&cfg.verbose, 'v', "verbose", "emit verbose output")
	fs.StringVar(&cfg.color, 0, "color", "auto", "color policy: auto, always, never")
	fs.StringVar(&cfg.diffOptions, 0, "diff-options", "", "options passed to diff invocations")
	fs.StringVar(&cfg.inlinePrefix, 0, "inline-prefix", "", `inline marker (default "#→ ")`)
	fs.StringVar(&cfg.prefix, 0, "prefix", "", `per-line prefix for prompt and output lines`)
	fs.StringVar(&cfg.prompt, 0, "prompt", "", `prompt literal (default "$ ")`)
	fs.StringVar(&cfg.configPath, 0, "config", "", "path to a .shtestrc.toml config file")
	fs.BoolVar(&cfg.showVersion, 0, "version", "print the version and exit")
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cmd := newCommand()
	err := cmd.ParseAndRun(ctx, os.Args[1:], ff.WithEnvVarPrefix("SHTEST"))

	var exitErr *exitCodeError
	if errors.As(err, &exitErr) {
		os.Exit(exitErr.code)
	}
	if err != nil {
		prog := filepath.Base(os.Args[0])
		fmt.Fprintf(os.Stderr, "%s: Error: %v\n", prog, err)
		os.Exit(2)
	}
}

// exitCodeError carries a §7 exit code (1: at least one test failed)
// through ff.Command.Exec's plain error return, without main printing
// an "Error:" line for what is a normal, non-fatal outcome.
type exitCodeError struct{ code int }

func (e *exitCodeError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

func newCommand() *ff.Command {
	var cfg config

	fs := ff.NewFlagSet("shtest")
	cfg.registerFlags(fs)

	return &ff.Command{
		Name:  "shtest",
		Usage: "shtest [FLAGS] FILE...",
		Flags: fs,
		Exec: func(ctx context.Context, args []string) error {
			return run(ctx, &cfg, args)
		},
	}
}

func run(ctx context.Context, cfg *config, args []string) error {
	if cfg.showVersion {
		fmt.Println("shtest version " + version)
		return nil
	}
	if len(args) == 0 {
		return fmt.Errorf("at least one transcript file is required")
	}

	scratchDir, cleanup, err := shtest.NewScratchDir()
	if err != nil {
		return fmt.Errorf("creating private temp dir: %w", err)
	}
	defer cleanup()

	configPath := cfg.configPath
	if configPath == "" {
		configPath = shtest.DefaultConfigName
	}
	fileCfg, err := shtest.LoadFileConfig(configPath)
	if err != nil {
		return err
	}

	merged := mergeConfig(*cfg, fileCfg)

	runRange, err := shtest.ParseRange(merged.test)
	if err != nil {
		return shtest.Fatalf("invalid --test range: %v", err)
	}
	skipRange, err := shtest.ParseRange(merged.skip)
	if err != nil {
		return shtest.Fatalf("invalid --skip range: %v", err)
	}

	prefix, err := decodePrefix(merged.prefix)
	if err != nil {
		return shtest.Fatalf("invalid --prefix: %v", err)
	}

	parserCfg := shtest.DefaultParserConfig()
	parserCfg.Prefix = prefix
	if merged.prompt != "" {
		parserCfg.Prompt = merged.prompt
	}
	if merged.inlinePrefix != "" {
		parserCfg.InlinePrefix = merged.inlinePrefix
	}

	reporter := shtest.NewReporter(os.Stdout, os.Stderr, resolveColor(merged.color), resolveWidth(), merged.quiet, merged.verbose)

	driver, err := shtest.NewDriver(shtest.DriverConfig{
		StopOnFirstFail: merged.first,
		List:            merged.list,
		ListRun:         merged.listRun,
		RunRange:        runRange,
		SkipRange:       skipRange,
		PreFlight:       merged.preFlight,
		PostFlight:      merged.postFlight,
		DiffOptions:     merged.diffOptions,
		ScratchDir:      scratchDir,
		Parser:          parserCfg,
	}, reporter)
	if err != nil {
		return err
	}

	exitCode, _, err := driver.RunFiles(ctx, args)
	if err != nil {
		return err
	}
	if exitCode != 0 {
		return &exitCodeError{code: exitCode}
	}
	return nil
}

// mergeConfig applies file-config defaults for any flag left at its
// zero value, since explicit flags always win (SPEC_FULL §1.3).
func mergeConfig(flags config, file shtest.FileConfig) config {
	merged := flags
	if !merged.first {
		merged.first = file.First
	}
	if !merged.quiet {
		merged.quiet = file.Quiet
	}
	if !merged.verbose {
		merged.verbose = file.Verbose
	}
	if merged.color == "" || merged.color == "auto" {
		if file.Color != "" {
			merged.color = file.Color
		}
	}
	if merged.diffOptions == "" {
		merged.diffOptions = file.DiffOptions
	}
	if merged.inlinePrefix == "" {
		merged.inlinePrefix = file.InlinePrefix
	}
	if merged.prefix == "" {
		merged.prefix = file.Prefix
	}
	if merged.prompt == "" {
		merged.prompt = file.Prompt
	}
	if merged.preFlight == "" {
		merged.preFlight = file.PreFlight
	}
	if merged.postFlight == "" {
		merged.postFlight = file.PostFlight
	}
	return merged
}

// decodePrefix implements the §6 --prefix special values: "tab" → a
// tab character, "0" → empty, a decimal 1-99 → that many spaces,
// anything else → backslash escapes expanded.
func decodePrefix(s string) (string, error) {
	switch s {
	case "":
		return "", nil
	case "tab":
		return "\t", nil
	case "0":
		return "", nil
	}
	if n, err := strconv.Atoi(s); err == nil && n >= 1 && n <= 99 {
		return strings.Repeat(" ", n), nil
	}
	return strconv.Unquote(`"` + s + `"`)
}
