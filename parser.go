package shtest

import (
	"errors"
	"strings"
)

var (
	errEmptyInt   = errors.New("empty")
	errNotANumber = errors.New("not a non-negative integer")
)

// Mode is the closed set of match strategies a Test can be checked
// with (§4.3). It is a tagged variant, not a dynamic string.
type Mode int

const (
	ModeOutput Mode = iota
	ModeText
	ModeEval
	ModeLines
	ModeFile
	ModeRegex
	ModePerl
)

func (m Mode) String() string {
	switch m {
	case ModeOutput:
		return "output"
	case ModeText:
		return "text"
	case ModeEval:
		return "eval"
	case ModeLines:
		return "lines"
	case ModeFile:
		return "file"
	case ModeRegex:
		return "regex"
	case ModePerl:
		return "perl"
	default:
		return "unknown"
	}
}

// inline directive tokens, checked in this order so that none is a
// prefix of another with a different meaning.
var inlineDirectives = []struct {
	token string
	mode  Mode
}{
	{"--regex ", ModeRegex},
	{"--perl ", ModePerl},
	{"--file ", ModeFile},
	{"--lines ", ModeLines},
	{"--eval ", ModeEval},
	{"--text ", ModeText},
}

// Test is one command-and-expectation pair extracted from a transcript.
type Test struct {
	Index         int    // 1-based, in parser emission order
	SourceLine    int    // 1-based line number where the command begins
	Command       string // verbatim command text
	Mode          Mode
	Expected      string // mode-dependent payload; unused for ModeLines
	ExpectedLines int    // only meaningful for ModeLines
}

// ParserConfig configures the Transcript Parser (§4.2).
type ParserConfig struct {
	Prefix       string
	Prompt       string // default "$ "
	InlinePrefix string // default "#→ "
}

// DefaultParserConfig returns the spec's default configuration.
func DefaultParserConfig() ParserConfig {
	return ParserConfig{Prompt: "$ ", InlinePrefix: "#→ "}
}

// normalizeLineEndings converts CRLF to LF (§2 component B).
func normalizeLineEndings(data []byte) string {
	return strings.ReplaceAll(string(data), "\r\n", "\n")
}

// splitLines splits normalized text into lines, dropping the single
// trailing empty element produced by a final newline (trailing
// newline on the last line is optional, per §4.2).
func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" && strings.HasSuffix(text, "\n") {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// Parser is the line-oriented state machine of §4.2: it holds exactly
// one piece of pending state, a partially constructed Test.
type Parser struct {
	cfg ParserConfig

	path    string // for diagnostics in fatal errors
	pending *Test
	tests   []Test
	next    int // next index to assign
}

// NewParser creates a Parser for the given path (used only in
// diagnostic messages) and configuration.
func NewParser(path string, cfg ParserConfig) *Parser {
	if cfg.Prompt == "" {
		cfg.Prompt = "$ "
	}
	if cfg.InlinePrefix == "" {
		cfg.InlinePrefix = "#→ "
	}
	return &Parser{cfg: cfg, path: path, next: 1}
}

// ParseBytes runs the state machine over data (raw file contents,
// any line ending) and returns the emitted Tests in order.
func (p *Parser) ParseBytes(data []byte) ([]Test, error) {
	lines := splitLines(normalizeLineEndings(data))
	for i, line := range lines {
		if err := p.feed(i+1, line); err != nil {
			return nil, err
		}
	}
	p.finalize()
	return p.tests, nil
}

func (p *Parser) promptLine() string {
	return p.cfg.Prefix + p.cfg.Prompt
}

// isBarePrompt matches rule 1 of §4.2: the line equals prefix+prompt,
// or that with trailing space trimmed, or with an extra trailing space.
func (p *Parser) isBarePrompt(line string) bool {
	pp := p.promptLine()
	return line == pp || line == strings.TrimRight(pp, " ") || line == pp+" "
}

func (p *Parser) feed(lineno int, line string) error {
	pp := p.promptLine()

	switch {
	case p.isBarePrompt(line):
		p.finalize()
		return nil

	case strings.HasPrefix(line, pp) && len(line) > len(pp):
		p.finalize()
		command := line[len(pp):]
		return p.startCommand(lineno, command)

	case p.pending != nil && p.pending.Mode == ModeOutput:
		if p.cfg.Prefix != "" && !strings.HasPrefix(line, p.cfg.Prefix) {
			p.finalize()
			return nil
		}
		rest := strings.TrimPrefix(line, p.cfg.Prefix)
		p.pending.Expected += rest + "\n"
		return nil

	default:
		return nil
	}
}

// startCommand handles rule 2 of §4.2: inspect the command text for
// the inline marker and either emit immediately or start accumulating.
func (p *Parser) startCommand(lineno int, command string) error {
	marker := p.cfg.InlinePrefix
	idx := strings.LastIndex(command, marker)
	if idx < 0 {
		p.pending = &Test{SourceLine: lineno, Command: command, Mode: ModeOutput}
		return nil
	}

	left := command[:idx]
	payload := command[idx+len(marker):]

	mode := ModeText
	rest := payload
	for _, d := range inlineDirectives {
		if strings.HasPrefix(payload, d.token) {
			mode = d.mode
			rest = payload[len(d.token):]
			break
		}
	}

	t := Test{Index: p.next, SourceLine: lineno, Command: left, Mode: mode}

	if mode == ModeLines {
		n, err := parseNonNegativeInt(rest)
		if err != nil {
			return Fatalf("%s:%d: invalid --lines payload %q: %v", p.path, lineno, rest, err)
		}
		t.ExpectedLines = n
	} else {
		if mode != ModeText && rest == "" {
			return Fatalf("%s:%d: empty inline payload for mode %q", p.path, lineno, mode)
		}
		t.Expected = rest
	}

	p.next++
	p.tests = append(p.tests, t)
	return nil
}

func (p *Parser) finalize() {
	if p.pending == nil {
		return
	}
	t := *p.pending
	t.Index = p.next
	p.next++
	p.tests = append(p.tests, t)
	p.pending = nil
}

func parseNonNegativeInt(s string) (int, error) {
	if s == "" {
		return 0, errEmptyInt
	}
	n := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, errNotANumber
		}
		n = n*10 + int(c-'0')
	}
	return n, nil
}
