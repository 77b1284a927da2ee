package main

import (
	"os"
	"strconv"

	"golang.org/x/term"
)

// resolveColor implements the §6 --color auto/always/never rule: auto
// enables color only when stdout is an attached terminal.
func resolveColor(mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		return term.IsTerminal(int(os.Stdout.Fd()))
	}
}

// resolveWidth implements the §6 separator-width rule: COLUMNS if set
// and valid, else the terminal's reported width, else 50.
func resolveWidth() int {
	if v := os.Getenv("COLUMNS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}

	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}

	return 50
}
