/*
Package shtest validates interactive shell transcripts: plain-text
files that look like a terminal session — a prompt, a command, and
the output the command is expected to produce.

A transcript is scanned line by line for tests:

	$ echo hello
	hello
	$ echo hi #→ hi

The first form accumulates the lines that follow the command, blank
lines included, until the next prompt; the second puts the expectation inline after the configurable
marker (default "#→ "). The marker also selects a richer match mode:

	$ printf 'a\nb\nc\n' #→ --lines 3
	$ ls missing.txt #→ --regex No such file
	$ cat greeting.txt #→ --file expected/greeting.txt
	$ date +%Y #→ --eval date +%Y

Commands run in a single persistent shell session per file, so
variables, working directory and shell functions set by one test are
visible to the next:

	$ X=5
	$ echo $X
	5

# Selecting tests

Ranges like "1,3,5-7" select which tests to run or skip via --test and
--skip; --skip wins when both match the same index.

# Library use

Besides the shtest CLI, [Driver] is usable directly from a Go test:

	d, _ := shtest.NewDriver(shtest.DriverConfig{
		Parser: shtest.DefaultParserConfig(),
	}, reporter)
	exitCode, results, err := d.RunFiles(ctx, []string{"testdata/basics.txt"})
*/
package shtest
