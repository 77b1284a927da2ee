package shtest

import (
	"os"
	"path/filepath"
	"regexp"

	"golang.org/x/tools/txtar"
)

// fixtureMarker matches a txtar file header line, e.g. "-- name --".
var fixtureMarker = regexp.MustCompile(`(?m)^-- .+ --\r?\n`)

// FixtureSet holds named files embedded at the end of a transcript
// file via trailing txtar sections (SPEC_FULL §4.1). It supplements,
// never replaces, files that already exist on disk.
type FixtureSet struct {
	files map[string][]byte
}

// splitFixtures separates a transcript's own text from any trailing
// txtar-embedded fixture section. If no txtar marker is present, the
// whole input is the transcript and the fixture set is empty.
func splitFixtures(data []byte) ([]byte, FixtureSet) {
	loc := fixtureMarker.FindIndex(data)
	if loc == nil {
		return data, FixtureSet{}
	}

	transcript := data[:loc[0]]
	archive := txtar.Parse(data[loc[0]:])

	files := make(map[string][]byte, len(archive.Files))
	for _, f := range archive.Files {
		files[f.Name] = f.Data
	}
	return transcript, FixtureSet{files: files}
}

// Lookup returns the contents of a fixture by name.
func (fs FixtureSet) Lookup(name string) ([]byte, bool) {
	if fs.files == nil {
		return nil, false
	}
	data, ok := fs.files[name]
	return data, ok
}

// ReadFile reads path from disk, falling back to the fixture whose name
// equals path exactly when the disk read fails. This backs ModeFile
// (§4.3); the fallback is served from memory and writes nothing to disk.
func (fs FixtureSet) ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err == nil {
		return data, nil
	}
	if fixture, ok := fs.Lookup(path); ok {
		return fixture, nil
	}
	return nil, err
}

// Materialize writes every fixture not already present on disk into
// the current directory, mirroring gfanton-tsar/testscript.go's own
// archive-to-workdir materialization. ModeEval runs its payload as a
// real shell command in a fresh subshell, so a fixture it names (e.g.
// "cat golden.txt") needs to actually exist on disk, unlike ModeFile's
// in-memory ReadFile fallback. The returned cleanup removes exactly
// the files this call created, leaving anything already on disk
// untouched (fixtures supplement, never replace).
func (fs FixtureSet) Materialize() (cleanup func(), err error) {
	var created []string
	cleanup = func() {
		for _, name := range created {
			os.Remove(name)
		}
	}

	for name, data := range fs.files {
		if _, statErr := os.Stat(name); statErr == nil {
			continue
		}
		if dir := filepath.Dir(name); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				cleanup()
				return func() {}, err
			}
		}
		if err := os.WriteFile(name, data, 0o644); err != nil {
			cleanup()
			return func() {}, err
		}
		created = append(created, name)
	}
	return cleanup, nil
}
