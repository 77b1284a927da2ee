package shtest

import "os"

// NewScratchDir creates the private temporary directory of §5: owner-only
// permissions, rooted under TMPDIR (os.TempDir's default of /tmp when
// unset). The returned cleanup func removes it and must be called on
// every exit path, including fatal ones.
func NewScratchDir() (dir string, cleanup func(), err error) {
	dir, err = os.MkdirTemp("", "shtest-")
	if err != nil {
		return "", func() {}, err
	}
	if err := os.Chmod(dir, 0o700); err != nil {
		os.RemoveAll(dir)
		return "", func() {}, err
	}
	return dir, func() { os.RemoveAll(dir) }, nil
}
