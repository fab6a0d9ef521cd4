package processor

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// CurrentDirectoryMarker stands for the working directory of the process.
const CurrentDirectoryMarker = "<Current directory>"

// ResolveOutputDir maps an empty path or CurrentDirectoryMarker to the
// working directory and returns every other path unchanged.
func ResolveOutputDir(configured string) (string, error) {
	if configured == "" || configured == CurrentDirectoryMarker {
		return os.Getwd()
	}
	return configured, nil
}

// EnsureOutputDir creates path and its parents when missing. An error here
// means no file of the run can be written.
func EnsureOutputDir(path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("cannot create output directory: %w", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot access output directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("output path %s is not a directory", path)
	}
	return nil
}

// OutputPath returns where the converted copy of src is written. Only the
// base name of src is kept, so files with equal names from different
// directories land on the same output path.
func OutputPath(outputDir, src string) string {
	return filepath.Join(outputDir, filepath.Base(src))
}

// outputClaims remembers the latest input claiming each output path. All
// methods are goroutine-safe.
type outputClaims struct {
	mu     sync.Mutex
	owners map[string]string // output path -> input path
}

func newOutputClaims() *outputClaims {
	return &outputClaims{owners: make(map[string]string)}
}

// claim records input as the writer of output. It returns the previous owner
// and true when another input already claimed the same output.
func (c *outputClaims) claim(output, input string) (string, bool) {
	key := pathKey(output)
	c.mu.Lock()
	defer c.mu.Unlock()

	owner, exists := c.owners[key]
	c.owners[key] = input
	if exists && pathKey(owner) != pathKey(input) {
		return owner, true
	}
	return "", false
}
