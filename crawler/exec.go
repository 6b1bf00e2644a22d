package crawler

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// CommandFunc runs an executable and returns its standard output.
// A non-nil error means the crawl could not be performed at all.
type CommandFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

// execCommand runs the crawler as a child process. A non-zero exit status is
// not an error: muffet exits 1 whenever it found broken links.
func execCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.Output()
	if err == nil {
		return out, nil
	}
	if ctx.Err() != nil {
		return nil, fmt.Errorf("run crawler: %w", ctx.Err())
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return out, nil
	}
	return nil, &SetupError{Binary: name, Err: err}
}

// Locate finds the crawler executable. A bare name is looked up on PATH
// first, then in the working directory. A name containing a path separator
// is only checked as given.
func Locate(name string) (string, error) {
	if path, err := exec.LookPath(name); err == nil {
		return path, nil
	}
	if strings.ContainsRune(name, filepath.Separator) || strings.ContainsRune(name, '/') {
		return "", fmt.Errorf("%w: %s", ErrCrawlerNotFound, name)
	}

	local := "." + string(filepath.Separator) + name
	info, err := os.Stat(local)
	if err != nil || !info.Mode().IsRegular() {
		return "", fmt.Errorf("%w: %s is neither on PATH nor in the working directory", ErrCrawlerNotFound, name)
	}
	return local, nil
}
