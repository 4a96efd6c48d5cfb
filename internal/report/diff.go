package report

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/jssimporter/jss-helper/internal/logger"
)

// Differ compares two reports side by side.
type Differ interface {
	Diff(ctx context.Context, left, right string) (string, error)
}

// ExecDiffer runs an external side-by-side diff over two temporary files.
// The zero value runs "diff -d -y".
type ExecDiffer struct {
	Command string
	Args    []string
}

// Diff writes left and right to temporary files and returns the diff tool's
// output. Exit status 1 means the inputs differ and is not an error.
func (d ExecDiffer) Diff(ctx context.Context, left, right string) (string, error) {
	command, args := d.Command, d.Args
	if command == "" {
		command, args = "diff", []string{"-d", "-y"}
	}

	dir, err := os.MkdirTemp("", "jss-helper-diff-")
	if err != nil {
		return "", fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	files := make([]string, 0, 2)
	for i, text := range []string{left, right} {
		path := filepath.Join(dir, fmt.Sprintf("report_%d.txt", i))
		if err := os.WriteFile(path, []byte(text+"\n"), 0o600); err != nil {
			return "", fmt.Errorf("failed to write %s: %w", path, err)
		}
		files = append(files, path)
	}

	logger.Debug("[DEBUG] Running %s %v %v\n", command, args, files)
	out, err := exec.CommandContext(ctx, command, append(args, files...)...).Output()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
		return string(out), nil
	}
	if err != nil {
		return "", fmt.Errorf("%s failed: %w", command, err)
	}
	return string(out), nil
}
