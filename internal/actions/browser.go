package actions

import (
	"context"
	"os/exec"
	"runtime"

	"github.com/jssimporter/jss-helper/internal/logger"
)

// ExecBrowser opens URLs with the platform's opener command.
type ExecBrowser struct{}

// Open launches the default browser on macOS and Linux and does nothing elsewhere.
func (ExecBrowser) Open(ctx context.Context, url string) error {
	var opener string
	switch runtime.GOOS {
	case "darwin":
		opener = "open"
	case "linux":
		opener = "xdg-open"
	default:
		logger.Debug("[DEBUG] No browser opener for %s; not opening %s\n", runtime.GOOS, url)
		return nil
	}
	return exec.CommandContext(ctx, opener, url).Run()
}
