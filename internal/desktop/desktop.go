// Package desktop hands files to the applications installed on the host.
//
// The Viewer runs the platform "open" command (xdg-open, open, ...) and the
// Sharer attaches files to a new mail message through xdg-email. Both run
// commands through github.com/jmgilman/go/exec and translate launcher exit
// statuses into fileerr codes so the opener can pick a fallback.
package desktop

import (
	"context"
	stderrors "errors"
	osexec "os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/jmgilman/go/exec"

	"fileview/internal/fileerr"
)

// xdg-utils exit statuses.
const (
	xdgToolMissing  = 3
	xdgActionFailed = 4
)

// DefaultOpenCommand returns the launcher used to open files on goos.
func DefaultOpenCommand(goos string) []string {
	switch goos {
	case "darwin":
		return []string{"open"}
	case "windows":
		return []string{"rundll32", "url.dll,FileProtocolHandler"}
	default:
		return []string{"xdg-open"}
	}
}

// DefaultChooserCommand returns the launcher that lets the user pick an app.
// An empty result means the platform has no separate chooser.
func DefaultChooserCommand(goos string) []string {
	switch goos {
	case "windows":
		return []string{"rundll32", "shell32.dll,OpenAs_RunDLL"}
	default:
		return nil
	}
}

// DefaultShareCommand returns the command used to share a file.
func DefaultShareCommand(goos string) []string {
	switch goos {
	case "darwin", "windows":
		return nil
	default:
		return []string{"xdg-email", "--attach"}
	}
}

func defaultsFor(cmd []string, fallback func(string) []string) []string {
	if len(cmd) > 0 {
		return cmd
	}
	return fallback(runtime.GOOS)
}

func newExecutor() exec.Executor {
	return exec.New(exec.WithInheritEnv())
}

// run executes argv with ctx and timeout applied on a clone of e.
func run(e exec.Executor, ctx context.Context, timeout time.Duration, argv []string) (*exec.Result, error) {
	c := e.Clone().WithContext(ctx)
	if timeout > 0 {
		c = c.WithTimeout(timeout.String())
	}
	return c.Run(argv...)
}

// classify maps a launcher failure onto the fileerr taxonomy.
func classify(err error) error {
	var execErr *exec.ExecError
	if !stderrors.As(err, &execErr) {
		return err
	}
	switch {
	case stderrors.Is(execErr, osexec.ErrNotFound):
		return fileerr.ViewerUnavailable(err)
	case execErr.ExitCode == xdgToolMissing:
		return fileerr.ViewerUnavailable(err)
	case execErr.ExitCode == xdgActionFailed,
		strings.Contains(execErr.Stderr, "No application knows how to open"):
		return fileerr.NoCompatibleApp("", "", err)
	}
	return err
}
