package desktop

import (
	"context"
	stderrors "errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/jmgilman/go/exec"

	"fileview/internal/config"
	"fileview/internal/model"
	"fileview/internal/storage"
)

// pickCancelled is the exit status of zenity and osascript when the user
// closes the dialog.
const pickCancelled = 1

// ErrNoPickCommand is returned when the platform has no file dialog command.
var ErrNoPickCommand = stderrors.New("no file dialog command configured")

// DefaultPickCommand returns the dialog command that prints the chosen path.
func DefaultPickCommand(goos string) []string {
	switch goos {
	case "darwin":
		return []string{"osascript", "-e", "POSIX path of (choose file)"}
	case "windows":
		return nil
	default:
		return []string{"zenity", "--file-selection"}
	}
}

// Picker asks the user for a file through the platform file dialog.
type Picker struct {
	exec    exec.Executor
	pickCmd []string
	fs      storage.Filesystem
}

var _ model.Picker = (*Picker)(nil)

// PickerOption customizes a Picker.
type PickerOption func(*Picker)

// WithPickerExecutor replaces the command executor.
func WithPickerExecutor(e exec.Executor) PickerOption {
	return func(p *Picker) { p.exec = e }
}

// NewPicker builds a Picker. fs is used to report the size of the chosen file
// and may be nil.
func NewPicker(cfg config.ViewerConfig, fs storage.Filesystem, opts ...PickerOption) *Picker {
	p := &Picker{
		exec:    newExecutor(),
		pickCmd: defaultsFor(cfg.PickCommand, DefaultPickCommand),
		fs:      fs,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Pick shows the dialog. It returns nil, nil when the user cancels. The
// dialog is not bounded by the launcher timeout.
func (p *Picker) Pick(ctx context.Context) (*model.RawFile, error) {
	if len(p.pickCmd) == 0 {
		return nil, ErrNoPickCommand
	}

	res, err := run(p.exec, ctx, 0, p.pickCmd)
	if err != nil {
		var execErr *exec.ExecError
		if stderrors.As(err, &execErr) && execErr.ExitCode == pickCancelled {
			return nil, nil
		}
		return nil, fmt.Errorf("file dialog: %w", err)
	}

	chosen := strings.TrimSpace(res.Stdout)
	if chosen == "" {
		return nil, nil
	}
	abs := filepath.ToSlash(chosen)
	raw := &model.RawFile{URI: storage.LocalURI(abs), Name: path.Base(abs)}
	if p.fs != nil {
		if info, err := p.fs.Stat(ctx, raw.URI); err == nil && info.Size > 0 {
			raw.Size = uint64(info.Size)
		}
	}
	return raw, nil
}
