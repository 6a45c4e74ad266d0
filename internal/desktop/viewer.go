package desktop

import (
	"context"
	"log/slog"
	"time"

	"github.com/jmgilman/go/exec"

	"fileview/internal/config"
	"fileview/internal/service"
	"fileview/internal/storage"
)

// Viewer opens local files with the platform launcher.
type Viewer struct {
	exec       exec.Executor
	openCmd    []string
	chooserCmd []string
	timeout    time.Duration
	logger     *slog.Logger
}

var _ service.Viewer = (*Viewer)(nil)

// ViewerOption customizes a Viewer.
type ViewerOption func(*Viewer)

// WithViewerExecutor replaces the command executor.
func WithViewerExecutor(e exec.Executor) ViewerOption {
	return func(v *Viewer) { v.exec = e }
}

// WithViewerLogger sets the logger.
func WithViewerLogger(l *slog.Logger) ViewerOption {
	return func(v *Viewer) { v.logger = l }
}

// NewViewer builds a Viewer from cfg. Empty commands fall back to the
// platform defaults.
func NewViewer(cfg config.ViewerConfig, opts ...ViewerOption) *Viewer {
	v := &Viewer{
		exec:       newExecutor(),
		openCmd:    defaultsFor(cfg.OpenCommand, DefaultOpenCommand),
		chooserCmd: defaultsFor(cfg.ChooserCommand, DefaultChooserCommand),
		timeout:    cfg.Timeout,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Open runs the launcher on the file behind localURI. When the chooser is
// not suppressed and the platform has one, the chooser command is used.
func (v *Viewer) Open(ctx context.Context, localURI string, opts service.ViewerOptions) error {
	cmd := v.openCmd
	if !opts.SuppressChooser && len(v.chooserCmd) > 0 {
		cmd = v.chooserCmd
	}
	argv := append(append([]string{}, cmd...), storage.PathFromURI(localURI))

	v.logger.Debug("viewer_launch", "command", cmd[0], "display_name", opts.DisplayName)
	if _, err := run(v.exec, ctx, v.timeout, argv); err != nil {
		return classify(err)
	}
	return nil
}
