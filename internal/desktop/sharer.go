package desktop

import (
	"context"
	"errors"
	"log/slog"
	osexec "os/exec"
	"time"

	"github.com/jmgilman/go/exec"

	"fileview/internal/config"
	"fileview/internal/service"
	"fileview/internal/storage"
)

// ErrNoShareCommand is returned by Share on platforms without a share command.
var ErrNoShareCommand = errors.New("no share command available")

// Sharer attaches files to a mail draft and opens URLs with the launcher.
type Sharer struct {
	exec     exec.Executor
	shareCmd []string
	openCmd  []string
	timeout  time.Duration
	lookPath func(string) (string, error)
	logger   *slog.Logger
}

var _ service.Sharer = (*Sharer)(nil)

// SharerOption customizes a Sharer.
type SharerOption func(*Sharer)

// WithSharerExecutor replaces the command executor.
func WithSharerExecutor(e exec.Executor) SharerOption {
	return func(s *Sharer) { s.exec = e }
}

// WithLookPath replaces the binary lookup used by IsAvailable.
func WithLookPath(fn func(string) (string, error)) SharerOption {
	return func(s *Sharer) { s.lookPath = fn }
}

// WithShareCommand overrides the share command.
func WithShareCommand(cmd ...string) SharerOption {
	return func(s *Sharer) { s.shareCmd = cmd }
}

// NewSharer builds a Sharer from cfg.
func NewSharer(cfg config.ViewerConfig, opts ...SharerOption) *Sharer {
	s := &Sharer{
		exec:     newExecutor(),
		shareCmd: defaultsFor(nil, DefaultShareCommand),
		openCmd:  defaultsFor(cfg.OpenCommand, DefaultOpenCommand),
		timeout:  cfg.Timeout,
		lookPath: osexec.LookPath,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// IsAvailable reports whether the share command is installed.
func (s *Sharer) IsAvailable(_ context.Context) bool {
	if len(s.shareCmd) == 0 {
		return false
	}
	_, err := s.lookPath(s.shareCmd[0])
	return err == nil
}

// Share hands the file to the share command. The MIME type is only logged;
// xdg-email detects it itself.
func (s *Sharer) Share(ctx context.Context, uri string, opts service.ShareOptions) error {
	if len(s.shareCmd) == 0 {
		return ErrNoShareCommand
	}
	argv := append(append([]string{}, s.shareCmd...), storage.PathFromURI(uri))
	s.logger.Debug("share_launch", "command", s.shareCmd[0], "mime_type", opts.MimeType)
	_, err := run(s.exec, ctx, s.timeout, argv)
	return err
}

// OpenURL passes uri to the launcher unchanged.
func (s *Sharer) OpenURL(ctx context.Context, uri string) error {
	argv := append(append([]string{}, s.openCmd...), uri)
	_, err := run(s.exec, ctx, s.timeout, argv)
	return err
}
