// Package cli implements the fileview command line tool.
package cli

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"fileview/internal/app"
	"fileview/internal/config"
	"fileview/internal/fileerr"
	"fileview/internal/model"
	"fileview/internal/service"
	"fileview/internal/storage"
)

// Services are the components the commands drive.
type Services struct {
	Filesystem storage.Filesystem
	Opener     service.FileOpener
	Recent     service.RecentFilesStore
	// Picker is used by "open" without an argument. It may be nil.
	Picker     model.Picker
}

// Factory builds Services. The returned func releases them.
type Factory func(ctx context.Context) (*Services, func() error, error)

// DefaultFactory wires services from the environment. Logs go to stderr so
// they never mix with command output.
func DefaultFactory(ctx context.Context) (*Services, func() error, error) {
	cfg := config.Load()
	logger := config.SetupLogger(cfg, os.Stderr)

	a, err := app.New(ctx, cfg, logger, prometheus.NewRegistry())
	if err != nil {
		return nil, nil, err
	}
	return &Services{Filesystem: a.Filesystem, Opener: a.Opener, Recent: a.Recent, Picker: a.Picker}, a.Close, nil
}

// NewRootCommand assembles the command tree around factory.
func NewRootCommand(factory Factory) *cobra.Command {
	root := &cobra.Command{
		Use:   "fileview",
		Short: "Classify, open and remember local documents",
		Long: `fileview classifies documents by extension, opens them in the
system viewer (copying provider files to a local staging directory first)
and keeps a list of the 20 most recently opened files.

Exit Codes:
  0  - Success
  1  - Command failed
  2  - Usage error`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	r := &runner{factory: factory, now: time.Now}
	root.AddCommand(
		newTypesCommand(),
		newClassifyCommand(),
		newOpenCommand(r),
		newRecentCommand(r),
	)
	return root
}

// Execute runs the tool with the process arguments.
func Execute(ctx context.Context, stdout, stderr io.Writer) int {
	root := NewRootCommand(DefaultFactory)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		printError(root, err)
		return ExitCode(err)
	}
	return ExitSuccess
}

// printError reports err with the message a user should see, plus the
// install hint when no viewer handles the file type.
func printError(cmd *cobra.Command, err error) {
	cmd.PrintErrln("Error:", fileerr.Message(err))
	if hint := fileerr.SuggestedApp(err); hint != "" {
		cmd.PrintErrln("Hint: install", hint)
	}
}

// runner defers building services until a command needs them.
type runner struct {
	factory Factory
	now     func() time.Time
}

func (r *runner) with(cmd *cobra.Command, fn func(ctx context.Context, s *Services) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	s, closeFn, err := r.factory(ctx)
	if err != nil {
		return err
	}
	if closeFn != nil {
		defer closeFn()
	}
	return fn(ctx, s)
}
