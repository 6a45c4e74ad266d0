package cli

import (
	"context"
	"fmt"
	"path"
	"path/filepath"

	"github.com/spf13/cobra"

	"fileview/internal/filetype"
	"fileview/internal/model"
	"fileview/internal/storage"
)

func newOpenCommand(r *runner) *cobra.Command {
	var name, mimeType string

	cmd := &cobra.Command{
		Use:   "open [PATH|URI]",
		Short: "Open a file in the system viewer and remember it",
		Long: `Open a file in the system viewer and add it to the recent files list.
Without an argument the platform file dialog is shown.`,
		Example: `  fileview open ./report.pdf
  fileview open s3://docs/q3/summary.xlsx --name "Q3 summary.xlsx"
  fileview open`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) > 1 {
				return newUsageError("open accepts at most one PATH or URI")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			var uri string
			if len(args) == 1 {
				var err error
				if uri, err = toURI(args[0]); err != nil {
					return err
				}
			}
			return r.with(cmd, func(ctx context.Context, s *Services) error {
				var d model.FileDescriptor
				if uri == "" {
					picked, err := pick(ctx, s.Picker)
					if err != nil {
						return err
					}
					if picked == nil {
						fmt.Fprintln(cmd.OutOrStdout(), "No file selected.")
						return nil
					}
					if name != "" {
						picked.Name = name
					}
					if mimeType != "" {
						picked.MimeType = mimeType
					}
					d = filetype.Describe(*picked)
				} else {
					d = describe(ctx, s.Filesystem, uri, name, mimeType)
				}

				if err := s.Opener.Open(ctx, d); err != nil {
					return err
				}
				if _, err := s.Recent.SaveRecentFile(ctx, d); err != nil {
					cmd.PrintErrln("Warning: could not record recent file:", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Opened %s (%s, %s)\n", d.Name, d.TypeName, filetype.FormatSize(d.Size))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "display name (defaults to the last path element)")
	cmd.Flags().StringVar(&mimeType, "mime", "", "MIME type reported for the file")
	return cmd
}

func pick(ctx context.Context, p model.Picker) (*model.RawFile, error) {
	if p == nil {
		return nil, newUsageError("missing required argument: PATH or URI\n\nExample:\n  fileview open ./report.pdf")
	}
	return p.Pick(ctx)
}

// toURI turns a bare path into a file URI. Arguments that already carry a
// scheme are passed through.
func toURI(arg string) (string, error) {
	if storage.SchemeOf(arg) != "" {
		return arg, nil
	}
	abs, err := filepath.Abs(arg)
	if err != nil {
		return "", fmt.Errorf("resolve path %q: %w", arg, err)
	}
	return storage.LocalURI(filepath.ToSlash(abs)), nil
}

func describe(ctx context.Context, fs storage.Filesystem, uri, name, mimeType string) model.FileDescriptor {
	if name == "" {
		name = path.Base(storage.PathFromURI(uri))
	}
	raw := model.RawFile{URI: uri, Name: name, MimeType: mimeType}
	if fs != nil {
		if info, err := fs.Stat(ctx, uri); err == nil && info.Size > 0 {
			raw.Size = uint64(info.Size)
		}
	}
	return filetype.Describe(raw)
}
