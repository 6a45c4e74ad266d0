package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"fileview/internal/filetype"
	"fileview/internal/model"
)

func newRecentCommand(r *runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recent",
		Short: "Show or edit the recent files list",
		Args:  cobra.NoArgs,
	}

	var asJSON bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List recently opened files, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.with(cmd, func(ctx context.Context, s *Services) error {
				files, err := s.Recent.GetRecentFiles(ctx)
				if err != nil {
					return err
				}
				if asJSON {
					enc := json.NewEncoder(cmd.OutOrStdout())
					enc.SetIndent("", "  ")
					return enc.Encode(files)
				}
				return r.printRecent(cmd, files)
			})
		},
	}
	list.Flags().BoolVar(&asJSON, "json", false, "print the list as JSON")

	clearOne := &cobra.Command{
		Use:   "clear URI",
		Short: "Remove a file from the list",
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 1 {
				return newUsageError("clear accepts exactly one URI")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			uri, err := toURI(args[0])
			if err != nil {
				return err
			}
			return r.with(cmd, func(ctx context.Context, s *Services) error {
				files, err := s.Recent.ClearRecentFile(ctx, uri)
				if err != nil {
					return err
				}
				return r.printRecent(cmd, files)
			})
		},
	}

	clearAll := &cobra.Command{
		Use:   "clear-all",
		Short: "Forget every recent file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.with(cmd, func(ctx context.Context, s *Services) error {
				if err := s.Recent.ClearAllRecentFiles(ctx); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Recent files cleared.")
				return nil
			})
		},
	}

	// Bare "recent" lists.
	cmd.RunE = list.RunE
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the list as JSON")
	cmd.AddCommand(list, clearOne, clearAll)
	return cmd
}

func (r *runner) printRecent(cmd *cobra.Command, files []model.FileDescriptor) error {
	out := cmd.OutOrStdout()
	if len(files) == 0 {
		fmt.Fprintln(out, "No recent files.")
		return nil
	}
	now := r.now()
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tTYPE\tSIZE\tOPENED\tURI")
	for _, f := range files {
		opened := "-"
		if f.OpenedAt != nil {
			opened = filetype.FormatOpenedAt(*f.OpenedAt, now)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", f.Name, f.TypeName, filetype.FormatSize(f.Size), opened, f.URI)
	}
	return w.Flush()
}
