package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"fileview/internal/filetype"
)

func newTypesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the supported file types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "TYPE\tNAME\tEXTENSIONS\tPREVIEW")
			for _, p := range filetype.Profiles() {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.Key, p.DisplayName, strings.Join(p.Extensions, ","), yesNo(p.CanPreviewInApp))
			}
			return w.Flush()
		},
	}
}

func newClassifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "classify NAME...",
		Short: "Show the file type of each name",
		Example: `  fileview classify report.PDF notes.txt
  fileview classify archive.tar.gz`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) == 0 {
				return newUsageError("missing required argument: NAME\n\nExample:\n  fileview classify report.pdf")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tTYPE\tDISPLAY\tSUPPORTED")
			for _, name := range args {
				p := filetype.Classify(name)
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", name, p.Key, p.DisplayName, yesNo(filetype.IsSupported(name)))
			}
			return w.Flush()
		},
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
