package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/dragframe/internal/cli/styles"
)

var versionShort bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version and build information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if versionShort {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), buildInfo.String())
			return err
		}
		_, err := fmt.Fprint(cmd.OutOrStdout(), styles.NewVersionRenderer(styles.NewTheme()).Render(buildInfo))
		return err
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().BoolVarP(&versionShort, "short", "s", false, "print a single line")
}
