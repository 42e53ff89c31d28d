package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hugo/focustrack/internal/config"
)

var version = "0.1.0"

// NewRootCmd builds the focustrack command tree.
func NewRootCmd(cfg *config.Config) *cobra.Command {
	root := &cobra.Command{
		Use:           "focustrack",
		Short:         "Track and analyze application focus time",
		Long:          "focustrack records which window you are working in and summarizes your time by app and category.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newTrackCmd(cfg),
		newAnalyzeCmd(cfg),
		newCategorizeCmd(cfg),
		newStopCmd(cfg),
		newStatusCmd(cfg),
		newVersionCmd(),
	)

	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the focustrack version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "focustrack %s\n", version)
		},
	}
}
