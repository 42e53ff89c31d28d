package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hugo/focustrack/internal/category"
	"github.com/hugo/focustrack/internal/config"
)

func newCategorizeCmd(cfg *config.Config) *cobra.Command {
	var catFile string

	cmd := &cobra.Command{
		Use:   "categorize <app> <category>",
		Short: "Set or override the category for an app",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if catFile != "" {
				cfg.Category.Path = catFile
			}

			resolver, err := category.LoadResolver(cfg.Category.Path, nil)
			if err != nil {
				return err
			}

			if err := resolver.EditMapping(args[0], args[1]); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Mapped %q to %q\n", args[0], args[1])
			return nil
		},
	}

	cmd.Flags().StringVarP(&catFile, "category-file", "c", "", "path to the category mapping (default app_categories.json)")

	return cmd
}
