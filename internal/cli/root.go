package cli

import (
	"github.com/spf13/cobra"
)

var configPath string

func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "somnia",
		Short:         "Somnia is a self-hosted dream journal",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "somnia.yaml", "path to the config file")

	root.AddCommand(newServeCommand())
	root.AddCommand(newExportCommand())
	return root
}

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the journal server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func newExportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Print the stored journal as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd.Context(), cmd.OutOrStdout())
		},
	}
}
