package commands

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "askdesk",
		Short: "Client for the campus question/FAQ service",
	}

	rootCmd.PersistentFlags().String("conf", "", "config file path, e.g. ./askdesk.yaml")

	rootCmd.AddCommand(
		NewLoginCommand(),
		NewLogoutCommand(),
		NewWhoamiCommand(),
		NewRefreshCommand(),
		NewQuestionsCommand(),
		NewFAQCommand(),
		NewHealthCommand(),
		NewVersionCommand(),
	)

	return rootCmd
}
