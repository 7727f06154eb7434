package root

import (
	"github.com/spf13/cobra"
)

// RootCmd is the top-level "notes" command; subcommands attach themselves in main.
var RootCmd = &cobra.Command{
	Use:           "notes",
	Short:         "Notes CLI",
	Long:          "Command line interface for registering, logging in and managing your notes.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func GetRoot() *cobra.Command {
	return RootCmd
}
