package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tsawler/voevent"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "voevent version %s (library %s)\n", version, voevent.LibraryVersion)
		},
	}
}
