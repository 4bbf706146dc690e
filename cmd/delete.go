package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newDeleteCmd creates the command for deleting a resource.
func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <resource> <name>",
		Short: "Delete a resource",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cluster, err := newCluster()
			if err != nil {
				return err
			}

			if _, err := cluster.Delete(cmd.Context(), resourcePath(args[0], args[1]), nil); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s/%s deleted\n", args[0], args[1])
			return nil
		},
	}
}
