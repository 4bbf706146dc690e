package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newVersionCmd creates the Cobra command for displaying the client version
// and, optionally, the probed API server version.
func newVersionCmd() *cobra.Command {
	var serverVersion bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version number of kubeclient",
		Long:  `All software has versions. This is kubeclient's.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "kubeclient version %s\n", rootCmd.Version)

			if !serverVersion {
				return nil
			}

			cluster, err := newCluster()
			if err != nil {
				return err
			}
			v, err := cluster.Version(cmd.Context())
			if err != nil {
				return fmt.Errorf("probing server version: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "server version %s\n", v.String())
			return nil
		},
	}

	cmd.Flags().BoolVar(&serverVersion, "server-version", false,
		"also probe and print the API server version")
	return cmd
}
