package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/wattle/kubeclient/pkg/client"
	"github.com/wattle/kubeclient/pkg/resource"
)

// newGetCmd creates the command for reading a resource or listing a
// collection.
func newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <resource> [name]",
		Short: "Get a resource or list a collection",
		Long: `Fetches a single resource by name, or lists the whole collection when no
name is given. Single resources are printed as JSON; collections as a name
column.

Examples:

  kubeclient get pods
  kubeclient get pods web -n default
  kubeclient get jobs sync --api-group batch`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cluster, err := newCluster()
			if err != nil {
				return err
			}

			name := ""
			if len(args) == 2 {
				name = args[1]
			}

			res, err := cluster.Get(cmd.Context(), resourcePath(args[0], name), nil)
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), res)
		},
	}
}

// printResult renders an operation result: a name column for lists, pretty
// JSON for single resources.
func printResult(w io.Writer, res client.Result) error {
	if res.List != nil {
		fmt.Fprintln(w, "NAME")
		for _, obj := range res.List {
			fmt.Fprintln(w, displayName(obj))
		}
		return nil
	}

	data, err := json.MarshalIndent(res.Object.Raw(), "", "  ")
	if err != nil {
		return fmt.Errorf("rendering resource: %w", err)
	}
	fmt.Fprintln(w, string(data))
	return nil
}

func displayName(obj resource.Object) string {
	if u, ok := obj.(*resource.Unstructured); ok && u.Name() != "" {
		return u.Name()
	}
	return "<unnamed>"
}
