package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wattle/kubeclient/pkg/client"
	"github.com/wattle/kubeclient/pkg/resource"
)

// newWatchCmd creates the command for streaming change events.
func newWatchCmd() *cobra.Command {
	var until string

	cmd := &cobra.Command{
		Use:   "watch <resource> [name]",
		Short: "Stream change events for a resource or collection",
		Long: `Opens a long-lived watch connection and prints each change event as it
arrives. The stream runs until the server closes the connection, the process
is interrupted, or --until matches an event type.

There is no automatic reconnection: when the connection drops, the command
exits and reports how the stream ended.

Examples:

  kubeclient watch pods
  kubeclient watch jobs sync --until DELETED`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if flagAPIGroup != "" {
				return fmt.Errorf("watch supports core-API resources only")
			}

			cluster, err := newCluster()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			name := ""
			if len(args) == 2 {
				name = args[1]
			}
			path := resource.WatchCorePath(flagNamespace, args[0], name)

			out := cmd.OutOrStdout()
			stopped, err := cluster.Watch(ctx, path, nil, func(e client.Event) bool {
				fmt.Fprintf(out, "%-10s %s\n", e.Type, displayName(e.Object))
				return until != "" && string(e.Type) == until
			})
			if err != nil {
				if errors.Is(err, context.Canceled) {
					return nil
				}
				return err
			}

			if stopped {
				fmt.Fprintf(out, "watch stopped: matched --until %s\n", until)
			} else {
				fmt.Fprintln(out, "watch ended: stream closed by server")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&until, "until", "",
		"stop watching when an event of this type arrives (ADDED, MODIFIED, DELETED)")
	return cmd
}
