// Package cmd provides the command-line interface for kubeclient.
//
// The CLI is a thin shell over pkg/client: every subcommand builds a cluster
// handle from the persistent --server/--port flags and dispatches one
// operation.
//
// Command structure:
//
//	kubeclient get <resource> [name]       # Read a resource or list a collection
//	kubeclient watch <resource> [name]     # Stream change events
//	kubeclient apply <resource> -f file    # Create or replace from a manifest
//	kubeclient delete <resource> <name>    # Delete a resource
//	kubeclient version [--server-version]  # Show client (and server) version
//	kubeclient self-update                 # Update to the latest release
//	kubeclient help [command]              # Show help information
package cmd
