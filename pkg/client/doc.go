// Package client implements the request, response and watch plumbing for a
// Kubernetes-style resource API.
//
// A Cluster is the process-wide handle: it holds the base URL, port and the
// lazily probed server version, and every operation runs through it. Logical
// operations (get/create/replace/delete/watch) are dispatched by
// RunOperation, which maps each to an HTTP verb and routes watch to a
// long-lived line-delimited stream instead of a single exchange.
//
// Typical use:
//
//	cluster, err := client.NewCluster("http://localhost", 8080)
//	if err != nil {
//	    return err
//	}
//
//	res, err := cluster.Get(ctx, resource.CorePath("default", "pods", "web"), nil)
//
//	stopped, err := cluster.Watch(ctx, resource.WatchCorePath("default", "jobs", "sync"), nil,
//	    func(e client.Event) bool {
//	        return e.Type == client.Deleted
//	    })
//
// Resources returned by Get/Create/Replace/Delete are marked synced: their
// in-memory state was confirmed by the server. Watch-delivered resources are
// deliberately not synced, since this client never sent them.
//
// There is no internal retry, reconnection or resync; a transport failure or
// a closed watch stream is terminal for that call.
package client
