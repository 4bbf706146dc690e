package resource

import "fmt"

// Path builders for the resource-oriented API. These are plain templated
// strings; the client treats the result as opaque.

// CorePath returns the path for a namespaced core-API collection or, when
// name is non-empty, a single resource within it.
//
//	CorePath("default", "pods", "")    → /api/v1/namespaces/default/pods
//	CorePath("default", "pods", "web") → /api/v1/namespaces/default/pods/web
func CorePath(namespace, plural, name string) string {
	p := fmt.Sprintf("/api/v1/namespaces/%s/%s", namespace, plural)
	if name != "" {
		p += "/" + name
	}
	return p
}

// ClusterPath returns the path for a cluster-scoped core-API resource.
func ClusterPath(plural, name string) string {
	p := "/api/v1/" + plural
	if name != "" {
		p += "/" + name
	}
	return p
}

// GroupPath returns the path for a resource served under an API group.
//
//	GroupPath("batch", "v1", "default", "jobs", "sync") → /apis/batch/v1/namespaces/default/jobs/sync
func GroupPath(group, version, namespace, plural, name string) string {
	p := fmt.Sprintf("/apis/%s/%s", group, version)
	if namespace != "" {
		p += "/namespaces/" + namespace
	}
	p += "/" + plural
	if name != "" {
		p += "/" + name
	}
	return p
}

// WatchCorePath returns the watch variant of a namespaced core-API path.
//
//	WatchCorePath("default", "pods", "") → /api/v1/watch/namespaces/default/pods
func WatchCorePath(namespace, plural, name string) string {
	p := fmt.Sprintf("/api/v1/watch/namespaces/%s/%s", namespace, plural)
	if name != "" {
		p += "/" + name
	}
	return p
}
