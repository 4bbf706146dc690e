package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/wattle/kubeclient/internal/logging"
	"github.com/wattle/kubeclient/pkg/resource"
)

// Operation is a logical action against the remote API.
type Operation int

const (
	// OpGet reads a resource or collection.
	OpGet Operation = iota
	// OpCreate creates a resource.
	OpCreate
	// OpReplace replaces a resource.
	OpReplace
	// OpDelete deletes a resource.
	OpDelete
	// OpWatch streams change events; routed to the watch stream, never the
	// transport.
	OpWatch
)

// operationVerbs is the fixed operation→verb table.
var operationVerbs = map[Operation]string{
	OpGet:     http.MethodGet,
	OpCreate:  http.MethodPost,
	OpReplace: http.MethodPut,
	OpDelete:  http.MethodDelete,
	OpWatch:   http.MethodGet,
}

// Verb returns the HTTP verb for the operation. Unrecognized operations
// default to GET; this is defined behavior, not an error.
func (op Operation) Verb() string {
	if verb, ok := operationVerbs[op]; ok {
		return verb
	}
	return http.MethodGet
}

// String returns the operation name, used for logs and metric labels.
func (op Operation) String() string {
	switch op {
	case OpGet:
		return "get"
	case OpCreate:
		return "create"
	case OpReplace:
		return "replace"
	case OpDelete:
		return "delete"
	case OpWatch:
		return "watch"
	default:
		return "unknown"
	}
}

// EventFunc is the watch callback. Returning true stops the watch
// immediately; returning false continues it.
type EventFunc func(e Event) bool

// Payload carries the per-operation inputs of RunOperation. Body is used by
// Create and Replace; OnEvent only by Watch. Factory defaults to
// resource.Generic and Query to the cluster default.
type Payload struct {
	Body    []byte
	Query   url.Values
	Factory resource.Factory
	OnEvent EventFunc
}

// Result is the outcome of one operation. Exactly one field is meaningful:
// Object for singleton responses, List for collection responses, Stopped for
// watch sessions.
type Result struct {
	Object  resource.Object
	List    []resource.Object
	Stopped bool
}

// RunOperation dispatches one logical operation: it resolves the HTTP verb
// from the fixed table, builds the full URL, and routes watch to the stream
// and everything else through the transport, materializing the response via
// the payload's factory.
func (c *Cluster) RunOperation(ctx context.Context, op Operation, path string, p Payload) (Result, error) {
	factory := p.Factory
	if factory == nil {
		factory = resource.Generic
	}

	if op == OpWatch {
		if p.OnEvent == nil {
			return Result{}, fmt.Errorf("watch %s: payload carries no event callback", path)
		}
		stopped, err := c.runWatch(ctx, factory, path, p.Query, p.OnEvent)
		return Result{Stopped: stopped}, err
	}

	verb := op.Verb()
	rawURL := c.requestURL(path, p.Query)

	status, body, err := c.do(ctx, verb, rawURL, p.Body)
	operationsTotal.WithLabelValues(op.String(), strconv.Itoa(status)).Inc()
	if err != nil {
		c.logger.Debug("operation failed",
			logging.Operation(op.String()),
			logging.Path(path),
			logging.Status(status),
			logging.SanitizedErr(err))
		return Result{}, err
	}

	return c.materialize(factory, body), nil
}

// Get reads the resource or collection at path.
func (c *Cluster) Get(ctx context.Context, path string, factory resource.Factory) (Result, error) {
	return c.RunOperation(ctx, OpGet, path, Payload{Factory: factory})
}

// Create posts a serialized resource document to the collection at path.
func (c *Cluster) Create(ctx context.Context, path string, body []byte, factory resource.Factory) (Result, error) {
	return c.RunOperation(ctx, OpCreate, path, Payload{Body: body, Factory: factory})
}

// Replace puts a serialized resource document at path.
func (c *Cluster) Replace(ctx context.Context, path string, body []byte, factory resource.Factory) (Result, error) {
	return c.RunOperation(ctx, OpReplace, path, Payload{Body: body, Factory: factory})
}

// Delete removes the resource at path. The returned Result materializes the
// server's response document (typically a status object).
func (c *Cluster) Delete(ctx context.Context, path string, factory resource.Factory) (Result, error) {
	return c.RunOperation(ctx, OpDelete, path, Payload{Factory: factory})
}

// Watch opens a watch stream on path and delivers events to onEvent until
// the callback returns true (Watch returns true) or the server closes the
// stream (Watch returns false).
func (c *Cluster) Watch(ctx context.Context, path string, factory resource.Factory, onEvent EventFunc) (bool, error) {
	res, err := c.RunOperation(ctx, OpWatch, path, Payload{Factory: factory, OnEvent: onEvent})
	return res.Stopped, err
}
