package client

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sync"

	"github.com/Jeffail/gabs"

	"github.com/wattle/kubeclient/internal/logging"
	"github.com/wattle/kubeclient/pkg/resource"
)

// EventType classifies a watch event.
type EventType string

// Watch event types as emitted on the wire.
const (
	Added    EventType = "ADDED"
	Modified EventType = "MODIFIED"
	Deleted  EventType = "DELETED"
	Error    EventType = "ERROR"
)

// Event is one change notification from a watch stream.
type Event struct {
	Type   EventType
	Object resource.Object
}

// WatchStream is a lazy, unbounded, non-restartable sequence of watch
// events read from one persistent connection. Next blocks until the server
// emits a line or closes the stream; once closed, the stream is done for
// good — there is no reconnection, bookmark or backoff. Cancel the context
// passed to OpenWatch or call Close to stop a blocked read.
type WatchStream struct {
	body    io.ReadCloser
	reader  *bufio.Reader
	factory resource.Factory
	logger  *slog.Logger

	closeOnce sync.Once
	closeErr  error
}

// maxErrorBody bounds how much of an error response is read for the message.
const maxErrorBody = 64 << 10

// OpenWatch opens a persistent GET connection to path and returns the event
// stream. The caller owns the stream and must Close it.
func (c *Cluster) OpenWatch(ctx context.Context, path string, factory resource.Factory, query url.Values) (*WatchStream, error) {
	if factory == nil {
		factory = resource.Generic
	}
	rawURL := c.requestURL(path, query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", rawURL, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", rawURL, err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		_ = resp.Body.Close()
		return nil, newAPIError(http.MethodGet, rawURL, resp.StatusCode, data)
	}

	return &WatchStream{
		body:    resp.Body,
		reader:  bufio.NewReader(resp.Body),
		factory: factory,
		logger:  logging.WithOperation(c.logger, OpWatch.String()).With(logging.Path(path)),
	}, nil
}

// Next blocks until the next event arrives or the stream ends, returning
// ErrWatchDone on stream close. Lines that do not decode are logged and
// skipped rather than aborting the session: one bad line must not kill a
// long-lived feed.
//
// Watch-delivered resources are not marked synced — this client never
// created or replaced them, so they keep the factory's default sync state.
func (ws *WatchStream) Next() (Event, error) {
	for {
		line, err := ws.reader.ReadBytes('\n')
		if trimmed := bytes.TrimSpace(line); len(trimmed) > 0 {
			if event, ok := ws.decodeLine(trimmed); ok {
				return event, nil
			}
		}
		if err != nil {
			return Event{}, ErrWatchDone
		}
	}
}

// decodeLine parses one {type, object} line into an Event.
func (ws *WatchStream) decodeLine(line []byte) (Event, bool) {
	doc, err := gabs.ParseJSON(line)
	if err != nil {
		watchLinesSkippedTotal.Inc()
		ws.logger.Warn("skipping undecodable watch line", logging.Err(err))
		return Event{}, false
	}

	eventType, _ := doc.Path("type").Data().(string)
	object, _ := doc.Path("object").Data().(map[string]interface{})

	watchEventsTotal.WithLabelValues(eventType).Inc()
	return Event{
		Type:   EventType(eventType),
		Object: ws.factory(object),
	}, true
}

// Close tears down the underlying connection. Safe to call more than once,
// and from another goroutine to unblock a pending Next.
func (ws *WatchStream) Close() error {
	ws.closeOnce.Do(func() {
		ws.closeErr = ws.body.Close()
	})
	return ws.closeErr
}

// runWatch drives the callback loop for the dispatcher: events are delivered
// in stream order until the callback requests an early exit (returns true)
// or the stream is exhausted (returns false).
func (c *Cluster) runWatch(ctx context.Context, factory resource.Factory, path string, query url.Values, onEvent EventFunc) (bool, error) {
	ws, err := c.OpenWatch(ctx, path, factory, query)
	if err != nil {
		return false, err
	}
	defer func() {
		_ = ws.Close()
	}()

	for {
		event, err := ws.Next()
		if errors.Is(err, ErrWatchDone) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		if onEvent(event) {
			return true, nil
		}
	}
}
