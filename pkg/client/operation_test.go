package client

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wattle/kubeclient/pkg/client/clienttest"
)

func newTestCluster(t *testing.T, api *clienttest.MockAPI) *Cluster {
	t.Helper()
	baseURL, port := api.ClusterParams()
	cluster, err := NewCluster(baseURL, port, WithoutVersionProbe())
	require.NoError(t, err)
	return cluster
}

func TestOperationVerbs(t *testing.T) {
	tests := []struct {
		op   Operation
		verb string
	}{
		{OpGet, http.MethodGet},
		{OpCreate, http.MethodPost},
		{OpReplace, http.MethodPut},
		{OpDelete, http.MethodDelete},
		{OpWatch, http.MethodGet},
	}

	for _, tt := range tests {
		t.Run(tt.op.String(), func(t *testing.T) {
			assert.Equal(t, tt.verb, tt.op.Verb())
		})
	}

	t.Run("unrecognized operation defaults to GET", func(t *testing.T) {
		assert.Equal(t, http.MethodGet, Operation(42).Verb())
	})
}

// Each non-watch operation issues exactly one request using the verb from
// the fixed mapping table, regardless of payload content.
func TestRunOperationIssuesOneRequestPerVerb(t *testing.T) {
	tests := []struct {
		op   Operation
		body string
		verb string
	}{
		{OpGet, "", http.MethodGet},
		{OpCreate, `{"kind":"Pod"}`, http.MethodPost},
		{OpReplace, `{"kind":"Pod"}`, http.MethodPut},
		{OpDelete, "", http.MethodDelete},
	}

	for _, tt := range tests {
		t.Run(tt.op.String(), func(t *testing.T) {
			api := clienttest.NewMockAPI()
			defer api.Close()
			api.SetResource("/api/v1/namespaces/default/pods", `{"kind":"Pod","metadata":{"name":"web"}}`)

			cluster := newTestCluster(t, api)
			_, err := cluster.RunOperation(context.Background(), tt.op,
				"/api/v1/namespaces/default/pods", Payload{Body: []byte(tt.body)})
			require.NoError(t, err)

			requests := api.Requests()
			require.Len(t, requests, 1)
			assert.Equal(t, tt.verb, requests[0].Method)
			assert.Equal(t, "/api/v1/namespaces/default/pods", requests[0].Path)
			assert.Equal(t, tt.body, string(requests[0].Body))
		})
	}
}

// Watch routes to the stream: the only request is the streaming GET, and the
// response is never materialized through the transport path.
func TestRunOperationRoutesWatchToStream(t *testing.T) {
	api := clienttest.NewMockAPI()
	defer api.Close()
	api.SetWatch("/api/v1/watch/namespaces/default/pods",
		`{"type":"ADDED","object":{"kind":"Pod","metadata":{"name":"web"}}}`)

	cluster := newTestCluster(t, api)
	var events int
	res, err := cluster.RunOperation(context.Background(), OpWatch,
		"/api/v1/watch/namespaces/default/pods", Payload{
			OnEvent: func(e Event) bool {
				events++
				return false
			},
		})
	require.NoError(t, err)

	assert.False(t, res.Stopped)
	assert.Nil(t, res.Object)
	assert.Nil(t, res.List)
	assert.Equal(t, 1, events)

	requests := api.Requests()
	require.Len(t, requests, 1)
	assert.Equal(t, http.MethodGet, requests[0].Method)
}

func TestRunOperationWatchRequiresCallback(t *testing.T) {
	api := clienttest.NewMockAPI()
	defer api.Close()

	cluster := newTestCluster(t, api)
	_, err := cluster.RunOperation(context.Background(), OpWatch, "/api/v1/watch/pods", Payload{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no event callback")

	assert.Empty(t, api.Requests(), "a watch without a callback must not hit the server")
}

func TestRequestURL(t *testing.T) {
	cluster := &Cluster{
		baseURL: "http://example.com",
		port:    8080,
		query:   url.Values{"pretty": []string{"1"}},
	}

	t.Run("default query", func(t *testing.T) {
		assert.Equal(t, "http://example.com:8080/api/v1/pods?pretty=1",
			cluster.requestURL("/api/v1/pods", nil))
	})

	t.Run("query override", func(t *testing.T) {
		q := url.Values{"watch": []string{"true"}}
		assert.Equal(t, "http://example.com:8080/api/v1/pods?watch=true",
			cluster.requestURL("/api/v1/pods", q))
	})

	t.Run("empty override drops the query string", func(t *testing.T) {
		assert.Equal(t, "http://example.com:8080/api/v1/pods",
			cluster.requestURL("/api/v1/pods", url.Values{}))
	})
}

// A client-level HTTP error surfaces the error body's message as an APIError.
func TestRunOperationNormalizesAPIErrors(t *testing.T) {
	api := clienttest.NewMockAPI()
	defer api.Close()
	api.SetResponse("/api/v1/namespaces/default/pods/gone", http.StatusNotFound,
		`{"message":"not found"}`)

	cluster := newTestCluster(t, api)
	_, err := cluster.Get(context.Background(), "/api/v1/namespaces/default/pods/gone", nil)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "not found", apiErr.Message)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.True(t, IsNotFound(err))
}

func TestRunOperationTransportError(t *testing.T) {
	// Point at a closed server to force a connection failure.
	api := clienttest.NewMockAPI()
	cluster := newTestCluster(t, api)
	api.Close()

	_, err := cluster.Get(context.Background(), "/api/v1/pods", nil)
	require.Error(t, err)

	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr), "transport failures are not APIErrors")
}
