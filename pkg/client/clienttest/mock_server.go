// Package clienttest provides an in-memory mock API server for testing
// kubeclient consumers without network dependencies.
//
// Example:
//
//	func TestMyCode(t *testing.T) {
//	    api := clienttest.NewMockAPI()
//	    defer api.Close()
//
//	    api.SetVersion("v1.28.3")
//	    api.SetResource("/api/v1/namespaces/default/pods/web", `{"kind":"Pod"}`)
//
//	    baseURL, port := api.ClusterParams()
//	    cluster, err := client.NewCluster(baseURL, port)
//	    // ...
//	}
package clienttest

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync"
)

// RequestRecord captures one request the mock server observed.
type RequestRecord struct {
	Method string
	Path   string
	Body   []byte
}

// MockAPI is an in-memory resource API server: scripted response bodies per
// path, scripted watch streams, a version endpoint, and a request log for
// asserting on verbs and paths.
type MockAPI struct {
	server *httptest.Server

	mu         sync.Mutex
	gitVersion string
	resources  map[string]scriptedResponse
	watches    map[string][]string
	requests   []RequestRecord
}

type scriptedResponse struct {
	status int
	body   string
}

// NewMockAPI starts a mock server with version v0.0.0 and no resources.
func NewMockAPI() *MockAPI {
	api := &MockAPI{
		gitVersion: "v0.0.0",
		resources:  make(map[string]scriptedResponse),
		watches:    make(map[string][]string),
	}
	api.server = httptest.NewServer(http.HandlerFunc(api.handle))
	return api
}

// URL returns the server's base URL including port.
func (m *MockAPI) URL() string {
	return m.server.URL
}

// ClusterParams returns the scheme://host and port for client.NewCluster.
func (m *MockAPI) ClusterParams() (string, int) {
	u, err := url.Parse(m.server.URL)
	if err != nil {
		panic(fmt.Sprintf("clienttest: parsing server URL: %v", err))
	}
	port, err := strconv.Atoi(u.Port())
	if err != nil {
		panic(fmt.Sprintf("clienttest: parsing server port: %v", err))
	}
	return u.Scheme + "://" + u.Hostname(), port
}

// Close shuts the server down.
func (m *MockAPI) Close() {
	m.server.Close()
}

// SetVersion sets the gitVersion served by the version endpoint.
func (m *MockAPI) SetVersion(gitVersion string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gitVersion = gitVersion
}

// SetResource scripts a 200 response body for path, served for any verb.
func (m *MockAPI) SetResource(path, body string) {
	m.SetResponse(path, http.StatusOK, body)
}

// SetResponse scripts an arbitrary status and body for path.
func (m *MockAPI) SetResponse(path string, status int, body string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resources[path] = scriptedResponse{status: status, body: body}
}

// SetWatch scripts a watch stream for path: each line is written followed by
// a newline, then the connection is closed.
func (m *MockAPI) SetWatch(path string, lines ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.watches[path] = lines
}

// Requests returns a copy of every request observed so far, in order.
func (m *MockAPI) Requests() []RequestRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]RequestRecord, len(m.requests))
	copy(out, m.requests)
	return out
}

// Reset clears scripted responses, watches and the request log.
func (m *MockAPI) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resources = make(map[string]scriptedResponse)
	m.watches = make(map[string][]string)
	m.requests = nil
}

func (m *MockAPI) handle(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	m.mu.Lock()
	m.requests = append(m.requests, RequestRecord{Method: r.Method, Path: r.URL.Path, Body: body})
	gitVersion := m.gitVersion
	lines, isWatch := m.watches[r.URL.Path]
	scripted, hasScripted := m.resources[r.URL.Path]
	m.mu.Unlock()

	// Scripted responses win over the builtin version endpoint so tests can
	// simulate a broken or recovering /version.
	switch {
	case hasScripted:
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(scripted.status)
		fmt.Fprint(w, scripted.body)

	case isWatch:
		flusher, _ := w.(http.Flusher)
		w.WriteHeader(http.StatusOK)
		for _, line := range lines {
			fmt.Fprintln(w, line)
			if flusher != nil {
				flusher.Flush()
			}
		}
		// handler return closes the connection, ending the stream

	case r.URL.Path == "/version":
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"gitVersion":%q,"platform":"linux/amd64"}`, gitVersion)

	default:
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprintf(w, `{"message":"the server could not find the requested resource %s"}`, r.URL.Path)
	}
}
