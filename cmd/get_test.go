package cmd

import (
	"bytes"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wattle/kubeclient/pkg/client/clienttest"
)

func mockCluster(t *testing.T) *clienttest.MockAPI {
	t.Helper()
	api := clienttest.NewMockAPI()
	t.Cleanup(api.Close)

	restoreFlags(t)
	flagServer, flagPort = api.ClusterParams()
	flagNamespace = "default"
	flagAPIGroup = ""
	return api
}

func TestGetCmdSingleResource(t *testing.T) {
	api := mockCluster(t)
	api.SetResource("/api/v1/namespaces/default/pods/web",
		`{"kind":"Pod","metadata":{"name":"web"}}`)

	var buf bytes.Buffer
	cmd := newGetCmd()
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"pods", "web"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), `"kind": "Pod"`)
	assert.Contains(t, buf.String(), `"name": "web"`)
}

func TestGetCmdList(t *testing.T) {
	api := mockCluster(t)
	api.SetResource("/api/v1/namespaces/default/pods",
		`{"kind":"PodList","items":[{"metadata":{"name":"a"}},{"metadata":{"name":"b"}}]}`)

	var buf bytes.Buffer
	cmd := newGetCmd()
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"pods"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "NAME\na\nb\n", buf.String())
}

func TestGetCmdNotFound(t *testing.T) {
	api := mockCluster(t)
	api.SetResponse("/api/v1/namespaces/default/pods/gone", http.StatusNotFound,
		`{"message":"pods \"gone\" not found"}`)

	cmd := newGetCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"pods", "gone"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestWatchCmdUntil(t *testing.T) {
	api := mockCluster(t)
	api.SetWatch("/api/v1/watch/namespaces/default/pods",
		`{"type":"ADDED","object":{"metadata":{"name":"a"}}}`,
		`{"type":"DELETED","object":{"metadata":{"name":"a"}}}`,
	)

	var buf bytes.Buffer
	cmd := newWatchCmd()
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"pods", "--until", "DELETED"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "ADDED")
	assert.Contains(t, buf.String(), "DELETED")
	assert.Contains(t, buf.String(), "watch stopped: matched --until DELETED")
}

func TestApplyCmdCreate(t *testing.T) {
	api := mockCluster(t)
	api.SetResource("/api/v1/namespaces/default/pods",
		`{"kind":"Pod","metadata":{"name":"web"}}`)

	manifest := filepath.Join(t.TempDir(), "pod.yaml")
	require.NoError(t, os.WriteFile(manifest, []byte("kind: Pod\nmetadata:\n  name: web\n"), 0o600))

	var buf bytes.Buffer
	cmd := newApplyCmd()
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"pods", "-f", manifest})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "pods/web created\n", buf.String())

	requests := api.Requests()
	require.Len(t, requests, 1)
	assert.Equal(t, http.MethodPost, requests[0].Method)
	assert.Contains(t, string(requests[0].Body), `"kind":"Pod"`)
}

func TestApplyCmdReplace(t *testing.T) {
	api := mockCluster(t)
	api.SetResource("/api/v1/namespaces/default/pods/web",
		`{"kind":"Pod","metadata":{"name":"web"}}`)

	manifest := filepath.Join(t.TempDir(), "pod.json")
	require.NoError(t, os.WriteFile(manifest,
		[]byte(`{"kind":"Pod","metadata":{"name":"web"}}`), 0o600))

	var buf bytes.Buffer
	cmd := newApplyCmd()
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"pods", "-f", manifest, "--replace"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "pods/web replaced\n", buf.String())

	requests := api.Requests()
	require.Len(t, requests, 1)
	assert.Equal(t, http.MethodPut, requests[0].Method)
	assert.Equal(t, "/api/v1/namespaces/default/pods/web", requests[0].Path)
}

func TestDeleteCmd(t *testing.T) {
	api := mockCluster(t)
	api.SetResource("/api/v1/namespaces/default/pods/web",
		`{"kind":"Status","status":"Success"}`)

	var buf bytes.Buffer
	cmd := newDeleteCmd()
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"pods", "web"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "pods/web deleted\n", buf.String())

	requests := api.Requests()
	require.Len(t, requests, 1)
	assert.Equal(t, http.MethodDelete, requests[0].Method)
}
