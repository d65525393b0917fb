//go:build functional

package functional_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sendRequest(t *testing.T, method, url string, body interface{}, headers map[string]string) (int, map[string]interface{}, http.Header) {
	t.Helper()
	var reqBody io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequest(method, url, reqBody)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)

	var respData map[string]interface{}
	if len(respBytes) > 0 {
		assert.NoError(t, json.Unmarshal(respBytes, &respData))
	}
	return resp.StatusCode, respData, resp.Header
}

func adminHeaders() map[string]string {
	return map[string]string{"Authorization": "Bearer " + AdminToken}
}
