package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertStatusCode verifies the HTTP response status code
func AssertStatusCode(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	assert.Equal(t, expected, resp.StatusCode, "unexpected status code")
}

// AssertJSONResponse decodes JSON response into v and verifies success
func AssertJSONResponse(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")

	err = json.Unmarshal(body, v)
	require.NoError(t, err, "failed to unmarshal response: %s", string(body))
}

// ErrorBody mirrors the API error shape
type ErrorBody struct {
	Error      string `json:"error"`
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
}

// ReadErrorBody decodes the standard error response and returns its raw bytes
// alongside, so tests can compare bodies literally.
func ReadErrorBody(t *testing.T, resp *http.Response) (ErrorBody, []byte) {
	t.Helper()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")

	var body ErrorBody
	err = json.Unmarshal(raw, &body)
	require.NoError(t, err, "failed to unmarshal error response: %s", string(raw))

	return body, raw
}

// AssertErrorResponse verifies the standard error body shape
func AssertErrorResponse(t *testing.T, resp *http.Response, expectedStatus int, expectedKind string) {
	t.Helper()

	assert.Equal(t, expectedStatus, resp.StatusCode, "unexpected status code")

	body, _ := ReadErrorBody(t, resp)
	assert.Equal(t, expectedKind, body.Error, "unexpected error kind")
	assert.Equal(t, expectedStatus, body.StatusCode, "error body status mismatch")
}
