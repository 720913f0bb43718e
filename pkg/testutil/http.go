// Package testutil holds request builders and response assertions shared by
// the amlscope handler tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// NewJSONRequest builds a request whose body is body encoded as JSON. A nil
// body sends no payload.
func NewJSONRequest(t *testing.T, method, path string, body any) *http.Request {
	t.Helper()
	if body == nil {
		return NewRequestWithBody(t, method, path, "")
	}
	raw, err := json.Marshal(body)
	require.NoError(t, err, "encode request body")
	return NewRequestWithBody(t, method, path, string(raw))
}

// NewRequest builds a request with no body.
func NewRequest(t *testing.T, method, path string) *http.Request {
	t.Helper()
	return httptest.NewRequest(method, path, nil)
}

// NewRequestWithBody builds a JSON request from a literal body, for payloads
// that must reach the handler malformed.
func NewRequestWithBody(t *testing.T, method, path string, body string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// DoRequest serves req and returns the recorder.
func DoRequest(handler http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

// ReadBody returns the response body without draining it, so several
// assertions can inspect the same recorder.
func ReadBody(t *testing.T, rr *httptest.ResponseRecorder) []byte {
	t.Helper()
	require.NotNil(t, rr.Body, "response has no body")
	return rr.Body.Bytes()
}

// UnmarshalResponse decodes the response body into T.
func UnmarshalResponse[T any](t *testing.T, rr *httptest.ResponseRecorder) *T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(ReadBody(t, rr), &out), "decode response body")
	return &out
}

// UnmarshalErrorResponse decodes an error body such as
// {"error":"not_found","error_description":"..."}.
func UnmarshalErrorResponse(t *testing.T, rr *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var out map[string]string
	require.NoError(t, json.Unmarshal(ReadBody(t, rr), &out), "decode error body")
	return out
}

// JSONField returns the raw JSON found by walking path through nested
// objects and arrays (array steps are decimal indexes). It fails the test
// when any step is missing.
func JSONField(t *testing.T, rr *httptest.ResponseRecorder, path ...string) json.RawMessage {
	t.Helper()
	cur := json.RawMessage(ReadBody(t, rr))
	for _, step := range path {
		cur = jsonStep(t, cur, step)
	}
	return cur
}

func jsonStep(t *testing.T, raw json.RawMessage, step string) json.RawMessage {
	t.Helper()
	if bytes.HasPrefix(bytes.TrimSpace(raw), []byte("[")) {
		var arr []json.RawMessage
		require.NoError(t, json.Unmarshal(raw, &arr), "decode array at %q", step)
		idx, err := strconv.Atoi(step)
		require.NoError(t, err, "array step %q is not an index", step)
		require.Less(t, idx, len(arr), "index %d out of range", idx)
		return arr[idx]
	}
	var obj map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &obj), "decode object at %q", step)
	v, ok := obj[step]
	require.True(t, ok, "key %q not found in response", step)
	return v
}

// AssertStatus checks the response status code.
func AssertStatus(t *testing.T, rr *httptest.ResponseRecorder, expected int) {
	t.Helper()
	assert.Equal(t, expected, rr.Code, "unexpected status code")
}

// AssertStatusOK checks for 200 OK.
func AssertStatusOK(t *testing.T, rr *httptest.ResponseRecorder) {
	t.Helper()
	AssertStatus(t, rr, http.StatusOK)
}

// AssertStatusAndError checks the status code and the "error" code of the body.
func AssertStatusAndError(t *testing.T, rr *httptest.ResponseRecorder, expectedStatus int, expectedCode string) {
	t.Helper()
	AssertStatus(t, rr, expectedStatus)
	assert.Equal(t, expectedCode, UnmarshalErrorResponse(t, rr)["error"], "unexpected error code")
}

// AssertJSONContains checks one top-level key of the response body.
func AssertJSONContains(t *testing.T, rr *httptest.ResponseRecorder, key string, expectedValue any) {
	t.Helper()
	var got any
	require.NoError(t, json.Unmarshal(JSONField(t, rr, key), &got), "decode %q", key)
	assert.Equal(t, expectedValue, got, "unexpected value for key %q", key)
}
