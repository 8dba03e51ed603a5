package elastic

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/papermart/listing-service/pkg/logger"
	"github.com/stretchr/testify/require"
)

// stubTransport answers the engine's HTTP calls from a queue of canned
// responses and records what was sent.
type stubTransport struct {
	calls     int
	bodies    []string
	responses []*http.Response
	err       error
}

func (t *stubTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	t.calls++
	if req.Body != nil {
		raw, _ := io.ReadAll(req.Body)
		t.bodies = append(t.bodies, string(raw))
	}
	if t.err != nil {
		return nil, t.err
	}
	if len(t.responses) == 0 {
		return esResponse(http.StatusOK, "{}"), nil
	}
	res := t.responses[0]
	t.responses = t.responses[1:]
	return res, nil
}

func esResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header: http.Header{
			"X-Elastic-Product": []string{"Elasticsearch"},
			"Content-Type":      []string{"application/json"},
		},
		Body: io.NopCloser(strings.NewReader(body)),
	}
}

func newStubEngine(t *testing.T, responses ...*http.Response) (*Engine, *stubTransport) {
	t.Helper()
	transport := &stubTransport{responses: responses}
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Transport: transport,
		// The client retries 502/503/504 by default; with a single queued
		// response the retry would consume the stub's fallback 200 instead.
		DisableRetry: true,
	})
	require.NoError(t, err)
	return NewEngine(client, logger.NewNop()), transport
}
