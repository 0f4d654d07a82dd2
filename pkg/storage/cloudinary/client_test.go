package cloudinary

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTransport struct {
	status  int
	body    string
	lastReq *http.Request
	lastRaw []byte
}

func (s *stubTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	s.lastReq = req
	if req.Body != nil {
		raw, _ := io.ReadAll(req.Body)
		s.lastRaw = raw
	}
	return &http.Response{
		StatusCode: s.status,
		Status:     http.StatusText(s.status),
		Body:       io.NopCloser(strings.NewReader(s.body)),
		Header:     make(http.Header),
	}, nil
}

func newTestClient(transport *stubTransport) *Client {
	return &Client{
		httpClient: &http.Client{Transport: transport},
		cloudName:  "demo",
		apiKey:     "key",
		apiSecret:  "secret",
		now:        func() time.Time { return time.Unix(1700000000, 0) },
	}
}

func TestClientUpload(t *testing.T) {
	transport := &stubTransport{
		status: http.StatusOK,
		body:   `{"secure_url":"https://res.cloudinary.com/demo/image/upload/inventario/abc.jpg","public_id":"inventario/abc"}`,
	}
	client := newTestClient(transport)

	url, err := client.Upload(context.Background(), []byte("image-bytes"), "inventario")
	require.NoError(t, err)
	assert.Equal(t, "https://res.cloudinary.com/demo/image/upload/inventario/abc.jpg", url)

	require.NotNil(t, transport.lastReq)
	assert.Equal(t, http.MethodPost, transport.lastReq.Method)
	assert.Contains(t, transport.lastReq.URL.Path, "/demo/image/upload")

	payload := string(transport.lastRaw)
	assert.Contains(t, payload, "inventario")
	assert.Contains(t, payload, "signature")
	assert.Contains(t, payload, "1700000000")
}

func TestClientUploadEmptyPayload(t *testing.T) {
	client := newTestClient(&stubTransport{status: http.StatusOK, body: "{}"})
	_, err := client.Upload(context.Background(), nil, "inventario")
	assert.Error(t, err)
}

func TestClientUploadAPIError(t *testing.T) {
	transport := &stubTransport{
		status: http.StatusBadRequest,
		body:   `{"error":{"message":"Invalid image file"}}`,
	}
	client := newTestClient(transport)

	_, err := client.Upload(context.Background(), []byte("bad"), "inventario")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid image file")
}

func TestClientDestroy(t *testing.T) {
	transport := &stubTransport{status: http.StatusOK, body: `{"result":"ok"}`}
	client := newTestClient(transport)

	err := client.Destroy(context.Background(), "inventario/abc")
	require.NoError(t, err)
	require.NotNil(t, transport.lastReq)
	assert.Contains(t, transport.lastReq.URL.Path, "/demo/image/destroy")
	assert.Contains(t, string(transport.lastRaw), "public_id=inventario%2Fabc")
}

func TestClientDestroyRequiresPublicID(t *testing.T) {
	client := newTestClient(&stubTransport{status: http.StatusOK, body: "{}"})
	assert.Error(t, client.Destroy(context.Background(), "  "))
}

func TestSignIsDeterministic(t *testing.T) {
	client := newTestClient(&stubTransport{})
	params := map[string]string{"timestamp": "1700000000", "folder": "inventario"}
	assert.Equal(t, client.sign(params), client.sign(params))
	assert.Len(t, client.sign(params), 40)
}
